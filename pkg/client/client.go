// Package client implements a single-server, single-channel IRC client
// session: registration, the read loop, reactions to server events and the
// slash commands typed by the user.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/tehcyx/girc-client/pkg/event"
	"github.com/tehcyx/girc-client/pkg/irc"
	"github.com/tehcyx/girc-client/pkg/transport"
)

const (
	eventMessageReceived = "messageReceived"
	eventChannelChanged  = "channelChanged"
)

// Options tune a Client.
type Options struct {
	// Charset the server's bytes are decoded from. Defaults to UTF-8.
	Charset string
}

// Client is the connection engine. Create one per connection attempt; a
// Client that has been connected once cannot be connected again.
type Client struct {
	identifier uuid.UUID
	transport  transport.Transport
	charset    string
	logger     *log.Entry

	stream io.ReadWriteCloser
	reader *bufio.Reader

	messages *irc.MessageRouter
	commands *irc.CommandRouter
	outward  *event.Dispatcher[Message]
	channels *event.Dispatcher[string]

	// quit is cancelled by the /quit command and observed by the read loop
	// between two lines.
	quit     context.Context
	quitFunc context.CancelFunc
	done     chan struct{}
	doneOnce sync.Once

	clientMux      sync.RWMutex
	state          State
	used           bool
	connected      bool
	nickname       string
	currentChannel string
	serverInfo     ServerInfo
	registration   RegistrationInfo

	// sendMux serializes writes from the read loop (PONG) and user input.
	sendMux sync.Mutex
}

// New creates a disconnected client that dials through t.
func New(t transport.Transport, opts Options) *Client {
	identifier := uuid.Must(uuid.NewRandom())
	quit, quitFunc := context.WithCancel(context.Background())

	c := &Client{
		identifier: identifier,
		transport:  t,
		charset:    opts.Charset,
		logger:     log.WithField("session", identifier.String()),
		outward:    event.New[Message](),
		channels:   event.New[string](),
		quit:       quit,
		quitFunc:   quitFunc,
		done:       make(chan struct{}),
	}
	c.messages = c.mapMessageHandlers()
	c.commands = c.mapCommandHandlers()
	return c
}

// OnMessageReceived subscribes to messages meant for display.
func (c *Client) OnMessageReceived(handler func(Message) error) {
	c.outward.Register(eventMessageReceived, handler)
}

// OnChannelChanged subscribes to changes of the current channel. The
// handler receives "" when the channel is left.
func (c *Client) OnChannelChanged(handler func(string) error) {
	c.channels.Register(eventChannelChanged, handler)
}

// SessionID identifies this connection attempt in logs and stored history.
func (c *Client) SessionID() string {
	return c.identifier.String()
}

// IsConnected reports whether the session can send.
func (c *Client) IsConnected() bool {
	c.clientMux.RLock()
	defer c.clientMux.RUnlock()
	return c.connected
}

// State returns the current engine state.
func (c *Client) State() State {
	c.clientMux.RLock()
	defer c.clientMux.RUnlock()
	return c.state
}

// Nickname is the nickname currently registered with the server.
func (c *Client) Nickname() string {
	c.clientMux.RLock()
	defer c.clientMux.RUnlock()
	return c.nickname
}

// CurrentChannel returns the joined channel, or "" when there is none.
func (c *Client) CurrentChannel() string {
	c.clientMux.RLock()
	defer c.clientMux.RUnlock()
	return c.currentChannel
}

// ServerInfo returns the server passed to Connect.
func (c *Client) ServerInfo() ServerInfo {
	c.clientMux.RLock()
	defer c.clientMux.RUnlock()
	return c.serverInfo
}

// Done is closed once the read loop has exited, or right away when Connect
// fails.
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Connect dials the server, sends the registration sequence and starts the
// read loop in the background. ctx only bounds the dial.
func (c *Client) Connect(ctx context.Context, server *ServerInfo, reg *RegistrationInfo) error {
	if server == nil {
		return fmt.Errorf("%w: server info is nil", ErrInvalidArgument)
	}
	if reg == nil {
		return fmt.Errorf("%w: registration info is nil", ErrInvalidArgument)
	}
	if _, err := transport.Charset(c.charset); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArgument, err)
	}

	c.clientMux.Lock()
	if c.used {
		c.clientMux.Unlock()
		return ErrAlreadyUsed
	}
	c.used = true
	c.state = StateConnecting
	c.serverInfo = *server
	c.registration = *reg
	c.nickname = reg.Nickname
	c.clientMux.Unlock()

	c.logger = c.logger.WithField("server", fmt.Sprintf("%s:%d", server.Host, server.Port))
	c.logger.Infof("Connecting as '%s' ...", reg.Nickname)

	if err := c.transport.Connect(ctx, server.Host, server.Port); err != nil {
		c.fail()
		return fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	stream := c.transport.Stream()
	if stream == nil {
		c.fail()
		return fmt.Errorf("%w: transport returned no stream", ErrConnectionFailed)
	}
	reader, err := transport.NewLineReader(stream, c.charset)
	if err != nil {
		stream.Close()
		c.fail()
		return err
	}

	c.clientMux.Lock()
	c.stream = stream
	c.reader = reader
	c.connected = true
	c.clientMux.Unlock()

	if err := c.sendRegistration(reg); err != nil {
		stream.Close()
		c.fail()
		return fmt.Errorf("registration failed: %w", err)
	}

	c.clientMux.Lock()
	c.state = StateRegistered
	c.clientMux.Unlock()

	c.logger.Infof("Registration sent, reading from server")
	go c.readLoop()
	return nil
}

// sendRegistration sends PASS (when a password is set), NICK and USER.
func (c *Client) sendRegistration(reg *RegistrationInfo) error {
	if reg == nil {
		return fmt.Errorf("%w: registration info is nil", ErrInvalidArgument)
	}

	if reg.Password != "" {
		if err := c.send(irc.NewMessage(irc.PassCmd, reg.Password)); err != nil {
			return err
		}
	}
	if err := c.send(irc.NewMessage(irc.NickCmd, reg.Nickname)); err != nil {
		return err
	}
	user := irc.NewMessage(irc.UserCmd, reg.Username, "none", "none").WithTrailing(reg.RealName)
	return c.send(user)
}

// readLoop reads one line at a time until the stream ends or /quit was
// issued. A read that is already blocked is not interrupted by /quit; Close
// does that.
func (c *Client) readLoop() {
	defer c.closeDone()
	defer c.markDisconnected()

	for c.IsConnected() && c.quit.Err() == nil {
		line, err := c.reader.ReadString('\n')
		if line != "" {
			c.logger.Debugf("<< %s", strings.TrimRight(line, "\r\n"))
			if dispatchErr := c.messages.ProcessLine(line); dispatchErr != nil {
				c.logger.Errorf("Handling server message failed: %v", dispatchErr)
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && c.quit.Err() == nil {
				c.logger.Errorf("Reading from server failed: %v", err)
			}
			return
		}
	}
}

// SendMessage handles one line of user input: slash commands go through the
// command router, anything else is sent to the current channel.
func (c *Client) SendMessage(input string) error {
	if !c.IsConnected() {
		return ErrNotConnected
	}
	if strings.TrimSpace(input) == "" {
		return nil
	}
	if input[0] == '/' {
		return c.commands.ProcessInput(input)
	}
	return c.sendChannelMessage(input)
}

func (c *Client) sendChannelMessage(input string) error {
	channel := c.CurrentChannel()
	if channel == "" {
		return c.emit(Message{Type: MessageServer, Text: "You are not in a channel. Use /join <channel> first."})
	}
	return c.sendText(channel, input)
}

// send writes msg to the server. Writes are serialized.
func (c *Client) send(msg *irc.Message) error {
	c.clientMux.RLock()
	connected, stream := c.connected, c.stream
	c.clientMux.RUnlock()
	if !connected || stream == nil {
		return ErrNotConnected
	}

	c.sendMux.Lock()
	defer c.sendMux.Unlock()

	if msg.Command == irc.PassCmd {
		c.logger.Debugf(">> %s [REDACTED]", msg.Command)
	} else {
		c.logger.Debugf(">> %s", strings.TrimRight(msg.String(), "\r\n"))
	}
	if _, err := stream.Write(msg.Bytes()); err != nil {
		return fmt.Errorf("%w: write %s failed: %w", ErrNotConnected, msg.Command, err)
	}
	return nil
}

// Close closes the transport stream. Use it after /quit to unblock a read
// that is waiting for the server.
func (c *Client) Close() error {
	c.quitFunc()

	c.clientMux.RLock()
	stream := c.stream
	c.clientMux.RUnlock()
	if stream == nil {
		return nil
	}
	return stream.Close()
}

func (c *Client) emit(msg Message) error {
	return c.outward.Dispatch(eventMessageReceived, msg)
}

func (c *Client) changeChannel(channel string) error {
	return c.channels.Dispatch(eventChannelChanged, channel)
}

func (c *Client) markDisconnected() {
	c.clientMux.Lock()
	c.connected = false
	c.state = StateDisconnected
	c.clientMux.Unlock()
	c.logger.Infof("Disconnected from server")
}

// fail resets the state after a failed Connect.
func (c *Client) fail() {
	c.clientMux.Lock()
	c.connected = false
	c.state = StateDisconnected
	c.clientMux.Unlock()
	c.closeDone()
}

func (c *Client) closeDone() {
	c.doneOnce.Do(func() { close(c.done) })
}
