// Package console is the terminal front end of the chat application.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/ergochat/readline"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"

	"github.com/tehcyx/girc-client/pkg/client"
)

const (
	inputIdentifier = " > "
	historyLimit    = 1000

	// move the cursor up one line and clear it
	clearPreviousLine = "\x1b[1A\x1b[2K"
)

// Options configure a Console.
type Options struct {
	TimestampFormat string
	// HistoryFile keeps readline history between runs. Empty disables it.
	HistoryFile string

	// In and Out replace stdin and stdout. Setting either disables the
	// interactive line editor.
	In  io.Reader
	Out io.Writer
}

// Console reads user input with a line editor when attached to a terminal and
// falls back to plain line reads otherwise.
type Console struct {
	layout      string
	historyFile string
	in          io.Reader
	out         io.Writer
	interactive bool

	rl      *readline.Instance
	scanner *bufio.Scanner

	title  string
	outMux sync.Mutex
	now    func() time.Time
}

func New(opts Options) *Console {
	c := &Console{
		layout:      opts.TimestampFormat,
		historyFile: opts.HistoryFile,
		in:          opts.In,
		out:         opts.Out,
		now:         time.Now,
	}
	if c.in == nil && c.out == nil {
		c.interactive = term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	}
	if c.in == nil {
		c.in = os.Stdin
	}
	if c.out == nil {
		c.out = os.Stdout
	}
	c.scanner = bufio.NewScanner(c.in)
	return c
}

// Setup prepares the terminal: clears it and starts the line editor.
func (c *Console) Setup() error {
	c.title = ""
	if !c.interactive {
		return nil
	}

	rl, err := readline.NewFromConfig(&readline.Config{
		HistoryFile:            c.historyFile,
		HistoryLimit:           historyLimit,
		DisableAutoSaveHistory: true,
		Prompt:                 inputIdentifier,
	})
	if err != nil {
		log.Warnf("Line editor unavailable, using basic input: %v", err)
		c.interactive = false
		return nil
	}
	c.rl = rl

	// clear screen, cursor home
	fmt.Fprint(c.out, "\x1b[2J\x1b[H")
	return nil
}

// SetTitle sets the terminal window title.
func (c *Console) SetTitle(title string) {
	c.outMux.Lock()
	defer c.outMux.Unlock()

	c.title = title
	if c.interactive {
		fmt.Fprintf(c.out, "\x1b]0;%s\x07", title)
	}
}

// Title returns the last title set.
func (c *Console) Title() string {
	c.outMux.Lock()
	defer c.outMux.Unlock()
	return c.title
}

// OutputMessage prints a message with the current time.
func (c *Console) OutputMessage(msg client.Message) {
	c.outMux.Lock()
	defer c.outMux.Unlock()

	if c.rl != nil {
		fmt.Fprintln(c.out, styleMessage(c.now(), c.layout, msg.Text, msg.User, msg.Type))
		return
	}
	fmt.Fprintln(c.out, FormatMessage(c.now(), c.layout, msg.Text, msg.User, msg.Type))
}

// GetUserInput reads one line. The typed line is echoed back formatted as a
// message from nickname so it looks like the rest of the conversation.
// io.EOF is returned once input is exhausted or interrupted.
func (c *Console) GetUserInput(nickname string) (string, error) {
	if c.rl != nil {
		line, err := c.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return "", io.EOF
		}
		if err != nil {
			return "", err
		}
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			c.rl.SaveToHistory(trimmed)
			c.echo(line, nickname, clearPreviousLine)
		}
		return line, nil
	}

	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	line := c.scanner.Text()
	if strings.TrimSpace(line) != "" {
		c.echo(line, nickname, "")
	}
	return line, nil
}

func (c *Console) echo(line, nickname, prefix string) {
	c.outMux.Lock()
	defer c.outMux.Unlock()

	if c.rl != nil {
		fmt.Fprintln(c.out, prefix+styleMessage(c.now(), c.layout, line, nickname, client.MessageUser))
		return
	}
	fmt.Fprintln(c.out, FormatMessage(c.now(), c.layout, line, nickname, client.MessageUser))
}

// Ask prints label and reads one line of plain input.
func (c *Console) Ask(label string) (string, error) {
	if c.rl != nil {
		c.rl.SetPrompt(label)
		defer c.rl.SetPrompt(inputIdentifier)
		line, err := c.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return "", io.EOF
		}
		return strings.TrimSpace(line), err
	}
	fmt.Fprint(c.out, label)
	if !c.scanner.Scan() {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

// AskSecret reads a line without echoing it when attached to a terminal.
func (c *Console) AskSecret(label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if c.in != os.Stdin || !term.IsTerminal(fd) {
		return c.Ask(label)
	}
	fmt.Fprint(c.out, label)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(c.out)
	if err != nil {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return string(secret), nil
}

// PromptServerInfo asks for the server, offering def as the default.
func (c *Console) PromptServerInfo(def client.ServerInfo) (*client.ServerInfo, error) {
	host, err := c.Ask(fmt.Sprintf("Server [%s]: ", def.Host))
	if err != nil {
		return nil, err
	}
	if host == "" {
		host = def.Host
	}

	portString, err := c.Ask(fmt.Sprintf("Port [%d]: ", def.Port))
	if err != nil {
		return nil, err
	}
	port := def.Port
	if portString != "" {
		if port, err = strconv.Atoi(portString); err != nil {
			return nil, fmt.Errorf("%w: port %q is not a number", client.ErrInvalidArgument, portString)
		}
	}
	return &client.ServerInfo{Host: host, Port: port}, nil
}

// PromptRegistration asks for the registration details, offering def as the
// defaults. The password is read without echo.
func (c *Console) PromptRegistration(def client.RegistrationInfo) (*client.RegistrationInfo, error) {
	reg := def
	fields := []struct {
		label string
		value *string
	}{
		{"Enter nickname", &reg.Nickname},
		{"Enter username", &reg.Username},
		{"Enter real name", &reg.RealName},
	}
	for _, f := range fields {
		answer, err := c.Ask(fmt.Sprintf("%s [%s]: ", f.label, *f.value))
		if err != nil {
			return nil, err
		}
		if answer != "" {
			*f.value = answer
		}
	}

	pass, err := c.AskSecret("Enter pass: ")
	if err != nil {
		return nil, err
	}
	if pass != "" {
		reg.Password = pass
	}
	return &reg, nil
}

// Close releases the line editor.
func (c *Console) Close() error {
	if c.rl != nil {
		c.rl.Close()
		c.rl = nil
	}
	return nil
}
