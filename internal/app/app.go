// Package app ties the connection engine to a user interface.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/tehcyx/girc-client/pkg/client"
)

const quitCommand = "/quit"

// Client is the part of the connection engine the application drives.
type Client interface {
	Connect(ctx context.Context, server *client.ServerInfo, reg *client.RegistrationInfo) error
	SendMessage(input string) error
	Nickname() string
	ServerInfo() client.ServerInfo
	OnMessageReceived(handler func(client.Message) error)
	OnChannelChanged(handler func(string) error)
}

// UserInterface shows messages and collects input.
type UserInterface interface {
	SetTitle(title string)
	Setup() error
	OutputMessage(msg client.Message)
	// GetUserInput blocks for one line of input. io.EOF ends the session.
	GetUserInput(nickname string) (string, error)
}

type App struct {
	client Client
	ui     UserInterface
	// errOut receives the messages printed when the session ends badly.
	errOut io.Writer
}

func New(c Client, ui UserInterface) *App {
	return &App{client: c, ui: ui, errOut: os.Stderr}
}

// Start connects and runs the prompt loop until the user quits, input ends or
// the connection is lost.
func (a *App) Start(ctx context.Context, server *client.ServerInfo, reg *client.RegistrationInfo) error {
	a.client.OnMessageReceived(a.OutputMessage)
	a.client.OnChannelChanged(a.ChangeChannel)

	if err := a.ui.Setup(); err != nil {
		return fmt.Errorf("setting up user interface: %w", err)
	}
	a.ui.OutputMessage(client.Message{Type: client.MessageServer, Text: "Connecting to server..."})

	if err := a.client.Connect(ctx, server, reg); err != nil {
		if server != nil {
			fmt.Fprintf(a.errOut, "ERROR: Unable to connect to %s on port %d\n", server.Host, server.Port)
		}
		return err
	}

	a.ui.SetTitle(fmt.Sprintf("%s > ", a.client.ServerInfo().Host))
	return a.PromptForInput()
}

// PromptForInput reads input and sends it until "/quit" was sent, input ends
// or the connection is gone.
func (a *App) PromptForInput() error {
	for {
		input, err := a.ui.GetUserInput(a.client.Nickname())
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Info("Input closed, leaving")
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		if err := a.client.SendMessage(input); err != nil {
			if errors.Is(err, client.ErrNotConnected) {
				log.Errorf("Sending input failed: %v", err)
				fmt.Fprintln(a.errOut, "Not connected to a server. Exiting application.")
				return err
			}
			// a failing subscriber, the connection itself is fine
			log.Warnf("Handling input %q failed: %v", input, err)
		}

		if strings.EqualFold(strings.TrimSpace(input), quitCommand) {
			return nil
		}
	}
}

// OutputMessage forwards engine messages to the user interface.
func (a *App) OutputMessage(msg client.Message) error {
	a.ui.OutputMessage(msg)
	return nil
}

// ChangeChannel shows the channel in the title.
func (a *App) ChangeChannel(channel string) error {
	a.ui.SetTitle(fmt.Sprintf("%s > %s", a.client.ServerInfo().Host, channel))
	return nil
}
