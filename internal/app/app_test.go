package app

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tehcyx/girc-client/pkg/client"
)

type fakeClient struct {
	connectErr error
	sendErr    error
	server     client.ServerInfo
	sent       []string

	onMessage func(client.Message) error
	onChannel func(string) error
}

func (f *fakeClient) Connect(_ context.Context, server *client.ServerInfo, _ *client.RegistrationInfo) error {
	if server != nil {
		f.server = *server
	}
	return f.connectErr
}

func (f *fakeClient) SendMessage(input string) error {
	f.sent = append(f.sent, input)
	return f.sendErr
}

func (f *fakeClient) Nickname() string { return "gopher" }
func (f *fakeClient) ServerInfo() client.ServerInfo { return f.server }
func (f *fakeClient) OnMessageReceived(h func(client.Message) error) { f.onMessage = h }
func (f *fakeClient) OnChannelChanged(h func(string) error) { f.onChannel = h }

type fakeUI struct {
	inputs   []string
	nicks    []string
	title    string
	messages []client.Message
	setupErr error
}

func (f *fakeUI) SetTitle(title string) { f.title = title }
func (f *fakeUI) Setup() error { return f.setupErr }
func (f *fakeUI) OutputMessage(msg client.Message) { f.messages = append(f.messages, msg) }

func (f *fakeUI) GetUserInput(nickname string) (string, error) {
	f.nicks = append(f.nicks, nickname)
	if len(f.inputs) == 0 {
		return "", io.EOF
	}
	input := f.inputs[0]
	f.inputs = f.inputs[1:]
	return input, nil
}

var testServer = &client.ServerInfo{Host: "irc.example.net", Port: 6667}

func newTestApp(c *fakeClient, ui *fakeUI) (*App, *bytes.Buffer) {
	a := New(c, ui)
	errOut := &bytes.Buffer{}
	a.errOut = errOut
	return a, errOut
}

func TestStartRunsUntilQuit(t *testing.T) {
	c := &fakeClient{}
	ui := &fakeUI{inputs: []string{"/join #go", "hello", "/QUIT", "never sent"}}
	a, _ := newTestApp(c, ui)

	require.NoError(t, a.Start(context.Background(), testServer, &client.RegistrationInfo{Nickname: "gopher"}))

	assert.Equal(t, []string{"/join #go", "hello", "/QUIT"}, c.sent)
	assert.Equal(t, "irc.example.net > ", ui.title)
	require.NotEmpty(t, ui.messages)
	assert.Equal(t, client.Message{Type: client.MessageServer, Text: "Connecting to server..."}, ui.messages[0])
	assert.Equal(t, []string{"gopher", "gopher", "gopher"}, ui.nicks)
}

func TestStartSubscribesToClientEvents(t *testing.T) {
	c := &fakeClient{}
	ui := &fakeUI{}
	a, _ := newTestApp(c, ui)

	require.NoError(t, a.Start(context.Background(), testServer, &client.RegistrationInfo{}))
	require.NotNil(t, c.onMessage)
	require.NotNil(t, c.onChannel)

	require.NoError(t, c.onMessage(client.Message{Type: client.MessageUser, User: "bob", Text: "hi"}))
	assert.Equal(t, "hi", ui.messages[len(ui.messages)-1].Text)

	require.NoError(t, c.onChannel("#go"))
	assert.Equal(t, "irc.example.net > #go", ui.title)
}

func TestStartConnectFailure(t *testing.T) {
	connectErr := errors.New("connection refused")
	c := &fakeClient{connectErr: connectErr}
	ui := &fakeUI{inputs: []string{"hello"}}
	a, errOut := newTestApp(c, ui)

	err := a.Start(context.Background(), testServer, &client.RegistrationInfo{})
	assert.ErrorIs(t, err, connectErr)
	assert.Equal(t, "ERROR: Unable to connect to irc.example.net on port 6667\n", errOut.String())
	assert.Empty(t, c.sent)
	assert.Empty(t, ui.title)
}

func TestStartSetupFailure(t *testing.T) {
	ui := &fakeUI{setupErr: errors.New("no terminal")}
	a, _ := newTestApp(&fakeClient{}, ui)
	assert.Error(t, a.Start(context.Background(), testServer, &client.RegistrationInfo{}))
}

func TestPromptForInputStopsOnSendFailure(t *testing.T) {
	c := &fakeClient{sendErr: client.ErrNotConnected}
	ui := &fakeUI{inputs: []string{"hello", "again"}}
	a, errOut := newTestApp(c, ui)

	err := a.PromptForInput()
	assert.ErrorIs(t, err, client.ErrNotConnected)
	assert.Equal(t, []string{"hello"}, c.sent)
	assert.Equal(t, "Not connected to a server. Exiting application.\n", errOut.String())
}

func TestPromptForInputStopsOnEOF(t *testing.T) {
	c := &fakeClient{}
	a, _ := newTestApp(c, &fakeUI{inputs: []string{"one", "two"}})

	require.NoError(t, a.PromptForInput())
	assert.Equal(t, []string{"one", "two"}, c.sent)
}

func TestPromptForInputSurvivesSubscriberFailure(t *testing.T) {
	c := &fakeClient{sendErr: errors.New(`event "help": 1 handler(s) failed: redis down`)}
	ui := &fakeUI{inputs: []string{"/help", "hello"}}
	a, errOut := newTestApp(c, ui)

	require.NoError(t, a.PromptForInput())
	assert.Equal(t, []string{"/help", "hello"}, c.sent)
	assert.Empty(t, errOut.String())
}

func TestPromptForInputStopsOnWriteFailure(t *testing.T) {
	c := &fakeClient{sendErr: fmt.Errorf("%w: write PRIVMSG failed: %w", client.ErrNotConnected, io.ErrClosedPipe)}
	a, errOut := newTestApp(c, &fakeUI{inputs: []string{"hello", "again"}})

	assert.Error(t, a.PromptForInput())
	assert.Equal(t, []string{"hello"}, c.sent)
	assert.Equal(t, "Not connected to a server. Exiting application.\n", errOut.String())
}
