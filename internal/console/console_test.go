package console

import (
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tehcyx/girc-client/pkg/client"
)

var fixedTime = time.Date(2024, time.March, 9, 21, 7, 0, 0, time.UTC)

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		user     string
		msgType  client.MessageType
		expected string
	}{
		{"server", "Notice from server", "", client.MessageServer, "[21:07] == Notice from server"},
		{"user", "Notice from server", "jsmith1858344", client.MessageUser, "[21:07] <jsmith1858344> Notice from server"},
		{"private", "What's up", "jsmith983822", client.MessagePrivate, "[21:07] *jsmith983822* What's up"},
		{"formatting stripped", "\x02bold\x02 and \x0304red\x03", "bob", client.MessageUser, "[21:07] <bob> bold and red"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMessage(fixedTime, "", tt.text, tt.user, tt.msgType))
		})
	}
}

func TestFormatMessageLayout(t *testing.T) {
	out := FormatMessage(fixedTime, "3:04PM", "hi", "bob", client.MessageUser)
	assert.Equal(t, "[9:07PM] <bob> hi", out)
}

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	c := New(Options{In: strings.NewReader(input), Out: out})
	c.now = func() time.Time { return fixedTime }
	return c, out
}

func TestOutputMessage(t *testing.T) {
	c, out := newTestConsole("")
	require.NoError(t, c.Setup())

	c.OutputMessage(client.Message{Type: client.MessageServer, Text: "Connecting to server..."})
	assert.Equal(t, "[21:07] == Connecting to server...\n", out.String())
}

func TestGetUserInputEchoesLine(t *testing.T) {
	c, out := newTestConsole("hello there\n\n")
	require.NoError(t, c.Setup())

	line, err := c.GetUserInput("gopher")
	require.NoError(t, err)
	assert.Equal(t, "hello there", line)
	assert.Equal(t, "[21:07] <gopher> hello there\n", out.String())

	line, err = c.GetUserInput("gopher")
	require.NoError(t, err)
	assert.Equal(t, "", line)
	assert.Equal(t, "[21:07] <gopher> hello there\n", out.String(), "blank lines are not echoed")

	_, err = c.GetUserInput("gopher")
	assert.ErrorIs(t, err, io.EOF)
}

func TestSetTitle(t *testing.T) {
	c, out := newTestConsole("")
	c.SetTitle("irc.example.net > #go")
	assert.Equal(t, "irc.example.net > #go", c.Title())
	assert.Empty(t, out.String())
}

func TestPromptServerInfo(t *testing.T) {
	c, _ := newTestConsole("irc.libera.chat\n\n")
	info, err := c.PromptServerInfo(client.ServerInfo{Host: "localhost", Port: 6667})
	require.NoError(t, err)
	assert.Equal(t, client.ServerInfo{Host: "irc.libera.chat", Port: 6667}, *info)

	c, _ = newTestConsole("\n7000\n")
	info, err = c.PromptServerInfo(client.ServerInfo{Host: "localhost", Port: 6667})
	require.NoError(t, err)
	assert.Equal(t, client.ServerInfo{Host: "localhost", Port: 7000}, *info)
}

func TestPromptServerInfoBadPort(t *testing.T) {
	c, _ := newTestConsole("localhost\nsix\n")
	_, err := c.PromptServerInfo(client.ServerInfo{})
	assert.ErrorIs(t, err, client.ErrInvalidArgument)
}

func TestPromptRegistration(t *testing.T) {
	c, _ := newTestConsole("gopher\n\nGo Pher\nhunter2\n")
	reg, err := c.PromptRegistration(client.RegistrationInfo{Nickname: "girc", Username: "girc", RealName: "girc user"})
	require.NoError(t, err)
	assert.Equal(t, client.RegistrationInfo{
		Nickname: "gopher",
		Username: "girc",
		RealName: "Go Pher",
		Password: "hunter2",
	}, *reg)
}

func TestPromptRegistrationEOF(t *testing.T) {
	c, _ := newTestConsole("gopher\n")
	_, err := c.PromptRegistration(client.RegistrationInfo{})
	assert.ErrorIs(t, err, io.EOF)
}
