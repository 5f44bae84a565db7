package client

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ergochat/irc-go/ircutils"
	"go.uber.org/multierr"

	"github.com/tehcyx/girc-client/pkg/irc"
)

// maxTextBytes keeps PRIVMSG lines well below the 512 byte line limit once
// the server has added our prefix. Longer text is sent as several messages.
const maxTextBytes = 400

const quitReason = "Client quit"

// Usage lines shown by /help, in display order.
var helpLines = []string{
	"/join <channel> \tJoins a channel",
	"/part \t\tLeaves the current channel",
	"/lang \t\tSets the translation language. If 'off', turns translation off",
	"/msg <user> <msg> \tSends a private message",
	"/nick <nickname> \tChange nickname",
	"/quit \t\tDisconnects the client",
}

// mapCommandHandlers wires the reactions to slash commands.
func (c *Client) mapCommandHandlers() *irc.CommandRouter {
	router := irc.NewCommandRouter()
	router.On(irc.CommandJoin, c.joinCommand)
	router.On(irc.CommandPart, c.partCommand)
	router.On(irc.CommandMessage, c.privateMessageCommand)
	router.On(irc.CommandNick, c.nickCommand)
	router.On(irc.CommandHelp, c.helpCommand)
	router.On(irc.CommandQuit, c.quitCommand)
	router.On(irc.CommandUnknown, c.unknownCommand)
	return router
}

// joinCommand leaves the current channel, if any, and joins the new one.
// The current channel changes once the server confirms the JOIN.
func (c *Client) joinCommand(cmd *irc.UserCommand) error {
	if len(cmd.Params) == 0 {
		return nil
	}
	if current := c.CurrentChannel(); current != "" {
		if err := c.send(irc.NewMessage(irc.PartCmd, current)); err != nil {
			return err
		}
	}
	return c.send(irc.NewMessage(irc.JoinCmd, cmd.Params[0]))
}

func (c *Client) partCommand(*irc.UserCommand) error {
	current := c.CurrentChannel()
	if current == "" {
		return nil
	}
	if err := c.changeChannel(""); err != nil {
		return err
	}
	if err := c.send(irc.NewMessage(irc.PartCmd, current)); err != nil {
		return err
	}

	c.clientMux.Lock()
	c.currentChannel = ""
	c.clientMux.Unlock()
	return nil
}

// privateMessageCommand handles "/msg <user> <text...>".
func (c *Client) privateMessageCommand(cmd *irc.UserCommand) error {
	if len(cmd.Params) < 2 {
		return nil
	}
	return c.sendText(cmd.Params[0], strings.Join(cmd.Params[1:], " "))
}

func (c *Client) nickCommand(cmd *irc.UserCommand) error {
	return c.send(irc.NewMessage(irc.NickCmd, cmd.Params...))
}

func (c *Client) helpCommand(*irc.UserCommand) error {
	var err error
	for _, line := range helpLines {
		err = multierr.Append(err, c.emit(Message{Type: MessageServer, Text: line}))
	}
	return err
}

// quitCommand says goodbye and stops the read loop after its current line.
func (c *Client) quitCommand(*irc.UserCommand) error {
	err := c.send(irc.NewMessage(irc.QuitCmd).WithTrailing(quitReason))
	c.quitFunc()
	return err
}

func (c *Client) unknownCommand(cmd *irc.UserCommand) error {
	text := fmt.Sprintf("The command \"/%s\" is not a known command.", cmd.Command)
	return c.emit(Message{Type: MessageServer, Text: text})
}

// sendText sends text to target as one PRIVMSG per chunk of splitText.
func (c *Client) sendText(target, text string) error {
	for _, chunk := range splitText(text, maxTextBytes) {
		if err := c.send(irc.NewMessage(irc.PrivmsgCmd, target).WithTrailing(chunk)); err != nil {
			return err
		}
	}
	return nil
}

// splitText removes CR, LF and NUL from text and cuts it into chunks of at
// most limit bytes. Chunks break at the last space when there is one, and
// never inside a UTF-8 sequence.
func splitText(text string, limit int) []string {
	text = ircutils.SanitizeText(text, len(text)*utf8.UTFMax)

	var chunks []string
	for len(text) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		next := cut
		if space := strings.LastIndexByte(text[:cut], ' '); space > 0 {
			cut, next = space, space+1
		}
		chunks = append(chunks, text[:cut])
		text = text[next:]
	}
	if text != "" {
		chunks = append(chunks, text)
	}
	return chunks
}
