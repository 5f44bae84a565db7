package client

import (
	"fmt"

	"github.com/tehcyx/girc-client/pkg/irc"
)

// mapMessageHandlers wires the reactions to server events.
func (c *Client) mapMessageHandlers() *irc.MessageRouter {
	router := irc.NewMessageRouter()
	router.On(irc.EventNotice, c.noticeReceived)
	router.On(irc.EventChannelMessage, c.messageReceived)
	router.On(irc.EventJoin, c.joinReceived)
	router.On(irc.EventPart, c.partReceived)
	router.On(irc.EventNickChange, c.nickReceived)
	router.On(irc.EventPing, c.pingReceived)
	router.On(irc.EventQuit, c.quitReceived)
	return router
}

// noticeReceived handles NOTICE and numeric replies.
func (c *Client) noticeReceived(msg *irc.Message) error {
	switch msg.Command {
	case irc.RplWelcome:
		c.logger.Infof("Registered as '%s'", c.Nickname())
	case irc.ErrNickInUse, irc.ErrPasswdMismatch:
		c.logger.Warnf("Registration rejected (%s): %s", msg.Command, msg.Trailing)
	case irc.ErrNoSuchNick, irc.ErrNoSuchChannel, irc.ErrCannotSendToChan, irc.ErrNotOnChannel, irc.ErrNeedMoreParams:
		c.logger.Debugf("Command rejected (%s): %s", msg.Command, msg.Trailing)
	}
	return c.emit(Message{Type: MessageServer, Text: msg.Trailing})
}

// messageReceived handles PRIVMSG. Messages addressed to our own nickname
// are private, everything else is channel chatter.
func (c *Client) messageReceived(msg *irc.Message) error {
	msgType := MessageUser
	if len(msg.Params) > 0 && msg.Params[0] == c.Nickname() {
		msgType = MessagePrivate
	}
	return c.emit(Message{User: irc.Sender(msg.Prefix), Text: msg.Trailing, Type: msgType})
}

// joinReceived makes the joined channel the current one. Servers send the
// channel either as a parameter or as trailing text.
func (c *Client) joinReceived(msg *irc.Message) error {
	channel := msg.Param(0)
	if channel == "" {
		channel = msg.Trailing
	}
	if channel == "" {
		return nil
	}
	user := irc.Sender(msg.Prefix)

	c.clientMux.Lock()
	c.currentChannel = channel
	c.clientMux.Unlock()

	if err := c.changeChannel(channel); err != nil {
		return err
	}
	return c.emit(Message{Type: MessageServer, Text: fmt.Sprintf("%s has joined %s", user, channel)})
}

// partReceived reports somebody leaving. The current channel is only cleared
// by the local /part.
func (c *Client) partReceived(msg *irc.Message) error {
	if len(msg.Params) == 0 {
		return nil
	}
	user := irc.Sender(msg.Prefix)
	return c.emit(Message{Type: MessageServer, Text: fmt.Sprintf("%s has left %s", user, msg.Params[0])})
}

// nickReceived follows our own nickname changes once the server confirms them.
func (c *Client) nickReceived(msg *irc.Message) error {
	previous := irc.Sender(msg.Prefix)
	next := msg.Trailing
	if next == "" {
		next = msg.Param(0)
	}

	c.clientMux.Lock()
	if previous == c.nickname {
		c.nickname = next
	}
	c.clientMux.Unlock()

	return c.emit(Message{Type: MessageServer, Text: fmt.Sprintf("%s is now known as %s", previous, next)})
}

// pingReceived answers with PONG, echoing the server token.
func (c *Client) pingReceived(msg *irc.Message) error {
	token := msg.Trailing
	if token == "" {
		token = msg.Param(0)
	}
	return c.send(irc.NewMessage(irc.PongCmd).WithTrailing(token))
}

// quitReceived reports other users quitting. Our own QUIT was already
// handled by /quit.
func (c *Client) quitReceived(msg *irc.Message) error {
	user := irc.Sender(msg.Prefix)
	if user == c.Nickname() {
		return nil
	}
	return c.emit(Message{Type: MessageServer, Text: fmt.Sprintf("User %s has quit [%s]", user, msg.Trailing)})
}
