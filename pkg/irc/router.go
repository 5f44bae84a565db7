package irc

import (
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/tehcyx/girc-client/pkg/event"
)

// Server events fired by MessageRouter.
const (
	EventNotice         = "notice"
	EventChannelMessage = "channelMessage"
	EventJoin           = "join"
	EventPart           = "part"
	EventNickChange     = "nickChange"
	EventPing           = "ping"
	EventQuit           = "quit"
)

var serverEvents = map[string]string{
	NoticeCmd:  EventNotice,
	PrivmsgCmd: EventChannelMessage,
	JoinCmd:    EventJoin,
	PartCmd:    EventPart,
	NickCmd:    EventNickChange,
	PingCmd:    EventPing,
	QuitCmd:    EventQuit,
}

// MessageRouter turns protocol messages received from the server into
// named events.
type MessageRouter struct {
	events *event.Dispatcher[*Message]
}

// NewMessageRouter creates a router without subscribers.
func NewMessageRouter() *MessageRouter {
	return &MessageRouter{events: event.New[*Message]()}
}

// On subscribes handler to one of the Event* server events.
func (r *MessageRouter) On(name string, handler event.Handler[*Message]) {
	r.events.Register(name, handler)
}

// EventFor returns the event a command is routed to. Numeric replies map to
// EventNotice; unknown commands report false.
func EventFor(command string) (string, bool) {
	if name, ok := serverEvents[strings.ToUpper(command)]; ok {
		return name, true
	}
	if isNumeric(command) {
		return EventNotice, true
	}
	return "", false
}

// Route dispatches msg to the subscribers of its event. Unrecognized
// commands are dropped without error.
func (r *MessageRouter) Route(msg *Message) error {
	if msg.IsNumeric() {
		return r.events.Dispatch(EventNotice, msg)
	}
	name, ok := EventFor(msg.Command)
	if !ok {
		log.Debugf("Dropping unhandled command '%s'", msg.Command)
		return nil
	}
	return r.events.Dispatch(name, msg)
}

// ProcessLine parses one raw line read from the server and routes it. Lines
// without a command are skipped.
func (r *MessageRouter) ProcessLine(raw string) error {
	raw = strings.TrimRight(raw, "\r\n\x00")
	msg, err := ParseMessage(raw)
	if err != nil {
		log.Debugf("Skipping line %q: %v", raw, err)
		return nil
	}
	return r.Route(msg)
}
