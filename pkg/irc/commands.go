package irc

import (
	"strings"

	"github.com/tehcyx/girc-client/pkg/event"
)

// Local command events fired by CommandRouter.
const (
	CommandJoin    = "join"
	CommandPart    = "part"
	CommandMessage = "message"
	CommandNick    = "nick"
	CommandHelp    = "help"
	CommandQuit    = "quit"
	CommandUnknown = "unknown"
)

var userCommands = map[string]string{
	"JOIN": CommandJoin,
	"PART": CommandPart,
	"MSG":  CommandMessage,
	"NICK": CommandNick,
	"HELP": CommandHelp,
	"QUIT": CommandQuit,
}

// CommandRouter turns slash commands typed by the user into named events.
type CommandRouter struct {
	events *event.Dispatcher[*UserCommand]
}

// NewCommandRouter creates a router without subscribers.
func NewCommandRouter() *CommandRouter {
	return &CommandRouter{events: event.New[*UserCommand]()}
}

// On subscribes handler to one of the Command* events.
func (r *CommandRouter) On(name string, handler event.Handler[*UserCommand]) {
	r.events.Register(name, handler)
}

// CommandFor returns the event a keyword is routed to. Keywords are matched
// case-insensitively; anything else is CommandUnknown.
func CommandFor(keyword string) string {
	if name, ok := userCommands[strings.ToUpper(keyword)]; ok {
		return name
	}
	return CommandUnknown
}

// Route dispatches cmd to the subscribers of its event.
func (r *CommandRouter) Route(cmd *UserCommand) error {
	return r.events.Dispatch(CommandFor(cmd.Command), cmd)
}

// ProcessInput parses raw console input and routes it.
func (r *CommandRouter) ProcessInput(raw string) error {
	return r.Route(ParseUserCommand(raw))
}
