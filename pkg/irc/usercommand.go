package irc

import "strings"

// UserCommand is a slash command typed by the local user, e.g. "/join #go".
type UserCommand struct {
	// Command is the keyword without the leading slash, in the case it was typed.
	Command string
	Params  []string
}

// ParseUserCommand splits raw console input of the form "/keyword [param]*".
// A missing leading slash is tolerated.
func ParseUserCommand(raw string) *UserCommand {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return &UserCommand{}
	}
	return &UserCommand{
		Command: strings.TrimPrefix(fields[0], "/"),
		Params:  fields[1:],
	}
}
