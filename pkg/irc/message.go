// Package irc implements the line based IRC wire format used by the client:
// parsing and serializing protocol messages, parsing locally typed slash
// commands and routing both to named events.
package irc

import (
	"errors"
	"strings"
)

// ErrEmptyCommand is returned for lines that do not carry a command, such as
// an empty line or a prefix with nothing after it.
var ErrEmptyCommand = errors.New("irc: line has no command")

// Message is a single line of the IRC protocol.
//
//	[":" prefix " "] command [" " param]* [" :" trailing]
type Message struct {
	// Prefix identifies the origin, e.g. "nick!user@host". Optional.
	Prefix string
	// Command is a keyword such as PRIVMSG or a three digit numeric reply.
	Command string
	// Params are the space delimited middle parameters.
	Params []string
	// Trailing is the final parameter, the only one that may contain spaces.
	Trailing string
}

// NewMessage builds a message without prefix.
func NewMessage(command string, params ...string) *Message {
	return &Message{Command: command, Params: params}
}

// WithTrailing sets the trailing parameter and returns the message.
func (m *Message) WithTrailing(trailing string) *Message {
	m.Trailing = trailing
	return m
}

// ParseMessage parses one raw line whose CR/LF/NUL terminator has already
// been removed.
func ParseMessage(line string) (*Message, error) {
	msg := &Message{}

	// end of the prefix token, -1 if there is none
	prefixEnd := -1
	if strings.HasPrefix(line, ":") {
		prefixEnd = strings.Index(line, " ")
		if prefixEnd < 0 {
			return nil, ErrEmptyCommand
		}
		msg.Prefix = line[1:prefixEnd]
	}

	rest := line[prefixEnd+1:]
	middle := rest
	if idx := strings.Index(rest, " :"); idx >= 0 {
		msg.Trailing = rest[idx+2:]
		middle = rest[:idx]
	} else if strings.HasPrefix(rest, ":") {
		// ":server :text" leaves no room for a command
		return nil, ErrEmptyCommand
	}

	tokens := strings.Split(middle, " ")
	for _, token := range tokens {
		if token == "" {
			continue
		}
		if msg.Command == "" {
			msg.Command = token
			continue
		}
		msg.Params = append(msg.Params, token)
	}

	if msg.Command == "" {
		return nil, ErrEmptyCommand
	}
	return msg, nil
}

// IsNumeric reports whether the command is a numeric reply code.
func (m *Message) IsNumeric() bool {
	return isNumeric(m.Command)
}

func isNumeric(command string) bool {
	if command == "" {
		return false
	}
	for _, r := range command {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Param returns the i-th middle parameter or "" when it is missing.
func (m *Message) Param(i int) string {
	if i < 0 || i >= len(m.Params) {
		return ""
	}
	return m.Params[i]
}

// String returns the wire form of the message, terminated by CRLF.
func (m *Message) String() string {
	var b strings.Builder
	if m.Prefix != "" {
		b.WriteByte(':')
		b.WriteString(m.Prefix)
		b.WriteByte(' ')
	}
	b.WriteString(m.Command)
	for _, param := range m.Params {
		b.WriteByte(' ')
		b.WriteString(param)
	}
	if m.Trailing != "" {
		b.WriteString(" :")
		b.WriteString(m.Trailing)
	}
	b.WriteString("\r\n")
	return b.String()
}

// Bytes returns the UTF-8 wire form of the message.
func (m *Message) Bytes() []byte {
	return []byte(m.String())
}

// Sender extracts the nickname from a "nick!user@host" prefix. Prefixes
// without a "!" (servers, or no prefix at all) yield "unknown".
func Sender(prefix string) string {
	parts := strings.Split(prefix, "!")
	if len(parts) > 1 {
		return parts[0]
	}
	return "unknown"
}
