package console

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/ergochat/irc-go/ircfmt"

	"github.com/tehcyx/girc-client/pkg/client"
)

// DefaultTimestampFormat renders a 24 hour clock, e.g. "21:07".
const DefaultTimestampFormat = "15:04"

var (
	timestampStyle = lipgloss.NewStyle().Faint(true)
	nickStyle      = lipgloss.NewStyle().Bold(true)
	serverStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	privateStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("5")).Bold(true)
)

// FormatMessage renders one line of output:
//
//	User:    [ts] <name> text
//	Server:  [ts] == text
//	Private: [ts] *name* text
//
// IRC formatting codes are stripped from name and text.
func FormatMessage(ts time.Time, layout, text, name string, msgType client.MessageType) string {
	stamp, text, name := timestamp(ts, layout), ircfmt.Strip(text), ircfmt.Strip(name)

	switch msgType {
	case client.MessageServer:
		return fmt.Sprintf("[%s] == %s", stamp, text)
	case client.MessagePrivate:
		return fmt.Sprintf("[%s] *%s* %s", stamp, name, text)
	default:
		return fmt.Sprintf("[%s] <%s> %s", stamp, name, text)
	}
}

// styleMessage is FormatMessage with colours, used for terminal output.
func styleMessage(ts time.Time, layout, text, name string, msgType client.MessageType) string {
	stamp := timestampStyle.Render("[" + timestamp(ts, layout) + "]")
	text, name = ircfmt.Strip(text), ircfmt.Strip(name)

	switch msgType {
	case client.MessageServer:
		return stamp + " " + serverStyle.Render("== "+text)
	case client.MessagePrivate:
		return stamp + " " + privateStyle.Render("*"+name+"*") + " " + text
	default:
		return stamp + " " + nickStyle.Render("<"+name+">") + " " + text
	}
}

func timestamp(ts time.Time, layout string) string {
	if layout == "" {
		layout = DefaultTimestampFormat
	}
	return ts.Format(layout)
}
