package client

// MessageType tells the UI how to present a Message.
type MessageType int

const (
	// MessageUser is chatter in the current channel.
	MessageUser MessageType = iota
	// MessageServer is a notice, numeric reply or client status line.
	MessageServer
	// MessagePrivate is a direct message to this client.
	MessagePrivate
)

func (t MessageType) String() string {
	switch t {
	case MessageUser:
		return "user"
	case MessageServer:
		return "server"
	case MessagePrivate:
		return "private"
	}
	return "unknown"
}

// Message is what the client hands to its UI for display.
type Message struct {
	// User is the originating nickname, empty for server messages.
	User string
	Text string
	Type MessageType
}

// State of the connection engine.
type State int

const (
	// StateDisconnected is both the initial and the terminal state.
	StateDisconnected State = iota
	// StateConnecting means the transport is being dialed.
	StateConnecting
	// StateRegistered means registration was sent and the read loop runs.
	StateRegistered
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateRegistered:
		return "registered"
	}
	return "unknown"
}
