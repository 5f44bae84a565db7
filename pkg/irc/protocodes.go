package irc

const (
	// Registration commands
	// PassCmd `PASS secretpass` [Password message](https://tools.ietf.org/html/rfc2812#section-3.1.1)
	PassCmd = "PASS"
	// NickCmd `NICK tehcyx` [Nick message](https://tools.ietf.org/html/rfc2812#section-3.1.2)
	NickCmd = "NICK"
	// UserCmd `USER <user> <mode> <unused> :<realname>` [User message](https://tools.ietf.org/html/rfc2812#section-3.1.3)
	UserCmd = "USER"
	// QuitCmd `QUIT [:<Quit message>]` [Quit](https://tools.ietf.org/html/rfc2812#section-3.1.7)
	QuitCmd = "QUIT"
	// !Registration commands

	// Channel and messaging commands
	PrivmsgCmd = "PRIVMSG"
	NoticeCmd  = "NOTICE"
	JoinCmd    = "JOIN"
	PartCmd    = "PART"
	// !Channel and messaging commands

	// Connection liveness
	PingCmd = "PING"
	PongCmd = "PONG"
	// !Connection liveness

	// Numeric replies the client reacts to. All of them are routed as notices.
	RplWelcome          = "001"
	ErrNoSuchNick       = "401"
	ErrNoSuchChannel    = "403"
	ErrCannotSendToChan = "404"
	ErrNickInUse        = "433"
	ErrNotOnChannel     = "442"
	ErrNeedMoreParams   = "461"
	ErrPasswdMismatch   = "464"
)
