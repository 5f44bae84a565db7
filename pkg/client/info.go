package client

// ServerInfo identifies the IRC server to connect to.
type ServerInfo struct {
	Host string
	Port int
}

// RegistrationInfo is sent to the server right after connecting.
type RegistrationInfo struct {
	// Password for the PASS command. Optional, PASS is skipped when empty.
	Password string
	Nickname string
	Username string
	RealName string
}
