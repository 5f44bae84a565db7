package client

import "errors"

var (
	// ErrInvalidArgument is returned when Connect is called without server or
	// registration information. No network I/O happens in that case.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotConnected is returned when sending while the session is not connected.
	ErrNotConnected = errors.New("the client is not connected to a server")
	// ErrConnectionFailed wraps transport errors raised while connecting.
	ErrConnectionFailed = errors.New("connection failed")
	// ErrAlreadyUsed is returned by a second Connect on the same Client.
	ErrAlreadyUsed = errors.New("client already connected once, create a new one to reconnect")
)
