// Package transport provides the byte stream the client talks IRC over.
package transport

import (
	"context"
	"fmt"
	"io"
	"net"
	"strconv"
	"sync"
)

// Transport opens a duplex byte stream to a server.
type Transport interface {
	// Connect dials host:port. It fails with a connection error when the
	// server cannot be reached.
	Connect(ctx context.Context, host string, port int) error
	// Stream returns the stream opened by Connect, or nil before that.
	Stream() io.ReadWriteCloser
}

// TCP is a plain TCP Transport.
type TCP struct {
	dialer net.Dialer
	conn   net.Conn
	mux    sync.Mutex
}

// NewTCP returns an unconnected TCP transport.
func NewTCP() *TCP {
	return &TCP{}
}

// Connect dials host:port over TCP.
func (t *TCP) Connect(ctx context.Context, host string, port int) error {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	conn, err := t.dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to %s failed: %w", addr, err)
	}

	t.mux.Lock()
	t.conn = conn
	t.mux.Unlock()
	return nil
}

// Stream returns the TCP connection.
func (t *TCP) Stream() io.ReadWriteCloser {
	t.mux.Lock()
	defer t.mux.Unlock()
	if t.conn == nil {
		return nil
	}
	return t.conn
}
