// Package wire implements the two primitive operations every connection is
// built on — reading a CRLF-terminated line and reading an exact byte count —
// over a stream abstraction that is polymorphic across plain TCP and
// TLS-wrapped connections.
package wire

import (
	"crypto/tls"
	"net"
	"time"
)

// Stream is the polymorphic byte-stream the connection state machine is
// written against. Both a plain net.Conn and a *tls.Conn satisfy it; the
// only behavioral difference a caller can observe is IsSecure.
type Stream interface {
	net.Conn

	// IsSecure reports whether this stream is TLS-wrapped. It reflects the
	// transport at accept time and is immutable for the stream's lifetime.
	IsSecure() bool
}

// plainStream wraps a bare net.Conn (typically a *net.TCPConn) accepted on
// the cleartext listener.
type plainStream struct {
	net.Conn
}

func (plainStream) IsSecure() bool { return false }

// NewPlainStream adapts conn into a Stream that reports IsSecure() == false.
func NewPlainStream(conn net.Conn) Stream {
	return plainStream{Conn: conn}
}

// tlsStream wraps a *tls.Conn accepted on the TLS listener.
type tlsStream struct {
	*tls.Conn
}

func (tlsStream) IsSecure() bool { return true }

// NewTLSStream adapts conn into a Stream that reports IsSecure() == true.
func NewTLSStream(conn *tls.Conn) Stream {
	return tlsStream{Conn: conn}
}

// ClearDeadline removes any read/write deadline set on s by calling
// SetDeadline with the zero time.
func ClearDeadline(s Stream) error {
	return s.SetDeadline(time.Time{})
}
