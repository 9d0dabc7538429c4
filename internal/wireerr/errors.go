// Package wireerr provides a structured error type for the originwire
// protocol engine, so callers and log sites can discriminate parse, size
// policy, I/O, TLS, WebSocket, and handler failures without string matching.
package wireerr

import "fmt"

// Kind categorizes the failure that produced an Error.
type Kind string

const (
	KindParse      Kind = "parse"
	KindSizePolicy Kind = "size_policy"
	KindIO         Kind = "io"
	KindTLS        Kind = "tls"
	KindWebSocket  Kind = "websocket"
	KindHandler    Kind = "handler"
)

// Error is a structured error carrying the failure Kind, the operation that
// was attempted, a human-readable Message, and an optional wrapped Cause.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Cause   error
}

// Error implements the error interface: "[kind] op: message: cause".
func (e *Error) Error() string {
	s := fmt.Sprintf("[%s]", e.Kind)
	if e.Op != "" {
		s += " " + e.Op
	}
	if e.Message != "" {
		s += ": " + e.Message
	}
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind and Op (a target
// with an empty Op matches any Op), allowing sentinel values below to be
// matched with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Op != "" && t.Op != e.Op {
		return false
	}
	return e.Kind == t.Kind
}

// New constructs an Error of the given kind and operation, wrapping cause.
func New(kind Kind, op, message string, cause error) *Error {
	return &Error{Kind: kind, Op: op, Message: message, Cause: cause}
}

// Sentinel errors matched by the wire-primitive readers and the connection
// state machine via errors.Is.
var (
	// ErrConnectionClosed signals EOF before any byte of a new line/frame.
	ErrConnectionClosed = &Error{Kind: KindIO, Op: "read", Message: "connection closed"}

	// ErrMalformedLine signals a lone CR or LF inside a CRLF-terminated line.
	ErrMalformedLine = &Error{Kind: KindParse, Op: "read_line", Message: "malformed line"}
)
