package httpproto

import "net/url"

// Request is the parsed representation of one HTTP/1.1 request. One Request
// is constructed per connection and cleared in place by Reset (not
// reallocated) between keep-alive requests on that connection.
type Request struct {
	// Version is the HTTP version token off the request line, e.g. "HTTP/1.1".
	Version string

	// Method is the closed method enumeration; MethodUnknown marks an
	// unrecognized token and causes the connection to close without a
	// response.
	Method Method

	// RawTarget is the request-target exactly as it appeared on the wire,
	// before being parsed into URL.
	RawTarget string

	// URL is built from RawTarget via net/url and then has its Scheme and
	// Host overridden: scheme from the transport, host from the bind
	// address and then the Host header once it arrives.
	URL *url.URL

	// Header holds the request's header fields, case-insensitively keyed
	// and multi-valued, in original casing.
	Header *Header

	// Body is the three-variant body payload; spooled per §4.3 only for
	// methods Method.HasBody() reports true for.
	Body Body

	// Valid is false when the request line or method failed to parse; the
	// connection state machine closes without invoking the handler in that
	// case.
	Valid bool
}

// NewRequest returns a zeroed Request with an initialized Header, ready to
// be reused across keep-alive requests via Reset.
func NewRequest() *Request {
	return &Request{Header: NewHeader(), Valid: true}
}

// Reset clears r in place for the next request on the same connection.
func (r *Request) Reset() {
	r.Version = ""
	r.Method = MethodUnknown
	r.RawTarget = ""
	r.URL = nil
	r.Header.Clear()
	r.Body = Body{}
	r.Valid = true
}
