package httpproto

// Response is populated by the user handler and framed by WriteResponse (see
// framer.go) before being written back on the connection. It is zeroed per
// request and cleared (not reallocated) between keep-alive requests.
type Response struct {
	// Status is the numeric status code the handler sets. It defaults to
	// 200 for a fresh Response (see NewResponse).
	Status int

	// Header holds response header fields the handler adds; the framer
	// appends Server/Date/Connection/Content-Length ahead of these in a
	// fixed order, then emits these in insertion order.
	Header *Header

	// Body is the response payload. HEAD responses never emit it even when
	// set.
	Body []byte
}

// NewResponse returns a Response defaulted to status 200 with an
// initialized Header.
func NewResponse() *Response {
	return &Response{Status: 200, Header: NewHeader()}
}

// Reset clears r in place for the next request on the same connection.
func (r *Response) Reset() {
	r.Status = 200
	r.Header.Clear()
	r.Body = nil
}
