package connio

import (
	"github.com/coregate/originwire/internal/httpproto"
	"github.com/coregate/originwire/internal/wire"
	"github.com/coregate/originwire/internal/wsproto"
)

// HttpContext is the per-connection object the user handler is invoked
// with. One HttpContext exists for the lifetime of a
// connection; its Request/Response are cleared (not reallocated) between
// keep-alive requests, and its WebSocket is non-nil only once the
// connection has upgraded.
type HttpContext struct {
	Request  *httpproto.Request
	Response *httpproto.Response

	// Stream is the client connection; handlers read spooled body files
	// via Request.Body.Path, not directly from Stream.
	Stream wire.Stream

	// IsSecure reflects the transport at accept time and never changes for
	// the connection's lifetime.
	IsSecure bool

	// KeepAlive starts true and is narrowed by the response framer's
	// decision on each request; once false the connection closes after the
	// current response.
	KeepAlive bool

	// WS is non-nil once an "Upgrade: websocket" request has completed its
	// handshake.
	WS *wsproto.WebSocket

	sent    bool
	sendFn  func(ctx *HttpContext) error
}

// NewHttpContext returns a context bound to stream, with keep-alive assumed
// true until the framer's per-request decision narrows it.
func NewHttpContext(stream wire.Stream, sendFn func(*HttpContext) error) *HttpContext {
	return &HttpContext{
		Request:   httpproto.NewRequest(),
		Response:  httpproto.NewResponse(),
		Stream:    stream,
		IsSecure:  stream.IsSecure(),
		KeepAlive: true,
		sendFn:    sendFn,
	}
}

// Send is the bound "send-response" operation the
// handler to call exactly once after populating Response. It frames and
// writes the response, deciding connection reuse per §4.5.
func (ctx *HttpContext) Send() error {
	ctx.sent = true
	return ctx.sendFn(ctx)
}

// SendWSMessage writes a single unmasked WebSocket frame on ctx's stream;
// it is the WebSocket analogue of Send, available once ctx.WS is open.
func (ctx *HttpContext) SendWSMessage(opcode wsproto.OpCode, payload []byte) error {
	return ctx.WS.Send(ctx.Stream, opcode, payload)
}

// resetForNextRequest clears Request/Response and the sent flag ahead of
// the next request on the same keep-alive connection.
func (ctx *HttpContext) resetForNextRequest() {
	ctx.Request.Reset()
	ctx.Response.Reset()
	ctx.sent = false
}
