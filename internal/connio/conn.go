// Package connio implements the per-connection state machine: the request
// loop that reads a request line, parses headers,
// detects a WebSocket upgrade, spools the body, dispatches to the user
// handler, and frames the response — then either loops for the next
// keep-alive request or hands off to the WebSocket frame loop.
//
// Grounded on bobbydeveaux-starbucks-mugs's accept-loop-per-connection
// shape (internal/server/http) generalized from net/http's mux dispatch to
// this engine's single-callback model, and on WhileEndless-go-rawhttp's
// explicit state-machine style for framing decisions.
package connio

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/coregate/originwire/internal/httpproto"
	"github.com/coregate/originwire/internal/spool"
	"github.com/coregate/originwire/internal/wire"
	"github.com/coregate/originwire/internal/wireerr"
	"github.com/coregate/originwire/internal/wsproto"
)

// Config carries the per-connection settings the acceptor derives from the
// server's options.
type Config struct {
	// KeepAlive enables connection reuse; defaults to false.
	KeepAlive bool

	// MaxBodyBytes is the body spooler's size policy ceiling.
	MaxBodyBytes int64

	// ReadBufferSize sizes both the line/header reader's buffer and the
	// spooler's in-memory-vs-streamed threshold.
	ReadBufferSize int

	// TempDir is where spooled request bodies are written.
	TempDir string

	// ServerHeader is the literal value sent as the response "Server" field.
	ServerHeader string

	// MaxWSPayload bounds an inbound WebSocket frame's declared payload
	// length; 0 means unbounded.
	MaxWSPayload int64

	// Trace, if non-nil, receives a line for each error that ends a
	// connection or a WebSocket frame loop, and for each unrecognized
	// WebSocket opcode. Upgrades and clean closes are not traced.
	Trace func(msg string, args ...any)
}

func (c Config) trace(msg string, args ...any) {
	if c.Trace != nil {
		c.Trace(msg, args...)
	}
}

// Conn drives one accepted stream through its entire lifetime: one or more
// keep-alive HTTP requests, or a single WebSocket upgrade followed by its
// frame loop.
type Conn struct {
	stream  wire.Stream
	cfg     Config
	reader  *wire.Reader
	spooler *spool.Spooler
}

// New returns a Conn ready to Serve the given accepted stream.
func New(stream wire.Stream, cfg Config) *Conn {
	return &Conn{
		stream: stream,
		cfg:    cfg,
		reader: wire.NewReader(stream, cfg.ReadBufferSize),
		spooler: &spool.Spooler{
			MaxBodyBytes:   cfg.MaxBodyBytes,
			ReadBufferSize: cfg.ReadBufferSize,
			TempDir:        cfg.TempDir,
		},
	}
}

// Serve runs the connection's request loop to completion, invoking handler
// per request (or per inbound WebSocket message), and always closes the
// stream before returning.
func (c *Conn) Serve(handler Handler) {
	defer c.stream.Close()

	ctx := NewHttpContext(c.stream, c.send)

	for {
		cont, err := c.serveOneRequest(ctx, handler)
		if err != nil {
			c.cfg.trace("connection closing: %v", err)
		}
		if !cont {
			spool.Release(ctx.Request.Body)
			return
		}

		if ctx.WS != nil {
			c.runWebSocket(ctx, handler)
			spool.Release(ctx.Request.Body)
			return
		}

		spool.Release(ctx.Request.Body)
		if !ctx.KeepAlive {
			return
		}
		ctx.resetForNextRequest()
	}
}

// serveOneRequest reads and answers exactly one request. It returns
// cont == false when the connection must close now: a clean EOF, a
// malformed request (closed silently), or
// a failed WebSocket handshake. When a request successfully upgrades, it
// returns (true, nil) with ctx.WS populated and StateOpen, and the caller
// hands off to the frame loop without looping back here.
func (c *Conn) serveOneRequest(ctx *HttpContext, handler Handler) (cont bool, err error) {
	line, err := c.reader.ReadLine()
	if err != nil {
		if errors.Is(err, wireerr.ErrConnectionClosed) {
			return false, nil
		}
		return false, err
	}
	if line == "" {
		return false, nil
	}

	httpproto.ParseRequestLine(ctx.Request, line)
	if !ctx.Request.Valid {
		return false, wireerr.New(wireerr.KindParse, "request_line", "malformed request line", nil)
	}

	if err := httpproto.ParseHeaders(c.reader, ctx.Request.Header); err != nil {
		return false, err
	}

	c.buildURL(ctx)

	if ctx.Request.Method == httpproto.MethodGET && ctx.Request.Header.Contains("Upgrade", "websocket") {
		return c.upgradeToWebSocket(ctx)
	}

	rejection, err := c.spooler.Spool(ctx.Request, c.reader)
	if err != nil {
		return false, err
	}
	if rejection != nil {
		ctx.Response.Status = rejection.Status
		ctx.Response.Body = []byte(rejection.Message)
		// The unread oversized/undeclared body leaves bytes on the wire the
		// next request's parser would misread as a request line, so this
		// connection cannot be reused regardless of the keep-alive config.
		ctx.KeepAlive = false
		if err := c.send(ctx); err != nil {
			return false, err
		}
		return ctx.KeepAlive, nil
	}

	if herr := c.invokeHandler(ctx, handler); herr != nil {
		return false, herr
	}
	if !ctx.sent {
		return false, wireerr.New(wireerr.KindHandler, "dispatch", "handler did not send a response", nil)
	}

	return ctx.KeepAlive, nil
}

// buildURL constructs ctx.Request.URL from RawTarget:
// parsed via net/url, scheme set from the transport, host set from the Host
// header once headers are available (falling back to the bind address via
// ctx.Stream.LocalAddr if the client omitted it).
func (c *Conn) buildURL(ctx *HttpContext) {
	u, err := url.Parse(ctx.Request.RawTarget)
	if err != nil {
		u = &url.URL{Path: ctx.Request.RawTarget}
	}

	if ctx.IsSecure {
		u.Scheme = "https"
	} else {
		u.Scheme = "http"
	}

	if host, ok := ctx.Request.Header.Get("Host"); ok {
		u.Host = host
	} else if ctx.Stream.LocalAddr() != nil {
		u.Host = ctx.Stream.LocalAddr().String()
	}

	ctx.Request.URL = u
}

// upgradeToWebSocket runs the opening handshake. On success
// ctx.WS is left in StateOpen and the request-target's scheme is rewritten
// to ws/wss; on failure the connection closes without a handler dispatch.
func (c *Conn) upgradeToWebSocket(ctx *HttpContext) (bool, error) {
	ws := wsproto.New()
	ws.HandshakeRequestHeader = ctx.Request.Header

	key, _ := ctx.Request.Header.Get("Sec-WebSocket-Key")
	if err := ws.Handshake(c.stream, c.cfg.ServerHeader, key); err != nil {
		return false, err
	}

	if ctx.IsSecure {
		ctx.Request.URL.Scheme = "wss"
	} else {
		ctx.Request.URL.Scheme = "ws"
	}
	ctx.WS = ws
	return true, nil
}

// runWebSocket drives the Open-state frame loop for an upgraded connection,
// dispatching each inbound data frame to handler via ctx.
func (c *Conn) runWebSocket(ctx *HttpContext, handler Handler) {
	onMessage := func(ws *wsproto.WebSocket) error {
		return c.invokeHandler(ctx, handler)
	}
	onOther := func(op wsproto.OpCode) {
		c.cfg.trace("unrecognized websocket opcode 0x%x", byte(op))
	}

	if err := wsproto.Serve(ctx.WS, c.reader, c.stream, c.cfg.MaxWSPayload, onMessage, onOther); err != nil {
		c.cfg.trace("websocket connection ended: %v", err)
	}
}

// invokeHandler calls handler, converting a panic into a KindHandler error
// so a misbehaving callback cannot take the whole accept loop down with it.
func (c *Conn) invokeHandler(ctx *HttpContext, handler Handler) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = wireerr.New(wireerr.KindHandler, "dispatch", fmt.Sprintf("handler panic: %v", r), nil)
		}
	}()
	handler(ctx)
	return nil
}

// send is HttpContext's bound send-response operation: it decides
// connection reuse and writes the framed response.
func (c *Conn) send(ctx *HttpContext) error {
	ctx.KeepAlive = decideKeepAlive(c.cfg.KeepAlive, ctx.Request) && ctx.KeepAlive
	isHead := ctx.Request.Method == httpproto.MethodHEAD
	return httpproto.WriteResponse(c.stream, ctx.Response, c.cfg.ServerHeader, ctx.KeepAlive, isHead)
}

// decideKeepAlive implements the connection reuse rule: the server-wide
// keep_alive setting gates everything; otherwise the connection is reused
// only when the request's Connection header explicitly contains
// "keep-alive" and does not contain "close" — there is no HTTP/1.1 default.
func decideKeepAlive(serverKeepAlive bool, req *httpproto.Request) bool {
	if !serverKeepAlive {
		return false
	}
	if req.Header.Contains("Connection", "close") {
		return false
	}
	return req.Header.Contains("Connection", "keep-alive")
}
