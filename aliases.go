package originwire

import (
	"github.com/coregate/originwire/internal/connio"
	"github.com/coregate/originwire/internal/httpproto"
	"github.com/coregate/originwire/internal/wsproto"
)

// The types and constants below re-export the internal protocol packages at
// the root so callers never import internal/... directly, mirroring
// WhileEndless-go-rawhttp's single-file re-export block.

type (
	// HttpContext is the per-connection object passed to Handler.
	HttpContext = connio.HttpContext

	// Handler is the single application-supplied request/message callback.
	Handler = connio.Handler

	// Request is the parsed HTTP request.
	Request = httpproto.Request

	// Response is the handler-populated HTTP response.
	Response = httpproto.Response

	// Header is the case-insensitive, multi-valued, order-preserving header
	// map shared by Request and Response.
	Header = httpproto.Header

	// Method is the closed HTTP method enumeration.
	Method = httpproto.Method

	// Body is the three-variant request body payload.
	Body = httpproto.Body

	// BodyKind discriminates Body's variants.
	BodyKind = httpproto.BodyKind

	// WebSocket is the per-connection WebSocket state, reachable from
	// HttpContext.WS once a connection has upgraded.
	WebSocket = wsproto.WebSocket

	// WSFrame is a single parsed or to-be-written WebSocket frame.
	WSFrame = wsproto.Frame

	// WSOpCode is the closed WebSocket opcode enumeration.
	WSOpCode = wsproto.OpCode

	// WSStatusCode is the closed WebSocket close-status enumeration.
	WSStatusCode = wsproto.StatusCode
)

const (
	MethodUnknown = httpproto.MethodUnknown
	MethodGET     = httpproto.MethodGET
	MethodPOST    = httpproto.MethodPOST
	MethodPUT     = httpproto.MethodPUT
	MethodPATCH   = httpproto.MethodPATCH
	MethodDELETE  = httpproto.MethodDELETE
	MethodHEAD    = httpproto.MethodHEAD
	MethodOPTIONS = httpproto.MethodOPTIONS
	MethodTRACE   = httpproto.MethodTRACE
	MethodCONNECT = httpproto.MethodCONNECT
)

const (
	BodyAbsent = httpproto.BodyAbsent
	BodyMemory = httpproto.BodyMemory
	BodyFile   = httpproto.BodyFile
)

const (
	OpContinuation = wsproto.OpContinuation
	OpText         = wsproto.OpText
	OpBinary       = wsproto.OpBinary
	OpClose        = wsproto.OpClose
	OpPing         = wsproto.OpPing
	OpPong         = wsproto.OpPong
)

const (
	WSStatusOk              = wsproto.StatusOk
	WSStatusGoingAway       = wsproto.StatusGoingAway
	WSStatusBadProtocol     = wsproto.StatusBadProtocol
	WSStatusUnknownOpcode   = wsproto.StatusUnknownOpcode
	WSStatusBadPayload      = wsproto.StatusBadPayload
	WSStatusViolatesPolicy  = wsproto.StatusViolatesPolicy
	WSStatusPayloadTooBig   = wsproto.StatusPayloadTooBig
	WSStatusHandShakeFailed = wsproto.StatusHandShakeFailed
	WSStatusUnexpectedClose = wsproto.StatusUnexpectedClose
)

// NewHeader returns an empty Header.
func NewHeader() *Header { return httpproto.NewHeader() }
