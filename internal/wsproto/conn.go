package wsproto

import (
	"errors"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/coregate/originwire/internal/httpproto"
	"github.com/coregate/originwire/internal/wire"
	"github.com/coregate/originwire/internal/wireerr"
)

// State is the closed three-state WebSocket connection enumeration:
// HandShake is the initial state, Open is reached once the
// upgrade response is sent, Close is terminal.
type State int

const (
	StateHandshake State = iota
	StateOpen
	StateClose
)

// WebSocket holds the per-connection state the handshake and open-state
// frame loop operate on. It is created when the connection state machine
// detects an "Upgrade: websocket" request and torn down with the
// connection.
type WebSocket struct {
	State      State
	LastStatus StatusCode

	// HashID is a random UUID used as this connection's ping nonce: an
	// inbound Pong is only accepted when its payload matches. Serve never
	// sends a Ping of its own.
	HashID string

	InFrame  *Frame
	OutFrame *Frame

	HandshakeRequestHeader  *httpproto.Header
	HandshakeResponseHeader *httpproto.Header
}

// New returns a WebSocket in the initial HandShake state with a fresh
// ping-nonce HashID. Grounded on bobbydeveaux-starbucks-mugs's use of
// google/uuid for connection identifiers; this replaces a
// timestamp-seeded nonce with a collision-resistant one.
func New() *WebSocket {
	return &WebSocket{
		State:                   StateHandshake,
		HashID:                  uuid.NewString(),
		HandshakeRequestHeader:  httpproto.NewHeader(),
		HandshakeResponseHeader: httpproto.NewHeader(),
	}
}

// Handshake completes the opening handshake: given the
// client's Sec-WebSocket-Key, it writes the 101 response and transitions to
// Open. An empty clientKey fails the handshake with StatusHandShakeFailed
// and leaves the connection in a state the caller must close without
// completing the upgrade.
func (ws *WebSocket) Handshake(w io.Writer, serverHeader string, clientKey string) error {
	if clientKey == "" {
		ws.State = StateClose
		ws.LastStatus = StatusHandShakeFailed
		return wireerr.New(wireerr.KindWebSocket, "handshake", "missing Sec-WebSocket-Key", nil)
	}

	if err := WriteHandshakeResponse(w, serverHeader, httpproto.FormatDate(time.Now()), clientKey, ws.HandshakeResponseHeader); err != nil {
		ws.State = StateClose
		return err
	}

	ws.State = StateOpen
	return nil
}

// Send writes a single unmasked, FIN-set frame with the given opcode and
// payload; the server never masks outbound frames.
func (ws *WebSocket) Send(w io.Writer, opcode OpCode, payload []byte) error {
	f := &Frame{Fin: true, Opcode: opcode, Payload: payload}
	ws.OutFrame = f
	return WriteFrame(w, f)
}

// SendMasked writes a masked frame; it exists only for the codec's
// self-testing mode; a conforming server never masks its
// own frames in production use.
func (ws *WebSocket) SendMasked(w io.Writer, opcode OpCode, payload []byte, maskKey [4]byte) error {
	f := &Frame{Fin: true, Opcode: opcode, Mask: true, MaskKey: maskKey, Payload: payload}
	ws.OutFrame = f
	return WriteFrame(w, f)
}

// MessageHandler is invoked for each inbound Text/Binary/Continuation
// frame; it may inspect ws.InFrame and call ws.Send to reply.
type MessageHandler func(ws *WebSocket) error

// Serve drives the Open-state frame loop until the
// connection closes, dispatching data frames to onMessage and handling
// control frames (Ping/Pong/Close) internally. onOther, if non-nil, is
// called for any opcode outside the recognized set, for trace logging.
func Serve(ws *WebSocket, r *wire.Reader, w io.Writer, maxPayload int64, onMessage MessageHandler, onOther func(OpCode)) error {
	for ws.State == StateOpen {
		frame, err := ReadFrame(r, maxPayload)
		if err != nil {
			ws.State = StateClose
			if errors.Is(err, ErrPayloadTooBig) {
				ws.LastStatus = StatusPayloadTooBig
			}
			return err
		}

		switch frame.Opcode {
		case OpText, OpBinary, OpContinuation:
			ws.InFrame = frame
			if err := onMessage(ws); err != nil {
				ws.State = StateClose
				return wireerr.New(wireerr.KindHandler, "ws_message", "handler failed", err)
			}

		case OpPing:
			if err := ws.Send(w, OpPong, frame.Payload); err != nil {
				ws.State = StateClose
				return err
			}

		case OpPong:
			if string(frame.Payload) != ws.HashID {
				ws.State = StateClose
				ws.LastStatus = StatusUnknownOpcode
				return wireerr.New(wireerr.KindWebSocket, "ws_pong", "unexpected pong nonce", nil)
			}
			// Matching nonce: ignore.

		case OpClose:
			ws.State = StateClose
			ws.LastStatus = StatusUnexpectedClose
			return nil

		default:
			if onOther != nil {
				onOther(frame.Opcode)
			}
		}
	}
	return nil
}
