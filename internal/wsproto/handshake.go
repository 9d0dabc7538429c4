package wsproto

import (
	"crypto/sha1" //nolint:gosec // SHA-1 is mandated by RFC 6455 §1.3, not used for security.
	"encoding/base64"
	"fmt"
	"io"

	"github.com/coregate/originwire/internal/httpproto"
	"github.com/coregate/originwire/internal/wireerr"
)

// guid is the fixed magic string RFC 6455 §1.3 defines for computing
// Sec-WebSocket-Accept.
const guid = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// ComputeAcceptKey derives Sec-WebSocket-Accept from the client's
// Sec-WebSocket-Key: base64(sha1(key + guid)).
func ComputeAcceptKey(key string) string {
	//nolint:gosec // SHA-1 required by RFC 6455, not used for security.
	h := sha1.New()
	h.Write([]byte(key + guid))
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// WriteHandshakeResponse writes the 101 Switching Protocols response for a
// successful upgrade: Server, Date, Connection: Upgrade, Upgrade: websocket,
// Sec-WebSocket-Accept, then any user-supplied headers, then a blank line.
func WriteHandshakeResponse(w io.Writer, serverHeader, dateHeader, clientKey string, extra *httpproto.Header) error {
	accept := ComputeAcceptKey(clientKey)

	if _, err := fmt.Fprintf(w,
		"HTTP/1.1 101 Switching Protocols\r\nServer: %s\r\nDate: %s\r\nConnection: Upgrade\r\nUpgrade: websocket\r\nSec-WebSocket-Accept: %s\r\n",
		serverHeader, dateHeader, accept); err != nil {
		return wireerr.New(wireerr.KindIO, "ws_handshake", "write response", err)
	}

	if extra != nil {
		for _, key := range extra.Keys() {
			for _, v := range extra.Values(key) {
				if _, err := fmt.Fprintf(w, "%s: %s\r\n", key, v); err != nil {
					return wireerr.New(wireerr.KindIO, "ws_handshake", "write response", err)
				}
			}
		}
	}

	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return wireerr.New(wireerr.KindIO, "ws_handshake", "write response", err)
	}
	return nil
}
