package wsproto

import "github.com/coregate/originwire/internal/wireerr"

// StatusCode is the closed RFC 6455 §7.4.1 close-code enumeration this
// engine reports.
type StatusCode uint16

const (
	StatusOk              StatusCode = 1000
	StatusGoingAway       StatusCode = 1001
	StatusBadProtocol     StatusCode = 1002
	StatusUnknownOpcode   StatusCode = 1003
	StatusBadPayload      StatusCode = 1007
	StatusViolatesPolicy  StatusCode = 1008
	StatusPayloadTooBig   StatusCode = 1009
	StatusHandShakeFailed StatusCode = 1010
	StatusUnexpectedClose StatusCode = 1011
)

var statusNames = map[StatusCode]string{
	StatusOk:              "Ok",
	StatusGoingAway:       "GoingAway",
	StatusBadProtocol:     "BadProtocol",
	StatusUnknownOpcode:   "UnknownOpcode",
	StatusBadPayload:      "BadPayload",
	StatusViolatesPolicy:  "ViolatesPolicy",
	StatusPayloadTooBig:   "PayloadToBig",
	StatusHandShakeFailed: "HandShakeFailed",
	StatusUnexpectedClose: "UnexpectedClose",
}

// String returns the spec name for code, e.g. "PayloadToBig" for 1009.
func (c StatusCode) String() string {
	if n, ok := statusNames[c]; ok {
		return n
	}
	return "Unknown"
}

// ErrPayloadTooBig is returned by ReadFrame when a declared payload length
// exceeds the configured maximum; the caller closes with StatusPayloadTooBig.
var ErrPayloadTooBig = wireerr.New(wireerr.KindWebSocket, "read_frame", "payload exceeds maximum", nil)
