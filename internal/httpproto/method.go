package httpproto

// Method is a closed enumeration over the HTTP/1.1 methods this engine
// recognizes. Unlike a bare string, an unknown token parses to MethodUnknown
// rather than being silently accepted.
type Method int

const (
	MethodUnknown Method = iota
	MethodGET
	MethodPOST
	MethodPUT
	MethodPATCH
	MethodDELETE
	MethodHEAD
	MethodOPTIONS
	MethodTRACE
	MethodCONNECT
)

var methodNames = map[Method]string{
	MethodGET:     "GET",
	MethodPOST:    "POST",
	MethodPUT:     "PUT",
	MethodPATCH:   "PATCH",
	MethodDELETE:  "DELETE",
	MethodHEAD:    "HEAD",
	MethodOPTIONS: "OPTIONS",
	MethodTRACE:   "TRACE",
	MethodCONNECT: "CONNECT",
}

var methodValues = func() map[string]Method {
	m := make(map[string]Method, len(methodNames))
	for k, v := range methodNames {
		m[v] = k
	}
	return m
}()

// String returns the wire token for m, or "" for MethodUnknown.
func (m Method) String() string {
	return methodNames[m]
}

// ParseMethod resolves a request-line token into a Method. The second
// return value is false for anything not in the closed set, in which case
// the connection state machine closes the connection per spec (no error
// response is produced for an unknown method).
func ParseMethod(token string) (Method, bool) {
	m, ok := methodValues[token]
	return m, ok
}

// HasBody reports whether the method is one of {POST, PUT, PATCH, DELETE},
// the set the body spooler runs for.
func (m Method) HasBody() bool {
	switch m {
	case MethodPOST, MethodPUT, MethodPATCH, MethodDELETE:
		return true
	default:
		return false
	}
}
