package httpproto

import (
	"strings"

	"github.com/coregate/originwire/internal/wire"
	"github.com/coregate/originwire/internal/wireerr"
)

// ParseRequestLine parses "METHOD SP REQUEST-TARGET SP HTTP-VERSION" into
// req. The line must be exactly three space-separated
// tokens and the method must be one of the closed set; either failure
// leaves req.Valid false so the connection state machine closes silently
// without invoking the handler or emitting a response.
func ParseRequestLine(req *Request, line string) {
	parts := strings.Split(line, " ")
	if len(parts) != 3 {
		req.Valid = false
		return
	}

	method, ok := ParseMethod(parts[0])
	if !ok {
		req.Valid = false
		return
	}

	req.Method = method
	req.RawTarget = parts[1]
	req.Version = parts[2]
}

// ParseHeaders reads "field-name: value" lines from r into h until a blank
// line (bare CRLF) terminates the header block. Repeated fields accumulate
// via Header.Add rather than overwrite.
func ParseHeaders(r *wire.Reader, h *Header) error {
	for {
		line, err := r.ReadLine()
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}

		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return wireerr.New(wireerr.KindParse, "parse_headers", "missing colon in header line", nil)
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" {
			return wireerr.New(wireerr.KindParse, "parse_headers", "empty header name", nil)
		}
		h.Add(key, value)
	}
}
