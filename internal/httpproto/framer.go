package httpproto

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/coregate/originwire/internal/wireerr"
)

// httpDateLayout renders RFC 1123 dates in GMT, as required for
// the Date header (time.RFC1123 would print the zone name "UTC" instead).
const httpDateLayout = "Mon, 02 Jan 2006 15:04:05 GMT"

// FormatDate renders t in the fixed GMT format the Date header uses.
func FormatDate(t time.Time) string {
	return t.UTC().Format(httpDateLayout)
}

// WriteStatusLine writes "HTTP/1.1 <code> <reason>\r\n".
func WriteStatusLine(w io.Writer, code int) error {
	_, err := fmt.Fprintf(w, "HTTP/1.1 %d %s\r\n", code, ReasonPhrase(code))
	if err != nil {
		return wireerr.New(wireerr.KindIO, "write_status_line", "write failed", err)
	}
	return nil
}

// WriteResponse writes the fixed-order response header block — status line,
// Server, Date, Connection, Content-Length (unless the handler already set
// one or isHead is true), then every user header in insertion order, then a
// blank line —
// followed by the body unless isHead is true.
func WriteResponse(w io.Writer, resp *Response, serverHeader string, keepAlive, isHead bool) error {
	if err := WriteStatusLine(w, resp.Status); err != nil {
		return err
	}

	connToken := "close"
	if keepAlive {
		connToken = "keep-alive"
	}

	if _, err := fmt.Fprintf(w, "Server: %s\r\nDate: %s\r\nConnection: %s\r\n",
		serverHeader, FormatDate(time.Now()), connToken); err != nil {
		return wireerr.New(wireerr.KindIO, "write_headers", "write failed", err)
	}

	if !isHead && !resp.Header.Has("Content-Length") {
		if _, err := fmt.Fprintf(w, "Content-Length: %s\r\n", strconv.Itoa(len(resp.Body))); err != nil {
			return wireerr.New(wireerr.KindIO, "write_headers", "write failed", err)
		}
	}

	for _, key := range resp.Header.Keys() {
		for _, v := range resp.Header.Values(key) {
			if _, err := fmt.Fprintf(w, "%s: %s\r\n", key, v); err != nil {
				return wireerr.New(wireerr.KindIO, "write_headers", "write failed", err)
			}
		}
	}

	if _, err := io.WriteString(w, "\r\n"); err != nil {
		return wireerr.New(wireerr.KindIO, "write_headers", "write failed", err)
	}

	if !isHead && len(resp.Body) > 0 {
		if _, err := w.Write(resp.Body); err != nil {
			return wireerr.New(wireerr.KindIO, "write_body", "write failed", err)
		}
	}

	return nil
}
