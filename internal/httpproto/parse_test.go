package httpproto_test

import (
	"net"
	"strings"
	"testing"
	"time"

	"github.com/coregate/originwire/internal/httpproto"
	"github.com/coregate/originwire/internal/wire"
)

// fakeStream adapts a plain io.Reader into a wire.Stream for parser tests
// that never need a real socket; every net.Conn method beyond Read/Close is
// an inert stub.
type fakeStream struct {
	*strings.Reader
}

func (fakeStream) Write(p []byte) (int, error)       { return len(p), nil }
func (fakeStream) Close() error                      { return nil }
func (fakeStream) LocalAddr() net.Addr                { return nil }
func (fakeStream) RemoteAddr() net.Addr               { return nil }
func (fakeStream) SetDeadline(time.Time) error        { return nil }
func (fakeStream) SetReadDeadline(time.Time) error     { return nil }
func (fakeStream) SetWriteDeadline(time.Time) error    { return nil }
func (fakeStream) IsSecure() bool                     { return false }

// pipeReader wraps data in a wire.Reader backed by fakeStream, for parser
// tests that only need to read, never write.
func pipeReader(t *testing.T, data string) *wire.Reader {
	t.Helper()
	return wire.NewReader(fakeStream{strings.NewReader(data)}, 0)
}

func TestParseRequestLine_Valid(t *testing.T) {
	req := httpproto.NewRequest()
	httpproto.ParseRequestLine(req, "GET /index.html HTTP/1.1")

	if !req.Valid {
		t.Fatal("Valid = false, want true")
	}
	if req.Method != httpproto.MethodGET {
		t.Errorf("Method = %v, want GET", req.Method)
	}
	if req.RawTarget != "/index.html" {
		t.Errorf("RawTarget = %q", req.RawTarget)
	}
	if req.Version != "HTTP/1.1" {
		t.Errorf("Version = %q", req.Version)
	}
}

func TestParseRequestLine_WrongTokenCountIsInvalid(t *testing.T) {
	req := httpproto.NewRequest()
	httpproto.ParseRequestLine(req, "GET /index.html")
	if req.Valid {
		t.Fatal("Valid = true, want false for a two-token request line")
	}
}

func TestParseRequestLine_UnknownMethodIsInvalid(t *testing.T) {
	req := httpproto.NewRequest()
	httpproto.ParseRequestLine(req, "BREW /coffee HTTP/1.1")
	if req.Valid {
		t.Fatal("Valid = true, want false for an unrecognized method")
	}
}

func TestParseHeaders_AccumulatesUntilBlankLine(t *testing.T) {
	r := pipeReader(t, "Host: example.com\r\nX-Custom: a\r\nX-Custom: b\r\n\r\nbody-not-consumed")
	h := httpproto.NewHeader()

	if err := httpproto.ParseHeaders(r, h); err != nil {
		t.Fatalf("ParseHeaders() error = %v", err)
	}

	if v, ok := h.Get("Host"); !ok || v != "example.com" {
		t.Errorf("Host = %q, %v", v, ok)
	}
	if vs := h.Values("X-Custom"); len(vs) != 2 || vs[0] != "a" || vs[1] != "b" {
		t.Errorf("X-Custom values = %v", vs)
	}
}

func TestParseHeaders_MissingColonIsError(t *testing.T) {
	r := pipeReader(t, "not-a-header-line\r\n\r\n")
	h := httpproto.NewHeader()
	if err := httpproto.ParseHeaders(r, h); err == nil {
		t.Fatal("expected error for header line without a colon")
	}
}

func TestParseHeaders_TrimsOptionalWhitespace(t *testing.T) {
	r := pipeReader(t, "X-Padded:    value with spaces   \r\n\r\n")
	h := httpproto.NewHeader()
	if err := httpproto.ParseHeaders(r, h); err != nil {
		t.Fatalf("ParseHeaders() error = %v", err)
	}
	if v, _ := h.Get("X-Padded"); v != "value with spaces" {
		t.Errorf("X-Padded = %q, want trimmed value", v)
	}
}
