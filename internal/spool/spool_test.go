package spool_test

import (
	"bytes"
	"net"
	"os"
	"testing"
	"time"

	"github.com/coregate/originwire/internal/httpproto"
	"github.com/coregate/originwire/internal/spool"
	"github.com/coregate/originwire/internal/wire"
)

type fakeStream struct {
	*bytes.Reader
}

func (fakeStream) Write(p []byte) (int, error)    { return len(p), nil }
func (fakeStream) Close() error                   { return nil }
func (fakeStream) LocalAddr() net.Addr            { return nil }
func (fakeStream) RemoteAddr() net.Addr           { return nil }
func (fakeStream) SetDeadline(time.Time) error    { return nil }
func (fakeStream) SetReadDeadline(time.Time) error  { return nil }
func (fakeStream) SetWriteDeadline(time.Time) error { return nil }
func (fakeStream) IsSecure() bool                 { return false }

func newRequest(method httpproto.Method, contentLength string) *httpproto.Request {
	req := httpproto.NewRequest()
	req.Method = method
	if contentLength != "" {
		req.Header.Set("Content-Length", contentLength)
	}
	return req
}

func TestSpool_NoOpForMethodsWithoutBody(t *testing.T) {
	s := &spool.Spooler{MaxBodyBytes: 1024, ReadBufferSize: 64, TempDir: t.TempDir()}
	req := newRequest(httpproto.MethodGET, "")
	r := wire.NewReader(fakeStream{bytes.NewReader(nil)}, 0)

	rej, err := s.Spool(req, r)
	if err != nil || rej != nil {
		t.Fatalf("Spool() = %v, %v, want nil, nil for a bodyless method", rej, err)
	}
	if req.Body.Kind != httpproto.BodyAbsent {
		t.Errorf("Body.Kind = %v, want BodyAbsent", req.Body.Kind)
	}
}

func TestSpool_MissingContentLengthRejectsWith411(t *testing.T) {
	s := &spool.Spooler{MaxBodyBytes: 1024, ReadBufferSize: 64, TempDir: t.TempDir()}
	req := newRequest(httpproto.MethodPOST, "")
	r := wire.NewReader(fakeStream{bytes.NewReader(nil)}, 0)

	rej, err := s.Spool(req, r)
	if err != nil {
		t.Fatalf("Spool() error = %v", err)
	}
	if rej == nil || rej.Status != 411 {
		t.Fatalf("rejection = %+v, want status 411", rej)
	}
}

func TestSpool_OverMaxRejectsWith413(t *testing.T) {
	s := &spool.Spooler{MaxBodyBytes: 10, ReadBufferSize: 64, TempDir: t.TempDir()}
	req := newRequest(httpproto.MethodPOST, "11")
	r := wire.NewReader(fakeStream{bytes.NewReader(nil)}, 0)

	rej, err := s.Spool(req, r)
	if err != nil {
		t.Fatalf("Spool() error = %v", err)
	}
	if rej == nil || rej.Status != 413 {
		t.Fatalf("rejection = %+v, want status 413", rej)
	}
}

func TestSpool_SmallBodySpooledInMemoryFirstThenWrittenToDisk(t *testing.T) {
	tmp := t.TempDir()
	s := &spool.Spooler{MaxBodyBytes: 1024, ReadBufferSize: 64, TempDir: tmp}
	req := newRequest(httpproto.MethodPOST, "5")
	r := wire.NewReader(fakeStream{bytes.NewReader([]byte("hello"))}, 0)

	rej, err := s.Spool(req, r)
	if err != nil || rej != nil {
		t.Fatalf("Spool() = %v, %v, want a stored file", rej, err)
	}
	if req.Body.Kind != httpproto.BodyFile {
		t.Fatalf("Body.Kind = %v, want BodyFile", req.Body.Kind)
	}

	data, err := os.ReadFile(req.Body.Path)
	if err != nil {
		t.Fatalf("ReadFile(%q) error = %v", req.Body.Path, err)
	}
	if string(data) != "hello" {
		t.Errorf("spooled content = %q, want hello", data)
	}

	spool.Release(req.Body)
	if _, err := os.Stat(req.Body.Path); !os.IsNotExist(err) {
		t.Errorf("Release did not remove the spool file")
	}
}

func TestSpool_LargeBodyStreamedDirectlyToDisk(t *testing.T) {
	tmp := t.TempDir()
	s := &spool.Spooler{MaxBodyBytes: 1 << 20, ReadBufferSize: 8, TempDir: tmp}
	payload := bytes.Repeat([]byte{'x'}, 1000)
	req := newRequest(httpproto.MethodPUT, "1000")
	r := wire.NewReader(fakeStream{bytes.NewReader(payload)}, 0)

	rej, err := s.Spool(req, r)
	if err != nil || rej != nil {
		t.Fatalf("Spool() = %v, %v", rej, err)
	}

	data, err := os.ReadFile(req.Body.Path)
	if err != nil {
		t.Fatalf("ReadFile(%q) error = %v", req.Body.Path, err)
	}
	if !bytes.Equal(data, payload) {
		t.Errorf("spooled content length = %d, want %d", len(data), len(payload))
	}
	spool.Release(req.Body)
}

func TestRelease_NoOpForNonFileBody(t *testing.T) {
	spool.Release(httpproto.Body{Kind: httpproto.BodyAbsent})
	spool.Release(httpproto.Body{Kind: httpproto.BodyMemory, Data: []byte("x")})
}
