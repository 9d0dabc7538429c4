package httpproto_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/coregate/originwire/internal/httpproto"
)

func TestWriteResponse_SetsContentLengthWhenHandlerDidNot(t *testing.T) {
	resp := httpproto.NewResponse()
	resp.Body = []byte("hello")

	var buf bytes.Buffer
	if err := httpproto.WriteResponse(&buf, resp, "originwire", true, false); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "HTTP/1.1 200 OK\r\n") {
		t.Errorf("missing status line, got:\n%s", out)
	}
	if !strings.Contains(out, "Content-Length: 5\r\n") {
		t.Errorf("missing computed Content-Length, got:\n%s", out)
	}
	if !strings.Contains(out, "Connection: keep-alive\r\n") {
		t.Errorf("missing Connection: keep-alive, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "hello") {
		t.Errorf("body not written last, got:\n%s", out)
	}
}

func TestWriteResponse_RespectsHandlerSetContentLength(t *testing.T) {
	resp := httpproto.NewResponse()
	resp.Body = []byte("hello")
	resp.Header.Set("Content-Length", "999")

	var buf bytes.Buffer
	if err := httpproto.WriteResponse(&buf, resp, "originwire", false, false); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "Content-Length: 999\r\n") {
		t.Errorf("handler-set Content-Length overridden, got:\n%s", out)
	}
	if !strings.Contains(out, "Connection: close\r\n") {
		t.Errorf("missing Connection: close, got:\n%s", out)
	}
}

func TestWriteResponse_HeadOmitsBody(t *testing.T) {
	resp := httpproto.NewResponse()
	resp.Body = []byte("hello")

	var buf bytes.Buffer
	if err := httpproto.WriteResponse(&buf, resp, "originwire", true, true); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	if strings.HasSuffix(buf.String(), "hello") {
		t.Error("HEAD response wrote a body")
	}
	if strings.Contains(buf.String(), "Content-Length") {
		t.Error("HEAD response should not synthesize Content-Length")
	}
}

func TestWriteResponse_UserHeadersEmittedInInsertionOrder(t *testing.T) {
	resp := httpproto.NewResponse()
	resp.Header.Add("X-First", "1")
	resp.Header.Add("X-Second", "2")

	var buf bytes.Buffer
	if err := httpproto.WriteResponse(&buf, resp, "originwire", false, false); err != nil {
		t.Fatalf("WriteResponse() error = %v", err)
	}

	out := buf.String()
	firstIdx := strings.Index(out, "X-First")
	secondIdx := strings.Index(out, "X-Second")
	if firstIdx < 0 || secondIdx < 0 || firstIdx > secondIdx {
		t.Errorf("headers not emitted in insertion order:\n%s", out)
	}
}
