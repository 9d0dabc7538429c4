package config_test

import (
	"os"
	"testing"

	"github.com/coregate/originwire/config"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	if err != nil {
		t.Fatalf("create temp file: %v", err)
	}
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	f.Close()
	return f.Name()
}

const validYAML = `
address: "127.0.0.1"
port: 9090
keep_alive: true
max_body_length: 1048576
log_level: debug
server_header: "test-origin"
`

func TestLoad_Valid(t *testing.T) {
	path := writeTemp(t, validYAML)
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Address != "127.0.0.1" {
		t.Errorf("Address = %q", cfg.Address)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if !cfg.KeepAlive {
		t.Errorf("KeepAlive = false, want true")
	}
	if cfg.MaxBodyLength != 1048576 {
		t.Errorf("MaxBodyLength = %d, want 1048576", cfg.MaxBodyLength)
	}
	if cfg.ServerHeader != "test-origin" {
		t.Errorf("ServerHeader = %q", cfg.ServerHeader)
	}
}

func TestLoad_DefaultsApplied(t *testing.T) {
	path := writeTemp(t, "address: \"\"\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != originwireDefaultPort {
		t.Errorf("Port = %d, want default %d", cfg.Port, originwireDefaultPort)
	}
	if cfg.MaxBodyLength != originwireDefaultMaxBody {
		t.Errorf("MaxBodyLength = %d, want default %d", cfg.MaxBodyLength, originwireDefaultMaxBody)
	}
	if cfg.KeepAlive {
		t.Errorf("KeepAlive = true, want false by default")
	}
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	path := writeTemp(t, "log_level: verbose\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for invalid log_level, got nil")
	}
}

func TestLoad_MismatchedTLSPaths(t *testing.T) {
	path := writeTemp(t, "tls_settings:\n  cert_path: /tmp/cert.pem\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for cert_path without key_path, got nil")
	}
}

func TestLoad_TLSPortAndPeerVerifyWired(t *testing.T) {
	path := writeTemp(t, "tls_settings:\n  cert_path: /tmp/cert.pem\n  key_path: /tmp/key.pem\n  port: 9443\n  peer_verify: true\n")
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TLS.Port != 9443 {
		t.Errorf("TLS.Port = %d, want 9443", cfg.TLS.Port)
	}
	if !cfg.TLS.PeerVerify {
		t.Errorf("TLS.PeerVerify = false, want true")
	}
}

func TestLoad_TLSPortOutOfRangeRejected(t *testing.T) {
	path := writeTemp(t, "tls_settings:\n  cert_path: /tmp/cert.pem\n  key_path: /tmp/key.pem\n  port: 70000\n")
	if _, err := config.Load(path); err == nil {
		t.Fatal("expected validation error for out-of-range tls_settings.port, got nil")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := config.Load("/nonexistent/path/config.yaml"); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

// Mirrors the defaults originwire.ServerConfig.WithDefaults applies, kept
// local so this test does not need to import the root package just to
// assert against its constants.
const (
	originwireDefaultPort    = 8000
	originwireDefaultMaxBody = 268435456
)
