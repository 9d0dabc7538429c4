package originwire

import (
	"crypto/tls"
	"log/slog"
	"os"
)

// Default values for ServerConfig fields left zero.
const (
	DefaultPort           = 8000
	DefaultTLSPort        = 8443
	DefaultMaxBodyLength  = 268435456 // 256 MiB
	DefaultReadBodyBuffer = 1024
	DefaultMaxWSPayload   = 16 * 1024 * 1024
)

// TLSSettings configures the optional TLS listener. CertPath/KeyPath are
// required to enable TLS; leaving both empty disables it and the server
// accepts only plaintext connections.
type TLSSettings struct {
	// CertPath is the PEM certificate chain path.
	CertPath string
	// KeyPath is the PEM private key path.
	KeyPath string
	// Port is the TCP port the TLS listener binds, independent of the
	// plaintext Port. Default 8443.
	Port int
	// MinVersion overrides the minimum negotiated TLS version; zero uses
	// crypto/tls's default.
	MinVersion uint16
	// PeerVerify requires and verifies a client certificate
	// (tls.RequireAndVerifyClientCert) instead of the default of not
	// requesting one.
	PeerVerify bool
}

func (t TLSSettings) enabled() bool {
	return t.CertPath != "" && t.KeyPath != ""
}

func (t TLSSettings) load() (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(t.CertPath, t.KeyPath)
	if err != nil {
		return nil, err
	}
	cfg := &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   t.MinVersion,
	}
	if t.PeerVerify {
		cfg.ClientAuth = tls.RequireAndVerifyClientCert
	}
	return cfg, nil
}

// ServerConfig is the full set of external surfaces
// names for constructing a Server. Every field has a documented default
// applied by WithDefaults.
type ServerConfig struct {
	// Address is the interface to bind; empty binds all interfaces.
	Address string

	// Port is the TCP port to listen on. Default 8000.
	Port int

	// TLS enables an additional TLS listener on Address/TLS.Port when
	// populated; see TLSSettings.enabled.
	TLS TLSSettings

	// ReuseAddress sets SO_REUSEADDR-equivalent listener reuse; Go's
	// net.Listen already behaves this way on most platforms, so this is
	// carried for interface parity rather than changed listener behavior.
	ReuseAddress bool

	// ReusePort is carried for interface parity. Serve binds with a plain
	// net.Listen and does not set SO_REUSEPORT, whatever its value.
	ReusePort bool

	// MaxBodyLength rejects any request body larger than this with 413.
	// Default 268435456 (256 MiB).
	MaxBodyLength int64

	// KeepAlive enables connection reuse across requests. Default false:
	// each connection serves exactly one request unless explicitly enabled.
	KeepAlive bool

	// TmpDir is where spooled request bodies are written. Default
	// os.TempDir().
	TmpDir string

	// ReadBodyBuffer sizes the connection's line/header read buffer and the
	// in-memory-vs-streamed spooling threshold. Default 1024.
	ReadBodyBuffer int

	// MaxWSPayload bounds a single inbound WebSocket frame's declared
	// payload length. Default 16 MiB.
	MaxWSPayload int64

	// ServerHeader is the literal "Server" response header value.
	ServerHeader string

	// Logger receives structured trace records for accept/connection
	// events. A nil Logger disables tracing.
	Logger *slog.Logger
}

// WithDefaults returns a copy of cfg with every zero-valued field replaced
// by its documented default.
func (cfg ServerConfig) WithDefaults() ServerConfig {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.TLS.enabled() && cfg.TLS.Port == 0 {
		cfg.TLS.Port = DefaultTLSPort
	}
	if cfg.MaxBodyLength == 0 {
		cfg.MaxBodyLength = DefaultMaxBodyLength
	}
	if cfg.TmpDir == "" {
		cfg.TmpDir = os.TempDir()
	}
	if cfg.ReadBodyBuffer == 0 {
		cfg.ReadBodyBuffer = DefaultReadBodyBuffer
	}
	if cfg.MaxWSPayload == 0 {
		cfg.MaxWSPayload = DefaultMaxWSPayload
	}
	if cfg.ServerHeader == "" {
		cfg.ServerHeader = "originwire"
	}
	return cfg
}
