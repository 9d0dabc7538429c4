// Package config provides YAML configuration loading and validation for an
// originwire server, following a load/default/validate pipeline:
// read, unmarshal, apply defaults, validate.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/coregate/originwire"
)

// File is the YAML shape of an originwire server configuration file.
type File struct {
	// Address is the interface to bind; empty binds all interfaces.
	Address string `yaml:"address"`

	// Port is the TCP port to listen on. Defaults to 8000 when omitted.
	Port int `yaml:"port"`

	// TLS holds the optional TLS certificate/key paths; leave both empty to
	// serve plaintext only.
	TLS TLSFile `yaml:"tls_settings"`

	ReuseAddress bool `yaml:"reuse_address"`
	ReusePort    bool `yaml:"reuse_port"`

	// MaxBodyLength rejects request bodies larger than this with 413.
	// Defaults to 268435456 (256 MiB) when omitted.
	MaxBodyLength int64 `yaml:"max_body_length"`

	// KeepAlive enables connection reuse across requests. Defaults to false.
	KeepAlive bool `yaml:"keep_alive"`

	// TmpDir is where spooled request bodies are written. Defaults to the
	// OS temp directory.
	TmpDir string `yaml:"tmp_dir"`

	// ReadBodyBuffer sizes the read buffer and spooling threshold. Defaults
	// to 1024.
	ReadBodyBuffer int `yaml:"read_body_buffer"`

	// MaxWSPayload bounds a single inbound WebSocket frame. Defaults to
	// 16 MiB.
	MaxWSPayload int64 `yaml:"max_ws_payload"`

	// ServerHeader is the literal "Server" response header value.
	ServerHeader string `yaml:"server_header"`

	// LogLevel must be "debug", "info", "warn", or "error"; defaults to
	// "info" when omitted. Load validates it but does not carry it into the
	// returned ServerConfig.
	LogLevel string `yaml:"log_level"`
}

// TLSFile holds certificate and key paths for the optional TLS listener.
type TLSFile struct {
	CertPath string `yaml:"cert_path"`
	KeyPath  string `yaml:"key_path"`

	// Port is the TLS listener's TCP port, independent of the plaintext
	// Port. Defaults to 8443 when TLS is enabled and this is omitted.
	Port int `yaml:"port"`

	// PeerVerify requires and verifies a client certificate on every TLS
	// connection. Defaults to false.
	PeerVerify bool `yaml:"peer_verify"`
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Load reads the YAML file at path, unmarshals it, applies defaults,
// validates it, and returns the originwire.ServerConfig it describes.
func Load(path string) (originwire.ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return originwire.ServerConfig{}, fmt.Errorf("config: cannot read %q: %w", path, err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return originwire.ServerConfig{}, fmt.Errorf("config: cannot parse %q: %w", path, err)
	}

	applyDefaults(&f)

	if err := validate(&f); err != nil {
		return originwire.ServerConfig{}, fmt.Errorf("config: validation failed for %q: %w", path, err)
	}

	return toServerConfig(f), nil
}

func applyDefaults(f *File) {
	if f.LogLevel == "" {
		f.LogLevel = "info"
	}
}

func validate(f *File) error {
	var errs []error

	if f.Port < 0 || f.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range", f.Port))
	}
	if (f.TLS.CertPath == "") != (f.TLS.KeyPath == "") {
		errs = append(errs, errors.New("tls_settings: cert_path and key_path must both be set or both be empty"))
	}
	if f.TLS.Port < 0 || f.TLS.Port > 65535 {
		errs = append(errs, fmt.Errorf("tls_settings: port %d out of range", f.TLS.Port))
	}
	if !validLogLevels[f.LogLevel] {
		errs = append(errs, fmt.Errorf("log_level %q must be one of: debug, info, warn, error", f.LogLevel))
	}

	return errors.Join(errs...)
}

func toServerConfig(f File) originwire.ServerConfig {
	return originwire.ServerConfig{
		Address: f.Address,
		Port:    f.Port,
		TLS: originwire.TLSSettings{
			CertPath:   f.TLS.CertPath,
			KeyPath:    f.TLS.KeyPath,
			Port:       f.TLS.Port,
			PeerVerify: f.TLS.PeerVerify,
		},
		ReuseAddress:   f.ReuseAddress,
		ReusePort:      f.ReusePort,
		MaxBodyLength:  f.MaxBodyLength,
		KeepAlive:      f.KeepAlive,
		TmpDir:         f.TmpDir,
		ReadBodyBuffer: f.ReadBodyBuffer,
		MaxWSPayload:   f.MaxWSPayload,
		ServerHeader:   f.ServerHeader,
	}.WithDefaults()
}

// ParseLogLevel returns level and true when it is one of the accepted
// log_level names, or "info" and false otherwise.
func ParseLogLevel(level string) (string, bool) {
	if validLogLevels[level] {
		return level, true
	}
	return "info", false
}
