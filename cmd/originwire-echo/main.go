// Command originwire-echo is a minimal demo server embedding the originwire
// library: it answers every plain HTTP request with a line describing the
// request, and every WebSocket text/binary message by echoing it back.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/coregate/originwire"
	"github.com/coregate/originwire/config"
)

func main() {
	var configPath string
	var addr string
	var port int
	var tlsPort int
	var certPath string
	var keyPath string
	var logLevel string

	flag.StringVar(&configPath, "config", "", "path to a YAML config file (overrides -addr/-port/-tls-port/-cert/-key when set; -log-level still applies)")
	flag.StringVar(&addr, "addr", "", "interface to bind (empty binds all interfaces)")
	flag.IntVar(&port, "port", originwire.DefaultPort, "TCP port to listen on")
	flag.IntVar(&tlsPort, "tls-port", originwire.DefaultTLSPort, "TCP port for the TLS listener, used only when -cert/-key are set")
	flag.StringVar(&certPath, "cert", "", "PEM certificate chain path; enables the TLS listener when set alongside -key")
	flag.StringVar(&keyPath, "key", "", "PEM private key path; enables the TLS listener when set alongside -cert")
	flag.StringVar(&logLevel, "log-level", "info", "log level: debug | info | warn | error")
	flag.Parse()

	logger := newLogger(logLevel)
	slog.SetDefault(logger)

	cfg, err := loadConfig(configPath, addr, port, tlsPort, certPath, keyPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	cfg.Logger = logger

	srv := originwire.NewServer(cfg, echoHandler(logger))

	logger.Info("originwire-echo starting",
		slog.String("addr", cfg.Address),
		slog.Int("port", cfg.Port),
		slog.Bool("keep_alive", cfg.KeepAlive),
		slog.Bool("tls_enabled", cfg.TLS.CertPath != ""),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := srv.Serve(ctx); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("originwire-echo exited cleanly")
}

func loadConfig(path, addr string, port, tlsPort int, certPath, keyPath string) (originwire.ServerConfig, error) {
	if path != "" {
		return config.Load(path)
	}
	return originwire.ServerConfig{
		Address: addr,
		Port:    port,
		TLS: originwire.TLSSettings{
			CertPath: certPath,
			KeyPath:  keyPath,
			Port:     tlsPort,
		},
	}.WithDefaults(), nil
}

// echoHandler returns a Handler that answers plain requests with a summary
// line and echoes every WebSocket message back to the sender unchanged.
func echoHandler(logger *slog.Logger) originwire.Handler {
	return func(ctx *originwire.HttpContext) {
		if ctx.WS != nil {
			frame := ctx.WS.InFrame
			if err := ctx.SendWSMessage(frame.Opcode, frame.Payload); err != nil {
				logger.Warn("websocket echo failed", slog.Any("error", err))
			}
			return
		}

		body := fmt.Sprintf("%s %s %s\n", ctx.Request.Method, ctx.Request.RawTarget, ctx.Request.Version)
		ctx.Response.Status = 200
		ctx.Response.Header.Set("Content-Type", "text/plain; charset=utf-8")
		ctx.Response.Body = []byte(body)
		if err := ctx.Send(); err != nil {
			logger.Warn("failed to send response", slog.Any("error", err))
		}
	}
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l}))
}
