// Package originwire implements an HTTP/1.1 origin server library with
// integrated WebSocket upgrade support: a connection state machine that
// invokes a single application-supplied callback per request (or per
// inbound WebSocket message) instead of routing through a multiplexer.
//
// Grounded on bobbydeveaux-starbucks-mugs's cmd/server accept/shutdown
// shape, generalized from net/http.Server + a gRPC/REST mux to this
// engine's own listener and connio.Conn per accepted stream.
package originwire

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"github.com/coregate/originwire/internal/connio"
	"github.com/coregate/originwire/internal/wire"
)

// Server binds a plaintext listener (and, when TLS is configured, a second
// TLS listener) and dispatches every accepted connection to connio.Conn.
type Server struct {
	cfg     ServerConfig
	handler Handler

	mu        sync.Mutex
	listeners []net.Listener
	wg        sync.WaitGroup

	boundAddr atomic.Value // string
}

// NewServer returns a Server that will invoke handler for every request and
// WebSocket message, once Serve is called. Zero-valued fields in cfg are
// replaced with their documented defaults.
func NewServer(cfg ServerConfig, handler Handler) *Server {
	s := &Server{cfg: cfg.WithDefaults(), handler: handler}
	s.boundAddr.Store("")
	return s
}

// BoundAddr returns the address of the most recently bound listener, for
// diagnostics; it is empty until Serve has bound at least one listener.
func (s *Server) BoundAddr() string {
	return s.boundAddr.Load().(string)
}

// Serve binds the configured listener(s) and accepts connections until ctx
// is canceled, at which point it closes every listener and waits for every
// accepted connection to end before returning. Cancellation does not close
// accepted connections, so an idle keep-alive connection keeps Serve waiting
// until the client closes it.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Address, s.cfg.Port)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("originwire: listen %s: %w", addr, err)
	}
	s.registerListener(ln)
	s.log("listening", slog.String("addr", ln.Addr().String()))

	var tlsLn net.Listener
	if s.cfg.TLS.enabled() {
		tlsConf, err := s.cfg.TLS.load()
		if err != nil {
			ln.Close()
			return fmt.Errorf("originwire: load tls settings: %w", err)
		}
		tlsAddr := fmt.Sprintf("%s:%d", s.cfg.Address, s.cfg.TLS.Port)
		rawTLSLn, err := net.Listen("tcp", tlsAddr)
		if err != nil {
			ln.Close()
			return fmt.Errorf("originwire: listen %s: %w", tlsAddr, err)
		}
		tlsLn = tls.NewListener(rawTLSLn, tlsConf)
		s.registerListener(tlsLn)
		s.log("listening (tls)", slog.String("addr", tlsLn.Addr().String()))
	}

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		for _, l := range s.listeners {
			l.Close()
		}
		s.mu.Unlock()
	}()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.acceptLoop(ln)
	}()

	if tlsLn != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.acceptLoop(tlsLn)
		}()
	}

	s.wg.Wait()
	return nil
}

func (s *Server) registerListener(ln net.Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, ln)
	s.mu.Unlock()
	s.boundAddr.Store(ln.Addr().String())
}

// acceptLoop accepts connections on ln until it is closed (which Serve does
// on context cancellation), handing each off to a new goroutine.
func (s *Server) acceptLoop(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}

		var stream wire.Stream
		if tlsConn, ok := conn.(*tls.Conn); ok {
			stream = wire.NewTLSStream(tlsConn)
		} else {
			stream = wire.NewPlainStream(conn)
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.serveConn(stream)
		}()
	}
}

func (s *Server) serveConn(stream wire.Stream) {
	cfg := connio.Config{
		KeepAlive:      s.cfg.KeepAlive,
		MaxBodyBytes:   s.cfg.MaxBodyLength,
		ReadBufferSize: s.cfg.ReadBodyBuffer,
		TempDir:        s.cfg.TmpDir,
		ServerHeader:   s.cfg.ServerHeader,
		MaxWSPayload:   s.cfg.MaxWSPayload,
		Trace:          s.trace,
	}
	connio.New(stream, cfg).Serve(s.handler)
}

func (s *Server) log(msg string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Info(msg, args...)
	}
}

func (s *Server) trace(msg string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Debug(fmt.Sprintf(msg, args...))
	}
}
