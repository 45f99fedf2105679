// Package api implements the line based management API: one command per
// line "<path> [args...]", one JSON line back, errors as {"error": "..."}.
package api

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/j2dx/j2dx/internal/bridge"
)

// Server serves the management API for a bridge.
type Server struct {
	bridge *bridge.Bridge
	addr   string
	logger *slog.Logger
	router *Router
	config ServerConfig

	mu    sync.Mutex
	ln    net.Listener
	conns map[net.Conn]struct{}
	wg    sync.WaitGroup
}

// New creates a management API server. addr overrides config.Addr when set.
func New(b *bridge.Bridge, addr string, config ServerConfig, logger *slog.Logger) *Server {
	if addr == "" {
		addr = config.Addr
	}
	return &Server{
		bridge: b,
		addr:   addr,
		logger: logger,
		config: config,
		router: NewRouter(),
		conns:  make(map[net.Conn]struct{}),
	}
}

// Router returns the router so callers can register handlers.
func (a *Server) Router() *Router { return a.router }

// Bridge returns the bridge the API manages.
func (a *Server) Bridge() *bridge.Bridge { return a.bridge }

// Config returns the server configuration.
func (a *Server) Config() ServerConfig { return a.config }

// Addr returns the bound address once started.
func (a *Server) Addr() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ln != nil {
		return a.ln.Addr().String()
	}
	return a.addr
}

// Start listens on the configured address and serves in the background.
func (a *Server) Start() error {
	ln, err := net.Listen("tcp", a.addr)
	if err != nil {
		return err
	}
	a.mu.Lock()
	a.ln = ln
	a.mu.Unlock()
	a.logger.Info("API listening", "addr", ln.Addr().String())
	a.wg.Add(1)
	go a.serve(ln)
	return nil
}

// Close stops accepting, drops open connections and waits for handlers.
func (a *Server) Close() {
	a.mu.Lock()
	if a.ln != nil {
		_ = a.ln.Close()
	}
	for c := range a.conns {
		_ = c.Close()
	}
	a.mu.Unlock()
	a.wg.Wait()
}

func (a *Server) serve(ln net.Listener) {
	defer a.wg.Done()
	for {
		c, err := ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				a.logger.Info("API server stopped")
				return
			}
			a.logger.Error("API accept error", "error", err)
			return
		}
		a.mu.Lock()
		a.conns[c] = struct{}{}
		a.mu.Unlock()
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			a.handleConn(c)
			a.mu.Lock()
			delete(a.conns, c)
			a.mu.Unlock()
		}()
	}
}

func writeError(w io.Writer, msg string) {
	problemJSON, _ := json.Marshal(map[string]string{"error": msg})
	fmt.Fprintf(w, "%s\n", problemJSON)
}

func writeOK(w io.Writer, rest string) {
	fmt.Fprintf(w, "%s\n", rest)
}

func (a *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	connCtx, connCancel := context.WithCancel(context.Background())
	defer connCancel()

	connLogger := a.logger.With("remote", conn.RemoteAddr().String())
	r := bufio.NewReader(conn)
	for {
		if a.config.IdleTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(a.config.IdleTimeout))
		}
		line, err := r.ReadString('\n')
		if err != nil {
			if err != io.EOF && !errors.Is(err, net.ErrClosed) {
				connLogger.Debug("API connection ended", "error", err)
			}
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		connLogger.Debug("API command", "cmd", line)

		path, payload, _ := strings.Cut(line, " ")
		req := &Request{
			Ctx:     connCtx,
			Args:    strings.Fields(payload),
			Payload: strings.TrimSpace(payload),
		}
		h, params := a.router.Match(path)
		if h == nil {
			connLogger.Warn("API unknown path", "path", path)
			writeError(conn, "unknown path")
			continue
		}
		req.Params = params
		res := &Response{}
		if err := h(req, res, connLogger); err != nil {
			connLogger.Error("API handler error", "path", path, "error", err)
			writeError(conn, err.Error())
			continue
		}
		writeOK(conn, res.JSON)
	}
}
