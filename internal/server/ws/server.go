// Package ws carries controller clients over WebSocket.
//
// Each event is a JSON array ["<event>", args...]. The events are "xbox" and
// "ds4" (create a controller) and "input" (one control change). The server
// only ever answers controller requests, with ["controller", {"family": ...}]
// or ["error", {"error": ...}].
//
// On /ws the arrays are the text frames themselves. On /socket.io/ they are
// carried in Engine.IO/Socket.IO packets (EIO=3 and EIO=4), so Socket.IO
// clients connect when they use the websocket transport; HTTP long polling
// is refused.
package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/internal/bridge"
	"github.com/j2dx/j2dx/internal/compat"
	"github.com/j2dx/j2dx/internal/log"
)

const (
	EventInput      = "input"
	EventController = "controller"
	EventError      = "error"

	sendBufferSize = 16
	writeWait      = 10 * time.Second
)

// Server accepts controller clients and feeds their events to a bridge.
type Server struct {
	bridge   *bridge.Bridge
	config   ServerConfig
	logger   *slog.Logger
	raw      log.RawLogger
	upgrader websocket.Upgrader

	mu       sync.Mutex
	clients  map[*client]struct{}
	shutdown bool
	wg       sync.WaitGroup
}

func New(b *bridge.Bridge, config ServerConfig, logger *slog.Logger, raw log.RawLogger) *Server {
	if config.PingInterval <= 0 {
		config.PingInterval = 25 * time.Second
	}
	if config.PingTimeout <= 0 {
		config.PingTimeout = 60 * time.Second
	}
	if config.MaxMessageSize <= 0 {
		config.MaxMessageSize = 4096
	}
	return &Server{
		bridge: b,
		config: config,
		logger: logger,
		raw:    raw,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// controller pages are served from arbitrary hosts
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// Handler returns the HTTP routes: the WebSocket endpoints and /status.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/socket.io/", s.handleWebSocket)
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("GET /status", s.handleStatus)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then disconnects every
// client and returns.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	s.logger.Info("Listening for controllers", "addr", ln.Addr().String())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := srv.Shutdown(shutdownCtx)
	s.closeAll()
	s.wg.Wait()
	if errors.Is(err, http.ErrServerClosed) {
		err = nil
	}
	return err
}

// Clients is the number of connected WebSocket clients.
func (s *Server) Clients() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.clients)
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "clients": s.bridge.Clients()})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	f, ok := framingFor(r.URL.Path, r.URL.RawQuery)
	if !ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"code":0,"message":"Transport unknown"}`))
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}
	c := &client{
		srv:     s,
		id:      uuid.NewString(),
		remote:  remoteAddr(r),
		conn:    conn,
		framing: f,
		send:    make(chan []byte, sendBufferSize),
	}
	if !s.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"))
		_ = conn.Close()
		return
	}

	version := f.version
	if !f.socketIO() {
		version = compat.DetectVersion(r.URL.RawQuery)
	}
	s.bridge.OnConnect(c.id, c.remote, version)

	for _, pkt := range f.open(c.id, s.config) {
		c.send <- pkt
	}
	go c.writePump()
	c.readPump()
}

// register tracks a new client; it fails once shutdown has begun.
func (s *Server) register(c *client) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.shutdown {
		return false
	}
	s.wg.Add(1)
	s.clients[c] = struct{}{}
	return true
}

func (s *Server) unregister(c *client) {
	s.mu.Lock()
	_, existed := s.clients[c]
	delete(s.clients, c)
	s.mu.Unlock()
	if existed {
		close(c.send)
		s.bridge.OnDisconnect(c.id)
		s.wg.Done()
	}
}

func (s *Server) closeAll() {
	s.mu.Lock()
	s.shutdown = true
	clients := make([]*client, 0, len(s.clients))
	for c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.Unlock()
	for _, c := range clients {
		_ = c.conn.Close()
	}
}

// remoteAddr prefers the first X-Forwarded-For hop over the TCP peer.
func remoteAddr(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

type client struct {
	srv     *Server
	id      string
	remote  string
	conn    *websocket.Conn
	framing framing
	send    chan []byte
}

func (c *client) readPump() {
	defer func() {
		c.srv.unregister(c)
		_ = c.conn.Close()
	}()

	cfg := c.srv.config
	c.conn.SetReadLimit(cfg.MaxMessageSize)
	deadline := func() { _ = c.conn.SetReadDeadline(time.Now().Add(cfg.PingInterval + cfg.PingTimeout)) }
	deadline()
	c.conn.SetPongHandler(func(string) error {
		deadline()
		return nil
	})

	for {
		typ, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseNoStatusReceived) {
				c.srv.logger.Debug("WebSocket read error", "session", c.id, "error", err)
			}
			return
		}
		deadline()
		if typ != websocket.TextMessage {
			continue
		}
		c.srv.raw.Log(log.In, c.id, msg)
		event, replies, closed := c.framing.decode(c.id, msg)
		for _, r := range replies {
			c.queue(r)
		}
		if closed {
			return
		}
		if event != nil {
			c.handleFrame(event)
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.srv.config.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
			c.srv.raw.Log(log.Out, c.id, msg)
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
			if hb := c.framing.heartbeat(); hb != nil {
				if err := c.conn.WriteMessage(websocket.TextMessage, hb); err != nil {
					return
				}
			}
		}
	}
}

func (c *client) handleFrame(msg []byte) {
	var frame []json.RawMessage
	if err := json.Unmarshal(msg, &frame); err != nil || len(frame) == 0 {
		c.srv.logger.Warn("Received invalid frame", "session", c.id, "remote", c.remote)
		return
	}
	var event string
	if err := json.Unmarshal(frame[0], &event); err != nil {
		c.srv.logger.Warn("Received frame without event name", "session", c.id, "remote", c.remote)
		return
	}

	switch event {
	case string(device.FamilyXbox), string(device.FamilyDS4):
		s, err := c.srv.bridge.OnCreateController(c.id, event)
		if err != nil {
			c.emit(EventError, map[string]string{"error": err.Error()})
			return
		}
		c.emit(EventController, map[string]string{"family": string(s.Family())})
	case EventInput:
		c.srv.bridge.OnInput(c.id, frame[1:])
	default:
		c.srv.logger.Debug("Unhandled event", "session", c.id, "event", event)
	}
}

// emit queues a reply; replies are dropped when the client is not reading.
func (c *client) emit(event string, payload any) {
	b, err := json.Marshal([]any{event, payload})
	if err != nil {
		c.srv.logger.Error("Failed to encode reply", "event", event, "error", err)
		return
	}
	if !c.queue(c.framing.encode(b)) {
		c.srv.logger.Warn("Client send buffer full, reply dropped", "session", c.id, "event", event)
	}
}

// queue hands a frame to the write pump without blocking.
func (c *client) queue(frame []byte) bool {
	select {
	case c.send <- frame:
		return true
	default:
		return false
	}
}
