// Package bridge is the surface the event transport drives: one call per
// connection lifecycle step. Only controller creation can fail back to the
// transport; everything else is absorbed and logged.
package bridge

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/internal/compat"
	"github.com/j2dx/j2dx/internal/session"
)

const unknownRemote = "unknown"

type Bridge struct {
	registry *session.Registry
	logger   *slog.Logger

	mu      sync.RWMutex
	clients map[string]string // session id -> remote address
}

func New(registry *session.Registry, logger *slog.Logger) *Bridge {
	return &Bridge{
		registry: registry,
		logger:   logger,
		clients:  make(map[string]string),
	}
}

// Registry exposes the session registry for management surfaces.
func (b *Bridge) Registry() *session.Registry { return b.registry }

// OnConnect records a new connection. version is informational only.
func (b *Bridge) OnConnect(id, remote string, version compat.Version) {
	if remote == "" {
		remote = unknownRemote
	}
	b.mu.Lock()
	b.clients[id] = remote
	b.mu.Unlock()
	if version == compat.VersionUnknown {
		b.logger.Info("Client connected, unknown protocol version, assuming latest", "remote", remote)
	} else {
		b.logger.Info("Client connected", "remote", remote, "protocol", version)
	}
	b.logger.Debug("Client session", "remote", remote, "session", id)
}

// OnCreateController ensures the connection has a virtual controller of the
// given family. A repeated request returns the existing controller.
// Errors are device.ErrUnknownFamily or wrap virtualpad.ErrDriverUnavailable.
func (b *Bridge) OnCreateController(id, family string) (*session.Session, error) {
	ctrl, err := device.Lookup(family)
	if err != nil {
		b.logger.Warn("Controller request rejected", "session", id, "family", family, "error", err)
		return nil, err
	}
	remote := b.Remote(id)
	s, err := b.registry.Create(id, remote, ctrl)
	if err != nil {
		b.logger.Error("Failed to create virtual controller", "session", id, "remote", remote, "family", family, "error", err)
		return nil, fmt.Errorf("create %s controller: %w", family, err)
	}
	return s, nil
}

// OnInput normalizes one input message and forwards it to the connection's
// controller. Input before a controller exists is dropped.
func (b *Bridge) OnInput(id string, args []json.RawMessage) {
	ev, err := compat.Normalize(args)
	if err != nil {
		b.logger.Warn("Received invalid input format", "session", id, "error", err)
		return
	}
	s, ok := b.registry.Get(id)
	if !ok {
		b.logger.Debug("Input without controller discarded", "session", id, "key", ev.Key)
		return
	}
	b.logger.Debug("Input", "remote", s.Remote(), "key", ev.Key, "value", ev.Value)
	_ = s.Send(ev)
}

// OnDisconnect releases the connection's controller, if any.
func (b *Bridge) OnDisconnect(id string) {
	if err := b.registry.Close(id); err != nil {
		b.logger.Error("Failed to close virtual controller", "session", id, "error", err)
	}
	b.mu.Lock()
	remote, ok := b.clients[id]
	delete(b.clients, id)
	b.mu.Unlock()
	if !ok {
		remote = unknownRemote
	}
	b.logger.Info("Client disconnected", "remote", remote)
}

// Remote returns the address recorded for a connection.
func (b *Bridge) Remote(id string) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if r, ok := b.clients[id]; ok {
		return r
	}
	return unknownRemote
}

// Clients is the number of connected clients.
func (b *Bridge) Clients() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}
