// Package session owns the virtual device of every connection that asked for
// a controller and maps canonical input events onto it.
package session

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/virtualpad"
)

// ErrClosed is returned by Send on a session that has been closed.
var ErrClosed = errors.New("session closed")

// Session is one connection's virtual controller.
//
// All pad access happens under mu, so writes to one device are applied in
// arrival order and never overlap with Close.
type Session struct {
	id      string
	remote  string
	ctrl    device.Controller
	created time.Time
	logger  *slog.Logger

	mu     sync.Mutex
	pad    virtualpad.Pad
	closed bool

	events atomic.Uint64
}

func newSession(id, remote string, ctrl device.Controller, pad virtualpad.Pad, logger *slog.Logger) *Session {
	return &Session{
		id:      id,
		remote:  remote,
		ctrl:    ctrl,
		pad:     pad,
		created: time.Now(),
		logger: logger.With(
			"session", id,
			"remote", remote,
			"family", ctrl.Profile().Family,
		),
	}
}

func (s *Session) ID() string                    { return s.id }
func (s *Session) Remote() string                { return s.remote }
func (s *Session) Controller() device.Controller { return s.ctrl }
func (s *Session) Family() device.Family         { return s.ctrl.Profile().Family }
func (s *Session) Created() time.Time            { return s.created }

// Events is the number of events written to the device.
func (s *Session) Events() uint64 { return s.events.Load() }

// Closed reports whether the device has been released.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.pad.Close()
}
