package session

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/virtualpad"
)

// Registry maps session ids to at most one live Session.
type Registry struct {
	opener virtualpad.Opener
	logger *slog.Logger

	mu       sync.RWMutex
	sessions map[string]*Session
	// pending holds ids whose device is still opening; true once a Close
	// arrived for them.
	pending map[string]bool

	// creating collapses concurrent creates for one id into a single open.
	creating singleflight.Group
}

func NewRegistry(opener virtualpad.Opener, logger *slog.Logger) *Registry {
	return &Registry{
		opener:   opener,
		logger:   logger,
		sessions: make(map[string]*Session),
		pending:  make(map[string]bool),
	}
}

// Create returns the session for id, opening a virtual device for ctrl if
// there is none yet. An existing session is returned unchanged, even when
// ctrl names another family. A Close for id that arrives while the device
// is still opening wins: the device is released and ErrClosed returned.
func (r *Registry) Create(id, remote string, ctrl device.Controller) (*Session, error) {
	if s, ok := r.Get(id); ok {
		return s, nil
	}
	v, err, _ := r.creating.Do(id, func() (any, error) {
		// a create that finished between Get and Do has already inserted
		r.mu.Lock()
		if s, ok := r.sessions[id]; ok {
			r.mu.Unlock()
			return s, nil
		}
		r.pending[id] = false
		r.mu.Unlock()

		pad, err := r.opener.Open(ctrl.Profile())

		r.mu.Lock()
		cancelled := r.pending[id]
		delete(r.pending, id)
		if err != nil {
			r.mu.Unlock()
			return nil, fmt.Errorf("open %s: %w", ctrl.Profile().Name, err)
		}
		s := newSession(id, remote, ctrl, pad, r.logger)
		if !cancelled {
			r.sessions[id] = s
		}
		r.mu.Unlock()

		if cancelled {
			if err := s.close(); err != nil {
				s.logger.Error("Failed to release cancelled controller", "error", err)
			}
			s.logger.Info("Virtual controller closed while opening")
			return nil, fmt.Errorf("create %s: %w", id, ErrClosed)
		}
		s.logger.Info("Virtual controller created", "name", ctrl.Profile().Name)
		return s, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Session), nil
}

// Get looks up a session without creating one.
func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Close releases and forgets the session for id. A create still opening its
// device is cancelled. Other unknown ids are a no-op.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	if _, opening := r.pending[id]; opening {
		r.pending[id] = true
	}
	r.mu.Unlock()
	if !ok {
		return nil
	}
	if err := s.close(); err != nil {
		return fmt.Errorf("close session %s: %w", id, err)
	}
	s.logger.Info("Virtual controller removed", "events", s.Events())
	return nil
}

// CloseAll releases every session, e.g. on shutdown.
func (r *Registry) CloseAll() {
	for _, s := range r.List() {
		if err := r.Close(s.ID()); err != nil {
			r.logger.Error("Failed to close session", "session", s.ID(), "error", err)
		}
	}
}

// List returns the live sessions ordered by creation time.
func (r *Registry) List() []*Session {
	r.mu.RLock()
	out := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		out = append(out, s)
	}
	r.mu.RUnlock()
	slices.SortFunc(out, func(a, b *Session) int {
		if c := a.created.Compare(b.created); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})
	return out
}

// Len is the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
