package handler

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/j2dx/j2dx/apitypes"
	"github.com/j2dx/j2dx/internal/server/api"
	"github.com/j2dx/j2dx/internal/session"
)

// ErrSessionNotFound is reported by session/{id}/close for unknown ids.
var ErrSessionNotFound = errors.New("session not found")

// SessionList returns every session that owns a virtual controller.
func SessionList(reg *session.Registry) api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		out := apitypes.SessionListResponse{Sessions: []apitypes.Session{}}
		for _, s := range reg.List() {
			out.Sessions = append(out.Sessions, apitypes.Session{
				ID:      s.ID(),
				Remote:  s.Remote(),
				Family:  string(s.Family()),
				Name:    s.Controller().Profile().Name,
				Created: s.Created().UTC(),
				Events:  s.Events(),
			})
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}

// SessionClose releases one session's controller. The connection itself
// stays open; the client may request a new controller.
func SessionClose(reg *session.Registry) api.HandlerFunc {
	return func(req *api.Request, res *api.Response, logger *slog.Logger) error {
		id := req.Params["id"]
		if _, ok := reg.Get(id); !ok {
			return ErrSessionNotFound
		}
		if err := reg.Close(id); err != nil {
			return err
		}
		logger.Info("Session closed via API", "session", id)
		b, err := json.Marshal(apitypes.SessionCloseResponse{ID: id})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
