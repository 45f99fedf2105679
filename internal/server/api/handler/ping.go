package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/j2dx/j2dx/apitypes"
	"github.com/j2dx/j2dx/internal/buildinfo"
	"github.com/j2dx/j2dx/internal/server/api"
)

// ServerName identifies this server in ping responses.
const ServerName = "j2dx"

// Ping returns a handler for the "ping" endpoint.
// It provides a minimal identity + version response.
func Ping() api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		ver, _, _ := buildinfo.Get()
		b, err := json.Marshal(apitypes.PingResponse{Server: ServerName, Version: ver})
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
