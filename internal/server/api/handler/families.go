package handler

import (
	"encoding/json"
	"log/slog"

	"github.com/j2dx/j2dx/apitypes"
	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/internal/server/api"
)

// Families lists the registered controller families.
func Families() api.HandlerFunc {
	return func(_ *api.Request, res *api.Response, _ *slog.Logger) error {
		out := apitypes.FamiliesResponse{Families: []string{}}
		for _, f := range device.Families() {
			out.Families = append(out.Families, string(f))
		}
		b, err := json.Marshal(out)
		if err != nil {
			return err
		}
		res.JSON = string(b)
		return nil
	}
}
