package handler

import "github.com/j2dx/j2dx/internal/server/api"

// RegisterAll wires every management route onto srv's router.
func RegisterAll(srv *api.Server) {
	r := srv.Router()
	reg := srv.Bridge().Registry()
	r.Register("ping", Ping())
	r.Register("families", Families())
	r.Register("session/list", SessionList(reg))
	r.Register("session/{id}/close", SessionClose(reg))
}
