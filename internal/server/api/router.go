package api

import (
	"context"
	"log/slog"
	"net/url"
	"slices"
	"strings"
	"sync"
)

// Request is one parsed command line.
type Request struct {
	Ctx    context.Context
	Params map[string]string
	Args   []string
	// Payload is the raw text after the path, untrimmed inside.
	Payload string
}

// Response carries the JSON line a handler produced. Empty means a bare
// newline is written.
type Response struct {
	JSON string
}

// HandlerFunc handles one command. A returned error is written to the client
// as {"error": "..."}.
type HandlerFunc func(req *Request, res *Response, logger *slog.Logger) error

type route struct {
	pattern string
	segs    []string
	h       HandlerFunc
}

// Router matches slash separated paths with {param} placeholders.
// Literal segments match case-insensitively; parameters keep their case.
type Router struct {
	mu     sync.RWMutex
	routes []route
}

func NewRouter() *Router { return &Router{} }

// Register adds a handler for pattern, replacing an earlier registration of
// the same pattern.
func (r *Router) Register(pattern string, h HandlerFunc) {
	pattern = strings.Trim(pattern, "/")
	rt := route{pattern: pattern, segs: strings.Split(pattern, "/"), h: h}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.routes {
		if r.routes[i].pattern == pattern {
			r.routes[i] = rt
			return
		}
	}
	r.routes = append(r.routes, rt)
}

// Match returns the handler for path and the extracted parameters, or nil.
func (r *Router) Match(path string) (HandlerFunc, map[string]string) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, rt := range r.routes {
		if params, ok := rt.match(segs); ok {
			return rt.h, params
		}
	}
	return nil, nil
}

func (rt route) match(segs []string) (map[string]string, bool) {
	if len(segs) != len(rt.segs) {
		return nil, false
	}
	params := map[string]string{}
	for i, s := range rt.segs {
		if len(s) > 2 && s[0] == '{' && s[len(s)-1] == '}' {
			v, err := url.PathUnescape(segs[i])
			if err != nil || v == "" {
				return nil, false
			}
			params[s[1:len(s)-1]] = v
			continue
		}
		if !strings.EqualFold(s, segs[i]) {
			return nil, false
		}
	}
	return params, true
}

// Routes lists the registered patterns in sorted order.
func (r *Router) Routes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.routes))
	for _, rt := range r.routes {
		out = append(out, rt.pattern)
	}
	slices.Sort(out)
	return out
}
