package api

import "time"

// ServerConfig configures the management API listener.
type ServerConfig struct {
	Addr        string        `help:"Management API listen address (empty disables it)" default:"127.0.0.1:8014" env:"J2DX_API_ADDR" yaml:"addr" toml:"addr" json:"addr"`
	IdleTimeout time.Duration `help:"Close API connections idle for this long" default:"30s" env:"J2DX_API_IDLE_TIMEOUT" yaml:"idle-timeout" toml:"idle-timeout" json:"idle-timeout"`
}
