package ws

import "time"

// ServerConfig configures the controller event transport.
type ServerConfig struct {
	Addr           string        `help:"Listen address for controller clients" default:":8013" env:"J2DX_ADDR" yaml:"addr" toml:"addr" json:"addr"`
	PingInterval   time.Duration `help:"Interval between keepalive pings" default:"25s" env:"J2DX_PING_INTERVAL" yaml:"ping-interval" toml:"ping-interval" json:"ping-interval"`
	PingTimeout    time.Duration `help:"Drop clients that stay silent this long after a ping" default:"60s" env:"J2DX_PING_TIMEOUT" yaml:"ping-timeout" toml:"ping-timeout" json:"ping-timeout"`
	MaxMessageSize int64         `help:"Largest accepted frame in bytes" default:"4096" env:"J2DX_MAX_MESSAGE_SIZE" yaml:"max-message-size" toml:"max-message-size" json:"max-message-size"`
}
