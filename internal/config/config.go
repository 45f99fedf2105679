// Package config defines the CLI structure and configuration for j2dx.
package config

import (
	"github.com/j2dx/j2dx/internal/cmd"
)

type Log struct {
	Level   string `help:"Log level: trace, debug, info, warn, error" default:"info" enum:"trace,debug,info,warn,error" env:"J2DX_LOG_LEVEL"`
	File    string `help:"Log file path (default: none; logs only to console)" type:"path" env:"J2DX_LOG_FILE"`
	RawFile string `help:"Raw transport frame log file path (default: none)" type:"path" env:"J2DX_LOG_RAW_FILE"`
}

// CLI is the root command structure for Kong CLI parsing.
type CLI struct {
	ConfigFile string `name:"config" help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"J2DX_CONFIG"`

	Log `embed:"" prefix:"log."`

	Server    cmd.Server    `cmd:"" help:"Start the controller bridge" default:"withargs"`
	Config    cmd.Config    `cmd:"" help:"Print the effective server configuration"`
	Setup     cmd.Setup     `cmd:"" help:"Check the virtual controller driver"`
	Install   cmd.Install   `cmd:"" help:"Start the server automatically on login"`
	Uninstall cmd.Uninstall `cmd:"" help:"Remove the login autostart entry"`
}
