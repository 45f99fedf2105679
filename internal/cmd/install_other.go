//go:build !linux && !windows

package cmd

import (
	"errors"
	"log/slog"
)

var errNoAutostart = errors.New("autostart is not supported on this platform")

func install(string, bool, *slog.Logger) error { return errNoAutostart }

func uninstall(*slog.Logger) error { return errNoAutostart }
