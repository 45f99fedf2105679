//go:build !linux && !windows

package cmd

import (
	"errors"
	"log/slog"
)

func checkDriver(*Setup, *slog.Logger) error {
	return errors.New("no virtual controller driver on this platform")
}
