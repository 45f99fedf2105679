package cmd

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/j2dx/j2dx/apiclient"
	"github.com/j2dx/j2dx/internal/server/api/handler"
)

// Install registers the server to start on login.
type Install struct {
	APIAddr string `help:"Management API address used to detect a running server" default:"127.0.0.1:8014" env:"J2DX_API_ADDR"`
}

// Uninstall removes the login autostart entry.
type Uninstall struct {
	APIAddr string `help:"Management API address used to detect a running server" default:"127.0.0.1:8014" env:"J2DX_API_ADDR"`
}

var errGoRun = errors.New("cannot change autostart from 'go run'")

func (c *Install) Run(logger *slog.Logger) error {
	exe, err := installableExecutable()
	if err != nil {
		return err
	}
	return install(exe, serverRunning(c.APIAddr), logger)
}

func (c *Uninstall) Run(logger *slog.Logger) error {
	if _, err := installableExecutable(); err != nil {
		return err
	}
	if err := uninstall(logger); err != nil {
		return err
	}
	if serverRunning(c.APIAddr) {
		logger.Info("A j2dx server is still running until it is stopped", "api", c.APIAddr)
	}
	return nil
}

func installableExecutable() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	if exe, err = filepath.Abs(exe); err != nil {
		return "", err
	}
	if strings.Contains(exe, "go-build") {
		return "", errGoRun
	}
	return exe, nil
}

// autostartCommand is the command line registered to run on login.
func autostartCommand(exe string) string {
	return `"` + exe + `" server`
}

// autostartExecutable extracts the executable from a registered command
// line. Unquoted command lines are split at the first space.
func autostartExecutable(command string) string {
	command = strings.TrimSpace(command)
	if rest, ok := strings.CutPrefix(command, `"`); ok {
		exe, _, _ := strings.Cut(rest, `"`)
		command = exe
	} else if exe, _, ok := strings.Cut(command, " "); ok {
		command = exe
	}
	if command == "" {
		return ""
	}
	return filepath.Clean(command)
}

// serverRunning reports whether a j2dx management API answers at addr.
func serverRunning(addr string) bool {
	if addr == "" {
		return false
	}
	c := apiclient.NewWithConfig(addr, &apiclient.Config{
		DialTimeout:  500 * time.Millisecond,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	})
	resp, err := c.Ping()
	return err == nil && resp.Server == handler.ServerName
}
