//go:build windows

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"golang.org/x/sys/windows/registry"
)

const (
	runKeyPath  = `Software\Microsoft\Windows\CurrentVersion\Run`
	runValueKey = "j2dx"
)

func install(exe string, running bool, logger *slog.Logger) error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer key.Close()

	if prev, _, err := key.GetStringValue(runValueKey); err == nil {
		if old := autostartExecutable(prev); old != "" && !strings.EqualFold(old, exe) {
			logger.Warn("Replacing autostart entry of another j2dx build", "previous", old)
		}
	}
	if err := key.SetStringValue(runValueKey, autostartCommand(exe)); err != nil {
		return err
	}
	logger.Info("Registered j2dx server for autostart", "exe", exe)

	if running {
		logger.Info("A j2dx server is already running, the entry applies from the next login")
		return nil
	}
	if err := exec.Command(exe, "server").Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	return nil
}

func uninstall(logger *slog.Logger) error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if errors.Is(err, registry.ErrNotExist) {
		logger.Info("No autostart entry installed")
		return nil
	}
	if err != nil {
		return err
	}
	defer key.Close()

	if err := key.DeleteValue(runValueKey); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			logger.Info("No autostart entry installed")
			return nil
		}
		return err
	}
	logger.Info("Removed j2dx autostart entry")
	return nil
}
