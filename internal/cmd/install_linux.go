//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const unitName = "j2dx.service"

func userUnitPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "systemd", "user", unitName), nil
}

func unitFile(exePath string) string {
	return fmt.Sprintf(`[Unit]
Description=j2dx controller bridge
After=network-online.target

[Service]
ExecStart=%s
Restart=on-failure

[Install]
WantedBy=default.target
`, autostartCommand(exePath))
}

func install(exePath string, running bool, logger *slog.Logger) error {
	path, err := userUnitPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, []byte(unitFile(exePath)), 0o644); err != nil {
		return err
	}
	if err := systemctl("daemon-reload"); err != nil {
		return err
	}
	if running {
		logger.Info("A j2dx server is already running, the unit starts from the next login")
		if err := systemctl("enable", unitName); err != nil {
			return err
		}
	} else if err := systemctl("enable", "--now", unitName); err != nil {
		return err
	}
	logger.Info("Registered j2dx server for autostart", "unit", path, "exe", exePath)
	return nil
}

func uninstall(logger *slog.Logger) error {
	path, err := userUnitPath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		logger.Info("No autostart entry installed", "unit", path)
		return nil
	}
	if err := systemctl("disable", "--now", unitName); err != nil {
		logger.Warn("Failed to disable unit", "unit", unitName, "error", err)
	}
	if err := os.Remove(path); err != nil {
		return err
	}
	logger.Info("Removed j2dx autostart entry", "unit", path)
	return systemctl("daemon-reload")
}

func systemctl(args ...string) error {
	out, err := exec.Command("systemctl", append([]string{"--user"}, args...)...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("systemctl %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}
