//go:build linux

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

const (
	udevRuleFile = "99-j2dx-uinput.rules"
	udevRule     = `KERNEL=="uinput", SUBSYSTEM=="misc", GROUP="input", MODE="0660", OPTIONS+="static_node=uinput"` + "\n"
)

func checkDriver(s *Setup, logger *slog.Logger) error {
	if s.WriteUdevRule {
		path, err := writeUdevRule(s.UdevRulesDir)
		if err != nil {
			return err
		}
		logger.Info("Wrote udev rule", "file", path)
		logger.Info("Reload with 'udevadm control --reload-rules && udevadm trigger' and add your user to the input group")
	}
	return checkUinput(s.UinputPath)
}

func checkUinput(path string) error {
	fi, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s does not exist, load the uinput kernel module ('modprobe uinput')", path)
		}
		return err
	}
	if fi.Mode()&os.ModeCharDevice == 0 {
		return fmt.Errorf("%s is not a character device", path)
	}
	if err := unix.Access(path, unix.W_OK); err != nil {
		return fmt.Errorf("%s is not writable (%v), run 'j2dx setup --write-udev-rule' as root", path, err)
	}
	return nil
}

func writeUdevRule(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, udevRuleFile)
	if err := os.WriteFile(path, []byte(udevRule), 0o644); err != nil {
		return "", err
	}
	return path, nil
}
