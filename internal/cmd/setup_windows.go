//go:build windows

package cmd

import (
	"errors"
	"log/slog"

	"golang.org/x/sys/windows/registry"
)

const vigemBusKeyPath = `SYSTEM\CurrentControlSet\Services\ViGEmBus`

func checkDriver(_ *Setup, logger *slog.Logger) error {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, vigemBusKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return errors.New("ViGEmBus is not installed, get it from https://github.com/nefarius/ViGEmBus/releases")
		}
		return err
	}
	defer key.Close()

	if path, _, err := key.GetStringValue("ImagePath"); err == nil {
		logger.Debug("Found ViGEmBus service", "image", path)
	}
	return nil
}
