package cmd

import (
	"fmt"
	"log/slog"

	"github.com/j2dx/j2dx/virtualpad"
)

// Setup checks that the virtual controller driver is usable.
type Setup struct {
	UinputPath    string `help:"uinput device node to check (Linux)" default:"/dev/uinput" type:"path" env:"J2DX_UINPUT_PATH"`
	WriteUdevRule bool   `help:"Write a udev rule granting the input group access to uinput (Linux, needs root)"`
	UdevRulesDir  string `help:"Directory the udev rule is written to" default:"/etc/udev/rules.d" type:"path" hidden:""`
}

// Run is called by Kong when the setup command is executed.
func (s *Setup) Run(logger *slog.Logger) error {
	logger.Info("Checking virtual controller driver", "driver", virtualpad.Driver())
	if err := checkDriver(s, logger); err != nil {
		return fmt.Errorf("%w: %v", virtualpad.ErrDriverUnavailable, err)
	}
	logger.Info("Virtual controller driver is ready")
	return nil
}
