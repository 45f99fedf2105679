//go:build !linux && !(windows && amd64)

package virtualpad

import (
	"fmt"
	"runtime"

	"github.com/j2dx/j2dx/device"
)

const driverName = "none"

func openPad(_ Options, p *device.Profile) (Pad, error) {
	return nil, fmt.Errorf("%w: no virtual gamepad backend for %s/%s", ErrDriverUnavailable, runtime.GOOS, runtime.GOARCH)
}
