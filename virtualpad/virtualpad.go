// Package virtualpad creates OS-level virtual gamepads.
//
// On Linux pads are uinput devices; on Windows they are ViGEmBus targets
// driven through ViGEmClient.dll. Other platforms report
// ErrDriverUnavailable for every Open.
package virtualpad

import (
	"errors"

	"github.com/j2dx/j2dx/device"
)

var (
	// ErrDriverUnavailable is returned when the virtual HID driver cannot be
	// reached (missing /dev/uinput permissions, ViGEmBus not installed, ...).
	ErrDriverUnavailable = errors.New("virtual gamepad driver unavailable")
	// ErrClosed is returned by writes to a pad that has been closed.
	ErrClosed = errors.New("virtual pad closed")
)

// DefaultUinputPath is where the uinput character device usually lives.
const DefaultUinputPath = "/dev/uinput"

// Pad is one live virtual controller.
//
// Every write stages a single control and flushes it to the OS in the same
// call (uinput: event plus SYN_REPORT; ViGEm: full report update). Axis and
// hat values are in the 0..255 device range; backends with other widths
// convert. Callers serialize writes per pad.
type Pad interface {
	WriteButton(code device.Code, pressed bool) error
	WriteAxis(code device.Code, value int32) error
	WriteHat(code device.Code, value int32) error
	Close() error
}

// Opener creates pads for a controller profile.
type Opener interface {
	Open(p *device.Profile) (Pad, error)
}

// Options configures the system opener.
type Options struct {
	// UinputPath overrides the uinput device node (Linux only).
	UinputPath string
}

type systemOpener struct {
	opts Options
}

// NewOpener returns the Opener for the current platform.
func NewOpener(opts Options) Opener {
	if opts.UinputPath == "" {
		opts.UinputPath = DefaultUinputPath
	}
	return &systemOpener{opts: opts}
}

func (o *systemOpener) Open(p *device.Profile) (Pad, error) {
	return openPad(o.opts, p)
}

// Driver names the backend compiled into this binary.
func Driver() string { return driverName }
