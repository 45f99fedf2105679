//go:build linux

package virtualpad

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"sync"

	"golang.org/x/sys/unix"

	"github.com/j2dx/j2dx/device"
)

const driverName = "uinput"

// ioctl requests from linux/uinput.h.
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
	uiSetEvBit   = 0x40045564
	uiSetKeyBit  = 0x40045565
	uiSetAbsBit  = 0x40045567

	uinputMaxNameSize = 80
)

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// uinputUserDev is the legacy struct uinput_user_dev written before
// UI_DEV_CREATE.
type uinputUserDev struct {
	Name       [uinputMaxNameSize]byte
	ID         inputID
	EffectsMax uint32
	Absmax     [device.AbsCnt]int32
	Absmin     [device.AbsCnt]int32
	Absfuzz    [device.AbsCnt]int32
	Absflat    [device.AbsCnt]int32
}

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type uinputPad struct {
	mu     sync.Mutex
	fd     int
	closed bool
}

func openPad(opts Options, p *device.Profile) (Pad, error) {
	fd, err := unix.Open(opts.UinputPath, unix.O_WRONLY|unix.O_NONBLOCK|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrDriverUnavailable, opts.UinputPath, err)
	}
	if err := setupUinput(fd, p); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("%w: %s: %w", ErrDriverUnavailable, opts.UinputPath, err)
	}
	return &uinputPad{fd: fd}, nil
}

func setupUinput(fd int, p *device.Profile) error {
	if err := unix.IoctlSetInt(fd, uiSetEvBit, device.EvKey); err != nil {
		return fmt.Errorf("UI_SET_EVBIT EV_KEY: %w", err)
	}
	for _, k := range p.Keys {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(k)); err != nil {
			return fmt.Errorf("UI_SET_KEYBIT %s: %w", device.KeyName(k), err)
		}
	}
	if len(p.Axes) > 0 {
		if err := unix.IoctlSetInt(fd, uiSetEvBit, device.EvAbs); err != nil {
			return fmt.Errorf("UI_SET_EVBIT EV_ABS: %w", err)
		}
		for _, a := range p.Axes {
			if err := unix.IoctlSetInt(fd, uiSetAbsBit, int(a.Code)); err != nil {
				return fmt.Errorf("UI_SET_ABSBIT %s: %w", device.AbsName(a.Code), err)
			}
		}
	}

	dev, err := encodeUserDev(p)
	if err != nil {
		return err
	}
	if _, err := unix.Write(fd, dev); err != nil {
		return fmt.Errorf("write uinput_user_dev: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		return fmt.Errorf("UI_DEV_CREATE: %w", err)
	}
	return nil
}

func encodeUserDev(p *device.Profile) ([]byte, error) {
	var dev uinputUserDev
	copy(dev.Name[:uinputMaxNameSize-1], p.Name)
	dev.ID = inputID{
		Bustype: device.BusUSB,
		Vendor:  p.Vendor,
		Product: p.Product,
		Version: p.Version,
	}
	for _, a := range p.Axes {
		if int(a.Code) >= device.AbsCnt {
			return nil, fmt.Errorf("axis code %#x out of range", a.Code)
		}
		dev.Absmin[a.Code] = a.Min
		dev.Absmax[a.Code] = a.Max
		dev.Absfuzz[a.Code] = a.Fuzz
		dev.Absflat[a.Code] = a.Flat
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.NativeEndian, &dev); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeEvents serializes the event followed by SYN_REPORT so both reach the
// kernel in a single write.
func encodeEvents(typ uint16, code device.Code, value int32) ([]byte, error) {
	events := []inputEvent{
		{Type: typ, Code: uint16(code), Value: value},
		{Type: device.EvSyn, Code: device.SynReport},
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.NativeEndian, events); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (u *uinputPad) WriteButton(code device.Code, pressed bool) error {
	var v int32
	if pressed {
		v = 1
	}
	return u.write(device.EvKey, code, v)
}

func (u *uinputPad) WriteAxis(code device.Code, value int32) error {
	return u.write(device.EvAbs, code, value)
}

// WriteHat writes a hat axis; uinput hats are plain absolute axes.
func (u *uinputPad) WriteHat(code device.Code, value int32) error {
	return u.write(device.EvAbs, code, value)
}

func (u *uinputPad) write(typ uint16, code device.Code, value int32) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return ErrClosed
	}
	b, err := encodeEvents(typ, code, value)
	if err != nil {
		return err
	}
	if _, err := unix.Write(u.fd, b); err != nil {
		return fmt.Errorf("uinput write: %w", err)
	}
	return nil
}

func (u *uinputPad) Close() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.closed {
		return nil
	}
	u.closed = true
	derr := unix.IoctlSetInt(u.fd, uiDevDestroy, 0)
	cerr := unix.Close(u.fd)
	if derr != nil {
		return fmt.Errorf("UI_DEV_DESTROY: %w", derr)
	}
	return cerr
}
