//go:build windows && amd64

package virtualpad

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/device/ds4"
	"github.com/j2dx/j2dx/device/xbox360"
)

const driverName = "vigem"

// VIGEM_ERROR_NONE
const vigemErrorNone = 0x20000000

var (
	vigemDLL = windows.NewLazyDLL("ViGEmClient.dll")

	procAlloc           = vigemDLL.NewProc("vigem_alloc")
	procConnect         = vigemDLL.NewProc("vigem_connect")
	procTargetX360Alloc = vigemDLL.NewProc("vigem_target_x360_alloc")
	procTargetDS4Alloc  = vigemDLL.NewProc("vigem_target_ds4_alloc")
	procTargetAdd       = vigemDLL.NewProc("vigem_target_add")
	procTargetRemove    = vigemDLL.NewProc("vigem_target_remove")
	procTargetFree      = vigemDLL.NewProc("vigem_target_free")
	procX360Update      = vigemDLL.NewProc("vigem_target_x360_update")
	procDS4Update       = vigemDLL.NewProc("vigem_target_ds4_update")
)

// The bus connection is shared by every pad for the life of the process.
var (
	clientOnce sync.Once
	client     uintptr
	clientErr  error
)

func vigemClient() (uintptr, error) {
	clientOnce.Do(func() {
		if err := vigemDLL.Load(); err != nil {
			clientErr = fmt.Errorf("%w: %v", ErrDriverUnavailable, err)
			return
		}
		c, _, _ := procAlloc.Call()
		if c == 0 {
			clientErr = fmt.Errorf("%w: vigem_alloc failed", ErrDriverUnavailable)
			return
		}
		if r, _, _ := procConnect.Call(c); r != vigemErrorNone {
			clientErr = fmt.Errorf("%w: vigem_connect: %#x (is ViGEmBus installed?)", ErrDriverUnavailable, r)
			return
		}
		client = c
	})
	return client, clientErr
}

// ds4Report matches the C DS4_REPORT layout.
type ds4Report struct {
	ThumbLX, ThumbLY uint8
	ThumbRX, ThumbRY uint8
	Buttons          uint16
	Special          uint8
	TriggerL         uint8
	TriggerR         uint8
}

type vigemPad struct {
	mu     sync.Mutex
	client uintptr
	target uintptr
	family device.Family
	x360   xbox360.Report
	ds4    ds4.Report
	closed bool
}

func openPad(_ Options, p *device.Profile) (Pad, error) {
	c, err := vigemClient()
	if err != nil {
		return nil, err
	}

	pad := &vigemPad{client: c, family: p.Family}
	var alloc *windows.LazyProc
	switch p.Family {
	case device.FamilyXbox:
		alloc = procTargetX360Alloc
	case device.FamilyDS4:
		alloc = procTargetDS4Alloc
		pad.ds4 = ds4.NewReport()
	default:
		return nil, fmt.Errorf("%w: %s", device.ErrUnknownFamily, p.Family)
	}

	t, _, _ := alloc.Call()
	if t == 0 {
		return nil, fmt.Errorf("%w: target alloc failed", ErrDriverUnavailable)
	}
	if r, _, _ := procTargetAdd.Call(c, t); r != vigemErrorNone {
		procTargetFree.Call(t)
		return nil, fmt.Errorf("%w: vigem_target_add: %#x", ErrDriverUnavailable, r)
	}
	pad.target = t
	return pad, nil
}

func (v *vigemPad) WriteButton(code device.Code, pressed bool) error {
	return v.update(code, func() bool {
		if v.family == device.FamilyDS4 {
			return v.ds4.SetButton(code, pressed)
		}
		return v.x360.SetButton(code, pressed)
	})
}

func (v *vigemPad) WriteAxis(code device.Code, value int32) error {
	return v.update(code, func() bool {
		if v.family == device.FamilyDS4 {
			return v.ds4.SetAxis(code, value)
		}
		return v.x360.SetAxis(code, value)
	})
}

// WriteHat folds the hat axis into the DS4 d-pad nibble.
func (v *vigemPad) WriteHat(code device.Code, value int32) error {
	return v.WriteAxis(code, value)
}

func (v *vigemPad) update(code device.Code, stage func() bool) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return ErrClosed
	}
	if !stage() {
		return fmt.Errorf("%s: code %#x has no report field", v.family, code)
	}
	return v.flush()
}

// flush pushes the full report. On amd64 the by-value report argument is
// passed as a pointer to a copy.
func (v *vigemPad) flush() error {
	var r uintptr
	switch v.family {
	case device.FamilyXbox:
		rep := v.x360
		r, _, _ = procX360Update.Call(v.client, v.target, uintptr(unsafe.Pointer(&rep)))
	case device.FamilyDS4:
		rep := ds4Report{
			ThumbLX: v.ds4.ThumbLX, ThumbLY: v.ds4.ThumbLY,
			ThumbRX: v.ds4.ThumbRX, ThumbRY: v.ds4.ThumbRY,
			Buttons:  v.ds4.Buttons,
			Special:  v.ds4.Special,
			TriggerL: v.ds4.TriggerL,
			TriggerR: v.ds4.TriggerR,
		}
		r, _, _ = procDS4Update.Call(v.client, v.target, uintptr(unsafe.Pointer(&rep)))
	}
	if r != vigemErrorNone {
		return fmt.Errorf("vigem update: %#x", r)
	}
	return nil
}

func (v *vigemPad) Close() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return nil
	}
	v.closed = true
	r, _, _ := procTargetRemove.Call(v.client, v.target)
	procTargetFree.Call(v.target)
	if r != vigemErrorNone {
		return fmt.Errorf("vigem_target_remove: %#x", r)
	}
	return nil
}
