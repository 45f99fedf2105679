// Package xbox360 is the Xbox 360 controller family ("xbox").
//
// Sticks and triggers are 0..255 absolute axes. The vertical sticks are
// inverted: clients send up-positive values, the device reports down-positive.
package xbox360

import (
	"fmt"

	"github.com/j2dx/j2dx/device"
)

func init() {
	device.Register(Controller{})
}

var profile = &device.Profile{
	Family:  device.FamilyXbox,
	Name:    "Xbox 360 Controller",
	Vendor:  0x045e,
	Product: 0x028e,
	Version: 0x0110,
	Keys: []device.Code{
		device.BtnY,
		device.BtnX,
		device.BtnA,
		device.BtnB,
		device.BtnThumbL,
		device.BtnThumbR,
		device.BtnSelect,
		device.BtnStart,
		device.BtnMode,
		device.BtnDpadUp,
		device.BtnDpadDown,
		device.BtnDpadLeft,
		device.BtnDpadRight,
		device.BtnTL,
		device.BtnTL2,
		device.BtnTR,
		device.BtnTR2,
	},
	Axes: []device.AbsInfo{
		{Code: device.AbsX, Max: device.AxisMax},
		{Code: device.AbsY, Max: device.AxisMax},
		{Code: device.AbsRX, Max: device.AxisMax},
		{Code: device.AbsRY, Max: device.AxisMax},
		{Code: device.AbsZ, Max: device.AxisMax},
		{Code: device.AbsRZ, Max: device.AxisMax},
	},
	Buttons: map[string]device.Code{
		"main-button":       device.BtnMode,
		"start-button":      device.BtnStart,
		"select-button":     device.BtnSelect,
		"left-stick-press":  device.BtnThumbL,
		"right-stick-press": device.BtnThumbR,
		"left-bumper":       device.BtnTL,
		"right-bumper":      device.BtnTR,
		"zl-button":         device.BtnTL2,
		"zr-button":         device.BtnTR2,
		"dpad-up":           device.BtnDpadUp,
		"dpad-down":         device.BtnDpadDown,
		"dpad-left":         device.BtnDpadLeft,
		"dpad-right":        device.BtnDpadRight,
		"y-button":          device.BtnY,
		"x-button":          device.BtnX,
		"a-button":          device.BtnA,
		"b-button":          device.BtnB,
	},
	Sticks: map[string]device.Code{
		"left-stick-X":  device.AbsX,
		"left-stick-Y":  device.AbsY,
		"right-stick-X": device.AbsRX,
		"right-stick-Y": device.AbsRY,
		"left-trigger":  device.AbsZ,
		"right-trigger": device.AbsRZ,
	},
}

// Controller implements device.Controller for the Xbox 360 family.
type Controller struct{}

func (Controller) Profile() *device.Profile { return profile }

func (Controller) Resolve(key string) device.Target { return profile.Resolve(key) }

func (Controller) Emit(t device.Target, v device.Value) (int32, error) {
	switch t.Kind {
	case device.KindButton:
		return device.ButtonValue(v), nil
	case device.KindAxis:
		return AxisValue(t.Code, v)
	default:
		return 0, fmt.Errorf("%w: %s control on %s", device.ErrUnknownKey, t.Kind, profile.Name)
	}
}

// AxisValue converts a stick or trigger value to the 0..255 device range.
//
// Vertical sticks: 255 - round(127*(v+1)).
// Everything else: round(127*(v+1)) for floats; integers are taken as
// already scaled and passed through (clamped to the axis range).
func AxisValue(code device.Code, v device.Value) (int32, error) {
	n, err := device.Analog(v)
	if err != nil {
		return 0, err
	}
	if vertical(code) {
		return device.AxisMax - device.Scale(device.AxisHalf*(n+1)), nil
	}
	if i, ok := v.IntValue(); ok {
		return int32(device.Clamp[int64](i, device.AxisMin, device.AxisMax)), nil
	}
	return device.Scale(device.AxisHalf * (n + 1)), nil
}

func vertical(code device.Code) bool {
	return code == device.AbsY || code == device.AbsRY
}
