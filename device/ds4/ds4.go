// Package ds4 is the DualShock 4 controller family ("ds4").
//
// Sticks are centred at 127 with no inversion. The d-pad is carried on two
// hat axes; each directional key drives one half of its axis.
package ds4

import (
	"fmt"
	"math"

	"github.com/j2dx/j2dx/device"
)

func init() {
	device.Register(Controller{})
}

const stickFlat = 5

var profile = &device.Profile{
	Family:  device.FamilyDS4,
	Name:    "Sony Computer Entertainment Wireless Controller",
	Vendor:  0x054c,
	Product: 0x05c4,
	Version: 0x0111,
	Keys: []device.Code{
		device.BtnWest,   // Square
		device.BtnSouth,  // Cross
		device.BtnEast,   // Circle
		device.BtnNorth,  // Triangle
		device.BtnTL,     // L1
		device.BtnTR,     // R1
		device.BtnTL2,    // L2
		device.BtnTR2,    // R2
		device.BtnSelect, // Share
		device.BtnStart,  // Options
		device.BtnThumbL, // L3
		device.BtnThumbR, // R3
		device.BtnMode,   // PS
	},
	Axes: []device.AbsInfo{
		{Code: device.AbsX, Max: device.AxisMax, Flat: stickFlat},
		{Code: device.AbsY, Max: device.AxisMax, Flat: stickFlat},
		{Code: device.AbsRX, Max: device.AxisMax, Flat: stickFlat},
		{Code: device.AbsRY, Max: device.AxisMax, Flat: stickFlat},
		{Code: device.AbsZ, Max: device.AxisMax, Flat: stickFlat},
		{Code: device.AbsRZ, Max: device.AxisMax, Flat: stickFlat},
		{Code: device.AbsHat0X, Max: device.AxisMax},
		{Code: device.AbsHat0Y, Max: device.AxisMax},
	},
	Buttons: map[string]device.Code{
		"main-button":       device.BtnMode,
		"back-button":       device.BtnSelect,
		"start-button":      device.BtnStart,
		"left-stick-press":  device.BtnThumbL,
		"right-stick-press": device.BtnThumbR,
		"left-bumper":       device.BtnTL,
		"left-trigger":      device.BtnTL2,
		"right-bumper":      device.BtnTR,
		"right-trigger":     device.BtnTR2,
		"y-button":          device.BtnNorth,
		"x-button":          device.BtnEast,
		"a-button":          device.BtnSouth,
		"b-button":          device.BtnWest,
	},
	Sticks: map[string]device.Code{
		"left-stick-X":  device.AbsX,
		"left-stick-Y":  device.AbsY,
		"right-stick-X": device.AbsRX,
		"right-stick-Y": device.AbsRY,
	},
	Hats: map[string]device.Hat{
		"up-button":    {Code: device.AbsHat0Y, Dir: -1},
		"down-button":  {Code: device.AbsHat0Y, Dir: 1},
		"left-button":  {Code: device.AbsHat0X, Dir: -1},
		"right-button": {Code: device.AbsHat0X, Dir: 1},
	},
}

// Controller implements device.Controller for the DualShock 4 family.
type Controller struct{}

func (Controller) Profile() *device.Profile { return profile }

func (Controller) Resolve(key string) device.Target { return profile.Resolve(key) }

func (Controller) Emit(t device.Target, v device.Value) (int32, error) {
	switch t.Kind {
	case device.KindButton:
		return device.ButtonValue(v), nil
	case device.KindAxis:
		return AxisValue(v)
	case device.KindHat:
		return HatValue(t.Dir, v.Pressed()), nil
	default:
		return 0, fmt.Errorf("%w: %s control on %s", device.ErrUnknownKey, t.Kind, profile.Name)
	}
}

// AxisValue centres a [-1, 1] stick value on 127: round(127*v) + 127.
func AxisValue(v device.Value) (int32, error) {
	n, err := device.Analog(v)
	if err != nil {
		return 0, err
	}
	return device.Scale(math.RoundToEven(device.AxisHalf*n) + device.AxisHalf), nil
}

// HatValue is the raw hat position for one directional key. Only the axis of
// the incoming key is written; the opposite direction is not consulted.
func HatValue(dir int8, pressed bool) int32 {
	if !pressed {
		return device.HatRest
	}
	if dir < 0 {
		return device.AxisMin
	}
	return device.AxisMax
}
