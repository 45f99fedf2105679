package device

import (
	"fmt"
	"math"

	"golang.org/x/exp/constraints"
)

// Kind is the class of control a semantic key drives.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindButton
	KindAxis
	KindHat
)

func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindAxis:
		return "axis"
	case KindHat:
		return "hat"
	default:
		return "unknown"
	}
}

// Target is the result of resolving a semantic key against a profile.
type Target struct {
	Kind Kind
	Code Code
	// Dir is the hat half a d-pad key drives: -1 towards the minimum
	// (up/left), +1 towards the maximum (right/down). Zero for other kinds.
	Dir int8
}

// Hat binds a directional key to one half of a shared hat axis.
type Hat struct {
	Code Code
	Dir  int8
}

// AbsInfo is the range declared for one absolute axis.
type AbsInfo struct {
	Code Code
	Min  int32
	Max  int32
	Fuzz int32
	Flat int32
}

// Profile is the fixed description of one controller family. Profiles are
// built once in family package init and never modified afterwards.
type Profile struct {
	Family  Family
	Name    string
	Vendor  uint16
	Product uint16
	Version uint16

	// Keys and Axes are the declared capability set.
	Keys []Code
	Axes []AbsInfo

	Buttons map[string]Code
	Sticks  map[string]Code
	Hats    map[string]Hat
}

// Resolve maps a semantic key to its control. Matching is exact and
// case-sensitive.
func (p *Profile) Resolve(key string) Target {
	if c, ok := p.Buttons[key]; ok {
		return Target{Kind: KindButton, Code: c}
	}
	if c, ok := p.Sticks[key]; ok {
		return Target{Kind: KindAxis, Code: c}
	}
	if h, ok := p.Hats[key]; ok {
		return Target{Kind: KindHat, Code: h.Code, Dir: h.Dir}
	}
	return Target{Kind: KindUnknown}
}

// Raw output range shared by every family.
const (
	AxisMin  = 0
	AxisMax  = 255
	HatRest  = 127
	AxisHalf = 127
)

// Clamp limits v to [lo, hi].
func Clamp[T constraints.Integer](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Scale rounds f half to even, the rounding the protocol clients were tuned
// against, and clamps the result into the raw axis range.
func Scale(f float64) int32 {
	r := math.RoundToEven(f)
	if r < AxisMin {
		return AxisMin
	}
	if r > AxisMax {
		return AxisMax
	}
	return int32(r)
}

// Analog returns the numeric reading of an analog value. Booleans and
// non-finite numbers are rejected with ErrValueType.
func Analog(v Value) (float64, error) {
	n, ok := v.Number()
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %s value %s for axis", ErrValueType, v.Kind(), v)
	}
	return n, nil
}

// ButtonValue is the raw state of a digital control.
func ButtonValue(v Value) int32 {
	if v.Pressed() {
		return 1
	}
	return 0
}
