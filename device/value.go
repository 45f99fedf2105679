package device

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind tells how the sender typed an input value.
type ValueKind uint8

const (
	ValueInvalid ValueKind = iota
	// ValueBool is a digital input (button, d-pad).
	ValueBool
	// ValueFloat is a normalized analog input in [-1, 1].
	ValueFloat
	// ValueInt is a number sent without a fractional part, treated as pre-scaled.
	ValueInt
)

func (k ValueKind) String() string {
	switch k {
	case ValueBool:
		return "bool"
	case ValueFloat:
		return "float"
	case ValueInt:
		return "int"
	default:
		return "invalid"
	}
}

// Value is the payload of a canonical input event. The kind is preserved as
// given by the sender; nothing coerces it.
type Value struct {
	kind ValueKind
	b    bool
	f    float64
	i    int64
}

func Bool(b bool) Value     { return Value{kind: ValueBool, b: b} }
func Float(f float64) Value { return Value{kind: ValueFloat, f: f} }
func Int(i int64) Value     { return Value{kind: ValueInt, i: i} }

func (v Value) Kind() ValueKind { return v.kind }

// Valid reports whether the value carries anything.
func (v Value) Valid() bool { return v.kind != ValueInvalid }

// Pressed reports the digital reading of the value: a boolean as-is, a
// number when non-zero.
func (v Value) Pressed() bool {
	switch v.kind {
	case ValueBool:
		return v.b
	case ValueFloat:
		return v.f != 0
	case ValueInt:
		return v.i != 0
	default:
		return false
	}
}

// Number returns the numeric reading of the value. ok is false for booleans.
func (v Value) Number() (n float64, ok bool) {
	switch v.kind {
	case ValueFloat:
		return v.f, true
	case ValueInt:
		return float64(v.i), true
	default:
		return 0, false
	}
}

// IntValue returns the integer payload for ValueInt.
func (v Value) IntValue() (int64, bool) {
	return v.i, v.kind == ValueInt
}

func (v Value) String() string {
	switch v.kind {
	case ValueBool:
		return strconv.FormatBool(v.b)
	case ValueFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case ValueInt:
		return strconv.FormatInt(v.i, 10)
	default:
		return "<invalid>"
	}
}

// MarshalJSON keeps the float/int distinction on the wire (1.0 stays 1.0).
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case ValueBool:
		return []byte(strconv.FormatBool(v.b)), nil
	case ValueFloat:
		s := strconv.FormatFloat(v.f, 'f', -1, 64)
		if !bytes.ContainsAny([]byte(s), ".eE") {
			s += ".0"
		}
		return []byte(s), nil
	case ValueInt:
		return []byte(strconv.FormatInt(v.i, 10)), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON accepts a JSON boolean or number. A number literal with a
// fraction or exponent is a float; anything else is an integer.
func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("true")):
		*v = Bool(true)
		return nil
	case bytes.Equal(data, []byte("false")):
		*v = Bool(false)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("value must be boolean or number, got %s", data)
	}
	// json.Number also accepts quoted numbers; reject those.
	if len(data) > 0 && data[0] == '"' {
		return fmt.Errorf("value must be boolean or number, got %s", data)
	}
	if !bytes.ContainsAny(data, ".eE") {
		i, err := n.Int64()
		if err == nil {
			*v = Int(i)
			return nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return fmt.Errorf("parse number %s: %w", data, err)
	}
	*v = Float(f)
	return nil
}

// Event is the canonical input event: one semantic key and its value.
type Event struct {
	Key   string `json:"key"`
	Value Value  `json:"value"`
}

func (e Event) String() string { return e.Key + "=" + e.Value.String() }
