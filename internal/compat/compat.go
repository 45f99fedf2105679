// Package compat reconciles the message shapes different protocol client
// generations send for one logical input into a canonical device.Event.
//
// Newer clients emit a single object {"key": ..., "value": ...}; legacy
// clients emit the key and value as two positional arguments. Anything else
// is rejected with ErrMalformed.
package compat

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/j2dx/j2dx/device"
)

// ErrMalformed is returned when no canonical event can be extracted.
var ErrMalformed = errors.New("malformed message")

// Normalize extracts the canonical event from the arguments of one input
// message.
//
// Shapes, in priority order:
//  1. a single object carrying both "key" and "value"
//  2. at least two positional arguments: key, then value
//
// The value keeps the sender's type; booleans stay booleans and numbers
// keep their integer/float distinction.
func Normalize(args []json.RawMessage) (device.Event, error) {
	if len(args) == 1 {
		if ev, ok, err := structured(args[0]); ok {
			return ev, err
		}
	}
	if len(args) >= 2 {
		return positional(args[0], args[1])
	}
	return device.Event{}, fmt.Errorf("%w: %d argument(s) without key/value", ErrMalformed, len(args))
}

type payload struct {
	Key   *json.RawMessage `json:"key"`
	Value *json.RawMessage `json:"value"`
}

// structured reports ok=false when arg is not an object, so the caller can
// fall through to the next shape.
func structured(arg json.RawMessage) (device.Event, bool, error) {
	arg = bytes.TrimSpace(arg)
	if len(arg) == 0 || arg[0] != '{' {
		return device.Event{}, false, nil
	}
	var p payload
	if err := json.Unmarshal(arg, &p); err != nil {
		return device.Event{}, true, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if p.Key == nil || p.Value == nil {
		return device.Event{}, true, fmt.Errorf("%w: payload needs both key and value", ErrMalformed)
	}
	ev, err := positional(*p.Key, *p.Value)
	return ev, true, err
}

func positional(rawKey, rawValue json.RawMessage) (device.Event, error) {
	var ev device.Event
	if err := json.Unmarshal(rawKey, &ev.Key); err != nil {
		return device.Event{}, fmt.Errorf("%w: key must be a string, got %s", ErrMalformed, rawKey)
	}
	if err := json.Unmarshal(rawValue, &ev.Value); err != nil {
		return device.Event{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return ev, nil
}

// Version is the Engine.IO protocol generation a client announced.
type Version int

const (
	VersionUnknown Version = iota
	Version3
	Version4
)

func (v Version) String() string {
	switch v {
	case Version3:
		return "EIO=3"
	case Version4:
		return "EIO=4"
	default:
		return "unknown"
	}
}

// DetectVersion sniffs the EIO parameter from a connection query string.
// It is diagnostic only; unknown or missing values mean "assume latest".
func DetectVersion(rawQuery string) Version {
	q, err := url.ParseQuery(strings.TrimPrefix(rawQuery, "?"))
	if err != nil {
		// fall back to a substring scan on unparsable queries
		switch {
		case strings.Contains(rawQuery, "EIO=3"):
			return Version3
		case strings.Contains(rawQuery, "EIO=4"):
			return Version4
		}
		return VersionUnknown
	}
	switch q.Get("EIO") {
	case "3":
		return Version3
	case "4":
		return Version4
	default:
		return VersionUnknown
	}
}
