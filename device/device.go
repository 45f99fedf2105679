// Package device describes the controller families the bridge can emulate.
//
// A family is a fixed, read-only Profile (identity, capability set and the
// semantic key tables) plus the conversion rules from canonical event values
// to the raw field values a virtual HID driver expects. Family packages
// (device/xbox360, device/ds4) register themselves from init; import
// internal/registry to get all of them.
package device

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
)

var (
	// ErrUnknownKey is returned when a semantic key does not resolve in a profile.
	ErrUnknownKey = errors.New("unknown key")
	// ErrValueType is returned when a value's kind does not fit the resolved control
	// (e.g. a boolean sent for an analog stick).
	ErrValueType = errors.New("value type does not match control")
	// ErrUnknownFamily is returned for controller family names nobody registered.
	ErrUnknownFamily = errors.New("unknown controller family")
)

// Family identifies a controller family as named by the transport ("xbox", "ds4").
type Family string

const (
	FamilyXbox Family = "xbox"
	FamilyDS4  Family = "ds4"
)

// Controller is one emulated controller family.
//
// Implementations are stateless and safe for concurrent use by any number of
// sessions.
type Controller interface {
	// Profile returns the immutable description of the family.
	Profile() *Profile
	// Resolve maps a semantic key to the control it drives. Unknown keys
	// resolve to a Target with KindUnknown.
	Resolve(key string) Target
	// Emit computes the raw field value for a resolved target.
	// Buttons yield 0/1, axes and hats yield 0..255.
	Emit(t Target, v Value) (int32, error)
}

var (
	controllers   = make(map[Family]Controller)
	controllersMu sync.RWMutex
)

// Register makes a controller family available by name.
// This should be called from family package init() functions.
// The name is case-insensitive and will be lowercased.
func Register(c Controller) {
	controllersMu.Lock()
	defer controllersMu.Unlock()
	controllers[normalizeFamily(string(c.Profile().Family))] = c
}

// Lookup returns the controller registered for name.
func Lookup(name string) (Controller, error) {
	controllersMu.RLock()
	defer controllersMu.RUnlock()
	c, ok := controllers[normalizeFamily(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFamily, name)
	}
	return c, nil
}

// Families lists the registered family names in sorted order.
func Families() []Family {
	controllersMu.RLock()
	defer controllersMu.RUnlock()
	out := make([]Family, 0, len(controllers))
	for f := range controllers {
		out = append(out, f)
	}
	slices.Sort(out)
	return out
}

func normalizeFamily(s string) Family {
	return Family(strings.ToLower(strings.TrimSpace(s)))
}
