package xbox360_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/device/xbox360"
)

func TestEmit(t *testing.T) {
	c := xbox360.Controller{}

	tests := []struct {
		name    string
		key     string
		value   device.Value
		kind    device.Kind
		code    device.Code
		want    int32
		wantErr error
	}{
		{name: "a pressed", key: "a-button", value: device.Bool(true), kind: device.KindButton, code: device.BtnA, want: 1},
		{name: "a released", key: "a-button", value: device.Bool(false), kind: device.KindButton, code: device.BtnA, want: 0},
		{name: "guide", key: "main-button", value: device.Bool(true), kind: device.KindButton, code: device.BtnMode, want: 1},
		{name: "dpad is a button", key: "dpad-up", value: device.Bool(true), kind: device.KindButton, code: device.BtnDpadUp, want: 1},
		{name: "numeric button", key: "zl-button", value: device.Float(0.4), kind: device.KindButton, code: device.BtnTL2, want: 1},
		{name: "left x min", key: "left-stick-X", value: device.Float(-1), kind: device.KindAxis, code: device.AbsX, want: 0},
		{name: "left x centre", key: "left-stick-X", value: device.Float(0), kind: device.KindAxis, code: device.AbsX, want: 127},
		{name: "left x max", key: "left-stick-X", value: device.Float(1), kind: device.KindAxis, code: device.AbsX, want: 254},
		{name: "half rounds to even", key: "right-stick-X", value: device.Float(0.5), kind: device.KindAxis, code: device.AbsRX, want: 190},
		{name: "left y up", key: "left-stick-Y", value: device.Float(-1), kind: device.KindAxis, code: device.AbsY, want: 255},
		{name: "left y centre", key: "left-stick-Y", value: device.Float(0), kind: device.KindAxis, code: device.AbsY, want: 128},
		{name: "left y down", key: "left-stick-Y", value: device.Float(1), kind: device.KindAxis, code: device.AbsY, want: 1},
		{name: "right y", key: "right-stick-Y", value: device.Float(-0.5), kind: device.KindAxis, code: device.AbsRY, want: 191},
		{name: "trigger float", key: "left-trigger", value: device.Float(1), kind: device.KindAxis, code: device.AbsZ, want: 254},
		{name: "trigger integer passes through", key: "right-trigger", value: device.Int(200), kind: device.KindAxis, code: device.AbsRZ, want: 200},
		{name: "integer clamped", key: "left-stick-X", value: device.Int(300), kind: device.KindAxis, code: device.AbsX, want: 255},
		{name: "out of range float clamped", key: "left-stick-X", value: device.Float(3), kind: device.KindAxis, code: device.AbsX, want: 255},
		{name: "bool on axis", key: "left-stick-X", value: device.Bool(true), kind: device.KindAxis, code: device.AbsX, wantErr: device.ErrValueType},
		{name: "hat key unknown to xbox", key: "up-button", value: device.Bool(true), kind: device.KindUnknown, wantErr: device.ErrUnknownKey},
		{name: "unknown key", key: "jump", value: device.Bool(true), kind: device.KindUnknown, wantErr: device.ErrUnknownKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target := c.Resolve(tt.key)
			assert.Equal(t, tt.kind, target.Kind)
			if tt.kind != device.KindUnknown {
				assert.Equal(t, tt.code, target.Code)
			}
			got, err := c.Emit(target, tt.value)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProfileIdentity(t *testing.T) {
	p := xbox360.Controller{}.Profile()
	assert.Equal(t, device.FamilyXbox, p.Family)
	assert.Equal(t, uint16(0x045e), p.Vendor)
	assert.Equal(t, uint16(0x028e), p.Product)
	assert.Len(t, p.Axes, 6)
	assert.Empty(t, p.Hats)
}
