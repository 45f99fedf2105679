package ds4_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/device/ds4"
)

func TestReport(t *testing.T) {
	type step struct {
		button  device.Code
		pressed bool
		axis    device.Code
		value   int32
	}
	tests := []struct {
		name     string
		steps    []step
		expected []byte
	}{
		{
			name:     "rest",
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "cross and square",
			steps:    []step{{button: device.BtnSouth, pressed: true}, {button: device.BtnWest, pressed: true}},
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x38, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "options and share",
			steps:    []step{{button: device.BtnStart, pressed: true}, {button: device.BtnSelect, pressed: true}},
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x30, 0x00, 0x00, 0x00},
		},
		{
			name:     "ps button",
			steps:    []step{{button: device.BtnMode, pressed: true}},
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x00, 0x01, 0x00, 0x00},
		},
		{
			name:     "l2 sets bit and trigger",
			steps:    []step{{button: device.BtnTL2, pressed: true}},
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x04, 0x00, 0xff, 0x00},
		},
		{
			name:     "sticks",
			steps:    []step{{axis: device.AbsX, value: 0}, {axis: device.AbsY, value: 254}, {axis: device.AbsRX, value: 127}, {axis: device.AbsRY, value: 300}},
			expected: []byte{0x00, 0xfe, 0x7f, 0xff, 0x08, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "dpad north",
			steps:    []step{{axis: device.AbsHat0Y, value: 0}},
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "dpad south east",
			steps:    []step{{axis: device.AbsHat0Y, value: 255}, {axis: device.AbsHat0X, value: 255}},
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x03, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "dpad west released",
			steps:    []step{{axis: device.AbsHat0X, value: 0}, {axis: device.AbsHat0X, value: 127}},
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x08, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "dpad keeps buttons",
			steps:    []step{{button: device.BtnNorth, pressed: true}, {axis: device.AbsHat0X, value: 0}},
			expected: []byte{0x80, 0x80, 0x80, 0x80, 0x86, 0x00, 0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ds4.NewReport()
			for _, s := range tt.steps {
				if s.button != 0 {
					assert.True(t, r.SetButton(s.button, s.pressed))
				} else {
					assert.True(t, r.SetAxis(s.axis, s.value))
				}
			}
			b, err := r.MarshalBinary()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, b)
		})
	}
}

func TestReportDPad(t *testing.T) {
	r := ds4.NewReport()
	assert.Equal(t, uint16(ds4.DPadNone), r.DPad())
	r.SetAxis(device.AbsHat0X, 0)
	r.SetAxis(device.AbsHat0Y, 0)
	assert.Equal(t, uint16(ds4.DPadNorthWest), r.DPad())
	r.SetAxis(device.AbsHat0Y, device.HatRest)
	assert.Equal(t, uint16(ds4.DPadWest), r.DPad())
}

func TestReportRejectsUnknownCodes(t *testing.T) {
	r := ds4.NewReport()
	assert.False(t, r.SetButton(device.BtnDpadUp, true))
	assert.False(t, r.SetAxis(device.Code(0x20), 0))
	assert.Error(t, r.UnmarshalBinary(make([]byte, 3)))
}
