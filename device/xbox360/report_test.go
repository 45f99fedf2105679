package xbox360_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2dx/j2dx/device"
	"github.com/j2dx/j2dx/device/xbox360"
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
			name:     "idle",
			expected: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "A and guide",
			steps:    []step{{button: device.BtnA, pressed: true}, {button: device.BtnMode, pressed: true}},
			expected: []byte{0x00, 0x14, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "press then release",
			steps:    []step{{button: device.BtnDpadUp, pressed: true}, {button: device.BtnDpadUp, pressed: false}},
			expected: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "digital triggers",
			steps:    []step{{button: device.BtnTL2, pressed: true}, {button: device.BtnTR2, pressed: true}},
			expected: []byte{0x00, 0x00, 0xff, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "left stick extremes",
			steps:    []step{{axis: device.AbsX, value: 255}, {axis: device.AbsY, value: 0}},
			expected: []byte{0x00, 0x00, 0x00, 0x00, 0xff, 0x7f, 0xff, 0x7f, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name:     "right stick min",
			steps:    []step{{axis: device.AbsRX, value: 0}, {axis: device.AbsRY, value: 255}},
			expected: []byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x80, 0x00, 0x80},
		},
		{
			name:     "analog triggers",
			steps:    []step{{axis: device.AbsZ, value: 10}, {axis: device.AbsRZ, value: 300}},
			expected: []byte{0x00, 0x00, 0x0a, 0xff, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r xbox360.Report
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

			var back xbox360.Report
			require.NoError(t, back.UnmarshalBinary(b))
			assert.Equal(t, r, back)
		})
	}
}

func TestReportRejectsUnknownCodes(t *testing.T) {
	var r xbox360.Report
	assert.False(t, r.SetButton(device.BtnC, true))
	assert.False(t, r.SetAxis(device.AbsHat0X, 0))
	assert.Error(t, r.UnmarshalBinary([]byte{0x00}))
}
