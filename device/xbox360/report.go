package xbox360

import (
	"encoding/binary"
	"io"

	"github.com/j2dx/j2dx/device"
)

// Button bitmasks of the XUSB (XInput) report.
const (
	ButtonDPadUp    = 0x0001
	ButtonDPadDown  = 0x0002
	ButtonDPadLeft  = 0x0004
	ButtonDPadRight = 0x0008
	ButtonStart     = 0x0010
	ButtonBack      = 0x0020
	ButtonLThumb    = 0x0040
	ButtonRThumb    = 0x0080
	ButtonLShoulder = 0x0100
	ButtonRShoulder = 0x0200
	ButtonGuide     = 0x0400
	ButtonA         = 0x1000
	ButtonB         = 0x2000
	ButtonX         = 0x4000
	ButtonY         = 0x8000
)

// ReportSize is the size of the XUSB_REPORT structure.
const ReportSize = 12

// Report mirrors ViGEm's XUSB_REPORT. The field order and widths match the C
// structure so a *Report can be handed to the driver directly.
//
// Layout:
//
//	Buttons: 2 bytes (LE uint16)
//	LT: 1 byte
//	RT: 1 byte
//	LX: 2 bytes (LE int16)
//	LY: 2 bytes (LE int16)
//	RX: 2 bytes (LE int16)
//	RY: 2 bytes (LE int16)
type Report struct {
	Buttons uint16
	LT, RT  uint8
	LX, LY  int16
	RX, RY  int16
}

var buttonBits = map[device.Code]uint16{
	device.BtnDpadUp:    ButtonDPadUp,
	device.BtnDpadDown:  ButtonDPadDown,
	device.BtnDpadLeft:  ButtonDPadLeft,
	device.BtnDpadRight: ButtonDPadRight,
	device.BtnStart:     ButtonStart,
	device.BtnSelect:    ButtonBack,
	device.BtnThumbL:    ButtonLThumb,
	device.BtnThumbR:    ButtonRThumb,
	device.BtnTL:        ButtonLShoulder,
	device.BtnTR:        ButtonRShoulder,
	device.BtnMode:      ButtonGuide,
	device.BtnA:         ButtonA,
	device.BtnB:         ButtonB,
	device.BtnX:         ButtonX,
	device.BtnY:         ButtonY,
}

// SetButton stages a button. The digital triggers (BTN_TL2/BTN_TR2) have no
// bit in XUSB and drive the analog trigger fully instead.
// Returns false for codes the report cannot carry.
func (r *Report) SetButton(code device.Code, pressed bool) bool {
	switch code {
	case device.BtnTL2:
		r.LT = triggerFromButton(pressed)
		return true
	case device.BtnTR2:
		r.RT = triggerFromButton(pressed)
		return true
	}
	bit, ok := buttonBits[code]
	if !ok {
		return false
	}
	if pressed {
		r.Buttons |= bit
	} else {
		r.Buttons &^= bit
	}
	return true
}

// SetAxis stages a 0..255 axis value, widening sticks to signed 16 bit.
// XInput sticks are up-positive, so the (down-positive) vertical axes flip.
func (r *Report) SetAxis(code device.Code, v int32) bool {
	v = device.Clamp(v, device.AxisMin, device.AxisMax)
	switch code {
	case device.AbsX:
		r.LX = thumb(v)
	case device.AbsY:
		r.LY = thumbInverted(v)
	case device.AbsRX:
		r.RX = thumb(v)
	case device.AbsRY:
		r.RY = thumbInverted(v)
	case device.AbsZ:
		r.LT = uint8(v)
	case device.AbsRZ:
		r.RT = uint8(v)
	default:
		return false
	}
	return true
}

func thumb(v int32) int16         { return int16(v*257 - 32768) }
func thumbInverted(v int32) int16 { return int16(32767 - v*257) }

func triggerFromButton(pressed bool) uint8 {
	if pressed {
		return device.AxisMax
	}
	return 0
}

// MarshalBinary encodes the report to its 12-byte little-endian layout.
func (r *Report) MarshalBinary() ([]byte, error) {
	b := make([]byte, ReportSize)
	binary.LittleEndian.PutUint16(b[0:2], r.Buttons)
	b[2] = r.LT
	b[3] = r.RT
	binary.LittleEndian.PutUint16(b[4:6], uint16(r.LX))
	binary.LittleEndian.PutUint16(b[6:8], uint16(r.LY))
	binary.LittleEndian.PutUint16(b[8:10], uint16(r.RX))
	binary.LittleEndian.PutUint16(b[10:12], uint16(r.RY))
	return b, nil
}

// UnmarshalBinary decodes 12 bytes into the report.
func (r *Report) UnmarshalBinary(data []byte) error {
	if len(data) < ReportSize {
		return io.ErrUnexpectedEOF
	}
	r.Buttons = binary.LittleEndian.Uint16(data[0:2])
	r.LT = data[2]
	r.RT = data[3]
	r.LX = int16(binary.LittleEndian.Uint16(data[4:6]))
	r.LY = int16(binary.LittleEndian.Uint16(data[6:8]))
	r.RX = int16(binary.LittleEndian.Uint16(data[8:10]))
	r.RY = int16(binary.LittleEndian.Uint16(data[10:12]))
	return nil
}
