package ds4

import (
	"encoding/binary"
	"io"

	"github.com/j2dx/j2dx/device"
)

// Button bitmasks of ViGEm's DS4_REPORT.wButtons. The low nibble holds the
// d-pad direction.
const (
	ButtonThumbRight    = 1 << 15
	ButtonThumbLeft     = 1 << 14
	ButtonOptions       = 1 << 13
	ButtonShare         = 1 << 12
	ButtonTriggerRight  = 1 << 11
	ButtonTriggerLeft   = 1 << 10
	ButtonShoulderRight = 1 << 9
	ButtonShoulderLeft  = 1 << 8
	ButtonTriangle      = 1 << 7
	ButtonCircle        = 1 << 6
	ButtonCross         = 1 << 5
	ButtonSquare        = 1 << 4

	SpecialPS       = 1 << 0
	SpecialTouchpad = 1 << 1
)

// D-pad directions stored in the low nibble of Buttons.
const (
	DPadNorth     = 0x0
	DPadNorthEast = 0x1
	DPadEast      = 0x2
	DPadSouthEast = 0x3
	DPadSouth     = 0x4
	DPadSouthWest = 0x5
	DPadWest      = 0x6
	DPadNorthWest = 0x7
	DPadNone      = 0x8

	dpadMask = 0x000f
)

// ReportSize is the encoded size of the DS4_REPORT payload (without padding).
const ReportSize = 9

// Report mirrors ViGEm's DS4_REPORT; field order and widths match the C
// structure.
type Report struct {
	ThumbLX, ThumbLY uint8
	ThumbRX, ThumbRY uint8
	Buttons          uint16
	Special          uint8
	TriggerL         uint8
	TriggerR         uint8

	// hat state per axis: -1, 0, +1
	hatX, hatY int8
}

// NewReport returns a report at rest: sticks centred, d-pad released.
func NewReport() Report {
	return Report{
		ThumbLX: 0x80, ThumbLY: 0x80,
		ThumbRX: 0x80, ThumbRY: 0x80,
		Buttons: DPadNone,
	}
}

var buttonBits = map[device.Code]uint16{
	device.BtnThumbR: ButtonThumbRight,
	device.BtnThumbL: ButtonThumbLeft,
	device.BtnStart:  ButtonOptions,
	device.BtnSelect: ButtonShare,
	device.BtnTR:     ButtonShoulderRight,
	device.BtnTL:     ButtonShoulderLeft,
	device.BtnNorth:  ButtonTriangle,
	device.BtnEast:   ButtonCircle,
	device.BtnSouth:  ButtonCross,
	device.BtnWest:   ButtonSquare,
}

// SetButton stages a button. L2/R2 set both the digital bit and the analog
// trigger; BTN_MODE is the PS special button.
// Returns false for codes the report cannot carry.
func (r *Report) SetButton(code device.Code, pressed bool) bool {
	switch code {
	case device.BtnMode:
		if pressed {
			r.Special |= SpecialPS
		} else {
			r.Special &^= SpecialPS
		}
		return true
	case device.BtnTL2:
		r.setBit(ButtonTriggerLeft, pressed)
		r.TriggerL = triggerFromButton(pressed)
		return true
	case device.BtnTR2:
		r.setBit(ButtonTriggerRight, pressed)
		r.TriggerR = triggerFromButton(pressed)
		return true
	}
	bit, ok := buttonBits[code]
	if !ok {
		return false
	}
	r.setBit(bit, pressed)
	return true
}

// SetAxis stages a 0..255 axis or hat value.
func (r *Report) SetAxis(code device.Code, v int32) bool {
	b := uint8(device.Clamp(v, device.AxisMin, device.AxisMax))
	switch code {
	case device.AbsX:
		r.ThumbLX = b
	case device.AbsY:
		r.ThumbLY = b
	case device.AbsRX:
		r.ThumbRX = b
	case device.AbsRY:
		r.ThumbRY = b
	case device.AbsZ:
		r.TriggerL = b
	case device.AbsRZ:
		r.TriggerR = b
	case device.AbsHat0X:
		r.hatX = hatDir(v)
		r.updateDPad()
	case device.AbsHat0Y:
		r.hatY = hatDir(v)
		r.updateDPad()
	default:
		return false
	}
	return true
}

// DPad returns the current d-pad direction.
func (r *Report) DPad() uint16 { return r.Buttons & dpadMask }

func (r *Report) setBit(bit uint16, on bool) {
	if on {
		r.Buttons |= bit
	} else {
		r.Buttons &^= bit
	}
}

func (r *Report) updateDPad() {
	var dir uint16
	switch {
	case r.hatX == 0 && r.hatY < 0:
		dir = DPadNorth
	case r.hatX > 0 && r.hatY < 0:
		dir = DPadNorthEast
	case r.hatX > 0 && r.hatY == 0:
		dir = DPadEast
	case r.hatX > 0 && r.hatY > 0:
		dir = DPadSouthEast
	case r.hatX == 0 && r.hatY > 0:
		dir = DPadSouth
	case r.hatX < 0 && r.hatY > 0:
		dir = DPadSouthWest
	case r.hatX < 0 && r.hatY == 0:
		dir = DPadWest
	case r.hatX < 0 && r.hatY < 0:
		dir = DPadNorthWest
	default:
		dir = DPadNone
	}
	r.Buttons = r.Buttons&^dpadMask | dir
}

func hatDir(v int32) int8 {
	switch {
	case v < device.HatRest:
		return -1
	case v > device.HatRest:
		return 1
	default:
		return 0
	}
}

func triggerFromButton(pressed bool) uint8 {
	if pressed {
		return device.AxisMax
	}
	return 0
}

// MarshalBinary encodes the report as 9 packed little-endian bytes.
func (r *Report) MarshalBinary() ([]byte, error) {
	b := make([]byte, ReportSize)
	b[0] = r.ThumbLX
	b[1] = r.ThumbLY
	b[2] = r.ThumbRX
	b[3] = r.ThumbRY
	binary.LittleEndian.PutUint16(b[4:6], r.Buttons)
	b[6] = r.Special
	b[7] = r.TriggerL
	b[8] = r.TriggerR
	return b, nil
}

// UnmarshalBinary decodes 9 packed bytes into the report.
func (r *Report) UnmarshalBinary(data []byte) error {
	if len(data) < ReportSize {
		return io.ErrUnexpectedEOF
	}
	r.ThumbLX = data[0]
	r.ThumbLY = data[1]
	r.ThumbRX = data[2]
	r.ThumbRY = data[3]
	r.Buttons = binary.LittleEndian.Uint16(data[4:6])
	r.Special = data[6]
	r.TriggerL = data[7]
	r.TriggerR = data[8]
	return nil
}
