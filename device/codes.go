package device

// Code is a Linux input event code (EV_KEY or EV_ABS namespace).
//
// Profiles are expressed in Linux codes on every platform; backends with a
// different native layout (ViGEm report bitmasks) translate from them.
type Code uint16

// Event types and sync codes from input-event-codes.h.
const (
	EvSyn = 0x00
	EvKey = 0x01
	EvAbs = 0x03

	SynReport = 0x00

	BusUSB = 0x03
)

// Gamepad buttons.
const (
	BtnSouth  Code = 0x130
	BtnEast   Code = 0x131
	BtnC      Code = 0x132
	BtnNorth  Code = 0x133
	BtnWest   Code = 0x134
	BtnZ      Code = 0x135
	BtnTL     Code = 0x136
	BtnTR     Code = 0x137
	BtnTL2    Code = 0x138
	BtnTR2    Code = 0x139
	BtnSelect Code = 0x13a
	BtnStart  Code = 0x13b
	BtnMode   Code = 0x13c
	BtnThumbL Code = 0x13d
	BtnThumbR Code = 0x13e

	BtnDpadUp    Code = 0x220
	BtnDpadDown  Code = 0x221
	BtnDpadLeft  Code = 0x222
	BtnDpadRight Code = 0x223

	// Aliases used by the kernel headers.
	BtnA = BtnSouth
	BtnB = BtnEast
	BtnX = BtnNorth
	BtnY = BtnWest
)

// Absolute axes.
const (
	AbsX     Code = 0x00
	AbsY     Code = 0x01
	AbsZ     Code = 0x02
	AbsRX    Code = 0x03
	AbsRY    Code = 0x04
	AbsRZ    Code = 0x05
	AbsHat0X Code = 0x10
	AbsHat0Y Code = 0x11

	// AbsCnt is the size of the kernel's per-axis tables (ABS_CNT).
	AbsCnt = 0x40
)

var codeNames = map[Code]string{
	BtnSouth: "BTN_SOUTH", BtnEast: "BTN_EAST", BtnC: "BTN_C", BtnNorth: "BTN_NORTH",
	BtnWest: "BTN_WEST", BtnZ: "BTN_Z", BtnTL: "BTN_TL", BtnTR: "BTN_TR",
	BtnTL2: "BTN_TL2", BtnTR2: "BTN_TR2", BtnSelect: "BTN_SELECT", BtnStart: "BTN_START",
	BtnMode: "BTN_MODE", BtnThumbL: "BTN_THUMBL", BtnThumbR: "BTN_THUMBR",
	BtnDpadUp: "BTN_DPAD_UP", BtnDpadDown: "BTN_DPAD_DOWN",
	BtnDpadLeft: "BTN_DPAD_LEFT", BtnDpadRight: "BTN_DPAD_RIGHT",
}

var absNames = map[Code]string{
	AbsX: "ABS_X", AbsY: "ABS_Y", AbsZ: "ABS_Z", AbsRX: "ABS_RX", AbsRY: "ABS_RY",
	AbsRZ: "ABS_RZ", AbsHat0X: "ABS_HAT0X", AbsHat0Y: "ABS_HAT0Y",
}

// KeyName returns the kernel name of a button code, for logging.
func KeyName(c Code) string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return "KEY_UNKNOWN"
}

// AbsName returns the kernel name of an axis code, for logging.
func AbsName(c Code) string {
	if n, ok := absNames[c]; ok {
		return n
	}
	return "ABS_UNKNOWN"
}
