// Package protocol implements the RetroControl wire protocol: the
// header-branched TCP frame format and the UDP mouse and gamepad snapshot
// datagrams. Decoding is pure byte manipulation; the only state carried is
// the mouse button mask (edge triggering) and the gamepad wire-mode latch.
//
// All multi-byte fields are little-endian.
package protocol

// Packet headers.
const (
	HeaderKeyboard        byte = 0x10
	HeaderMouse           byte = 0x20
	HeaderModeSwitch      byte = 0x30
	HeaderModeAck         byte = 0x31
	HeaderGamepadAxis     byte = 0x40
	HeaderGamepadButton   byte = 0x41
	HeaderGamepadSnapshot byte = 0x42
	HeaderDiscovery       byte = 0x50
)

// ModeAckInvalid is echoed in place of the mode byte when a mode switch
// request carries an unrecognized mode.
const ModeAckInvalid byte = 0xFF

// TCP gamepad axis ids.
const (
	AxisLeftX    byte = 0x01
	AxisLeftY    byte = 0x02
	AxisRightX   byte = 0x03
	AxisRightY   byte = 0x04
	AxisTriggerL byte = 0x05
	AxisTriggerR byte = 0x06
	AxisHatX     byte = 0x07
	AxisHatY     byte = 0x08
)

// TCP gamepad button ids. Hotkey and Guide both land on BTN_MODE.
const (
	ButtonA      byte = 0x01
	ButtonB      byte = 0x02
	ButtonX      byte = 0x03
	ButtonY      byte = 0x04
	ButtonLB     byte = 0x05
	ButtonRB     byte = 0x06
	ButtonStart  byte = 0x07
	ButtonBack   byte = 0x08
	ButtonThumbL byte = 0x09
	ButtonThumbR byte = 0x0A
	ButtonHotkey byte = 0x0B
	ButtonGuide  byte = 0x0C
)

// PayloadSize returns the fixed payload length for a TCP frame header.
// Unknown headers carry no payload: adding a frame type with a payload
// is a protocol revision, not something the parser can tolerate.
func PayloadSize(header byte) (int, bool) {
	switch header {
	case HeaderModeSwitch:
		return 1, true
	case HeaderKeyboard:
		return 2, true
	case HeaderGamepadAxis:
		return 3, true
	case HeaderGamepadButton:
		return 2, true
	default:
		return 0, false
	}
}

// clampHat maps any axis magnitude onto the tri-state hat range.
func clampHat(v int16) int32 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
