package protocol

import "github.com/retroctl/retroctl/device"

// MapScancode translates a client scancode to a Linux key code. Android
// clients send Android keycodes for a handful of keys; everything else is
// already a Linux code and passes through.
func MapScancode(scancode byte) uint16 {
	switch scancode {
	case 69: // KEYCODE_MINUS -> KEY_MINUS
		return 12
	case 70: // KEYCODE_EQUALS -> KEY_EQUAL
		return 13
	case 81: // KEYCODE_PLUS -> KEY_KPPLUS
		return 78
	default:
		return uint16(scancode)
	}
}

// KeyboardEvent decodes a keyboard frame payload. Any nonzero state is a
// press.
func KeyboardEvent(scancode, state byte) device.Event {
	return device.Key(MapScancode(scancode), state > 0)
}
