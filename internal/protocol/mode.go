package protocol

// Mode selects how the TCP stream is interpreted: keyboard frames are only
// honored in MouseKeyboard, gamepad axis/button frames only in Gamepad.
type Mode byte

const (
	ModeMouseKeyboard Mode = 0x01
	ModeGamepad       Mode = 0x02
)

// ModeFromByte parses a mode-switch payload byte.
func ModeFromByte(b byte) (Mode, bool) {
	switch Mode(b) {
	case ModeMouseKeyboard, ModeGamepad:
		return Mode(b), true
	default:
		return 0, false
	}
}

// Byte returns the wire encoding of the mode.
func (m Mode) Byte() byte { return byte(m) }

func (m Mode) String() string {
	switch m {
	case ModeMouseKeyboard:
		return "mouse+keyboard"
	case ModeGamepad:
		return "gamepad"
	default:
		return "unknown"
	}
}
