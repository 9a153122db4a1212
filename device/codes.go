package device

// Linux input event codes used by the virtual devices. Values come from
// input-event-codes.h; only the codes this server emits are listed.

// SYN codes
const (
	SynReport uint16 = 0x00
)

// Relative axes
const (
	RelX     uint16 = 0x00
	RelY     uint16 = 0x01
	RelWheel uint16 = 0x08
)

// Mouse buttons
const (
	BtnLeft   uint16 = 0x110
	BtnRight  uint16 = 0x111
	BtnMiddle uint16 = 0x112
)

// Gamepad buttons
const (
	BtnSouth  uint16 = 0x130 // A
	BtnEast   uint16 = 0x131 // B
	BtnNorth  uint16 = 0x133 // X
	BtnWest   uint16 = 0x134 // Y
	BtnTL     uint16 = 0x136 // LB
	BtnTR     uint16 = 0x137 // RB
	BtnSelect uint16 = 0x13a // Back
	BtnStart  uint16 = 0x13b
	BtnMode   uint16 = 0x13c // Guide
	BtnThumbL uint16 = 0x13d
	BtnThumbR uint16 = 0x13e
)

// Absolute axes
const (
	AbsX     uint16 = 0x00
	AbsY     uint16 = 0x01
	AbsZ     uint16 = 0x02
	AbsRX    uint16 = 0x03
	AbsRY    uint16 = 0x04
	AbsRZ    uint16 = 0x05
	AbsHat0X uint16 = 0x10
	AbsHat0Y uint16 = 0x11
)
