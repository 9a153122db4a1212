package uinput

// ioctl requests and limits from linux/uinput.h.
const (
	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502

	uiSetEvBit  = 0x40045564
	uiSetKeyBit = 0x40045565
	uiSetRelBit = 0x40045566
	uiSetAbsBit = 0x40045567

	maxNameSize = 80
	absCount    = 64

	busVirtual = 0x06
)
