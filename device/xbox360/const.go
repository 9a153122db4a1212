package xbox360

import "github.com/retroctl/retroctl/device"

// Layout of a real wired Xbox 360 pad as exposed by the xpad driver. The
// snapshot wire format indexes buttons and axes positionally against these
// tables.

// ButtonCount is the number of physical buttons on the pad.
const ButtonCount = 11

// ButtonCodes lists the buttons in snapshot bit order:
// A, B, X, Y, LB, RB, Back, Start, Guide, L3, R3.
var ButtonCodes = [ButtonCount]uint16{
	device.BtnSouth,
	device.BtnEast,
	device.BtnNorth,
	device.BtnWest,
	device.BtnTL,
	device.BtnTR,
	device.BtnSelect,
	device.BtnStart,
	device.BtnMode,
	device.BtnThumbL,
	device.BtnThumbR,
}

// AxisCount is the number of absolute axes on the pad.
const AxisCount = 8

// Axis indexes into AxisCodes, matching the snapshot wire order.
const (
	AxisLeftX = iota
	AxisLeftY
	AxisRightX
	AxisRightY
	AxisTriggerL
	AxisTriggerR
	AxisHatX
	AxisHatY
)

// AxisCodes lists the axes in snapshot order: left stick X/Y, right stick
// X/Y, triggers L/R, hat X/Y.
var AxisCodes = [AxisCount]uint16{
	device.AbsX,
	device.AbsY,
	device.AbsRX,
	device.AbsRY,
	device.AbsZ,
	device.AbsRZ,
	device.AbsHat0X,
	device.AbsHat0Y,
}

// Ranges reported by xpad.
const (
	StickMin = -32768
	StickMax = 32767

	TriggerMin = 0
	TriggerMax = 255

	HatMin = -1
	HatMax = 1
)
