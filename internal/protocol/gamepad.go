package protocol

import "github.com/retroctl/retroctl/device"

// AxisEvent decodes a TCP gamepad-axis frame payload. Triggers are
// delivered as digital buttons (pressed while the value is nonzero), hat
// axes are clamped to the tri-state range, and stick axes pass the raw
// value through. Unknown axis ids yield no event.
func AxisEvent(axisID byte, value int16) (device.Event, bool) {
	switch axisID {
	case AxisTriggerL:
		return device.Key(device.BtnThumbL, value != 0), true
	case AxisTriggerR:
		return device.Key(device.BtnThumbR, value != 0), true
	case AxisHatX:
		return device.Abs(device.AbsHat0X, clampHat(value)), true
	case AxisHatY:
		return device.Abs(device.AbsHat0Y, clampHat(value)), true
	default:
		code, ok := axisCode(axisID)
		if !ok {
			return device.Event{}, false
		}
		return device.Abs(code, int32(value)), true
	}
}

// ButtonEvent decodes a TCP gamepad-button frame payload. Unknown button
// ids yield no event.
func ButtonEvent(buttonID, state byte) (device.Event, bool) {
	code, ok := buttonCode(buttonID)
	if !ok {
		return device.Event{}, false
	}
	return device.Key(code, state > 0), true
}

func axisCode(axisID byte) (uint16, bool) {
	switch axisID {
	case AxisLeftX:
		return device.AbsX, true
	case AxisLeftY:
		return device.AbsY, true
	case AxisRightX:
		return device.AbsRX, true
	case AxisRightY:
		return device.AbsRY, true
	case AxisTriggerL:
		return device.AbsZ, true
	case AxisTriggerR:
		return device.AbsRZ, true
	case AxisHatX:
		return device.AbsHat0X, true
	case AxisHatY:
		return device.AbsHat0Y, true
	default:
		return 0, false
	}
}

func buttonCode(buttonID byte) (uint16, bool) {
	switch buttonID {
	case ButtonA:
		return device.BtnSouth, true
	case ButtonB:
		return device.BtnEast, true
	case ButtonX:
		return device.BtnNorth, true
	case ButtonY:
		return device.BtnWest, true
	case ButtonLB:
		return device.BtnTL, true
	case ButtonRB:
		return device.BtnTR, true
	case ButtonStart:
		return device.BtnStart, true
	case ButtonBack:
		return device.BtnSelect, true
	case ButtonThumbL:
		return device.BtnThumbL, true
	case ButtonThumbR:
		return device.BtnThumbR, true
	case ButtonHotkey, ButtonGuide:
		return device.BtnMode, true
	default:
		return 0, false
	}
}
