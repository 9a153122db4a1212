// Package xbox360 declares a virtual gamepad matching the layout of a
// wired Xbox 360 pad, the shape most host applications probe for.
package xbox360

import (
	"github.com/retroctl/retroctl/device"
	"github.com/retroctl/retroctl/device/uinput"
)

const deviceName = "RetroControl Gamepad"

// New registers the virtual gamepad with the host.
func New() (*uinput.Device, error) {
	cfg := uinput.Config{
		Name: deviceName,
		Keys: ButtonCodes[:],
	}
	for _, code := range AxisCodes {
		cfg.AbsAxes = append(cfg.AbsAxes, absAxis(code))
	}
	return uinput.New(cfg)
}

func absAxis(code uint16) uinput.AbsAxis {
	switch code {
	case device.AbsZ, device.AbsRZ:
		return uinput.AbsAxis{Code: code, Min: TriggerMin, Max: TriggerMax}
	case device.AbsHat0X, device.AbsHat0Y:
		return uinput.AbsAxis{Code: code, Min: HatMin, Max: HatMax}
	default:
		return uinput.AbsAxis{Code: code, Min: StickMin, Max: StickMax, Fuzz: 16, Flat: 128}
	}
}
