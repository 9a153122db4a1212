// Package mouse declares the virtual pointer device: three buttons and
// relative X/Y movement plus a vertical wheel.
package mouse

import (
	"github.com/retroctl/retroctl/device"
	"github.com/retroctl/retroctl/device/uinput"
)

const deviceName = "RetroControl Mouse"

// New registers the virtual mouse with the host.
func New() (*uinput.Device, error) {
	return uinput.New(uinput.Config{
		Name: deviceName,
		Keys: []uint16{
			device.BtnLeft,
			device.BtnRight,
			device.BtnMiddle,
		},
		RelAxes: []uint16{
			device.RelX,
			device.RelY,
			device.RelWheel,
		},
	})
}
