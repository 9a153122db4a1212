// Package keyboard declares the virtual keyboard device.
package keyboard

import (
	"github.com/retroctl/retroctl/device/uinput"
)

const deviceName = "RetroControl Keyboard"

// New registers the virtual keyboard. Clients send Linux scancodes
// directly, so the full byte-sized code range is declared rather than a
// curated key set.
func New() (*uinput.Device, error) {
	keys := make([]uint16, 0, 255)
	for code := uint16(1); code < 256; code++ {
		keys = append(keys, code)
	}
	return uinput.New(uinput.Config{
		Name: deviceName,
		Keys: keys,
	})
}
