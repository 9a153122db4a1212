//go:build !linux

package uinput

import (
	"errors"

	"github.com/retroctl/retroctl/device"
)

// AbsAxis declares one absolute axis and its range.
type AbsAxis struct {
	Code uint16
	Min  int32
	Max  int32
	Fuzz int32
	Flat int32
}

// Config declares the capabilities of a virtual device.
type Config struct {
	Name    string
	Vendor  uint16
	Product uint16
	Version uint16
	Keys    []uint16
	RelAxes []uint16
	AbsAxes []AbsAxis
}

// Device is unavailable outside Linux; /dev/uinput is a Linux interface.
type Device struct{}

var errUnsupported = errors.New("uinput devices require Linux")

func New(cfg Config) (*Device, error) { return nil, errUnsupported }

func (d *Device) Emit(events []device.Event) error { return errUnsupported }

func (d *Device) Close() error { return errUnsupported }
