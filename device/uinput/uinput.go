//go:build linux

// Package uinput creates virtual input devices through /dev/uinput and
// writes evdev events to them.
package uinput

import (
	"fmt"
	"os"
	"sync"
	"unsafe"

	"golang.org/x/sys/unix"

	"github.com/retroctl/retroctl/device"
)

const devPath = "/dev/uinput"

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

type inputID struct {
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
}

// userDev mirrors struct uinput_user_dev.
type userDev struct {
	Name         [maxNameSize]byte
	ID           inputID
	FFEffectsMax uint32
	AbsMax       [absCount]int32
	AbsMin       [absCount]int32
	AbsFuzz      [absCount]int32
	AbsFlat      [absCount]int32
}

// inputEvent mirrors struct input_event on 64-bit kernels.
type inputEvent struct {
	Sec   int64
	Usec  int64
	Type  uint16
	Code  uint16
	Value int32
}

// Device is a registered uinput device. Emit is serialized by a per-device
// mutex.
type Device struct {
	f  *os.File
	mu sync.Mutex
}

// New registers a virtual device with the kernel.
func New(cfg Config) (*Device, error) {
	f, err := os.OpenFile(devPath, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", devPath, err)
	}

	fd := f.Fd()

	if len(cfg.Keys) > 0 {
		if err := ioctl(fd, uiSetEvBit, uintptr(device.EvKey)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("enable EV_KEY: %w", err)
		}
		for _, code := range cfg.Keys {
			if err := ioctl(fd, uiSetKeyBit, uintptr(code)); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("enable key %#x: %w", code, err)
			}
		}
	}
	if len(cfg.RelAxes) > 0 {
		if err := ioctl(fd, uiSetEvBit, uintptr(device.EvRel)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("enable EV_REL: %w", err)
		}
		for _, code := range cfg.RelAxes {
			if err := ioctl(fd, uiSetRelBit, uintptr(code)); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("enable rel axis %#x: %w", code, err)
			}
		}
	}
	if len(cfg.AbsAxes) > 0 {
		if err := ioctl(fd, uiSetEvBit, uintptr(device.EvAbs)); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("enable EV_ABS: %w", err)
		}
		for _, axis := range cfg.AbsAxes {
			if err := ioctl(fd, uiSetAbsBit, uintptr(axis.Code)); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("enable abs axis %#x: %w", axis.Code, err)
			}
		}
	}

	var ud userDev
	copy(ud.Name[:maxNameSize-1], cfg.Name)
	ud.ID = inputID{Bustype: busVirtual, Vendor: cfg.Vendor, Product: cfg.Product, Version: cfg.Version}
	for _, axis := range cfg.AbsAxes {
		if int(axis.Code) >= absCount {
			continue
		}
		ud.AbsMin[axis.Code] = axis.Min
		ud.AbsMax[axis.Code] = axis.Max
		ud.AbsFuzz[axis.Code] = axis.Fuzz
		ud.AbsFlat[axis.Code] = axis.Flat
	}

	buf := (*[unsafe.Sizeof(userDev{})]byte)(unsafe.Pointer(&ud))[:]
	if _, err := f.Write(buf); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write device setup: %w", err)
	}
	if err := ioctl(fd, uiDevCreate, 0); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create device %q: %w", cfg.Name, err)
	}

	return &Device{f: f}, nil
}

// Emit writes a batch of events followed by a SYN_REPORT if the batch does
// not already end with one.
func (d *Device) Emit(events []device.Event) error {
	if len(events) == 0 {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	buf := make([]byte, 0, (len(events)+1)*int(unsafe.Sizeof(inputEvent{})))
	for _, ev := range events {
		buf = appendEvent(buf, ev)
	}
	if !events[len(events)-1].IsSync() {
		buf = appendEvent(buf, device.Sync())
	}
	if _, err := d.f.Write(buf); err != nil {
		return fmt.Errorf("write events: %w", err)
	}
	return nil
}

// Close destroys the kernel device.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := ioctl(d.f.Fd(), uiDevDestroy, 0)
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	return err
}

func appendEvent(buf []byte, ev device.Event) []byte {
	ie := inputEvent{Type: uint16(ev.Type), Code: ev.Code, Value: ev.Value}
	raw := (*[unsafe.Sizeof(inputEvent{})]byte)(unsafe.Pointer(&ie))[:]
	return append(buf, raw...)
}

func ioctl(fd uintptr, req uintptr, arg uintptr) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, fd, req, arg)
	if errno != 0 {
		return errno
	}
	return nil
}
