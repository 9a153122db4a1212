// Package testing holds shared test helpers.
package testing

import (
	"sync"

	"github.com/retroctl/retroctl/device"
)

// RecordingDevice is a device.Device that records every emitted event for
// later inspection.
type RecordingDevice struct {
	mu     sync.Mutex
	events []device.Event
	closed bool
}

func (d *RecordingDevice) Emit(events []device.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, events...)
	return nil
}

func (d *RecordingDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

// Events returns a snapshot of everything emitted so far.
func (d *RecordingDevice) Events() []device.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]device.Event, len(d.events))
	copy(out, d.events)
	return out
}

// Reset discards recorded events.
func (d *RecordingDevice) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = nil
}

// Closed reports whether Close was called.
func (d *RecordingDevice) Closed() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closed
}
