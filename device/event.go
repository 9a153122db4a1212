// Package device defines the input event model shared by the protocol
// codecs and the virtual device sinks, along with the Device interface
// implemented by the uinput-backed devices.
package device

// EventType mirrors the Linux input event type.
type EventType uint16

const (
	EvSyn EventType = 0x00
	EvKey EventType = 0x01
	EvRel EventType = 0x02
	EvAbs EventType = 0x03
)

// Event is a single evdev-style input event. Events are produced by the
// protocol decoders and consumed by a Device; they carry no state beyond
// the batch they travel in.
type Event struct {
	Type  EventType
	Code  uint16
	Value int32
}

// Key builds a key/button event.
func Key(code uint16, pressed bool) Event {
	v := int32(0)
	if pressed {
		v = 1
	}
	return Event{Type: EvKey, Code: code, Value: v}
}

// Abs builds an absolute axis event.
func Abs(code uint16, value int32) Event {
	return Event{Type: EvAbs, Code: code, Value: value}
}

// Rel builds a relative axis event.
func Rel(code uint16, delta int32) Event {
	return Event{Type: EvRel, Code: code, Value: delta}
}

// Sync builds a SYN_REPORT end-of-batch marker.
func Sync() Event {
	return Event{Type: EvSyn, Code: SynReport, Value: 0}
}

// IsSync reports whether the event is a SYN_REPORT marker.
func (e Event) IsSync() bool {
	return e.Type == EvSyn && e.Code == SynReport
}
