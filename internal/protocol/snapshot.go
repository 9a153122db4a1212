package protocol

import (
	"encoding/binary"
	"sync/atomic"

	"github.com/retroctl/retroctl/device"
	"github.com/retroctl/retroctl/device/xbox360"
)

// WireMode identifies which of the two incompatible snapshot encodings a
// client is using.
type WireMode int32

const (
	// WireModeUndetected means no snapshot has been inspected yet.
	WireModeUndetected WireMode = iota
	// WireModeArcade clients send only extreme stick values to encode
	// 8-way digital directions.
	WireModeArcade
	// WireModeAnalog clients send genuine intermediate stick magnitudes.
	WireModeAnalog
)

func (m WireMode) String() string {
	switch m {
	case WireModeArcade:
		return "arcade"
	case WireModeAnalog:
		return "analog"
	default:
		return "undetected"
	}
}

const (
	// snapshotMinLen is header + 2-byte button mask + 8 axes.
	snapshotMinLen = 1 + 2 + xbox360.AxisCount*2

	// triggerDigitalThreshold is the analog trigger value above which the
	// synthesized digital trigger button reports pressed.
	triggerDigitalThreshold = 10

	// arcadeHatThreshold converts arcade left-stick excursions into hat
	// directions.
	arcadeHatThreshold = 20000
)

// SnapshotDecoder decodes gamepad snapshot datagrams. The first snapshot
// latches the wire mode from the left stick: an extreme value means an
// arcade client. The latch is permanent for the decoder's lifetime; a
// client that changes encodings mid-session is misinterpreted (known
// limitation). The zero value is ready to use.
type SnapshotDecoder struct {
	mode atomic.Int32
}

// Mode returns the latched wire mode.
func (d *SnapshotDecoder) Mode() WireMode {
	return WireMode(d.mode.Load())
}

// Decode parses one snapshot datagram into a full-state event batch:
// all 11 button states, the axis events for the latched wire mode, and a
// terminating sync event. Short or mis-headered packets return false.
func (d *SnapshotDecoder) Decode(pkt []byte) ([]device.Event, bool) {
	if len(pkt) < snapshotMinLen || pkt[0] != HeaderGamepadSnapshot {
		return nil, false
	}

	mask := binary.LittleEndian.Uint16(pkt[1:3])
	var axes [xbox360.AxisCount]int16
	for i := range axes {
		off := 3 + i*2
		axes[i] = int16(binary.LittleEndian.Uint16(pkt[off : off+2]))
	}

	mode := d.latch(axes[xbox360.AxisLeftX], axes[xbox360.AxisLeftY])

	events := make([]device.Event, 0, xbox360.ButtonCount+xbox360.AxisCount+3)
	for i, code := range xbox360.ButtonCodes {
		events = append(events, device.Key(code, mask&(1<<i) != 0))
	}
	events = d.appendAxes(events, axes, mode)

	// Downstream consumers buffer partial state until the sync marker.
	events = append(events, device.Sync())
	return events, true
}

func (d *SnapshotDecoder) latch(lx, ly int16) WireMode {
	if m := WireMode(d.mode.Load()); m != WireModeUndetected {
		return m
	}
	m := WireModeAnalog
	if stickAtExtreme(lx) || stickAtExtreme(ly) {
		m = WireModeArcade
	}
	d.mode.CompareAndSwap(int32(WireModeUndetected), int32(m))
	return WireMode(d.mode.Load())
}

func stickAtExtreme(v int16) bool {
	return v >= xbox360.StickMax || v <= xbox360.StickMin+1
}

func (d *SnapshotDecoder) appendAxes(events []device.Event, axes [xbox360.AxisCount]int16, mode WireMode) []device.Event {
	for i, value := range axes {
		code := xbox360.AxisCodes[i]
		switch i {
		case xbox360.AxisTriggerL, xbox360.AxisTriggerR:
			events = append(events, device.Abs(code, int32(value)))
			btn := device.BtnThumbL
			if i == xbox360.AxisTriggerR {
				btn = device.BtnThumbR
			}
			events = append(events, device.Key(btn, int32(value) > triggerDigitalThreshold))
		case xbox360.AxisHatX, xbox360.AxisHatY:
			events = append(events, device.Abs(code, clampHat(value)))
		default:
			events = append(events, device.Abs(code, int32(value)))
		}
	}

	if mode == WireModeArcade {
		// Arcade clients carry direction in the stick, and most consumers
		// in this mode read the hat; the stick-derived hat overrides the
		// packet's own hat fields emitted above.
		events = append(events,
			device.Abs(device.AbsHat0X, arcadeHat(axes[xbox360.AxisLeftX])),
			device.Abs(device.AbsHat0Y, arcadeHat(axes[xbox360.AxisLeftY])),
		)
	}
	return events
}

func arcadeHat(v int16) int32 {
	switch {
	case v <= -arcadeHatThreshold:
		return -1
	case v >= arcadeHatThreshold:
		return 1
	default:
		return 0
	}
}
