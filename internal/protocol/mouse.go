package protocol

import (
	"encoding/binary"

	"github.com/retroctl/retroctl/device"
)

// Mouse button bits in the datagram mask.
const (
	MouseMaskLeft   byte = 0x01
	MouseMaskRight  byte = 0x02
	MouseMaskMiddle byte = 0x04
)

// mouseMinLen is the shortest datagram accepted on the wire. The wheel
// field at offset 6 is honored only when both of its bytes are present;
// older clients omit it and the wheel defaults to 0.
const mouseMinLen = 7

// MouseDecoder decodes mouse datagrams. It retains the previous button
// mask so button events are edge-triggered: a button bit repeated across
// packets emits nothing, only changes do. The zero value is ready to use.
type MouseDecoder struct {
	lastButtons byte
}

// Decode parses one datagram. It returns false for short or mis-headered
// packets, which are dropped without touching decoder state. The returned
// batch may be empty when nothing changed.
func (d *MouseDecoder) Decode(pkt []byte) ([]device.Event, bool) {
	if len(pkt) < mouseMinLen || pkt[0] != HeaderMouse {
		return nil, false
	}

	dx := int16(binary.LittleEndian.Uint16(pkt[1:3]))
	dy := int16(binary.LittleEndian.Uint16(pkt[3:5]))
	buttons := pkt[5]
	var wheel int16
	if len(pkt) >= 8 {
		wheel = int16(binary.LittleEndian.Uint16(pkt[6:8]))
	}

	events := make([]device.Event, 0, 6)
	if dx != 0 {
		events = append(events, device.Rel(device.RelX, int32(dx)))
	}
	if dy != 0 {
		events = append(events, device.Rel(device.RelY, int32(dy)))
	}
	if wheel != 0 {
		events = append(events, device.Rel(device.RelWheel, int32(wheel)))
	}

	changed := buttons ^ d.lastButtons
	for _, b := range [...]struct {
		mask byte
		code uint16
	}{
		{MouseMaskLeft, device.BtnLeft},
		{MouseMaskRight, device.BtnRight},
		{MouseMaskMiddle, device.BtnMiddle},
	} {
		if changed&b.mask != 0 {
			events = append(events, device.Key(b.code, buttons&b.mask != 0))
		}
	}
	d.lastButtons = buttons

	return events, true
}
