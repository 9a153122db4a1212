package protocol_test

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retroctl/retroctl/device"
	"github.com/retroctl/retroctl/internal/protocol"
)

func mousePacket(dx, dy int16, buttons byte, wheel *int16) []byte {
	pkt := make([]byte, 7, 9)
	pkt[0] = protocol.HeaderMouse
	binary.LittleEndian.PutUint16(pkt[1:3], uint16(dx))
	binary.LittleEndian.PutUint16(pkt[3:5], uint16(dy))
	pkt[5] = buttons
	if wheel != nil {
		pkt = pkt[:8]
		binary.LittleEndian.PutUint16(pkt[6:8], uint16(*wheel))
	}
	return pkt
}

func TestMouseDecode_Movement(t *testing.T) {
	var d protocol.MouseDecoder
	events, ok := d.Decode(mousePacket(10, -3, 0, nil))
	require.True(t, ok)
	require.Equal(t, []device.Event{
		device.Rel(device.RelX, 10),
		device.Rel(device.RelY, -3),
	}, events)
}

func TestMouseDecode_ZeroMotionEmitsNothing(t *testing.T) {
	var d protocol.MouseDecoder
	events, ok := d.Decode(mousePacket(0, 0, 0, nil))
	require.True(t, ok)
	require.Empty(t, events)
}

func TestMouseDecode_ButtonsEdgeTriggered(t *testing.T) {
	var d protocol.MouseDecoder

	events, ok := d.Decode(mousePacket(0, 0, 0x00, nil))
	require.True(t, ok)
	require.Empty(t, events)

	events, ok = d.Decode(mousePacket(0, 0, protocol.MouseMaskLeft, nil))
	require.True(t, ok)
	require.Equal(t, []device.Event{device.Key(device.BtnLeft, true)}, events)

	// Held button repeated across packets is silent.
	events, ok = d.Decode(mousePacket(0, 0, protocol.MouseMaskLeft, nil))
	require.True(t, ok)
	require.Empty(t, events)

	events, ok = d.Decode(mousePacket(0, 0, 0x00, nil))
	require.True(t, ok)
	require.Equal(t, []device.Event{device.Key(device.BtnLeft, false)}, events)
}

func TestMouseDecode_MultipleButtonTransitions(t *testing.T) {
	var d protocol.MouseDecoder
	mask := protocol.MouseMaskLeft | protocol.MouseMaskMiddle
	events, ok := d.Decode(mousePacket(0, 0, mask, nil))
	require.True(t, ok)
	require.ElementsMatch(t, []device.Event{
		device.Key(device.BtnLeft, true),
		device.Key(device.BtnMiddle, true),
	}, events)

	// Swap: release left, press right, keep middle.
	events, ok = d.Decode(mousePacket(0, 0, protocol.MouseMaskRight|protocol.MouseMaskMiddle, nil))
	require.True(t, ok)
	require.ElementsMatch(t, []device.Event{
		device.Key(device.BtnLeft, false),
		device.Key(device.BtnRight, true),
	}, events)
}

func TestMouseDecode_WheelOptional(t *testing.T) {
	var d protocol.MouseDecoder

	// 7-byte packet without wheel bytes defaults to no wheel motion.
	events, ok := d.Decode(mousePacket(0, 0, 0, nil))
	require.True(t, ok)
	require.Empty(t, events)

	wheel := int16(1)
	events, ok = d.Decode(mousePacket(0, 0, 0, &wheel))
	require.True(t, ok)
	require.Equal(t, []device.Event{device.Rel(device.RelWheel, 1)}, events)

	wheel = -2
	events, ok = d.Decode(mousePacket(0, 0, 0, &wheel))
	require.True(t, ok)
	require.Equal(t, []device.Event{device.Rel(device.RelWheel, -2)}, events)
}

func TestMouseDecode_Rejects(t *testing.T) {
	var d protocol.MouseDecoder

	// Short packet.
	_, ok := d.Decode([]byte{protocol.HeaderMouse, 0, 0, 0, 0, 0})
	require.False(t, ok)

	// Wrong header.
	bad := mousePacket(1, 1, 0, nil)
	bad[0] = protocol.HeaderKeyboard
	_, ok = d.Decode(bad)
	require.False(t, ok)

	// Rejected packets must not disturb the edge-trigger state.
	events, ok := d.Decode(mousePacket(0, 0, protocol.MouseMaskLeft, nil))
	require.True(t, ok)
	require.Equal(t, []device.Event{device.Key(device.BtnLeft, true)}, events)

	held := mousePacket(0, 0, 0x00, nil)
	held[0] = 0x99
	_, ok = d.Decode(held)
	require.False(t, ok)

	events, ok = d.Decode(mousePacket(0, 0, 0x00, nil))
	require.True(t, ok)
	require.Equal(t, []device.Event{device.Key(device.BtnLeft, false)}, events)
}
