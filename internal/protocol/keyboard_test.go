package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retroctl/retroctl/device"
	"github.com/retroctl/retroctl/internal/protocol"
)

func TestMapScancode_AndroidQuirks(t *testing.T) {
	require.Equal(t, uint16(12), protocol.MapScancode(69))
	require.Equal(t, uint16(13), protocol.MapScancode(70))
	require.Equal(t, uint16(78), protocol.MapScancode(81))
}

func TestMapScancode_PassThrough(t *testing.T) {
	require.Equal(t, uint16(30), protocol.MapScancode(30)) // KEY_A
	require.Equal(t, uint16(1), protocol.MapScancode(1))   // KEY_ESC
	require.Equal(t, uint16(255), protocol.MapScancode(255))
}

func TestKeyboardEvent(t *testing.T) {
	ev := protocol.KeyboardEvent(30, 1)
	require.Equal(t, device.Event{Type: device.EvKey, Code: 30, Value: 1}, ev)

	ev = protocol.KeyboardEvent(30, 0)
	require.Equal(t, int32(0), ev.Value)

	// Any nonzero state is a press.
	ev = protocol.KeyboardEvent(30, 200)
	require.Equal(t, int32(1), ev.Value)
}

func TestModeFromByte(t *testing.T) {
	m, ok := protocol.ModeFromByte(0x01)
	require.True(t, ok)
	require.Equal(t, protocol.ModeMouseKeyboard, m)

	m, ok = protocol.ModeFromByte(0x02)
	require.True(t, ok)
	require.Equal(t, protocol.ModeGamepad, m)

	_, ok = protocol.ModeFromByte(0x7E)
	require.False(t, ok)
	_, ok = protocol.ModeFromByte(0x00)
	require.False(t, ok)
}

func TestPayloadSize(t *testing.T) {
	for header, want := range map[byte]int{
		protocol.HeaderModeSwitch:    1,
		protocol.HeaderKeyboard:      2,
		protocol.HeaderGamepadAxis:   3,
		protocol.HeaderGamepadButton: 2,
	} {
		got, ok := protocol.PayloadSize(header)
		require.True(t, ok, "header %#02x", header)
		require.Equal(t, want, got, "header %#02x", header)
	}

	_, ok := protocol.PayloadSize(0x99)
	require.False(t, ok)
}
