package protocol_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/retroctl/retroctl/device"
	"github.com/retroctl/retroctl/internal/protocol"
)

func TestAxisEvent_Sticks(t *testing.T) {
	ev, ok := protocol.AxisEvent(protocol.AxisLeftX, 1234)
	require.True(t, ok)
	require.Equal(t, device.Abs(device.AbsX, 1234), ev)

	ev, ok = protocol.AxisEvent(protocol.AxisRightY, -32768)
	require.True(t, ok)
	require.Equal(t, device.Abs(device.AbsRY, -32768), ev)
}

func TestAxisEvent_TriggersAreDigital(t *testing.T) {
	ev, ok := protocol.AxisEvent(protocol.AxisTriggerL, 5)
	require.True(t, ok)
	require.Equal(t, device.Key(device.BtnThumbL, true), ev)

	ev, ok = protocol.AxisEvent(protocol.AxisTriggerL, 0)
	require.True(t, ok)
	require.Equal(t, device.Key(device.BtnThumbL, false), ev)

	ev, ok = protocol.AxisEvent(protocol.AxisTriggerR, -1)
	require.True(t, ok)
	require.Equal(t, device.Key(device.BtnThumbR, true), ev)
}

func TestAxisEvent_HatClamped(t *testing.T) {
	for value, want := range map[int16]int32{
		-32768: -1,
		-1:     -1,
		0:      0,
		1:      1,
		32767:  1,
	} {
		ev, ok := protocol.AxisEvent(protocol.AxisHatX, value)
		require.True(t, ok)
		require.Equal(t, device.Abs(device.AbsHat0X, want), ev, "value %d", value)
	}

	ev, ok := protocol.AxisEvent(protocol.AxisHatY, -20000)
	require.True(t, ok)
	require.Equal(t, device.Abs(device.AbsHat0Y, -1), ev)
}

func TestAxisEvent_UnknownID(t *testing.T) {
	_, ok := protocol.AxisEvent(0x7F, 100)
	require.False(t, ok)
}

func TestButtonEvent(t *testing.T) {
	for id, code := range map[byte]uint16{
		protocol.ButtonA:      device.BtnSouth,
		protocol.ButtonB:      device.BtnEast,
		protocol.ButtonX:      device.BtnNorth,
		protocol.ButtonY:      device.BtnWest,
		protocol.ButtonLB:     device.BtnTL,
		protocol.ButtonRB:     device.BtnTR,
		protocol.ButtonStart:  device.BtnStart,
		protocol.ButtonBack:   device.BtnSelect,
		protocol.ButtonThumbL: device.BtnThumbL,
		protocol.ButtonThumbR: device.BtnThumbR,
	} {
		ev, ok := protocol.ButtonEvent(id, 1)
		require.True(t, ok, "button %#02x", id)
		require.Equal(t, device.Key(code, true), ev, "button %#02x", id)
	}

	ev, ok := protocol.ButtonEvent(protocol.ButtonA, 0)
	require.True(t, ok)
	require.Equal(t, device.Key(device.BtnSouth, false), ev)
}

func TestButtonEvent_HotkeyAndGuideShareBtnMode(t *testing.T) {
	hotkey, ok := protocol.ButtonEvent(protocol.ButtonHotkey, 1)
	require.True(t, ok)
	guide, ok2 := protocol.ButtonEvent(protocol.ButtonGuide, 1)
	require.True(t, ok2)
	require.Equal(t, device.BtnMode, hotkey.Code)
	require.Equal(t, hotkey, guide)
}

func TestButtonEvent_UnknownID(t *testing.T) {
	_, ok := protocol.ButtonEvent(0x7F, 1)
	require.False(t, ok)
}
