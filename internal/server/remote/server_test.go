package remote_test

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/retroctl/retroctl/device"
	"github.com/retroctl/retroctl/device/xbox360"
	"github.com/retroctl/retroctl/internal/log"
	"github.com/retroctl/retroctl/internal/protocol"
	"github.com/retroctl/retroctl/internal/server/remote"
	mocks "github.com/retroctl/retroctl/internal/testing"
)

type testServer struct {
	srv      *remote.Server
	mouse    *mocks.RecordingDevice
	keyboard *mocks.RecordingDevice
	gamepad  *mocks.RecordingDevice
}

func startServer(t *testing.T, mutate func(*remote.ServerConfig)) *testServer {
	t.Helper()

	cfg := remote.ServerConfig{
		TCPAddr:           "127.0.0.1:0",
		MouseAddr:         "127.0.0.1:0",
		GamepadAddr:       "127.0.0.1:0",
		DiscoveryAddr:     "",
		DiscoveryInterval: time.Second,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	ts := &testServer{
		mouse:    &mocks.RecordingDevice{},
		keyboard: &mocks.RecordingDevice{},
		gamepad:  &mocks.RecordingDevice{},
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	ts.srv = remote.New(cfg, remote.Devices{
		Mouse:    ts.mouse,
		Keyboard: ts.keyboard,
		Gamepad:  ts.gamepad,
	}, logger, log.NewRaw(nil))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- ts.srv.ListenAndServe(ctx)
	}()
	select {
	case <-ts.srv.Ready():
	case err := <-done:
		cancel()
		t.Fatalf("server exited before ready: %v", err)
	case <-time.After(5 * time.Second):
		cancel()
		t.Fatal("server never became ready")
	}
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Error("server did not shut down")
		}
	})
	return ts
}

func (ts *testServer) dialTCP(t *testing.T) net.Conn {
	t.Helper()
	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", ts.srv.TCPPort()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readAck(t *testing.T, conn net.Conn) [2]byte {
	t.Helper()
	var ack [2]byte
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, err := io.ReadFull(conn, ack[:])
	require.NoError(t, err)
	return ack
}

func switchMode(t *testing.T, conn net.Conn, mode byte) {
	t.Helper()
	_, err := conn.Write([]byte{protocol.HeaderModeSwitch, mode})
	require.NoError(t, err)
	ack := readAck(t, conn)
	require.Equal(t, [2]byte{protocol.HeaderModeAck, mode}, ack)
}

func TestServer_ModeSwitchAck(t *testing.T) {
	ts := startServer(t, nil)
	conn := ts.dialTCP(t)

	require.Equal(t, protocol.ModeMouseKeyboard, ts.srv.Mode().Get())

	switchMode(t, conn, protocol.ModeGamepad.Byte())
	require.Equal(t, protocol.ModeGamepad, ts.srv.Mode().Get())

	// An unknown mode byte is refused and leaves the mode alone.
	_, err := conn.Write([]byte{protocol.HeaderModeSwitch, 0x7E})
	require.NoError(t, err)
	ack := readAck(t, conn)
	require.Equal(t, [2]byte{protocol.HeaderModeAck, protocol.ModeAckInvalid}, ack)
	require.Equal(t, protocol.ModeGamepad, ts.srv.Mode().Get())
}

func TestServer_ModeGatesFrames(t *testing.T) {
	ts := startServer(t, nil)
	conn := ts.dialTCP(t)

	// Mouse/keyboard mode: a gamepad button frame is consumed but discarded.
	// The mode switch behind it acks, proving the stream stayed in sync.
	buf := []byte{protocol.HeaderGamepadButton, protocol.ButtonA, 1}
	buf = append(buf, protocol.HeaderKeyboard, 30, 1)
	buf = append(buf, protocol.HeaderModeSwitch, protocol.ModeGamepad.Byte())
	_, err := conn.Write(buf)
	require.NoError(t, err)
	ack := readAck(t, conn)
	require.Equal(t, [2]byte{protocol.HeaderModeAck, protocol.ModeGamepad.Byte()}, ack)

	require.Eventually(t, func() bool {
		return len(ts.keyboard.Events()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, device.Key(30, true), ts.keyboard.Events()[0])
	require.Empty(t, ts.gamepad.Events())

	// Gamepad mode: keyboard frames are discarded, gamepad frames land.
	_, err = conn.Write([]byte{protocol.HeaderKeyboard, 30, 0})
	require.NoError(t, err)
	_, err = conn.Write([]byte{protocol.HeaderGamepadButton, protocol.ButtonA, 1})
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(ts.gamepad.Events()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, device.Key(device.BtnSouth, true), ts.gamepad.Events()[0])
	require.Len(t, ts.keyboard.Events(), 1)
}

func TestServer_GamepadAxisFrame(t *testing.T) {
	ts := startServer(t, nil)
	conn := ts.dialTCP(t)
	switchMode(t, conn, protocol.ModeGamepad.Byte())

	frame := []byte{protocol.HeaderGamepadAxis, protocol.AxisLeftX, 0, 0}
	axisValue := int16(-1234)
	binary.LittleEndian.PutUint16(frame[2:4], uint16(axisValue))
	_, err := conn.Write(frame)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(ts.gamepad.Events()) == 1
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, device.Abs(device.AbsX, -1234), ts.gamepad.Events()[0])
}

func TestServer_NewConnectionEvictsPrevious(t *testing.T) {
	ts := startServer(t, nil)

	connA := ts.dialTCP(t)
	switchMode(t, connA, protocol.ModeMouseKeyboard.Byte())

	connB := ts.dialTCP(t)
	// The old connection is closed by the server once the new one arrives.
	require.NoError(t, connA.SetReadDeadline(time.Now().Add(5*time.Second)))
	var one [1]byte
	_, err := connA.Read(one[:])
	require.Error(t, err)
	require.NotErrorIs(t, err, os.ErrDeadlineExceeded)

	// The new connection owns the channel.
	switchMode(t, connB, protocol.ModeGamepad.Byte())
}

func TestServer_MouseUDP(t *testing.T) {
	ts := startServer(t, nil)

	conn, err := net.Dial("udp", fmt.Sprintf("127.0.0.1:%d", ts.srv.MousePort()))
	require.NoError(t, err)
	defer conn.Close()

	pkt := make([]byte, 8)
	pkt[0] = protocol.HeaderMouse
	binary.LittleEndian.PutUint16(pkt[1:3], uint16(int16(4)))
	mouseDY := int16(-7)
	binary.LittleEndian.PutUint16(pkt[3:5], uint16(mouseDY))
	pkt[5] = protocol.MouseMaskLeft
	binary.LittleEndian.PutUint16(pkt[6:8], uint16(int16(1)))
	_, err = conn.Write(pkt)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(ts.mouse.Events()) == 4
	}, 2*time.Second, 10*time.Millisecond)
	require.Equal(t, []device.Event{
		device.Rel(device.RelX, 4),
		device.Rel(device.RelY, -7),
		device.Rel(device.RelWheel, 1),
		device.Key(device.BtnLeft, true),
	}, ts.mouse.Events())
}

func TestServer_GamepadSnapshotUDP(t *testing.T) {
	ts := startServer(t, nil)

	conn, err := net.Dial("udp", fmt.Sprintf("127.0.0.1:%d", ts.srv.GamepadPort()))
	require.NoError(t, err)
	defer conn.Close()

	pkt := make([]byte, 19)
	pkt[0] = protocol.HeaderGamepadSnapshot
	binary.LittleEndian.PutUint16(pkt[1:3], 1<<0) // A pressed
	binary.LittleEndian.PutUint16(pkt[3:5], uint16(int16(5000)))
	_, err = conn.Write(pkt)
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return len(ts.gamepad.Events()) > 0
	}, 2*time.Second, 10*time.Millisecond)

	events := ts.gamepad.Events()
	// Full state plus the terminating sync marker.
	require.Len(t, events, xbox360.ButtonCount+xbox360.AxisCount+3)
	require.Equal(t, device.Key(device.BtnSouth, true), events[0])
	require.True(t, events[len(events)-1].IsSync())
}

func TestServer_DiscoverySuppressedWhileConnected(t *testing.T) {
	listener, err := net.ListenUDP("udp", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
	require.NoError(t, err)
	defer listener.Close()

	ts := startServer(t, func(cfg *remote.ServerConfig) {
		cfg.DiscoveryAddr = listener.LocalAddr().String()
		cfg.DiscoveryInterval = 10 * time.Millisecond
	})

	readAnnounce := func(deadline time.Duration) ([]byte, error) {
		buf := make([]byte, 64)
		if err := listener.SetReadDeadline(time.Now().Add(deadline)); err != nil {
			return nil, err
		}
		n, _, err := listener.ReadFromUDP(buf)
		if err != nil {
			return nil, err
		}
		return buf[:n], nil
	}

	// Idle server announces.
	pkt, err := readAnnounce(5 * time.Second)
	require.NoError(t, err)
	require.Len(t, pkt, 5)
	require.Equal(t, protocol.HeaderDiscovery, pkt[0])
	require.Equal(t, ts.srv.TCPPort(), binary.LittleEndian.Uint16(pkt[1:3]))
	require.Equal(t, ts.srv.MousePort(), binary.LittleEndian.Uint16(pkt[3:5]))

	// A connected client silences the beacon.
	conn := ts.dialTCP(t)
	require.Eventually(t, func() bool {
		return ts.srv.ActiveClients() > 0
	}, 2*time.Second, 5*time.Millisecond)

	// Drain anything sent before the handler registered.
	for {
		if _, err := readAnnounce(100 * time.Millisecond); err != nil {
			break
		}
	}
	_, err = readAnnounce(150 * time.Millisecond)
	require.ErrorIs(t, err, os.ErrDeadlineExceeded)

	// Announcements resume after the client leaves.
	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool {
		return ts.srv.ActiveClients() == 0
	}, 2*time.Second, 5*time.Millisecond)
	_, err = readAnnounce(5 * time.Second)
	require.NoError(t, err)
}
