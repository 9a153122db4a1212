package remote

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"net"
	"net/netip"
	"strings"
	"syscall"

	"github.com/retroctl/retroctl/device"
	"github.com/retroctl/retroctl/internal/protocol"
)

// serveTCP accepts keyboard/gamepad connections. Each accept displaces
// the previous session holder, whose handler observes the eviction at its
// next read and exits without clearing the new record.
func (s *Server) serveTCP(ctx context.Context) error {
	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("Accept error", "error", err)
			continue
		}

		peer := remoteIP(conn)
		sess := s.tcpSessions.Acquire(peer)
		s.logger.Info("TCP client connected", "remote", conn.RemoteAddr(), "session", sess.ID)

		go s.handleTCPConn(ctx, conn, sess)
	}
}

func (s *Server) handleTCPConn(ctx context.Context, conn net.Conn, sess *Session) {
	s.clients.Add()
	defer s.clients.Done()
	defer sess.Release()
	defer conn.Close()

	// Eviction and shutdown are observed by closing the connection, which
	// fails the handler's next read.
	watchDone := make(chan struct{})
	defer close(watchDone)
	go func() {
		select {
		case <-sess.Done():
			conn.Close()
		case <-ctx.Done():
			conn.Close()
		case <-watchDone:
		}
	}()

	err := s.readFrames(conn)
	switch {
	case sess.Evicted():
		s.logger.Info("TCP client evicted by new connection", "remote", conn.RemoteAddr(), "session", sess.ID)
	case err != nil && !errors.Is(err, net.ErrClosed):
		s.logger.Error("TCP connection error", "remote", conn.RemoteAddr(), "error", err)
	default:
		s.logger.Info("TCP client disconnected", "remote", conn.RemoteAddr(), "session", sess.ID)
	}
}

// readFrames runs the header-branched frame loop. Frame payloads are read
// even when the current mode discards their semantics, so the stream stays
// in sync. Orderly disconnects end the loop with a nil error.
func (s *Server) readFrames(conn net.Conn) error {
	var header [1]byte
	var payload [3]byte

	for {
		if _, err := io.ReadFull(conn, header[:]); err != nil {
			return disconnectOrErr(err)
		}

		size, known := protocol.PayloadSize(header[0])
		if !known {
			s.logger.Warn("Unknown TCP frame header", "header", fmt.Sprintf("%#02x", header[0]))
			continue
		}
		if _, err := io.ReadFull(conn, payload[:size]); err != nil {
			// A short read mid-payload is treated as a disconnect.
			return disconnectOrErr(err)
		}
		s.rawLogger.Log(true, append(header[:], payload[:size]...))

		switch header[0] {
		case protocol.HeaderModeSwitch:
			if err := s.handleModeSwitch(conn, payload[0]); err != nil {
				return disconnectOrErr(err)
			}
		case protocol.HeaderKeyboard:
			if s.mode.Get() != protocol.ModeMouseKeyboard {
				continue
			}
			s.emit(s.devices.Keyboard, protocol.KeyboardEvent(payload[0], payload[1]))
		case protocol.HeaderGamepadAxis:
			if s.mode.Get() != protocol.ModeGamepad {
				continue
			}
			value := int16(binary.LittleEndian.Uint16(payload[1:3]))
			if ev, ok := protocol.AxisEvent(payload[0], value); ok {
				s.emit(s.devices.Gamepad, ev)
			}
		case protocol.HeaderGamepadButton:
			if s.mode.Get() != protocol.ModeGamepad {
				continue
			}
			if ev, ok := protocol.ButtonEvent(payload[0], payload[1]); ok {
				s.emit(s.devices.Gamepad, ev)
			}
		}
	}
}

func (s *Server) handleModeSwitch(conn net.Conn, modeByte byte) error {
	mode, ok := protocol.ModeFromByte(modeByte)
	if !ok {
		_, err := conn.Write([]byte{protocol.HeaderModeAck, protocol.ModeAckInvalid})
		return err
	}
	if s.mode.Get() != mode {
		s.logger.Info("Input mode changed", "mode", mode.String())
	}
	s.mode.Set(mode)
	_, err := conn.Write([]byte{protocol.HeaderModeAck, modeByte})
	return err
}

func (s *Server) emit(dev device.Device, events ...device.Event) {
	if err := dev.Emit(events); err != nil {
		s.logger.Warn("Device emit failed", "error", err)
	}
}

// disconnectOrErr maps orderly peer disconnects to nil; anything else is a
// hard error for the connection.
func disconnectOrErr(err error) error {
	if isClientDisconnect(err) {
		return nil
	}
	return err
}

// isClientDisconnect tests whether an error represents a normal client
// disconnect: EOF, a short read, a reset/aborted connection or a broken
// pipe.
func isClientDisconnect(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNABORTED) || errors.Is(err, syscall.EPIPE) {
		return true
	}
	// Fallback for platform-specific wrappings that don't unwrap to an
	// errno.
	e := strings.ToLower(err.Error())
	return strings.Contains(e, "connection reset by peer") ||
		strings.Contains(e, "forcibly closed") ||
		strings.Contains(e, "aborted")
}

func remoteIP(conn net.Conn) netip.Addr {
	if tcpAddr, ok := conn.RemoteAddr().(*net.TCPAddr); ok {
		return tcpAddr.AddrPort().Addr()
	}
	addrPort, err := netip.ParseAddrPort(conn.RemoteAddr().String())
	if err != nil {
		return netip.Addr{}
	}
	return addrPort.Addr()
}
