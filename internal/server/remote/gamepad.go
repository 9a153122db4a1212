package remote

import (
	"context"
	"errors"
	"net"

	"github.com/retroctl/retroctl/internal/protocol"
)

// serveGamepad runs the UDP snapshot receive loop. Every decoded snapshot
// yields a full-state batch terminated by a sync event.
func (s *Server) serveGamepad(ctx context.Context) error {
	var dec protocol.SnapshotDecoder
	buf := make([]byte, 64)

	for {
		n, peer, err := s.padConn.ReadFromUDPAddrPort(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		if _, evicted := s.padSessions.Touch(peer.Addr()); evicted {
			s.logger.Info("Gamepad channel taken over", "remote", peer.Addr())
		}

		before := dec.Mode()
		events, ok := dec.Decode(buf[:n])
		if !ok {
			continue
		}
		if before == protocol.WireModeUndetected {
			s.logger.Info("Gamepad wire mode detected", "mode", dec.Mode().String())
		}
		s.rawLogger.Log(true, buf[:n])
		s.emit(s.devices.Gamepad, events...)
	}
}
