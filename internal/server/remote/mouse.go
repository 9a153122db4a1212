package remote

import (
	"context"
	"errors"
	"net"

	"github.com/retroctl/retroctl/internal/protocol"
)

// serveMouse runs the UDP mouse receive loop. Datagrams are processed
// strictly in arrival order; malformed ones are dropped silently.
func (s *Server) serveMouse(ctx context.Context) error {
	var dec protocol.MouseDecoder
	buf := make([]byte, 32)

	for {
		n, peer, err := s.mouseConn.ReadFromUDPAddrPort(buf)
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return nil
			}
			return err
		}

		if _, evicted := s.mouseSessions.Touch(peer.Addr()); evicted {
			s.logger.Info("Mouse channel taken over", "remote", peer.Addr())
		}

		events, ok := dec.Decode(buf[:n])
		if !ok {
			continue
		}
		s.rawLogger.Log(true, buf[:n])
		if len(events) > 0 {
			s.emit(s.devices.Mouse, events...)
		}
	}
}
