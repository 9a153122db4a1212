package remote

import (
	"context"
	"encoding/binary"
	"fmt"
	"net"
	"time"

	"golang.org/x/sys/unix"

	"github.com/retroctl/retroctl/internal/protocol"
)

// serveDiscovery periodically announces the TCP and mouse UDP ports so
// clients can find the server without configuration. Announcements stop
// while any client is connected and resume once the last one leaves.
// Sends are best effort; failures are logged and the loop continues.
func (s *Server) serveDiscovery(ctx context.Context) error {
	if s.config.DiscoveryAddr == "" || s.config.DiscoveryInterval <= 0 {
		<-ctx.Done()
		return nil
	}

	dest, err := net.ResolveUDPAddr("udp", s.config.DiscoveryAddr)
	if err != nil {
		return fmt.Errorf("resolve discovery address %s: %w", s.config.DiscoveryAddr, err)
	}
	conn, err := net.ListenUDP("udp", &net.UDPAddr{})
	if err != nil {
		return fmt.Errorf("bind discovery socket: %w", err)
	}
	defer conn.Close()
	if err := enableBroadcast(conn); err != nil {
		return fmt.Errorf("enable broadcast: %w", err)
	}

	payload := make([]byte, 5)
	payload[0] = protocol.HeaderDiscovery
	binary.LittleEndian.PutUint16(payload[1:3], s.TCPPort())
	binary.LittleEndian.PutUint16(payload[3:5], s.MousePort())

	ticker := time.NewTicker(s.config.DiscoveryInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
		if s.clients.Active() > 0 {
			continue
		}
		if _, err := conn.WriteToUDP(payload, dest); err != nil {
			s.logger.Warn("Discovery announce failed", "dest", dest.String(), "error", err)
			continue
		}
		s.logger.Debug("Discovery announce sent", "dest", dest.String(), "tcp", s.TCPPort(), "mouse", s.MousePort())
	}
}

func enableBroadcast(conn *net.UDPConn) error {
	raw, err := conn.SyscallConn()
	if err != nil {
		return err
	}
	var sockErr error
	err = raw.Control(func(fd uintptr) {
		sockErr = unix.SetsockoptInt(int(fd), unix.SOL_SOCKET, unix.SO_BROADCAST, 1)
	})
	if err != nil {
		return err
	}
	return sockErr
}
