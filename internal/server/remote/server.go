// Package remote implements the RetroControl network servers: the
// multiplexed TCP keyboard/gamepad channel, the UDP mouse and gamepad
// snapshot channels, and the discovery broadcaster. Decoded events are
// forwarded to the virtual devices; session ownership per channel is
// arbitrated by SessionTracker.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/retroctl/retroctl/device"
	"github.com/retroctl/retroctl/internal/log"
)

// Devices bundles the three virtual devices the servers feed.
type Devices struct {
	Mouse    device.Device
	Keyboard device.Device
	Gamepad  device.Device
}

type Server struct {
	config    *ServerConfig
	logger    *slog.Logger
	rawLogger log.RawLogger
	devices   Devices

	mode          *ModeState
	tcpSessions   *SessionTracker
	mouseSessions *SessionTracker
	padSessions   *SessionTracker
	clients       *ClientCounter

	ready     chan struct{}
	readyOnce sync.Once

	ln        net.Listener
	mouseConn *net.UDPConn
	padConn   *net.UDPConn
}

func New(config ServerConfig, devices Devices, logger *slog.Logger, rawLogger log.RawLogger) *Server {
	return &Server{
		config:        &config,
		logger:        logger,
		rawLogger:     rawLogger,
		devices:       devices,
		mode:          NewModeState(),
		tcpSessions:   NewSessionTracker(),
		mouseSessions: NewSessionTracker(),
		padSessions:   NewSessionTracker(),
		clients:       &ClientCounter{},
		ready:         make(chan struct{}),
	}
}

// Ready returns a channel that is closed once all sockets are bound.
func (s *Server) Ready() <-chan struct{} { return s.ready }

// Mode exposes the shared input-mode cell.
func (s *Server) Mode() *ModeState { return s.mode }

// ActiveClients reports the number of live TCP connection handlers.
func (s *Server) ActiveClients() int64 { return s.clients.Active() }

// TCPPort returns the bound TCP port. Valid after Ready.
func (s *Server) TCPPort() uint16 {
	return uint16(s.ln.Addr().(*net.TCPAddr).Port)
}

// MousePort returns the bound mouse UDP port. Valid after Ready.
func (s *Server) MousePort() uint16 {
	return uint16(s.mouseConn.LocalAddr().(*net.UDPAddr).Port)
}

// GamepadPort returns the bound gamepad UDP port. Valid after Ready.
func (s *Server) GamepadPort() uint16 {
	return uint16(s.padConn.LocalAddr().(*net.UDPAddr).Port)
}

// ListenAndServe binds all sockets and runs the transport loops until ctx
// is cancelled or a loop fails. A failure in one connection never crosses
// channels; only socket-level failures surface here.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.TCPAddr)
	if err != nil {
		return fmt.Errorf("listen tcp %s: %w", s.config.TCPAddr, err)
	}
	s.ln = ln

	s.mouseConn, err = listenUDP(s.config.MouseAddr)
	if err != nil {
		_ = ln.Close()
		return fmt.Errorf("listen udp %s: %w", s.config.MouseAddr, err)
	}
	s.padConn, err = listenUDP(s.config.GamepadAddr)
	if err != nil {
		_ = ln.Close()
		_ = s.mouseConn.Close()
		return fmt.Errorf("listen udp %s: %w", s.config.GamepadAddr, err)
	}

	s.readyOnce.Do(func() { close(s.ready) })
	s.logger.Info("RetroControl server listening",
		"tcp", ln.Addr().String(),
		"mouse", s.mouseConn.LocalAddr().String(),
		"gamepad", s.padConn.LocalAddr().String())

	loops := []func(context.Context) error{
		s.serveTCP,
		s.serveMouse,
		s.serveGamepad,
		s.serveDiscovery,
	}
	errCh := make(chan error, len(loops))
	loopCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	for _, loop := range loops {
		go func(run func(context.Context) error) {
			errCh <- run(loopCtx)
		}(loop)
	}

	consumed := 0
	var firstErr error
	select {
	case <-ctx.Done():
	case firstErr = <-errCh:
		consumed++
	}
	cancel()
	s.closeSockets()
	for ; consumed < len(loops); consumed++ {
		<-errCh
	}
	return firstErr
}

// Close unblocks the transport loops by closing their sockets.
func (s *Server) Close() error {
	s.closeSockets()
	return nil
}

func (s *Server) closeSockets() {
	if s.ln != nil {
		_ = s.ln.Close()
	}
	if s.mouseConn != nil {
		_ = s.mouseConn.Close()
	}
	if s.padConn != nil {
		_ = s.padConn.Close()
	}
}

func listenUDP(addr string) (*net.UDPConn, error) {
	udpAddr, err := net.ResolveUDPAddr("udp", addr)
	if err != nil {
		return nil, err
	}
	return net.ListenUDP("udp", udpAddr)
}
