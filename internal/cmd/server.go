package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/retroctl/retroctl/device"
	"github.com/retroctl/retroctl/device/keyboard"
	"github.com/retroctl/retroctl/device/mouse"
	"github.com/retroctl/retroctl/device/xbox360"
	"github.com/retroctl/retroctl/internal/log"
	"github.com/retroctl/retroctl/internal/server/remote"
	"github.com/retroctl/retroctl/internal/util"
)

// Server is the `server` command: create the virtual devices and run the
// network servers until interrupted.
type Server struct {
	remote.ServerConfig `embed:""`
}

// Run is called by kong when the server command is executed.
func (s *Server) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return s.StartServer(ctx, logger, rawLogger)
}

func (s *Server) StartServer(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	mouseDev, err := mouse.New()
	if err != nil {
		return fmt.Errorf("create virtual mouse: %w", err)
	}
	defer closeDevice(logger, "mouse", mouseDev)

	keyboardDev, err := keyboard.New()
	if err != nil {
		return fmt.Errorf("create virtual keyboard: %w", err)
	}
	defer closeDevice(logger, "keyboard", keyboardDev)

	gamepadDev, err := xbox360.New()
	if err != nil {
		return fmt.Errorf("create virtual gamepad: %w", err)
	}
	defer closeDevice(logger, "gamepad", gamepadDev)

	logger.Info("Virtual devices created")
	if util.IsInteractive() {
		logger.Info("Press Ctrl+C to stop")
	}

	srv := remote.New(s.ServerConfig, remote.Devices{
		Mouse:    mouseDev,
		Keyboard: keyboardDev,
		Gamepad:  gamepadDev,
	}, logger, rawLogger)

	return srv.ListenAndServe(ctx)
}

func closeDevice(logger *slog.Logger, name string, dev device.Device) {
	if err := dev.Close(); err != nil {
		logger.Warn("Failed to close virtual device", "device", name, "error", err)
	}
}
