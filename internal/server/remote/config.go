package remote

import "time"

// ServerConfig represents the server subcommand configuration.
type ServerConfig struct {
	TCPAddr           string        `help:"Keyboard/gamepad TCP listen address" default:":5556" env:"RETROCTL_TCP_ADDR"`
	MouseAddr         string        `help:"Mouse UDP listen address" default:":5555" env:"RETROCTL_MOUSE_ADDR"`
	GamepadAddr       string        `help:"Gamepad snapshot UDP listen address" default:":5557" env:"RETROCTL_GAMEPAD_ADDR"`
	DiscoveryAddr     string        `help:"Discovery announce destination address; empty disables announcements" default:"255.255.255.255:5558" env:"RETROCTL_DISCOVERY_ADDR"`
	DiscoveryInterval time.Duration `help:"Interval between discovery announcements" default:"1s" env:"RETROCTL_DISCOVERY_INTERVAL"`
}
