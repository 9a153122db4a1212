// Package cmd defines the kong command tree.
package cmd

// LogConfig groups the logging flags shared by all commands.
type LogConfig struct {
	Level   string `help:"Log level (trace, debug, info, warn, error)" default:"info" env:"RETROCTL_LOG_LEVEL"`
	File    string `help:"Write logs to this file instead of the console" env:"RETROCTL_LOG_FILE"`
	RawFile string `help:"Write raw packet hex dumps to this file" env:"RETROCTL_LOG_RAW_FILE"`
}

// CLI is the root command structure parsed by kong.
type CLI struct {
	Log    LogConfig     `embed:"" prefix:"log."`
	Config string        `help:"Path to a configuration file" type:"path"`
	Server Server        `cmd:"" default:"withargs" help:"Run the remote input server"`
	Cfg    ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
