// Package config holds the kong command-line model of xrinput.
package config

import "github.com/Alia5/xrinput/internal/cmd"

// Log controls process logging.
type Log struct {
	Level   string `help:"Log level" enum:"trace,debug,info,warn,error" default:"info" env:"XRINPUT_LOG_LEVEL"`
	Format  string `help:"Log format" enum:"text,json" default:"text" env:"XRINPUT_LOG_FORMAT"`
	File    string `help:"Also write logs to this file" env:"XRINPUT_LOG_FILE"`
	RawFile string `help:"Dump raw controller frames to this file" env:"XRINPUT_LOG_RAW_FILE"`
}

// CLI is the root command. Values come from flags, then environment, then
// the first config file found.
type CLI struct {
	Config string `help:"Config file (json, yaml or toml)" type:"path" env:"XRINPUT_CONFIG"`
	Log    Log    `embed:"" prefix:"log."`

	Serve   cmd.Serve          `cmd:"" help:"Accept controller streams and dispatch interaction events"`
	Replay  cmd.Replay         `cmd:"" help:"Feed a recorded session through a controller"`
	Profile cmd.ProfileCommand `cmd:"" help:"Inspect and scaffold interaction profiles"`
	Conf    cmd.ConfigCommand  `cmd:"" name:"config" help:"Configuration helpers"`
}
