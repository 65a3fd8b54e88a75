package server

import "time"

// ServerConfig represents the serve subcommand configuration.
type ServerConfig struct {
	Addr              string        `help:"Controller stream listen address" default:":3243" env:"XRINPUT_SERVE_ADDR"`
	Profile           string        `help:"Interaction profile file (json, yaml or toml); the built-in profile is used when empty" env:"XRINPUT_SERVE_PROFILE"`
	Record            string        `help:"Record every received frame to this file" env:"XRINPUT_SERVE_RECORD"`
	ConnectionTimeout time.Duration `help:"Drop a controller that sends nothing for this long; 0 to disable" default:"30s" env:"XRINPUT_CONNECTION_TIMEOUT"`
}
