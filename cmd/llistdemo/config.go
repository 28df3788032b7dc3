package main

import "github.com/BurntSushi/toml"

// Config is the shape of an optional TOML file passed via --config.
// Flags override whatever it sets, the way start.go layers flags over
// grpc-proxy's own TOML config.
type Config struct {
	Demo DemoConfig `toml:"demo"`
}

// DemoConfig configures a single scenario run.
type DemoConfig struct {
	Scenario string `toml:"scenario"`
	Elements int    `toml:"elements"`
	Threads  int    `toml:"threads"`
}

// LoadConfig reads and decodes a TOML config file.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
