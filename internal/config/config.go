// Package config loads the droplet server configuration from a TOML file.
package config

import (
	"net"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

// EnvVar names the environment variable that overrides the config path.
const EnvVar = "DROPLET_CONFIG"

// Config mirrors config.toml. Fields missing from the file keep their
// defaults.
type Config struct {
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	UploadDir     string `toml:"upload_dir"`
	TempDir       string `toml:"temp_dir"`
	PrefixLength  int    `toml:"prefix_length"`
	MaxFileSize   int64  `toml:"max_file_size"`
	StatsInterval int    `toml:"stats_interval"`
}

func Default() Config {
	return Config{
		Host:          "0.0.0.0",
		Port:          4040,
		UploadDir:     "files",
		TempDir:       "temp",
		PrefixLength:  8,
		MaxFileSize:   1_000_000_000,
		StatsInterval: 15,
	}
}

// Load reads the file named by the DROPLET_CONFIG environment variable
// (config.toml by default) and overlays it on the defaults.
func Load() (Config, error) {
	path := os.Getenv(EnvVar)
	if path == "" {
		path = "config.toml"
	}
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Addr is the host:port the server binds.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
