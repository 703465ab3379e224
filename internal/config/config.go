package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Log     LogConfig     `toml:"log"`
	Storage StorageConfig `toml:"storage"`
	Server  ServerConfig  `toml:"server"`
}

type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

type StorageConfig struct {
	// Backend: "memory", "embedded" or "remote".
	Backend string `toml:"backend"`
	// Embedded backend: engine ("bolt" or "lmdb"), base path, mode
	// ("rw" or "ro") and the read count that triggers an instance reopen
	// (0 = default).
	Engine          string `toml:"engine"`
	Path            string `toml:"path"`
	Mode            string `toml:"mode"`
	ReopenThreshold uint64 `toml:"reopen_threshold"`
	// Remote backend: server address, e.g. tcp://127.0.0.1:9090.
	Address string `toml:"address"`
}

type ServerConfig struct {
	Listen string `toml:"listen"`
}

// Defaults returns a Config with sane defaults.
func Defaults() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Storage: StorageConfig{
			Backend: "memory",
			Engine:  "bolt",
			Path:    "~/.vstore",
			Mode:    "rw",
		},
		Server: ServerConfig{
			Listen: "tcp://127.0.0.1:9090",
		},
	}
}

// Load reads a TOML config file and returns the parsed Config.
// If path is empty, only defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = ExpandHome("~/.vstore/config.toml")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Validate rejects configurations no backend could be built from.
func (c *Config) Validate() error {
	s := &c.Storage
	switch s.Backend {
	case "memory":
	case "embedded":
		if s.Path == "" {
			return fmt.Errorf("storage.path is required for the embedded backend")
		}
		switch s.Engine {
		case "", "bolt", "lmdb":
		default:
			return fmt.Errorf("unknown storage.engine %q", s.Engine)
		}
	case "remote":
		if s.Address == "" {
			return fmt.Errorf("storage.address is required for the remote backend")
		}
	default:
		return fmt.Errorf("unknown storage.backend %q", s.Backend)
	}

	switch s.Mode {
	case "", "rw", "ro":
	default:
		return fmt.Errorf("storage.mode must be \"rw\" or \"ro\", got %q", s.Mode)
	}

	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}

	return nil
}

// ExpandHome resolves a leading ~/ to the user's home directory.
func ExpandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
