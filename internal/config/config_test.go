package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Storage.Backend != "memory" {
		t.Errorf("Storage.Backend: got %q, want memory", cfg.Storage.Backend)
	}
	if cfg.Storage.Engine != "bolt" {
		t.Errorf("Storage.Engine: got %q, want bolt", cfg.Storage.Engine)
	}
	if cfg.Storage.Mode != "rw" {
		t.Errorf("Storage.Mode: got %q, want rw", cfg.Storage.Mode)
	}
	if cfg.Server.Listen != "tcp://127.0.0.1:9090" {
		t.Errorf("Server.Listen: got %q", cfg.Server.Listen)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level: got %q, want info", cfg.Log.Level)
	}
}

func TestLoadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	toml := `
[log]
level = "debug"
format = "json"

[storage]
backend = "embedded"
engine = "lmdb"
path = "/var/lib/vstore"
mode = "ro"
reopen_threshold = 5000

[server]
listen = "tcp://0.0.0.0:9191"
`
	if err := os.WriteFile(path, []byte(toml), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Storage.Backend != "embedded" {
		t.Errorf("Storage.Backend: got %q", cfg.Storage.Backend)
	}
	if cfg.Storage.Engine != "lmdb" {
		t.Errorf("Storage.Engine: got %q", cfg.Storage.Engine)
	}
	if cfg.Storage.Path != "/var/lib/vstore" {
		t.Errorf("Storage.Path: got %q", cfg.Storage.Path)
	}
	if cfg.Storage.Mode != "ro" {
		t.Errorf("Storage.Mode: got %q", cfg.Storage.Mode)
	}
	if cfg.Storage.ReopenThreshold != 5000 {
		t.Errorf("Storage.ReopenThreshold: got %d", cfg.Storage.ReopenThreshold)
	}
	if cfg.Server.Listen != "tcp://0.0.0.0:9191" {
		t.Errorf("Server.Listen: got %q", cfg.Server.Listen)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "json" {
		t.Errorf("Log: got %+v", cfg.Log)
	}
}

func TestLoadPartialTOMLKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte("[storage]\nbackend = \"remote\"\naddress = \"tcp://db:9090\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Storage.Backend != "remote" || cfg.Storage.Address != "tcp://db:9090" {
		t.Errorf("Storage: got %+v", cfg.Storage)
	}
	// Unmentioned sections keep their defaults.
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level: got %q, want info", cfg.Log.Level)
	}
	if cfg.Server.Listen != "tcp://127.0.0.1:9090" {
		t.Errorf("Server.Listen: got %q", cfg.Server.Listen)
	}
}

func TestLoadBadTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("{{invalid"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for invalid TOML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults valid", func(*Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Storage.Backend = "tarantool" }, "storage.backend"},
		{"embedded without path", func(c *Config) {
			c.Storage.Backend = "embedded"
			c.Storage.Path = ""
		}, "storage.path"},
		{"unknown engine", func(c *Config) {
			c.Storage.Backend = "embedded"
			c.Storage.Engine = "rocksdb"
		}, "storage.engine"},
		{"remote without address", func(c *Config) { c.Storage.Backend = "remote" }, "storage.address"},
		{"remote with address", func(c *Config) {
			c.Storage.Backend = "remote"
			c.Storage.Address = "tcp://127.0.0.1:9090"
		}, ""},
		{"bad mode", func(c *Config) { c.Storage.Mode = "append" }, "storage.mode"},
		{"empty mode", func(c *Config) { c.Storage.Mode = "" }, ""},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error should mention %q: %v", tt.wantErr, err)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home dir")
	}

	got := ExpandHome("~/foo/bar")
	want := filepath.Join(home, "foo/bar")
	if got != want {
		t.Errorf("ExpandHome: got %q, want %q", got, want)
	}

	// Non-home path unchanged
	if got := ExpandHome("/absolute/path"); got != "/absolute/path" {
		t.Errorf("ExpandHome: got %q, want /absolute/path", got)
	}
}
