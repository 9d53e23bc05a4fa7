package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWithoutConfigFile(t *testing.T) {
	// No config file anywhere in the search paths: defaults apply.
	// t.Chdir needs Go 1.24; replicate it on the 1.21 toolchain.
	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(oldWD); err != nil {
			t.Fatal(err)
		}
	})
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v, want defaults to apply", err)
	}
	if cfg.API.URL == "" {
		t.Error("Load() returned empty api.url, want default")
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Load() logging.level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	// An explicit --config path that does not exist is still an error.
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("Load() with missing explicit path succeeded, want error")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(":\tnot yaml"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() with malformed file succeeded, want error")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			API: APIConfig{
				URL:            "https://myflix.example.com",
				TimeoutSeconds: 30,
			},
			Cache: CacheConfig{
				Enabled:    false,
				TTLSeconds: 300,
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "console",
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing API URL",
			mutate:  func(c *Config) { c.API.URL = "" },
			wantErr: true,
		},
		{
			name:    "non-positive timeout",
			mutate:  func(c *Config) { c.API.TimeoutSeconds = 0 },
			wantErr: true,
		},
		{
			name: "cache enabled without TTL",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.TTLSeconds = 0
			},
			wantErr: true,
		},
		{
			name: "cache enabled with TTL",
			mutate: func(c *Config) {
				c.Cache.Enabled = true
				c.Cache.TTLSeconds = 60
			},
			wantErr: false,
		},
		{
			name:    "invalid logging level",
			mutate:  func(c *Config) { c.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(c *Config) { c.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
