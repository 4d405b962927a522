package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:               "8081",
		UpstreamURL:        DefaultUpstreamURL,
		FetchTimeout:       15 * time.Second,
		DataBackend:        "remote",
		CacheSize:          128,
		CacheTTL:           10 * time.Minute,
		RateLimitPerMinute: 60,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()
	dataset := filepath.Join(dir, "lonn.json")
	if err := os.WriteFile(dataset, []byte("[]"), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	t.Setenv("GOOGLE_APPLICATION_CREDENTIALS", "")

	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid remote backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "postgres" },
			wantErr:     true,
			errorString: "invalid data backend 'postgres': must be one of [remote memory sqlite sheets]",
		},
		{
			name:        "upstream url without http scheme",
			mutate:      func(c *Config) { c.UpstreamURL = "ftp://example.com/lonn.json" },
			wantErr:     true,
			errorString: "invalid upstream URL scheme 'ftp'",
		},
		{
			name: "memory backend with readable file",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.DatasetFile = dataset
			},
			wantErr: false,
		},
		{
			name: "memory backend with missing file",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.DatasetFile = filepath.Join(dir, "missing.json")
			},
			wantErr:     true,
			errorString: "dataset file is not readable",
		},
		{
			name: "sqlite backend missing database path",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = ""
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name: "sqlite backend with missing directory",
			mutate: func(c *Config) {
				c.DataBackend = "sqlite"
				c.SQLiteDBPath = filepath.Join(dir, "nope", "x.db")
			},
			wantErr:     true,
			errorString: "run lonnstall-import first",
		},
		{
			name: "sheets backend missing everything",
			mutate: func(c *Config) {
				c.DataBackend = "sheets"
			},
			wantErr:     true,
			errorString: "Google Spreadsheet ID is required",
		},
		{
			name: "sheets backend with inline credentials",
			mutate: func(c *Config) {
				c.DataBackend = "sheets"
				c.GoogleSpreadsheetID = "sheet-id"
				c.GoogleCredentialsJSON = `{"type":"service_account"}`
			},
			wantErr: false,
		},
		{
			name:        "cache size out of range",
			mutate:      func(c *Config) { c.CacheSize = 0 },
			wantErr:     true,
			errorString: "invalid cache size 0",
		},
		{
			name:        "cache ttl too short",
			mutate:      func(c *Config) { c.CacheTTL = time.Millisecond },
			wantErr:     true,
			errorString: "invalid cache TTL",
		},
		{
			name:        "rate limit zero",
			mutate:      func(c *Config) { c.RateLimitPerMinute = 0 },
			wantErr:     true,
			errorString: "invalid rate limit 0",
		},
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:        "bad log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error containing %q", tt.errorString)
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_ValidateReportsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.DataBackend = "nope"
	cfg.CacheSize = -1
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	for _, want := range []string{"invalid port", "invalid data backend", "invalid cache size"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("missing %q in %q", want, err.Error())
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "UPSTREAM_URL", "DATA_BACKEND", "FETCH_TIMEOUT", "CACHE_SIZE", "CACHE_TTL", "RATE_LIMIT_PER_MINUTE", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8081" || cfg.DataBackend != "remote" || cfg.UpstreamURL != DefaultUpstreamURL {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.FetchTimeout != 15*time.Second || cfg.CacheSize != 128 || cfg.CacheTTL != 10*time.Minute || cfg.RateLimitPerMinute != 60 {
		t.Fatalf("unexpected numeric defaults: %+v", cfg)
	}
	if cfg.Addr() != ":8081" {
		t.Fatalf("Addr = %q", cfg.Addr())
	}
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("CACHE_SIZE", "12")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("FETCH_TIMEOUT", "not-a-duration")

	cfg := Load()
	if cfg.Port != "9090" || cfg.DataBackend != "sqlite" || cfg.CacheSize != 12 || cfg.CacheTTL != 90*time.Second {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.FetchTimeout != 15*time.Second {
		t.Fatalf("unparsable duration should fall back to default, got %v", cfg.FetchTimeout)
	}
}
