package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Recommend.LiveLimit != 20 {
		t.Errorf("LiveLimit = %d, want 20", cfg.Recommend.LiveLimit)
	}
	if cfg.Recommend.FallbackLimit != 15 {
		t.Errorf("FallbackLimit = %d, want 15", cfg.Recommend.FallbackLimit)
	}
	if cfg.Recommend.FetchLimit != 100 {
		t.Errorf("FetchLimit = %d, want 100", cfg.Recommend.FetchLimit)
	}
	if cfg.OpenTripMap.Timeout != 10*time.Second {
		t.Errorf("OpenTripMap.Timeout = %v, want 10s", cfg.OpenTripMap.Timeout)
	}
	if cfg.OpenWeather.Timeout != 5*time.Second {
		t.Errorf("OpenWeather.Timeout = %v, want 5s", cfg.OpenWeather.Timeout)
	}
	if cfg.Database.Driver != "sqlite" {
		t.Errorf("Database.Driver = %q, want sqlite", cfg.Database.Driver)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("PORT", "9090")
	t.Setenv("LIVE_LIMIT", "30")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OPENTRIPMAP_API_KEY", "otm-key")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Server.Port)
	}
	if cfg.Recommend.LiveLimit != 30 {
		t.Errorf("LiveLimit = %d, want 30", cfg.Recommend.LiveLimit)
	}
	if cfg.Recommend.FallbackLimit != 15 {
		t.Errorf("FallbackLimit = %d, want default 15", cfg.Recommend.FallbackLimit)
	}
	if cfg.Cache.TTL != 2*time.Minute {
		t.Errorf("Cache.TTL = %v, want 2m", cfg.Cache.TTL)
	}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[1] != "https://b.example" {
		t.Errorf("CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.OpenTripMap.APIKey != "otm-key" {
		t.Errorf("OpenTripMap.APIKey = %q", cfg.OpenTripMap.APIKey)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	body := "recommend:\n  fallback_limit: 10\nlogging:\n  level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Recommend.FallbackLimit != 10 {
		t.Errorf("FallbackLimit = %d, want 10 from file", cfg.Recommend.FallbackLimit)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want env value warn", cfg.Logging.Level)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "DB_DRIVER"},
		{"postgres without url", func(c *Config) { c.Database.Driver = "postgres" }, "DATABASE_URL"},
		{"unknown cache", func(c *Config) { c.Cache.Backend = "memcached" }, "CACHE_BACKEND"},
		{"badger without path", func(c *Config) {
			c.Cache.Backend = "badger"
			c.Cache.BadgerPath = " "
		}, "BADGER_PATH"},
		{"zero limit", func(c *Config) { c.Recommend.FallbackLimit = 0 }, "limits"},
		{"bad lat", func(c *Config) { c.Recommend.DefaultLat = 91 }, "DEFAULT_LAT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() = %v, want error containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	cfg := defaultConfig()
	if cfg.DSN() != "data/trip_planner.db" {
		t.Errorf("sqlite DSN = %q", cfg.DSN())
	}

	cfg.Database.Driver = "postgres"
	cfg.Database.URL = "postgres://localhost/trips"
	if cfg.DSN() != "postgres://localhost/trips" {
		t.Errorf("postgres DSN = %q", cfg.DSN())
	}
}

func TestGet(t *testing.T) {
	t.Setenv("TRIP_PLANNER_TEST_KEY", "set")
	if got := Get("TRIP_PLANNER_TEST_KEY", "fallback"); got != "set" {
		t.Errorf("Get = %q, want set", got)
	}
	if got := Get("TRIP_PLANNER_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("Get = %q, want fallback", got)
	}
}

func TestLoadCacheAndRateLimitKeys(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("CACHE_BACKEND", "badger")
	t.Setenv("BADGER_PATH", "/tmp/candidates")
	t.Setenv("CACHE_PURGE_INTERVAL", "15m")
	t.Setenv("OPENTRIPMAP_RPS", "2.5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Cache.Backend != "badger" || cfg.Cache.BadgerPath != "/tmp/candidates" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Cache.PurgeInterval != 15*time.Minute {
		t.Errorf("PurgeInterval = %v, want 15m", cfg.Cache.PurgeInterval)
	}
	if cfg.OpenTripMap.RequestsPerSecond != 2.5 {
		t.Errorf("RequestsPerSecond = %v, want 2.5", cfg.OpenTripMap.RequestsPerSecond)
	}
}
