// Package config loads service configuration in layers: built-in defaults,
// an optional YAML file, then environment variables. A .env file in the
// working directory is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
}

type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Database    DatabaseConfig    `koanf:"database"`
	OpenTripMap OpenTripMapConfig `koanf:"opentripmap"`
	OpenWeather OpenWeatherConfig `koanf:"openweather"`
	Cache       CacheConfig       `koanf:"cache"`
	Recommend   RecommendConfig   `koanf:"recommend"`
	Logging     LoggingConfig     `koanf:"logging"`
	Security    SecurityConfig    `koanf:"security"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type DatabaseConfig struct {
	// Driver is sqlite or postgres.
	Driver string `koanf:"driver"`
	// Path is the SQLite file.
	Path string `koanf:"path"`
	// URL is the Postgres connection string.
	URL string `koanf:"url"`
}

type OpenTripMapConfig struct {
	APIKey             string        `koanf:"api_key"`
	BaseURL            string        `koanf:"base_url"`
	Timeout            time.Duration `koanf:"timeout"`
	BreakerFailures    uint32        `koanf:"breaker_failures"`
	BreakerOpenTimeout time.Duration `koanf:"breaker_open_timeout"`
	// RequestsPerSecond caps outbound calls; 0 disables the limit.
	RequestsPerSecond float64 `koanf:"requests_per_second"`
}

type OpenWeatherConfig struct {
	APIKey  string        `koanf:"api_key"`
	BaseURL string        `koanf:"base_url"`
	Timeout time.Duration `koanf:"timeout"`
}

type CacheConfig struct {
	// Backend is none, redis, sql or badger.
	Backend       string        `koanf:"backend"`
	RedisAddr     string        `koanf:"redis_addr"`
	RedisPassword string        `koanf:"redis_password"`
	RedisDB       int           `koanf:"redis_db"`
	BadgerPath    string        `koanf:"badger_path"`
	TTL           time.Duration `koanf:"ttl"`
	// PurgeInterval is how often expired sql cache rows are deleted.
	PurgeInterval time.Duration `koanf:"purge_interval"`
}

type RecommendConfig struct {
	LiveLimit     int     `koanf:"live_limit"`
	FallbackLimit int     `koanf:"fallback_limit"`
	FetchLimit    int     `koanf:"fetch_limit"`
	FallbackPath  string  `koanf:"fallback_path"`
	DefaultLat    float64 `koanf:"default_lat"`
	DefaultLon    float64 `koanf:"default_lon"`
}

type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	SecureCookies     bool          `koanf:"secure_cookies"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            "8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver: "sqlite",
			Path:   "data/trip_planner.db",
		},
		OpenTripMap: OpenTripMapConfig{
			BaseURL:            "https://api.opentripmap.com",
			Timeout:            10 * time.Second,
			BreakerFailures:    5,
			BreakerOpenTimeout: time.Minute,
			RequestsPerSecond:  5,
		},
		OpenWeather: OpenWeatherConfig{
			BaseURL: "https://api.openweathermap.org",
			Timeout: 5 * time.Second,
		},
		Cache: CacheConfig{
			Backend:       "none",
			RedisAddr:     "localhost:6379",
			BadgerPath:    "data/candidate_cache",
			TTL:           10 * time.Minute,
			PurgeInterval: time.Hour,
		},
		Recommend: RecommendConfig{
			LiveLimit:     20,
			FallbackLimit: 15,
			FetchLimit:    100,
			DefaultLat:    10.5276,
			DefaultLon:    76.2144,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 120,
			RateLimitWindow:   time.Minute,
		},
	}
}

// Load reads configuration with precedence env > file > defaults and
// validates the result.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("load config: defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config: file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("load config: environment: %w", err)
	}

	if err := splitCommaList(k, "security.cors_origins"); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("load config: unmarshal: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if p := os.Getenv(ConfigPathEnvVar); p != "" {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	for _, p := range DefaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Environment variable names accepted, mapped to config paths.
var envMappings = map[string]string{
	"port":                             "server.port",
	"server_read_timeout":              "server.read_timeout",
	"server_write_timeout":             "server.write_timeout",
	"server_shutdown_timeout":          "server.shutdown_timeout",
	"db_driver":                        "database.driver",
	"db_path":                          "database.path",
	"database_url":                     "database.url",
	"opentripmap_api_key":              "opentripmap.api_key",
	"opentripmap_base_url":             "opentripmap.base_url",
	"opentripmap_timeout":              "opentripmap.timeout",
	"opentripmap_breaker_failures":     "opentripmap.breaker_failures",
	"opentripmap_breaker_open_timeout": "opentripmap.breaker_open_timeout",
	"opentripmap_rps":                  "opentripmap.requests_per_second",
	"openweather_api_key":              "openweather.api_key",
	"openweather_base_url":             "openweather.base_url",
	"openweather_timeout":              "openweather.timeout",
	"cache_backend":                    "cache.backend",
	"redis_addr":                       "cache.redis_addr",
	"redis_password":                   "cache.redis_password",
	"redis_db":                         "cache.redis_db",
	"badger_path":                      "cache.badger_path",
	"cache_ttl":                        "cache.ttl",
	"cache_purge_interval":             "cache.purge_interval",
	"live_limit":                       "recommend.live_limit",
	"fallback_limit":                   "recommend.fallback_limit",
	"fetch_limit":                      "recommend.fetch_limit",
	"fallback_path":                    "recommend.fallback_path",
	"default_lat":                      "recommend.default_lat",
	"default_lon":                      "recommend.default_lon",
	"log_level":                        "logging.level",
	"log_format":                       "logging.format",
	"log_caller":                       "logging.caller",
	"cors_origins":                     "security.cors_origins",
	"rate_limit_requests":              "security.rate_limit_requests",
	"rate_limit_window":                "security.rate_limit_window",
	"secure_cookies":                   "security.secure_cookies",
}

// envTransformFunc maps known variables to config paths and drops the rest.
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}

func splitCommaList(k *koanf.Koanf, path string) error {
	s, ok := k.Get(path).(string)
	if !ok {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if err := k.Set(path, out); err != nil {
		return fmt.Errorf("set %s: %w", path, err)
	}
	return nil
}

// Validate checks values that would otherwise fail at first use.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(c.Database.Driver) {
	case "sqlite", "sqlite3":
		if strings.TrimSpace(c.Database.Path) == "" {
			errs = append(errs, errors.New("DB_PATH is required for sqlite"))
		}
	case "postgres", "postgresql", "pgx":
		if strings.TrimSpace(c.Database.URL) == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("DB_DRIVER %q must be sqlite or postgres", c.Database.Driver))
	}

	switch c.Cache.Backend {
	case "none", "sql":
	case "redis":
		if c.Cache.RedisAddr == "" {
			errs = append(errs, errors.New("REDIS_ADDR is required when CACHE_BACKEND=redis"))
		}
	case "badger":
		if strings.TrimSpace(c.Cache.BadgerPath) == "" {
			errs = append(errs, errors.New("BADGER_PATH is required when CACHE_BACKEND=badger"))
		}
	default:
		errs = append(errs, fmt.Errorf("CACHE_BACKEND %q must be none, redis, sql or badger", c.Cache.Backend))
	}

	if c.Recommend.LiveLimit < 1 || c.Recommend.FallbackLimit < 1 || c.Recommend.FetchLimit < 1 {
		errs = append(errs, errors.New("recommendation limits must be positive"))
	}
	if c.Recommend.DefaultLat < -90 || c.Recommend.DefaultLat > 90 {
		errs = append(errs, fmt.Errorf("DEFAULT_LAT %v out of range", c.Recommend.DefaultLat))
	}
	if c.Recommend.DefaultLon < -180 || c.Recommend.DefaultLon > 180 {
		errs = append(errs, fmt.Errorf("DEFAULT_LON %v out of range", c.Recommend.DefaultLon))
	}
	if c.Security.RateLimitRequests < 0 {
		errs = append(errs, errors.New("RATE_LIMIT_REQUESTS must not be negative"))
	}

	return errors.Join(errs...)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Database.URL != "" && !strings.HasPrefix(strings.ToLower(c.Database.Driver), "sqlite") {
		return c.Database.URL
	}
	return c.Database.Path
}

// Get returns the environment value for key or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
