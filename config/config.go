package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upstream UpstreamConfig `yaml:"upstream"`
	Poller   PollerConfig   `yaml:"poller"`
	Registry RegistryConfig `yaml:"registry"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	RequestIPHeader string  `yaml:"request_ip_header"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
	CacheTTLSeconds int     `yaml:"cache_ttl_seconds"`
}

// UpstreamConfig describes the planning API this service fronts.
type UpstreamConfig struct {
	PlanningURL    string            `yaml:"planning_url"`
	Headers        map[string]string `yaml:"headers"`
	HTTPProxy      string            `yaml:"http_proxy"`
	TimeoutSeconds int               `yaml:"timeout_seconds"`
}

// PollerConfig drives the two refresh timers of the live dashboard.
type PollerConfig struct {
	Enabled                bool          `yaml:"enabled"`
	FetchIntervalSeconds   int           `yaml:"fetch_interval_seconds"`
	RefreshIntervalSeconds int           `yaml:"refresh_interval_seconds"`
	FetchInterval          time.Duration `yaml:"-"`
	RefreshInterval        time.Duration `yaml:"-"`
}

// RegistryConfig points at the static room and region configuration.
type RegistryConfig struct {
	RoomsPath   string `yaml:"rooms_path"`
	RegionsPath string `yaml:"regions_path"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}

	if cfg.Upstream.TimeoutSeconds <= 0 {
		cfg.Upstream.TimeoutSeconds = 30
	}

	// Full feed re-fetch every 2 minutes, in-place status refresh every
	// 30 seconds between fetches.
	if cfg.Poller.FetchIntervalSeconds <= 0 {
		cfg.Poller.FetchIntervalSeconds = 120
	}
	if cfg.Poller.RefreshIntervalSeconds <= 0 {
		cfg.Poller.RefreshIntervalSeconds = 30
	}
	cfg.Poller.FetchInterval = time.Duration(cfg.Poller.FetchIntervalSeconds) * time.Second
	cfg.Poller.RefreshInterval = time.Duration(cfg.Poller.RefreshIntervalSeconds) * time.Second

	if cfg.Registry.RoomsPath == "" {
		cfg.Registry.RoomsPath = "./config/rooms.yaml"
	}
	if cfg.Registry.RegionsPath == "" {
		cfg.Registry.RegionsPath = "./config/regions.json"
	}

	return &cfg, nil
}
