package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/sirupsen/logrus"
)

// EnvPrefix prefixes every environment override, e.g. XINFO_INTERVAL_SEC.
const EnvPrefix = "XINFO"

// Config holds user-configurable defaults.
type Config struct {
	IntervalSec    int           `json:"interval_sec" split_words:"true"`
	CallTimeoutSec int           `json:"call_timeout_sec" split_words:"true"` // 0 = no deadline
	SysfsBlockDir  string        `json:"sysfs_block_dir" split_words:"true"`
	CacheTTLSec    int           `json:"cache_ttl_sec" split_words:"true"`
	LogLevel       string        `json:"log_level" split_words:"true"`
	Metrics        MetricsConfig `json:"metrics"`
	Flavors        FlavorConfig  `json:"flavors"`
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"`
}

type FlavorConfig struct {
	Enabled  bool   `json:"enabled"`
	AptCache string `json:"apt_cache" split_words:"true"`
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		IntervalSec:    2,
		CallTimeoutSec: 0,
		SysfsBlockDir:  "/sys/class/block",
		CacheTTLSec:    30,
		LogLevel:       "info",
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9101",
		},
		Flavors: FlavorConfig{
			Enabled:  true,
			AptCache: "apt-cache",
		},
	}
}

// Interval returns the refresh interval, at least one second.
func (c Config) Interval() time.Duration {
	if c.IntervalSec < 1 {
		return time.Second
	}
	return time.Duration(c.IntervalSec) * time.Second
}

// CallTimeout returns the per-call D-Bus deadline, zero for none.
func (c Config) CallTimeout() time.Duration {
	if c.CallTimeoutSec < 0 {
		return 0
	}
	return time.Duration(c.CallTimeoutSec) * time.Second
}

// CacheTTL returns how long drive inventory is cached.
func (c Config) CacheTTL() time.Duration {
	if c.CacheTTLSec < 0 {
		return 0
	}
	return time.Duration(c.CacheTTLSec) * time.Second
}

// Path returns ~/.config/xinfo/config.json (or XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "xinfo", "config.json")
}

// Load loads config from Path and applies environment overrides.
func Load() Config {
	return LoadFrom(Path())
}

// LoadFrom loads config from path; a missing or broken file yields defaults.
// Environment variables override file values.
func LoadFrom(path string) Config {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := json.Unmarshal(data, &cfg); err != nil {
				logrus.Warnf("xinfo: config parse error: %v", err)
			}
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		logrus.Warnf("xinfo: environment override error: %v", err)
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	return SaveTo(path, cfg)
}

// SaveTo writes the config to path.
func SaveTo(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
