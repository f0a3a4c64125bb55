package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"go.yaml.in/yaml/v4"
)

type Config struct {
	DBPath          string        `yaml:"db_path"`
	Backend         string        `yaml:"backend"`
	Codec           string        `yaml:"codec"`
	StorageKey      string        `yaml:"storage_key"`
	OpenTimeout     time.Duration `yaml:"open_timeout"`
	LogLevel        string        `yaml:"log_level"`
	LogFormat       string        `yaml:"log_format"`
	LogFile         string        `yaml:"log_file"`
	MetricsTextfile string        `yaml:"metrics_textfile"`
	Nudge           NudgeConfig   `yaml:"nudge"`
}

type NudgeConfig struct {
	Email          string `yaml:"email"`
	From           string `yaml:"from"`
	ThresholdHours int    `yaml:"threshold_hours"`
	ResendAPIKey   string `yaml:"resend_api_key"`
}

func Default() *Config {
	return &Config{
		DBPath:      "habits.db",
		Backend:     "bolt",
		Codec:       "json",
		StorageKey:  "user_habits",
		OpenTimeout: 5 * time.Second,
		LogLevel:    "warn",
		LogFormat:   "text",
		Nudge: NudgeConfig{
			From:           "onboarding@resend.dev",
			ThresholdHours: 4,
		},
	}
}

// Load reads the YAML file at path (or $HABITS_CONFIG when path is empty)
// over the defaults, then applies HABITS_* environment overrides. A named
// file that does not exist is an error; no file at all means defaults.
// Callers apply their own overrides and then call Validate.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("HABITS_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.DBPath = getenv("HABITS_DB_PATH", cfg.DBPath)
	cfg.Backend = getenv("HABITS_BACKEND", cfg.Backend)
	cfg.Codec = getenv("HABITS_CODEC", cfg.Codec)
	cfg.LogLevel = getenv("HABITS_LOG_LEVEL", cfg.LogLevel)
	cfg.LogFile = getenv("HABITS_LOG_FILE", cfg.LogFile)
	cfg.MetricsTextfile = getenv("HABITS_METRICS_TEXTFILE", cfg.MetricsTextfile)
	cfg.Nudge.Email = getenv("HABITS_NOTIFY_EMAIL", cfg.Nudge.Email)
	cfg.Nudge.ResendAPIKey = getenv("HABITS_RESEND_API_KEY", cfg.Nudge.ResendAPIKey)
	if v := os.Getenv("HABITS_NUDGE_THRESHOLD"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("HABITS_NUDGE_THRESHOLD must be a valid integer: %w", err)
		}
		cfg.Nudge.ThresholdHours = n
	}
	return cfg, nil
}

// Validate checks the settings needed to open a store.
func (c *Config) Validate() error {
	switch c.Backend {
	case "bolt", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown backend %q: want bolt, sqlite or memory", c.Backend)
	}
	if c.Backend != "memory" && c.DBPath == "" {
		return fmt.Errorf("db_path is required for the %s backend", c.Backend)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage_key must not be empty")
	}
	if c.Nudge.ThresholdHours < 0 {
		return fmt.Errorf("nudge.threshold_hours must not be negative")
	}
	return nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
