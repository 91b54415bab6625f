package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Bot       BotConfig       `toml:"bot" yaml:"bot"`
	Poll      PollConfig      `toml:"poll" yaml:"poll"`
	Webhook   WebhookConfig   `toml:"webhook" yaml:"webhook"`
	Store     StoreConfig     `toml:"store" yaml:"store"`
	Retry     RetryConfig     `toml:"retry" yaml:"retry"`
	RateLimit RateLimitConfig `toml:"rate_limit" yaml:"rate_limit"`
	Log       LogConfig       `toml:"log" yaml:"log"`
	Observer  ObserverConfig  `toml:"observer" yaml:"observer"`
}

type BotConfig struct {
	Token   string        `toml:"token" yaml:"token"`
	BaseURL string        `toml:"base_url" yaml:"base_url"`
	Timeout time.Duration `toml:"timeout" yaml:"timeout"`
	// AllowedUsers restricts the echo and poll commands to these user ids.
	AllowedUsers []int64 `toml:"allowed_users" yaml:"allowed_users"`
}

type PollConfig struct {
	Timeout        time.Duration `toml:"timeout" yaml:"timeout"`
	Limit          int           `toml:"limit" yaml:"limit"`
	AllowedUpdates []string      `toml:"allowed_updates" yaml:"allowed_updates"`
	ErrorDelay     time.Duration `toml:"error_delay" yaml:"error_delay"`
}

type WebhookConfig struct {
	Listen      string `toml:"listen" yaml:"listen"`
	Path        string `toml:"path" yaml:"path"`
	URL         string `toml:"url" yaml:"url"`
	SecretToken string `toml:"secret_token" yaml:"secret_token"`
}

type StoreConfig struct {
	// Driver is "memory", "sqlite" or "postgres".
	Driver string `toml:"driver" yaml:"driver"`
	DSN    string `toml:"dsn" yaml:"dsn"`
	// Key names the bot's row in the offsets table.
	Key string `toml:"key" yaml:"key"`
}

type RetryConfig struct {
	MaxAttempts int           `toml:"max_attempts" yaml:"max_attempts"`
	BaseDelay   time.Duration `toml:"base_delay" yaml:"base_delay"`
}

type RateLimitConfig struct {
	GlobalPerSecond float64       `toml:"global_per_second" yaml:"global_per_second"`
	ChatInterval    time.Duration `toml:"chat_interval" yaml:"chat_interval"`
	ChatBurst       int           `toml:"chat_burst" yaml:"chat_burst"`
}

type LogConfig struct {
	Level string `toml:"level" yaml:"level"`
	// Format is "console" or "json".
	Format string `toml:"format" yaml:"format"`
	// Output is "stdout", "stderr" or a file path rotated with MaxSizeMB.
	Output     string `toml:"output" yaml:"output"`
	MaxSizeMB  int    `toml:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups" yaml:"max_backups"`
	MaxAgeDays int    `toml:"max_age_days" yaml:"max_age_days"`
}

type ObserverConfig struct {
	Enabled     bool   `toml:"enabled" yaml:"enabled"`
	ServiceName string `toml:"service_name" yaml:"service_name"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Bot:       BotConfig{BaseURL: "https://api.telegram.org", Timeout: 90 * time.Second},
		Poll:      PollConfig{Timeout: 30 * time.Second, ErrorDelay: 5 * time.Second},
		Webhook:   WebhookConfig{Listen: ":8443", Path: "/telegram"},
		Store:     StoreConfig{Driver: "sqlite", DSN: "tgbot.db", Key: "default"},
		Retry:     RetryConfig{MaxAttempts: 3, BaseDelay: time.Second},
		RateLimit: RateLimitConfig{GlobalPerSecond: 30, ChatInterval: time.Second, ChatBurst: 1},
		Log:       LogConfig{Level: "info", Format: "console", Output: "stderr", MaxSizeMB: 100, MaxBackups: 3, MaxAgeDays: 28},
		Observer:  ObserverConfig{ServiceName: "tgbot"},
	}
}

// Load reads config: defaults -> file -> env vars (env wins). The file
// format follows the extension: .yaml/.yml for YAML, TOML otherwise. A
// missing file is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = "tgbot.toml"
	}

	if data, err := os.ReadFile(path); err == nil {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &cfg)
		default:
			err = toml.Unmarshal(data, &cfg)
		}
		if err != nil {
			return cfg, fmt.Errorf("config %s: %w", path, err)
		}
	}

	// Env overrides
	if v := os.Getenv("TGBOT_TOKEN"); v != "" {
		cfg.Bot.Token = v
	}
	if v := os.Getenv("TGBOT_BASE_URL"); v != "" {
		cfg.Bot.BaseURL = v
	}
	if v := os.Getenv("TGBOT_STORE_DRIVER"); v != "" {
		cfg.Store.Driver = v
	}
	if v := os.Getenv("TGBOT_STORE_DSN"); v != "" {
		cfg.Store.DSN = v
	}
	if v := os.Getenv("TGBOT_WEBHOOK_SECRET"); v != "" {
		cfg.Webhook.SecretToken = v
	}
	if v := os.Getenv("TGBOT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("TGBOT_OBSERVER_ENABLED"); v == "true" || v == "1" {
		cfg.Observer.Enabled = true
	}

	return cfg, nil
}

// Validate reports settings the bot cannot run with.
func (c Config) Validate() error {
	if c.Bot.Token == "" {
		return fmt.Errorf("config: bot token is required (set bot.token or TGBOT_TOKEN)")
	}
	switch c.Store.Driver {
	case "memory", "sqlite", "postgres":
	default:
		return fmt.Errorf("config: unknown store driver %q", c.Store.Driver)
	}
	if c.Poll.Limit < 0 || c.Poll.Limit > 100 {
		return fmt.Errorf("config: poll.limit must be between 1 and 100, got %d", c.Poll.Limit)
	}
	return nil
}
