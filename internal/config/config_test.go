package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()
	if cfg.Bot.BaseURL != "https://api.telegram.org" {
		t.Errorf("unexpected base url %s", cfg.Bot.BaseURL)
	}
	if cfg.Poll.Timeout != 30*time.Second {
		t.Errorf("expected 30s poll timeout, got %v", cfg.Poll.Timeout)
	}
	if cfg.Store.Driver != "sqlite" {
		t.Errorf("expected sqlite, got %s", cfg.Store.Driver)
	}
}

func TestLoadFromTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.toml")
	os.WriteFile(path, []byte(`
[bot]
token = "123:abc"
allowed_users = [1, 2]

[poll]
timeout = "50s"
allowed_updates = ["message", "callback_query"]

[rate_limit]
global_per_second = 10.5
`), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Token != "123:abc" {
		t.Errorf("expected 123:abc, got %s", cfg.Bot.Token)
	}
	if len(cfg.Bot.AllowedUsers) != 2 {
		t.Errorf("allowed_users = %v", cfg.Bot.AllowedUsers)
	}
	if cfg.Poll.Timeout != 50*time.Second {
		t.Errorf("expected 50s, got %v", cfg.Poll.Timeout)
	}
	if len(cfg.Poll.AllowedUpdates) != 2 {
		t.Errorf("allowed_updates = %v", cfg.Poll.AllowedUpdates)
	}
	if cfg.RateLimit.GlobalPerSecond != 10.5 {
		t.Errorf("global_per_second = %v", cfg.RateLimit.GlobalPerSecond)
	}
	// Defaults preserved
	if cfg.Retry.MaxAttempts != 3 {
		t.Errorf("default should be preserved, got %d", cfg.Retry.MaxAttempts)
	}
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	os.WriteFile(path, []byte(`
bot:
  token: yaml-token
store:
  driver: postgres
  dsn: postgres://localhost/bot
log:
  format: json
  output: /var/log/tgbot.log
retry:
  base_delay: 250ms
`), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Token != "yaml-token" || cfg.Store.Driver != "postgres" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Log.Format != "json" || cfg.Log.Output != "/var/log/tgbot.log" {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Retry.BaseDelay != 250*time.Millisecond {
		t.Errorf("base_delay = %v", cfg.Retry.BaseDelay)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("default level should be preserved, got %s", cfg.Log.Level)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	os.WriteFile(path, []byte("[bot\ntoken ="), 0644)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed file")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("TGBOT_TOKEN", "env-token")
	t.Setenv("TGBOT_STORE_DSN", "postgres://env")
	t.Setenv("TGBOT_LOG_LEVEL", "debug")
	t.Setenv("TGBOT_OBSERVER_ENABLED", "1")

	cfg, err := Load("/nonexistent/path.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Bot.Token != "env-token" {
		t.Errorf("expected env-token, got %s", cfg.Bot.Token)
	}
	if cfg.Store.DSN != "postgres://env" {
		t.Errorf("expected env dsn, got %s", cfg.Store.DSN)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected debug, got %s", cfg.Log.Level)
	}
	if !cfg.Observer.Enabled {
		t.Error("observer should be enabled")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err == nil {
		t.Error("expected missing token error")
	}
	cfg.Bot.Token = "x"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	cfg.Store.Driver = "redis"
	if err := cfg.Validate(); err == nil {
		t.Error("expected unknown driver error")
	}
	cfg.Store.Driver = "memory"
	cfg.Poll.Limit = 101
	if err := cfg.Validate(); err == nil {
		t.Error("expected limit error")
	}
}
