package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/nevindra/tgbot/internal/config"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]string{
		"debug":   "debug",
		"WARNING": "warn",
		"error":   "error",
		"":        "info",
		"bogus":   "info",
	}
	for in, want := range tests {
		if got := ParseLevel(in).String(); got != want {
			t.Errorf("ParseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestSetupFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "bot.log")
	zl, sl := Setup(config.LogConfig{Level: "info", Format: "json", Output: path, MaxSizeMB: 1})

	sl.Info("poller started", "component", "poller", "offset", 42)
	sl.Debug("hidden")
	zl.Info("direct", zap.String("k", "v"))
	_ = zl.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, `"msg":"poller started"`) || !strings.Contains(out, `"offset":42`) {
		t.Errorf("missing slog record in %s", out)
	}
	if !strings.Contains(out, `"msg":"direct"`) {
		t.Errorf("missing zap record in %s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record should be filtered: %s", out)
	}
}
