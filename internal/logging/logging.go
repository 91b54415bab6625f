// Package logging builds the CLI's zap logger and bridges it to log/slog,
// which the library packages log through.
package logging

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/nevindra/tgbot/internal/config"
)

// Setup builds a zap.Logger from c and an slog.Logger writing through it.
// The caller should defer logger.Sync().
func Setup(c config.LogConfig) (*zap.Logger, *slog.Logger) {
	level := zap.NewAtomicLevelAt(ParseLevel(c.Level))

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	if strings.EqualFold(c.Format, "json") {
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(encoder, writer(c), level)
	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel))
	return logger, slog.New(zapslog.NewHandler(core, zapslog.WithCaller(true)))
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(s) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

func writer(c config.LogConfig) zapcore.WriteSyncer {
	switch strings.ToLower(c.Output) {
	case "", "stderr":
		return zapcore.Lock(os.Stderr)
	case "stdout":
		return zapcore.Lock(os.Stdout)
	}
	if dir := filepath.Dir(c.Output); dir != "." {
		_ = os.MkdirAll(dir, 0o755)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   c.Output,
		MaxSize:    max(c.MaxSizeMB, 1),
		MaxBackups: c.MaxBackups,
		MaxAge:     c.MaxAgeDays,
	})
}
