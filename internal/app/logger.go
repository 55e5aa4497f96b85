package app

import (
	"io"
	"log/slog"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"go.uber.org/zap/zapcore"
)

// NewLogger returns an slog.Logger backed by a zap JSON core writing to w.
// The returned func flushes buffered entries.
func NewLogger(logLevel string, w io.Writer) (*slog.Logger, func()) {
	var lvl zapcore.Level
	if err := lvl.Set(strings.ToLower(logLevel)); err != nil {
		lvl = zapcore.InfoLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(w), lvl)
	logger := slog.New(zapslog.NewHandler(core, zapslog.WithCaller(true)))
	return logger, func() { _ = core.Sync() }
}

// setupLogger installs the process-wide logger.
func setupLogger(logLevel string, w io.Writer) func() {
	logger, flush := NewLogger(logLevel, w)
	slog.SetDefault(logger)
	return flush
}
