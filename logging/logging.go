package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the process logger. Output goes to stderr only: stdout carries
// the MCP stdio protocol and must stay clean.
func New(levelStr string) *zap.Logger {
	level := zapcore.InfoLevel
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		level = zapcore.DebugLevel
	case "WARN":
		level = zapcore.WarnLevel
	case "ERROR":
		level = zapcore.ErrorLevel
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stderr),
		level,
	)
	return zap.New(core)
}

// Nop returns a logger that discards everything, for tests.
func Nop() *zap.Logger {
	return zap.NewNop()
}
