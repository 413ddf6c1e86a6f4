// Package logging provides the structured logger every Ananke core package
// accepts as an optional dependency. Grounded on the teacher's cmd/nerd
// entry point, which builds a *zap.Logger from zap.NewProductionConfig and
// threads it through the rest of the program instead of using the global
// logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a production-profile zap.Logger. debug raises the level to
// Debug so recognizer/phase tracing is visible; otherwise only Info and
// above are emitted.
func New(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.EncoderConfig.TimeKey = "ts"
	return cfg.Build()
}

// NopIfNil returns l unchanged, or a no-op logger if l is nil. Every core
// package calls this on construction so an injected *zap.Logger is always
// optional and a host never has to configure logging just to call the
// pipeline.
func NopIfNil(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
