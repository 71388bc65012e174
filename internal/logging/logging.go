// Package logging sets up the zap logger used by the wesign-e2e CLI.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	once   sync.Once
	logger *zap.Logger
)

// Init builds the global console logger at the given level. Safe to call
// more than once; only the first call wins.
func Init(level string) *zap.Logger {
	once.Do(func() {
		lvl := zap.NewAtomicLevel()
		if err := lvl.UnmarshalText([]byte(level)); err != nil {
			lvl.SetLevel(zap.InfoLevel)
		}

		encCfg := zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		core := zapcore.NewCore(
			zapcore.NewConsoleEncoder(encCfg),
			zapcore.Lock(os.Stderr),
			lvl,
		)
		logger = zap.New(core, zap.AddStacktrace(zap.ErrorLevel))
		zap.ReplaceGlobals(logger)
	})
	return logger
}

// L returns the global logger, initializing it at info level if needed.
func L() *zap.Logger {
	if logger == nil {
		return Init("info")
	}
	return logger
}
