package main

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newDemoLogger builds a console logger for the --verbose flag, grounded
// on theRebelliousNerd-codenerd's cmd/nerd/main.go PersistentPreRunE
// (zap.NewProductionConfig with a debug-level override for verbose runs).
func newDemoLogger() (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}
