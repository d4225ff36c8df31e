package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
)

// newDebugLogger builds a development logger for the -debug flag.
func newDebugLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	l, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot build debug logger: %v\n", err)
		return zap.NewNop()
	}
	return l
}
