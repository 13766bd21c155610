//go:build !linux && !windows
// +build !linux,!windows

package executor

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// StubExecutor is a placeholder for unsupported platforms (macOS, BSD, etc.)
type StubExecutor struct {
	logger *zap.Logger
}

// NewExecutor creates a stub restarter for unsupported platforms
func NewExecutor(logger *zap.Logger) (*StubExecutor, error) {
	return &StubExecutor{logger: logger}, nil
}

// Restart returns an error indicating the platform is not supported
func (e *StubExecutor) Restart(ctx context.Context) error {
	e.logger.Warn("Discord restart is not implemented for this platform")
	return fmt.Errorf("discord restart not implemented for this platform")
}
