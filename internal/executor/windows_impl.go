//go:build windows
// +build windows

package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"
)

const detachedProcess = 0x00000008

// WindowsExecutor restarts the Discord client on Windows systems
type WindowsExecutor struct {
	logger *zap.Logger
}

// NewExecutor creates a new platform-specific restarter (Windows implementation)
func NewExecutor(logger *zap.Logger) (*WindowsExecutor, error) {
	return &WindowsExecutor{logger: logger}, nil
}

// Restart kills Discord.exe and relaunches it through the Squirrel updater
func (e *WindowsExecutor) Restart(ctx context.Context) error {
	localAppData := os.Getenv("LOCALAPPDATA")
	if localAppData == "" {
		return errors.New("LOCALAPPDATA is not set")
	}
	updater := filepath.Join(localAppData, "Discord", "Update.exe")

	e.logger.Info("Restarting Discord client", zap.String("updater", updater))

	kill := exec.CommandContext(ctx, "taskkill", "/F", "/IM", "Discord.exe")
	if output, err := kill.CombinedOutput(); err != nil {
		e.logger.Debug("taskkill reported an error", zap.Error(err), zap.ByteString("output", output))
	}

	if err := sleepCtx(ctx, defaultSettleDelay); err != nil {
		return err
	}

	cmd := exec.Command(updater, "--processStart", "Discord.exe")
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CreationFlags: detachedProcess | syscall.CREATE_NEW_PROCESS_GROUP,
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to relaunch Discord: %w", err)
	}
	go func() { _ = cmd.Wait() }()

	e.logger.Info("Discord client relaunched")
	return nil
}
