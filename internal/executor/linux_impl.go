//go:build linux
// +build linux

package executor

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// DiscordVariant describes one way the Discord client can be installed
type DiscordVariant struct {
	Name    string
	Binary  string   // Must be in PATH for the variant to be considered
	Process string   // Process name matched by pgrep/pkill
	Probe   []string // Optional command that must succeed for the variant to be installed
	Kill    []string
	Launch  []string
}

var (
	// Ordered list of Discord installs to try (highest priority first)
	discordVariants = []DiscordVariant{
		{Name: "stable", Binary: "discord", Process: "Discord",
			Kill: []string{"pkill", "-x", "Discord"}, Launch: []string{"discord"}},
		{Name: "canary", Binary: "discord-canary", Process: "DiscordCanary",
			Kill: []string{"pkill", "-x", "DiscordCanary"}, Launch: []string{"discord-canary"}},
		{Name: "ptb", Binary: "discord-ptb", Process: "DiscordPTB",
			Kill: []string{"pkill", "-x", "DiscordPTB"}, Launch: []string{"discord-ptb"}},
		{Name: "flatpak", Binary: "flatpak", Process: "Discord",
			Probe:  []string{"flatpak", "info", "com.discordapp.Discord"},
			Kill:   []string{"flatpak", "kill", "com.discordapp.Discord"},
			Launch: []string{"flatpak", "run", "com.discordapp.Discord"}},
	}
)

// LinuxExecutor restarts the Discord client on Linux systems
type LinuxExecutor struct {
	logger   *zap.Logger
	variants []DiscordVariant
	settle   time.Duration

	lookPath func(string) (string, error)
	run      func(ctx context.Context, argv []string) error
	start    func(argv []string) error
}

// NewExecutor creates a new platform-specific restarter (Linux implementation).
// Detection happens at restart time, since Discord may be installed or started later.
func NewExecutor(logger *zap.Logger) (*LinuxExecutor, error) {
	return &LinuxExecutor{
		logger:   logger,
		variants: discordVariants,
		settle:   defaultSettleDelay,
		lookPath: exec.LookPath,
		run:      runCommand,
		start:    startDetached,
	}, nil
}

// Restart kills the running Discord client and launches it again
func (e *LinuxExecutor) Restart(ctx context.Context) error {
	variant, ok := e.detect(ctx)
	if !ok {
		return errors.New("no Discord installation found")
	}

	e.logger.Info("Restarting Discord client", zap.String("variant", variant.Name))

	if err := e.run(ctx, variant.Kill); err != nil {
		// pkill exits non-zero when nothing matched; the client may already be gone
		e.logger.Debug("Kill command reported an error", zap.Strings("argv", variant.Kill), zap.Error(err))
	}

	if err := sleepCtx(ctx, e.settle); err != nil {
		return err
	}

	if err := e.start(variant.Launch); err != nil {
		return fmt.Errorf("failed to relaunch Discord (%s): %w", variant.Name, err)
	}

	e.logger.Info("Discord client relaunched", zap.String("variant", variant.Name))
	return nil
}

// detect prefers the variant that is currently running, then the first installed one
func (e *LinuxExecutor) detect(ctx context.Context) (DiscordVariant, bool) {
	var installed []DiscordVariant
	for _, v := range e.variants {
		if _, err := e.lookPath(v.Binary); err != nil {
			continue
		}
		if len(v.Probe) > 0 && e.run(ctx, v.Probe) != nil {
			continue
		}
		installed = append(installed, v)
	}

	for _, v := range installed {
		if e.run(ctx, []string{"pgrep", "-x", v.Process}) == nil {
			return v, true
		}
	}

	if len(installed) > 0 {
		e.logger.Debug("No running Discord client, using first installed variant",
			zap.String("variant", installed[0].Name))
		return installed[0], true
	}
	return DiscordVariant{}, false
}

func runCommand(ctx context.Context, argv []string) error {
	return exec.CommandContext(ctx, argv[0], argv[1:]...).Run()
}

// startDetached launches argv in its own session so it outlives this process
func startDetached(argv []string) error {
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
