package main

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/genricoloni/mpcpresence/internal/config"
	"github.com/genricoloni/mpcpresence/internal/domain"
	"github.com/genricoloni/mpcpresence/internal/presence"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

// TestAppGraphValidity verifies that the dependency graph is resolvable.
// This test will fail if you forget an fx.Provide for a required interface.
func TestAppGraphValidity(t *testing.T) {
	// fx.ValidateApp checks that there are no missing or cyclic dependencies
	if err := fx.ValidateApp(AppOptions); err != nil {
		t.Errorf("Dependency graph is not valid: %v", err)
	}
}

// TestNewLogger specifically verifies the logger configuration
func TestNewLogger(t *testing.T) {
	cfg := &config.AppConfig{Log: config.LogConfig{
		Level: "debug",
		File:  filepath.Join(t.TempDir(), "app.log"),
	}}

	lc := fxtest.NewLifecycle(t)
	logger, err := newLogger(lc, cfg)
	if err != nil {
		t.Fatalf("Failed to create logger: %v", err)
	}
	if logger == nil {
		t.Fatal("Logger should not be nil")
	}
	logger.Info("Test logger initialization")

	lc.RequireStart().RequireStop()
}

// nopConn accepts every presence call
type nopConn struct {
	activities atomic.Int32
	closed     atomic.Bool
}

func (c *nopConn) SetActivity(ctx context.Context, a *domain.Activity) error {
	c.activities.Add(1)
	return nil
}

func (c *nopConn) ClearActivity(ctx context.Context) error { return nil }

func (c *nopConn) Close() error {
	c.closed.Store(true)
	return nil
}

func setTestEnv(t *testing.T) {
	t.Helper()
	t.Setenv("IMGUR_CLIENT_ID", "imgur-test")
	t.Setenv("DISCORD_CLIENT_ID", "123456789")
	// Nothing listens on port 1: the player is reported as not running
	t.Setenv("MPC_HOST", "127.0.0.1")
	t.Setenv("MPC_PORT", "1")
	t.Setenv("FLIP_VERTICAL", "false")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FILE", filepath.Join(t.TempDir(), "app.log"))
	t.Setenv("METRICS_ADDR", "127.0.0.1:0")
}

// TestEndToEndStartup tries a real startup/stop with the Discord socket replaced
func TestEndToEndStartup(t *testing.T) {
	setTestEnv(t)
	conn := &nopConn{}

	app := fxtest.New(t,
		AppOptions,
		fx.NopLogger, // Silence Fx logs during tests
		fx.Decorate(func(presence.Dialer) presence.Dialer {
			return func(ctx context.Context) (domain.PresenceConn, error) {
				return conn, nil
			}
		}),
	)

	app.RequireStart()
	app.RequireStop()

	if !conn.closed.Load() {
		t.Error("expected presence connection to be closed on shutdown")
	}
}

// TestStartupFailsWithoutCredentials checks that missing credentials abort startup
func TestStartupFailsWithoutCredentials(t *testing.T) {
	setTestEnv(t)
	t.Setenv("DISCORD_CLIENT_ID", "")

	app := fx.New(AppOptions, fx.NopLogger)
	if err := app.Err(); err == nil {
		t.Fatal("expected startup error without DISCORD_CLIENT_ID")
	}
}
