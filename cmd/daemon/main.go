package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/genricoloni/mpcpresence/internal/config"
	"github.com/genricoloni/mpcpresence/internal/domain"
	"github.com/genricoloni/mpcpresence/internal/engine"
	"github.com/genricoloni/mpcpresence/internal/executor"
	"github.com/genricoloni/mpcpresence/internal/fetcher"
	"github.com/genricoloni/mpcpresence/internal/logging"
	"github.com/genricoloni/mpcpresence/internal/metrics"
	"github.com/genricoloni/mpcpresence/internal/monitor"
	"github.com/genricoloni/mpcpresence/internal/presence"
	"github.com/genricoloni/mpcpresence/internal/processor"
	"github.com/genricoloni/mpcpresence/internal/upload"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const stopTimeout = 10 * time.Second

// errDiscordUnavailable marks a failed initial presence connection
var errDiscordUnavailable = errors.New("could not connect to Discord")

// AppOptions is the complete dependency graph of the daemon
var AppOptions = fx.Options(
	// Logger configuration
	fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		l := &fxevent.ZapLogger{Logger: log}
		l.UseLogLevel(zapcore.DebugLevel)
		return l
	}),

	// Provide dependencies
	fx.Provide(
		loadConfig,
		newLogger,
		metrics.New,
		newMetricsServer,
		fx.Annotate(newMPCClient,
			fx.As(fx.Self()),
			fx.As(new(domain.StatusFetcher)),
			fx.As(new(domain.SnapshotFetcher))),
		fx.Annotate(newCompressor,
			fx.As(fx.Self()),
			fx.As(new(domain.ImageProcessor))),
		fx.Annotate(newImageHost, fx.As(new(domain.ImageHost))),
		fx.Annotate(newImageCache, fx.As(new(domain.ImageCache))),
		newDialer,
		fx.Annotate(newPresenceClient,
			fx.As(fx.Self()),
			fx.As(new(domain.Presence))),
		fx.Annotate(executor.NewExecutor, fx.As(new(domain.Restarter))),
		newEngine,
		newDisplayWatcher,
	),

	// Lifecycle hooks
	fx.Invoke(registerHooks),
)

func main() {
	printBanner()

	app := fx.New(AppOptions)

	// Handle graceful shutdown
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Start the application
	if err := app.Start(ctx); err != nil {
		exitStartup(err)
	}

	// Wait for interrupt signal
	<-ctx.Done()

	// Stop the application; an in-flight cycle is not waited for
	stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
	defer stopCancel()
	if err := app.Stop(stopCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
}

func printBanner() {
	fmt.Println("=================================")
	fmt.Println(" MPC-HC Discord Rich Presence")
	fmt.Println("=================================")
	fmt.Println()
}

// exitStartup logs a fatal startup error with remediation guidance and exits non-zero
func exitStartup(err error) {
	logger, logErr := logging.New("info", "")
	if logErr != nil {
		logger = zap.NewExample()
	}
	defer func() { _ = logger.Sync() }()

	logger.Error("Startup failed", zap.Error(err))
	switch {
	case errors.Is(err, config.ErrMissingVariable):
		logger.Info("Copy .env.example to .env and set your credentials")
	case errors.Is(err, errDiscordUnavailable):
		logger.Info("Make sure the Discord desktop client is running")
	}
	os.Exit(1)
}

func loadConfig() (*config.AppConfig, error) {
	return config.Load()
}

// newLogger creates the application logger and flushes it on shutdown
func newLogger(lc fx.Lifecycle, cfg *config.AppConfig) (*zap.Logger, error) {
	logger, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			_ = logger.Sync()
			return nil
		},
	})
	return logger, nil
}

func newMetricsServer(logger *zap.Logger, m *metrics.Metrics, cfg *config.AppConfig) *metrics.Server {
	return metrics.NewServer(logger, m, cfg.MetricsAddr)
}

func newMPCClient(logger *zap.Logger, cfg *config.AppConfig) *fetcher.MPCClient {
	return fetcher.NewMPCClient(logger, cfg.MPC.BaseURL())
}

func newCompressor(logger *zap.Logger, cfg *config.AppConfig) *processor.Compressor {
	return processor.NewCompressor(logger, processor.CompressorConfig{
		MaxWidth:       cfg.Image.MaxWidth,
		Quality:        cfg.Image.Quality,
		FlipHorizontal: cfg.Image.FlipHorizontal,
		FlipVertical:   cfg.Image.FlipVertical == config.FlipOn,
	})
}

func newImageHost(logger *zap.Logger, cfg *config.AppConfig) *upload.ImgurHost {
	return upload.NewImgurHost(logger, cfg.Imgur.ClientID)
}

func newImageCache(logger *zap.Logger, host domain.ImageHost, m *metrics.Metrics, cfg *config.AppConfig) *upload.Cache {
	return upload.NewCache(logger, host, m, upload.CacheConfig{MinInterval: cfg.Imgur.UploadInterval})
}

func newDialer(cfg *config.AppConfig) presence.Dialer {
	return presence.NewDialer(cfg.Discord.ClientID)
}

func newPresenceClient(logger *zap.Logger, dial presence.Dialer, m *metrics.Metrics) *presence.Client {
	return presence.NewClient(logger, dial, m, presence.ClientConfig{})
}

type engineParams struct {
	fx.In

	Logger    *zap.Logger
	Config    *config.AppConfig
	Metrics   *metrics.Metrics
	Status    domain.StatusFetcher
	Snapshots domain.SnapshotFetcher
	Processor domain.ImageProcessor
	Images    domain.ImageCache
	Presence  domain.Presence
	Restarter domain.Restarter
}

func newEngine(p engineParams) *engine.Engine {
	settings := engine.Settings{
		PollInterval:     p.Config.UpdateInterval,
		AutoRestart:      p.Config.Discord.AutoRestart,
		RestartThreshold: p.Config.Discord.RestartThreshold,
	}
	return engine.NewEngine(p.Logger, settings, p.Status, p.Snapshots, p.Processor,
		p.Images, p.Presence, p.Restarter, p.Metrics)
}

func newDisplayWatcher(logger *zap.Logger, comp *processor.Compressor) *monitor.DisplayWatcher {
	return monitor.NewDisplayWatcher(logger, comp)
}

type hookParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Logger    *zap.Logger
	Config    *config.AppConfig
	Player    *fetcher.MPCClient
	Presence  *presence.Client
	Engine    *engine.Engine
	Watcher   *monitor.DisplayWatcher
	Metrics   *metrics.Server
}

// registerHooks sets up application lifecycle hooks
func registerHooks(p hookParams) {
	cfg := p.Config
	logger := p.Logger
	autoFlip := cfg.Image.FlipVertical == config.FlipAuto

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Imgur upload interval", zap.Duration("interval", cfg.Imgur.UploadInterval))
			logger.Info("Image compression",
				zap.Int("maxWidth", cfg.Image.MaxWidth),
				zap.Int("quality", cfg.Image.Quality),
				zap.String("flipVertical", string(cfg.Image.FlipVertical)))

			if err := p.Player.Ping(ctx); err != nil {
				logger.Warn("MPC-HC is not running, will keep retrying", zap.Error(err))
			} else {
				logger.Info("MPC-HC connected",
					zap.String("host", cfg.MPC.Host),
					zap.Int("port", cfg.MPC.Port))
			}

			if err := p.Presence.Connect(ctx); err != nil {
				return fmt.Errorf("%w: %w", errDiscordUnavailable, err)
			}

			if err := p.Metrics.Start(ctx); err != nil {
				return fmt.Errorf("metrics server: %w", err)
			}
			if autoFlip {
				if err := p.Watcher.Start(ctx); err != nil {
					return err
				}
			}
			if err := p.Engine.Start(ctx); err != nil {
				return err
			}

			logger.Info("MPC Presence daemon started", zap.Duration("interval", cfg.UpdateInterval))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down")

			if autoFlip {
				_ = p.Watcher.Stop(ctx)
			}
			if err := p.Metrics.Stop(ctx); err != nil {
				logger.Warn("Metrics server shutdown failed", zap.Error(err))
			}
			return p.Engine.Stop(ctx)
		},
	})
}
