package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/genricoloni/mpcpresence/internal/domain"
	"github.com/genricoloni/mpcpresence/internal/metrics"
	"go.uber.org/zap"
)

const (
	defaultPollInterval         = 15 * time.Second
	defaultCycleTimeout         = 30 * time.Second
	defaultResumeThreshold      = 60 * time.Second
	defaultPauseRefreshInterval = 120 * time.Second
)

// Cycle outcomes, also used as metric labels
const (
	outcomePlaying     = "playing"
	outcomePaused      = "paused"
	outcomeStopped     = "stopped"
	outcomeUnavailable = "unavailable"
	outcomeTimeout     = "timeout"
)

// Settings tunes the update loop
type Settings struct {
	PollInterval         time.Duration // Delay between the end of one cycle and the start of the next
	CycleTimeout         time.Duration // Hard bound on a single cycle
	ResumeThreshold      time.Duration // Pauses at least this long reconnect and refresh on resume
	PauseRefreshInterval time.Duration // Re-upload cadence of the pause snapshot
	AutoRestart          bool          // Restart the downstream client after RestartThreshold unique uploads
	RestartThreshold     int
}

// Engine orchestrates the presence pipeline.
// Each cycle polls the player, decides the image action and submits the presence payload.
type Engine struct {
	logger    *zap.Logger
	settings  Settings
	status    domain.StatusFetcher
	snapshots domain.SnapshotFetcher
	processor domain.ImageProcessor
	images    domain.ImageCache
	presence  domain.Presence
	restarter domain.Restarter
	metrics   *metrics.Metrics
	now       func() time.Time

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewEngine creates a new orchestration engine
func NewEngine(
	logger *zap.Logger,
	settings Settings,
	status domain.StatusFetcher,
	snapshots domain.SnapshotFetcher,
	proc domain.ImageProcessor,
	images domain.ImageCache,
	presence domain.Presence,
	restarter domain.Restarter,
	m *metrics.Metrics,
) *Engine {
	if settings.PollInterval <= 0 {
		settings.PollInterval = defaultPollInterval
	}
	if settings.CycleTimeout <= 0 {
		settings.CycleTimeout = defaultCycleTimeout
	}
	if settings.ResumeThreshold <= 0 {
		settings.ResumeThreshold = defaultResumeThreshold
	}
	if settings.PauseRefreshInterval <= 0 {
		settings.PauseRefreshInterval = defaultPauseRefreshInterval
	}

	return &Engine{
		logger:    logger,
		settings:  settings,
		status:    status,
		snapshots: snapshots,
		processor: proc,
		images:    images,
		presence:  presence,
		restarter: restarter,
		metrics:   m,
		now:       time.Now,
	}
}

// Start launches the update loop in a goroutine.
// It returns immediately (non-blocking).
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cancel != nil {
		return nil
	}

	// The loop outlives the startup context
	loopCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	e.cancel = cancel

	e.logger.Info("Engine starting...", zap.Duration("interval", e.settings.PollInterval))
	go e.runLoop(loopCtx)
	return nil
}

// runLoop runs one guarded cycle, then waits PollInterval before the next.
// Cycles never overlap.
func (e *Engine) runLoop(ctx context.Context) {
	var state SessionState

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			e.logger.Info("Engine loop stopped")
			return
		case <-timer.C:
			state = e.runGuarded(ctx, state)
			timer.Reset(e.settings.PollInterval)
		}
	}
}

type cycleResult struct {
	state   SessionState
	outcome string
}

// runGuarded races one cycle against CycleTimeout. On timeout the cycle is abandoned
// and the previous state is kept.
func (e *Engine) runGuarded(ctx context.Context, prev SessionState) SessionState {
	cycleCtx, cancel := context.WithTimeout(ctx, e.settings.CycleTimeout)
	defer cancel()

	started := time.Now()
	done := make(chan cycleResult, 1)
	go func() {
		state, outcome := e.cycle(cycleCtx, prev)
		done <- cycleResult{state: state, outcome: outcome}
	}()

	select {
	case res := <-done:
		e.metrics.ObserveCycle(res.outcome, time.Since(started))
		return res.state
	case <-cycleCtx.Done():
		if ctx.Err() == nil {
			e.logger.Warn("Update cycle timed out, abandoning", zap.Duration("timeout", e.settings.CycleTimeout))
			e.metrics.ObserveCycle(outcomeTimeout, time.Since(started))
		}
		return prev
	}
}

// Cycle runs one poll cycle against prev and returns the next session state
func (e *Engine) Cycle(ctx context.Context, prev SessionState) SessionState {
	next, _ := e.cycle(ctx, prev)
	return next
}

func (e *Engine) cycle(ctx context.Context, prev SessionState) (SessionState, string) {
	s := prev
	now := e.now()

	status, err := e.status.Status(ctx)
	if ctx.Err() != nil {
		return prev, outcomeTimeout
	}
	if err != nil {
		e.logger.Debug("Player not available", zap.Error(err))
		e.clear(ctx)
		s.LastState = domain.StateStopped
		s.resetPause()
		return s, outcomeUnavailable
	}

	fileChanged := status.File != "" && status.File != s.LastFile
	if fileChanged {
		e.logger.Info("File change detected", zap.String("title", CleanFilename(status.File)))
		s.LastFile = status.File
		s.PlaybackStartedAt = now
		s.resetPause()
	}

	var outcome string
	switch status.State {
	case domain.StatePlaying:
		s = e.playing(ctx, status, s, fileChanged, now)
		outcome = outcomePlaying
	case domain.StatePaused:
		s = e.paused(ctx, status, s, fileChanged, now)
		outcome = outcomePaused
	default:
		e.clear(ctx)
		s.resetPause()
		e.logger.Debug("Stopped")
		outcome = outcomeStopped
	}
	s.LastState = status.State

	// An abandoned cycle must not commit state or escalate
	if ctx.Err() != nil {
		return prev, outcomeTimeout
	}

	e.maybeRestart(ctx)
	return s, outcome
}

func (e *Engine) playing(ctx context.Context, status *domain.PlaybackStatus, s SessionState, fileChanged bool, now time.Time) SessionState {
	reason := domain.ForceNone
	if fileChanged {
		reason = domain.ForceFileChanged
	} else if s.LastState == domain.StatePaused && s.Paused() && now.Sub(s.PausedSince) >= e.settings.ResumeThreshold {
		e.logger.Info("Resuming after long pause, reconnecting presence",
			zap.Duration("paused", now.Sub(s.PausedSince)))
		if err := e.presence.Reconnect(ctx); err != nil {
			e.logger.Warn("Presence reconnect failed", zap.Error(err))
		}
		reason = domain.ForceResume
	}
	s.resetPause()

	if s.PlaybackStartedAt.IsZero() {
		s.PlaybackStartedAt = now
	}

	imageURL := e.images.LastURL()
	if data, ok := e.capture(ctx); ok {
		imageURL = e.images.Upload(ctx, data, reason)
	}

	title := CleanFilename(status.File)
	e.submit(ctx, &domain.Activity{
		Details:    title,
		State:      progressText(status.PositionMs, status.DurationMs),
		LargeImage: imageURL,
		LargeText:  status.File,
		StartedAt:  s.PlaybackStartedAt,
	})

	e.logger.Info("Playing",
		zap.String("title", title),
		zap.String("position", FormatTime(status.PositionMs)),
		zap.Bool("image", imageURL != ""))
	return s
}

func (e *Engine) paused(ctx context.Context, status *domain.PlaybackStatus, s SessionState, fileChanged bool, now time.Time) SessionState {
	imageURL := e.images.LastURL()

	switch {
	case !s.Paused():
		s.PausedSince = now
		s.LastPauseRefresh = now
		if data, ok := e.capture(ctx); ok {
			s.PauseSnapshot = data
			reason := domain.ForceNone
			if fileChanged {
				reason = domain.ForceFileChanged
			}
			imageURL = e.images.Upload(ctx, data, reason)
		}

	case now.Sub(s.LastPauseRefresh) >= e.settings.PauseRefreshInterval:
		if len(s.PauseSnapshot) == 0 {
			// The frame could not be captured when the pause began
			if data, ok := e.capture(ctx); ok {
				s.PauseSnapshot = data
			}
		}
		if len(s.PauseSnapshot) > 0 {
			imageURL = e.images.Upload(ctx, s.PauseSnapshot, domain.ForcePauseRefresh)
			s.PauseRefreshCount++
			e.logger.Debug("Pause snapshot refreshed", zap.Int("refreshes", s.PauseRefreshCount))
		}
		s.LastPauseRefresh = now
	}

	title := CleanFilename(status.File)
	e.submit(ctx, &domain.Activity{
		Details:    title,
		State:      "Paused - " + progressText(status.PositionMs, status.DurationMs),
		LargeImage: imageURL,
		LargeText:  status.File,
	})

	e.logger.Info("Paused",
		zap.String("title", title),
		zap.Duration("for", now.Sub(s.PausedSince)),
		zap.Bool("image", imageURL != ""))
	return s
}

// capture fetches the current frame and compresses it, falling back to the raw frame
func (e *Engine) capture(ctx context.Context) ([]byte, bool) {
	raw, err := e.snapshots.Snapshot(ctx)
	if err != nil {
		e.logger.Debug("No snapshot this cycle", zap.Error(err))
		return nil, false
	}

	processed, err := e.processor.Process(ctx, raw)
	if err != nil {
		e.logger.Warn("Image compression failed, using original", zap.Error(err))
		return raw, true
	}
	return processed, true
}

func (e *Engine) submit(ctx context.Context, activity *domain.Activity) {
	if err := e.presence.Submit(ctx, activity); err != nil {
		e.logger.Warn("Failed to update presence, will retry next cycle", zap.Error(err))
	}
}

func (e *Engine) clear(ctx context.Context) {
	if err := e.presence.Clear(ctx); err != nil {
		e.logger.Debug("Failed to clear presence", zap.Error(err))
	}
}

// maybeRestart restarts the downstream client once enough unique images were uploaded
func (e *Engine) maybeRestart(ctx context.Context) {
	if !e.settings.AutoRestart || e.settings.RestartThreshold <= 0 {
		return
	}

	uploads := e.images.UniqueUploads()
	if uploads < e.settings.RestartThreshold {
		return
	}

	e.logger.Info("Upload threshold reached, restarting presence client",
		zap.Int("uploads", uploads),
		zap.Int("threshold", e.settings.RestartThreshold))

	if err := e.restarter.Restart(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			e.logger.Warn("Presence client restart interrupted, will retry", zap.Error(err))
			return
		}
		e.logger.Error("Failed to restart presence client", zap.Error(err))
	}
	e.metrics.IncClientRestart()

	// Counting starts over even when the restart failed
	e.images.ResetUploads()
	if err := e.presence.Close(); err != nil {
		e.logger.Debug("Closing presence after restart failed", zap.Error(err))
	}
}

// Stop cancels the loop, clears the presence and releases the connection.
// An in-flight cycle is not waited for.
func (e *Engine) Stop(ctx context.Context) error {
	e.logger.Info("Engine stopping...")

	e.mu.Lock()
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Unlock()

	if err := e.presence.Clear(ctx); err != nil {
		e.logger.Warn("Failed to clear presence on shutdown", zap.Error(err))
	}
	if err := e.presence.Close(); err != nil {
		e.logger.Warn("Failed to close presence connection", zap.Error(err))
		return err
	}

	e.logger.Info("Presence cleared")
	return nil
}
