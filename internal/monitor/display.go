package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

const defaultCheckInterval = 30 * time.Second

// FlipSetter receives the vertical flip decision
type FlipSetter interface {
	SetFlipVertical(flip bool)
}

// DisplayWatcher tracks the number of active displays and flips snapshots vertically
// when more than one is connected (MPC-HC renders upside-down snapshots on multi-monitor setups).
// It runs on its own timer, independent of the poll cycle, and only touches the FlipSetter.
type DisplayWatcher struct {
	logger   *zap.Logger
	target   FlipSetter
	count    func() int
	interval time.Duration

	mu      sync.Mutex
	last    int
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewDisplayWatcher creates a watcher backed by the active display count
func NewDisplayWatcher(logger *zap.Logger, target FlipSetter) *DisplayWatcher {
	return &DisplayWatcher{
		logger:   logger,
		target:   target,
		count:    screenshot.NumActiveDisplays,
		interval: defaultCheckInterval,
		last:     -1,
	}
}

// Start applies the current display count and begins periodic checks
func (w *DisplayWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.cancel != nil {
		return nil
	}

	w.checkLocked()

	loopCtx, cancel := context.WithCancel(context.Background())
	w.cancel = cancel
	w.stopped = make(chan struct{})
	go w.run(loopCtx, w.stopped)

	w.logger.Info("Display watcher started", zap.Duration("interval", w.interval))
	return nil
}

// Stop ends periodic checks
func (w *DisplayWatcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	cancel, stopped := w.cancel, w.stopped
	w.cancel = nil
	w.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()

	select {
	case <-stopped:
	case <-ctx.Done():
		return ctx.Err()
	}
	return nil
}

func (w *DisplayWatcher) run(ctx context.Context, stopped chan struct{}) {
	defer close(stopped)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.mu.Lock()
			w.checkLocked()
			w.mu.Unlock()
		}
	}
}

// checkLocked reads the display count and updates the flip flag on change
func (w *DisplayWatcher) checkLocked() {
	n := w.count()
	if n == w.last {
		return
	}

	flip := n > 1
	w.target.SetFlipVertical(flip)
	w.logger.Info("Display count changed",
		zap.Int("displays", n),
		zap.Bool("flipVertical", flip))
	w.last = n
}
