// Package executor restarts the Discord desktop client.
package executor

import (
	"context"
	"time"
)

// Time given to Discord to release its IPC socket before relaunching
const defaultSettleDelay = 3 * time.Second

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
