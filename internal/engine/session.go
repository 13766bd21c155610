package engine

import (
	"time"

	"github.com/genricoloni/mpcpresence/internal/domain"
)

// SessionState is the update loop memory carried from one cycle to the next.
// Cycles receive it by value and return the next state; nothing else mutates it.
type SessionState struct {
	// LastFile identifies the media seen on the previous cycle
	LastFile string
	// LastState is the play state seen on the previous cycle
	LastState domain.PlayState
	// PlaybackStartedAt anchors the elapsed-time counter; it moves only on file change
	PlaybackStartedAt time.Time
	// PausedSince is when the current pause was first observed, zero when not paused
	PausedSince time.Time
	// LastPauseRefresh is when the pause snapshot was last uploaded
	LastPauseRefresh time.Time
	// PauseRefreshCount counts forced refreshes during the current pause
	PauseRefreshCount int
	// PauseSnapshot holds the processed frame captured when the pause began
	PauseSnapshot []byte
}

// resetPause drops all pause bookkeeping
func (s *SessionState) resetPause() {
	s.PausedSince = time.Time{}
	s.LastPauseRefresh = time.Time{}
	s.PauseRefreshCount = 0
	s.PauseSnapshot = nil
}

// Paused reports whether a pause is being tracked
func (s SessionState) Paused() bool {
	return !s.PausedSince.IsZero()
}
