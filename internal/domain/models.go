package domain

import "time"

// PlayState represents the current state of the media player
type PlayState string

const (
	// StatePlaying indicates the media is currently playing
	StatePlaying PlayState = "Playing"
	// StatePaused indicates the media is paused
	StatePaused PlayState = "Paused"
	// StateStopped indicates nothing is playing
	StateStopped PlayState = "Stopped"
)

// PlayStateFromCode maps the MPC-HC web interface state code to a PlayState.
// Unknown codes are treated as stopped.
func PlayStateFromCode(code int) PlayState {
	switch code {
	case 1:
		return StatePaused
	case 2:
		return StatePlaying
	default:
		return StateStopped
	}
}

// PlaybackStatus is a normalized snapshot of the player, produced fresh on every poll
type PlaybackStatus struct {
	// File is the file name as reported by the player; it identifies the media
	File string
	// FilePath is the full path of the file
	FilePath string
	// State is the derived playback state
	State PlayState
	// StateCode is the raw state code reported by the player
	StateCode int
	// PositionMs is the playback position in milliseconds
	PositionMs int64
	// DurationMs is the total duration in milliseconds
	DurationMs int64
}

// Activity is the payload projected onto the presence channel
type Activity struct {
	// Details is the first line (title)
	Details string
	// State is the second line (position/duration text)
	State string
	// LargeImage is the image reference (URL); empty means no image
	LargeImage string
	// LargeText is the hover text of the image
	LargeText string
	// StartedAt anchors the elapsed-time counter; zero means no counter
	StartedAt time.Time
}

// ForceReason explains why an upload must bypass the reuse and dedup checks
type ForceReason int

const (
	// ForceNone is a regular, throttled upload
	ForceNone ForceReason = iota
	// ForceFileChanged is used when playback moved to another file
	ForceFileChanged
	// ForceResume is used when playback resumes after a long pause
	ForceResume
	// ForcePauseRefresh is used for the periodic refresh during a steady pause
	ForcePauseRefresh
)

// Forced reports whether the upload bypasses the throttle and fingerprint checks
func (r ForceReason) Forced() bool {
	return r != ForceNone
}

// BypassesCooldown reports whether a forced upload may ignore the forced cooldown floor.
// Only a file change qualifies.
func (r ForceReason) BypassesCooldown() bool {
	return r == ForceFileChanged
}

func (r ForceReason) String() string {
	switch r {
	case ForceNone:
		return "none"
	case ForceFileChanged:
		return "file_changed"
	case ForceResume:
		return "resume"
	case ForcePauseRefresh:
		return "pause_refresh"
	default:
		return "unknown"
	}
}
