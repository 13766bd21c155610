package domain

import "context"

//go:generate mockgen -destination=mocks/domain_mock.go -package=mocks github.com/genricoloni/mpcpresence/internal/domain StatusFetcher,SnapshotFetcher,ImageProcessor,ImageHost,ImageCache,Presence,PresenceConn,Restarter

// StatusFetcher queries the media player for its current status
type StatusFetcher interface {
	// Status returns the normalized player status.
	// An error means the player is not reachable (treated as "not running")
	Status(ctx context.Context) (*PlaybackStatus, error)
}

// SnapshotFetcher captures the frame currently displayed by the player
type SnapshotFetcher interface {
	// Snapshot returns raw image bytes or an error if no frame is available
	Snapshot(ctx context.Context) ([]byte, error)
}

// ImageProcessor defines the interface for in-memory image processing
// This is OS-agnostic and works purely with byte streams
type ImageProcessor interface {
	// Process transforms image data (e.g., resize, recompress, flip)
	// Returns the processed image bytes or an error
	Process(ctx context.Context, imageData []byte) ([]byte, error)
}

// ImageHost uploads images to a public image hosting service
type ImageHost interface {
	// Upload publishes the image and returns its public link
	Upload(ctx context.Context, imageData []byte) (string, error)
}

// ImageCache decides whether an image must be uploaded or a cached URL reused
type ImageCache interface {
	// Upload returns the URL to display for imageData.
	// It never fails: on upload errors the last known good URL (possibly empty) is returned
	Upload(ctx context.Context, imageData []byte, reason ForceReason) string

	// LastURL returns the last successfully uploaded URL, or an empty string
	LastURL() string

	// UniqueUploads returns the number of successful uploads since the last reset
	UniqueUploads() int

	// ResetUploads resets the unique upload counter
	ResetUploads()
}

// Presence owns the connection to the presence channel
type Presence interface {
	// Submit displays the activity, reconnecting first when needed
	Submit(ctx context.Context, activity *Activity) error

	// Clear removes the current activity without touching the connection state
	Clear(ctx context.Context) error

	// Reconnect tears down and recreates the underlying connection
	Reconnect(ctx context.Context) error

	// Close releases the connection
	Close() error
}

// PresenceConn is a single established session with the presence channel
type PresenceConn interface {
	// SetActivity replaces the displayed activity
	SetActivity(ctx context.Context, activity *Activity) error

	// ClearActivity removes the displayed activity
	ClearActivity(ctx context.Context) error

	// Close closes the session
	Close() error
}

// Restarter restarts the downstream presence client process
type Restarter interface {
	// Restart kills and relaunches the client
	Restart(ctx context.Context) error
}
