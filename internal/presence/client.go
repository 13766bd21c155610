package presence

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/mpcpresence/internal/domain"
	"github.com/genricoloni/mpcpresence/internal/metrics"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultMaxSubmissions = 100
	defaultMaxSessionAge  = 30 * time.Minute
	defaultConnectTimeout = 10 * time.Second
	defaultUpdateBurst    = 5
)

// Discord accepts 5 activity updates per 20 seconds
var defaultUpdateLimit = rate.Every(4 * time.Second)

// Dialer opens a new session with the presence channel
type Dialer func(ctx context.Context) (domain.PresenceConn, error)

// NewDialer returns a Dialer for the Discord IPC socket
func NewDialer(clientID string) Dialer {
	return func(ctx context.Context) (domain.PresenceConn, error) {
		return Dial(ctx, clientID)
	}
}

// ClientConfig tunes the reconnect policy
type ClientConfig struct {
	MaxSubmissions int           // Proactive reconnect after this many submissions
	MaxSessionAge  time.Duration // Proactive reconnect after this long since connecting
	ConnectTimeout time.Duration // Bound on a single (re)connect attempt
	UpdateLimit    rate.Limit    // Sustained submission rate; zero means the Discord default
	UpdateBurst    int
}

// ConnectionState is a snapshot of the client bookkeeping
type ConnectionState struct {
	Connected               bool
	SubmissionsSinceConnect int
	LastConnectAt           time.Time
	LastSuccessAt           time.Time
}

// Client owns the presence connection lifecycle.
// Sessions are recycled proactively because long-lived Discord sessions go stale.
type Client struct {
	logger  *zap.Logger
	dial    Dialer
	metrics *metrics.Metrics
	cfg     ClientConfig
	limiter *rate.Limiter
	now     func() time.Time

	mu    sync.Mutex
	conn  domain.PresenceConn
	state ConnectionState
}

// NewClient creates a disconnected presence client
func NewClient(logger *zap.Logger, dial Dialer, m *metrics.Metrics, cfg ClientConfig) *Client {
	if cfg.MaxSubmissions <= 0 {
		cfg.MaxSubmissions = defaultMaxSubmissions
	}
	if cfg.MaxSessionAge <= 0 {
		cfg.MaxSessionAge = defaultMaxSessionAge
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = defaultConnectTimeout
	}
	if cfg.UpdateLimit == 0 {
		cfg.UpdateLimit = defaultUpdateLimit
	}
	if cfg.UpdateBurst <= 0 {
		cfg.UpdateBurst = defaultUpdateBurst
	}

	return &Client{
		logger:  logger,
		dial:    dial,
		metrics: m,
		cfg:     cfg,
		limiter: rate.NewLimiter(cfg.UpdateLimit, cfg.UpdateBurst),
		now:     time.Now,
	}
}

// Connect establishes the first session. Used at startup, where failure is fatal.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconnectLocked(ctx, "initial")
}

// Reconnect tears down the session and opens a new one
func (c *Client) Reconnect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reconnectLocked(ctx, "forced")
}

// Submit displays activity. Submissions that cannot be delivered because no session
// can be established are dropped; the next cycle tries again.
func (c *Client) Submit(ctx context.Context, activity *domain.Activity) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Connected {
		if err := c.reconnectLocked(ctx, "disconnected"); err != nil {
			c.logger.Warn("Presence not connected, dropping update", zap.Error(err))
			c.metrics.IncSubmission("dropped")
			return nil
		}
	} else if cause := c.staleLocked(); cause != "" {
		c.logger.Info("Recycling presence session", zap.String("cause", cause))
		if err := c.reconnectLocked(ctx, cause); err != nil {
			c.logger.Warn("Presence reconnect failed, dropping update", zap.Error(err))
			c.metrics.IncSubmission("dropped")
			return nil
		}
	}

	// Only deliverable updates consume rate budget
	if !c.limiter.AllowN(c.now(), 1) {
		c.logger.Debug("Presence update rate limited, skipping")
		c.metrics.IncSubmission("throttled")
		return nil
	}

	if err := c.conn.SetActivity(ctx, activity); err != nil {
		c.state.Connected = false
		c.metrics.IncSubmission("failure")
		return fmt.Errorf("set activity: %w", err)
	}

	c.state.SubmissionsSinceConnect++
	c.state.LastSuccessAt = c.now()
	c.metrics.IncSubmission("success")
	return nil
}

// Clear removes the current activity; the connection state is left untouched
func (c *Client) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.Connected || c.conn == nil {
		return nil
	}
	if err := c.conn.ClearActivity(ctx); err != nil {
		return fmt.Errorf("clear activity: %w", err)
	}
	return nil
}

// Close releases the session
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closeLocked()
}

// State returns a copy of the connection bookkeeping
func (c *Client) State() ConnectionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// staleLocked returns the proactive reconnect cause, or "" if the session is fresh
func (c *Client) staleLocked() string {
	if c.state.SubmissionsSinceConnect >= c.cfg.MaxSubmissions {
		return "submission_limit"
	}
	if c.now().Sub(c.state.LastConnectAt) >= c.cfg.MaxSessionAge {
		return "session_age"
	}
	return ""
}

func (c *Client) reconnectLocked(ctx context.Context, cause string) error {
	if err := c.closeLocked(); err != nil {
		c.logger.Debug("Closing previous presence session failed", zap.Error(err))
	}

	dialCtx, cancel := context.WithTimeout(ctx, c.cfg.ConnectTimeout)
	defer cancel()

	conn, err := c.dial(dialCtx)
	if err != nil {
		return fmt.Errorf("presence connect: %w", err)
	}

	c.conn = conn
	c.state.Connected = true
	c.state.SubmissionsSinceConnect = 0
	c.state.LastConnectAt = c.now()
	c.metrics.IncReconnect(cause)

	c.logger.Info("Connected to presence channel", zap.String("cause", cause))
	return nil
}

func (c *Client) closeLocked() error {
	c.state.Connected = false
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}
