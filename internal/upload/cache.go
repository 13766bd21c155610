package upload

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/genricoloni/mpcpresence/internal/domain"
	"github.com/genricoloni/mpcpresence/internal/metrics"
	"go.uber.org/zap"
)

const (
	defaultMinInterval    = 2 * time.Minute
	defaultForcedCooldown = 30 * time.Second
)

// Reasons an upload was skipped in favour of the cached URL
const (
	reuseThrottled = "throttled"
	reuseCooldown  = "forced_cooldown"
	reuseDuplicate = "duplicate"
)

// CacheConfig tunes the upload throttle
type CacheConfig struct {
	MinInterval    time.Duration // Minimum time between regular uploads
	ForcedCooldown time.Duration // Floor between forced uploads, file changes excepted
}

// Cache decides between reusing the last uploaded URL and uploading again.
// It is the primary defense against image host rate limits.
type Cache struct {
	logger  *zap.Logger
	host    domain.ImageHost
	metrics *metrics.Metrics
	cfg     CacheConfig
	now     func() time.Time

	mu            sync.Mutex
	fingerprint   uint64
	lastURL       string
	lastUploadAt  time.Time
	uniqueUploads int
}

// NewCache creates an upload cache in front of host
func NewCache(logger *zap.Logger, host domain.ImageHost, m *metrics.Metrics, cfg CacheConfig) *Cache {
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = defaultMinInterval
	}
	if cfg.ForcedCooldown <= 0 {
		cfg.ForcedCooldown = defaultForcedCooldown
	}
	return &Cache{
		logger:  logger,
		host:    host,
		metrics: m,
		cfg:     cfg,
		now:     time.Now,
	}
}

// Upload returns the URL to display for imageData, uploading only when needed.
// Failures never surface: the last known good URL is returned instead.
func (c *Cache) Upload(ctx context.Context, imageData []byte, reason domain.ForceReason) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	sinceLast := now.Sub(c.lastUploadAt)
	forced := reason.Forced()

	if !forced && c.lastURL != "" && sinceLast < c.cfg.MinInterval {
		c.logger.Debug("Reusing previous image",
			zap.Duration("nextUploadIn", (c.cfg.MinInterval-sinceLast).Round(time.Second)))
		c.metrics.IncUploadReuse(reuseThrottled)
		return c.lastURL
	}

	if forced && !reason.BypassesCooldown() && !c.lastUploadAt.IsZero() && sinceLast < c.cfg.ForcedCooldown {
		c.logger.Debug("Forced upload in cooldown",
			zap.Stringer("reason", reason),
			zap.Duration("remaining", (c.cfg.ForcedCooldown-sinceLast).Round(time.Second)))
		c.metrics.IncUploadReuse(reuseCooldown)
		return c.lastURL
	}

	fingerprint := xxhash.Sum64(imageData)
	if !forced && c.lastURL != "" && fingerprint == c.fingerprint {
		c.logger.Debug("Image unchanged, reusing previous URL")
		c.metrics.IncUploadReuse(reuseDuplicate)
		return c.lastURL
	}

	if forced {
		c.logger.Info("Forced upload", zap.Stringer("reason", reason))
	}

	link, err := c.host.Upload(ctx, imageData)
	if err != nil {
		kind := FailureKind(err)
		c.logger.Error("Image upload failed",
			zap.String("kind", kind),
			zap.Bool("keptPrevious", c.lastURL != ""),
			zap.Error(err))
		c.metrics.IncUpload(kind)
		return c.lastURL
	}

	c.fingerprint = fingerprint
	c.lastURL = cacheBust(link, now)
	c.lastUploadAt = now
	c.uniqueUploads++

	c.metrics.IncUpload("success")
	c.metrics.SetUniqueUploads(c.uniqueUploads)
	c.logger.Info("Image uploaded",
		zap.String("url", c.lastURL),
		zap.Int("uniqueUploads", c.uniqueUploads))
	return c.lastURL
}

// LastURL returns the last successfully uploaded URL
func (c *Cache) LastURL() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastURL
}

// UniqueUploads returns successful uploads since the last reset
func (c *Cache) UniqueUploads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uniqueUploads
}

// ResetUploads zeroes the unique upload counter
func (c *Cache) ResetUploads() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.uniqueUploads = 0
	c.metrics.SetUniqueUploads(0)
}

// cacheBust appends a request-time marker so the display channel fetches the image again
func cacheBust(link string, at time.Time) string {
	sep := "?"
	if strings.Contains(link, "?") {
		sep = "&"
	}
	return link + sep + "t=" + strconv.FormatInt(at.UnixMilli(), 10)
}
