package processor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG format support
	_ "image/png"  // PNG format support
	"sync/atomic"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"
)

const (
	defaultMaxWidth = 640
	defaultQuality  = 80
)

// CompressorConfig holds configuration for snapshot compression
type CompressorConfig struct {
	MaxWidth       int // Images wider than this are shrunk, keeping aspect ratio
	Quality        int // JPEG quality 1-100
	FlipHorizontal bool
	FlipVertical   bool
}

// Compressor shrinks and recompresses player snapshots before upload
type Compressor struct {
	logger   *zap.Logger
	maxWidth int
	quality  int
	flipH    bool
	flipV    atomic.Bool // Mutated by the display watcher in auto mode
}

// NewCompressor creates a new snapshot compressor
func NewCompressor(logger *zap.Logger, cfg CompressorConfig) *Compressor {
	if cfg.MaxWidth <= 0 {
		cfg.MaxWidth = defaultMaxWidth
	}
	if cfg.Quality <= 0 || cfg.Quality > 100 {
		cfg.Quality = defaultQuality
	}

	c := &Compressor{
		logger:   logger,
		maxWidth: cfg.MaxWidth,
		quality:  cfg.Quality,
		flipH:    cfg.FlipHorizontal,
	}
	c.flipV.Store(cfg.FlipVertical)
	return c
}

// SetFlipVertical changes vertical flipping for subsequent calls
func (c *Compressor) SetFlipVertical(flip bool) {
	c.flipV.Store(flip)
}

// FlipVertical reports whether snapshots are currently flipped vertically
func (c *Compressor) FlipVertical() bool {
	return c.flipV.Load()
}

// Process resizes, optionally flips, and re-encodes image data as JPEG
func (c *Compressor) Process(ctx context.Context, imageData []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dy() == 0 || bounds.Dx() == 0 {
		return nil, fmt.Errorf("invalid image dimensions: %dx%d", bounds.Dx(), bounds.Dy())
	}

	var out image.Image = img
	if bounds.Dx() > c.maxWidth {
		// Height 0 preserves the aspect ratio
		out = imaging.Resize(out, c.maxWidth, 0, imaging.Lanczos)
	}
	if c.flipH {
		out = imaging.FlipH(out)
	}
	if c.flipV.Load() {
		out = imaging.FlipV(out)
	}

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, out, imaging.JPEG, imaging.JPEGQuality(c.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}

	c.logger.Debug("Image compressed",
		zap.String("before", formatSize(len(imageData))),
		zap.String("after", formatSize(buf.Len())))
	return buf.Bytes(), nil
}

func formatSize(n int) string {
	switch {
	case n < 1024:
		return fmt.Sprintf("%dB", n)
	case n < 1024*1024:
		return fmt.Sprintf("%.1fKB", float64(n)/1024)
	default:
		return fmt.Sprintf("%.2fMB", float64(n)/(1024*1024))
	}
}
