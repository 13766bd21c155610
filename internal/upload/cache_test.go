package upload

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/genricoloni/mpcpresence/internal/domain"
	"github.com/genricoloni/mpcpresence/internal/domain/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestCache(t *testing.T) (*Cache, *mocks.MockImageHost, *fakeClock) {
	t.Helper()
	ctrl := gomock.NewController(t)
	host := mocks.NewMockImageHost(ctrl)
	clock := &fakeClock{t: time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)}

	c := NewCache(zap.NewNop(), host, nil, CacheConfig{
		MinInterval:    2 * time.Minute,
		ForcedCooldown: 30 * time.Second,
	})
	c.now = clock.Now
	return c, host, clock
}

func TestCache_ThrottleReusesURL(t *testing.T) {
	c, host, clock := newTestCache(t)
	ctx := context.Background()

	host.EXPECT().Upload(gomock.Any(), []byte("frame-1")).Return("https://i.imgur.com/a.jpg", nil).Times(1)

	first := c.Upload(ctx, []byte("frame-1"), domain.ForceNone)
	clock.Advance(time.Minute)
	second := c.Upload(ctx, []byte("frame-1"), domain.ForceNone)

	if first == "" || first != second {
		t.Errorf("expected second call to reuse %q, got %q", first, second)
	}
	// A different frame inside the interval is also throttled
	third := c.Upload(ctx, []byte("frame-2"), domain.ForceNone)
	if third != first {
		t.Errorf("expected throttled call to reuse %q, got %q", first, third)
	}
}

func TestCache_FingerprintDedup(t *testing.T) {
	c, host, clock := newTestCache(t)
	ctx := context.Background()

	host.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("https://i.imgur.com/a.jpg", nil).Times(1)

	first := c.Upload(ctx, []byte("same"), domain.ForceNone)
	clock.Advance(5 * time.Minute)
	second := c.Upload(ctx, []byte("same"), domain.ForceNone)

	if second != first {
		t.Errorf("expected identical content to reuse %q, got %q", first, second)
	}
	if c.UniqueUploads() != 1 {
		t.Errorf("expected 1 unique upload, got %d", c.UniqueUploads())
	}
}

func TestCache_NewContentAfterInterval(t *testing.T) {
	c, host, clock := newTestCache(t)
	ctx := context.Background()

	gomock.InOrder(
		host.EXPECT().Upload(gomock.Any(), []byte("a")).Return("https://i.imgur.com/a.jpg", nil),
		host.EXPECT().Upload(gomock.Any(), []byte("b")).Return("https://i.imgur.com/b.jpg", nil),
	)

	c.Upload(ctx, []byte("a"), domain.ForceNone)
	clock.Advance(2 * time.Minute)
	got := c.Upload(ctx, []byte("b"), domain.ForceNone)

	if !strings.HasPrefix(got, "https://i.imgur.com/b.jpg?t=") {
		t.Errorf("expected cache-busted b link, got %q", got)
	}
	if c.UniqueUploads() != 2 {
		t.Errorf("expected 2 unique uploads, got %d", c.UniqueUploads())
	}
}

func TestCache_ForcedCooldown(t *testing.T) {
	c, host, clock := newTestCache(t)
	ctx := context.Background()

	host.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("https://i.imgur.com/a.jpg", nil).Times(1)

	first := c.Upload(ctx, []byte("a"), domain.ForcePauseRefresh)
	clock.Advance(10 * time.Second)
	second := c.Upload(ctx, []byte("b"), domain.ForceResume)

	if second != first {
		t.Errorf("expected cooldown to return %q, got %q", first, second)
	}
}

func TestCache_FileChangeBypassesCooldown(t *testing.T) {
	c, host, clock := newTestCache(t)
	ctx := context.Background()

	host.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("https://i.imgur.com/a.jpg", nil).Times(2)

	c.Upload(ctx, []byte("a"), domain.ForceResume)
	clock.Advance(time.Second)
	c.Upload(ctx, []byte("a"), domain.ForceFileChanged)

	if c.UniqueUploads() != 2 {
		t.Errorf("expected file change to upload despite cooldown, got %d uploads", c.UniqueUploads())
	}
}

func TestCache_ForcedSkipsFingerprint(t *testing.T) {
	c, host, clock := newTestCache(t)
	ctx := context.Background()

	host.EXPECT().Upload(gomock.Any(), []byte("paused")).Return("https://i.imgur.com/p.jpg", nil).Times(2)

	first := c.Upload(ctx, []byte("paused"), domain.ForceNone)
	clock.Advance(2 * time.Minute)
	second := c.Upload(ctx, []byte("paused"), domain.ForcePauseRefresh)

	if first == second {
		t.Errorf("expected a new cache-busting URL, got %q twice", first)
	}
}

func TestCache_UploadFailureKeepsPreviousURL(t *testing.T) {
	c, host, clock := newTestCache(t)
	ctx := context.Background()

	gomock.InOrder(
		host.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("https://i.imgur.com/a.jpg", nil),
		host.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("", &StatusError{StatusCode: 429, Body: "slow down"}),
	)

	first := c.Upload(ctx, []byte("a"), domain.ForceNone)
	clock.Advance(3 * time.Minute)
	second := c.Upload(ctx, []byte("b"), domain.ForceNone)

	if second != first {
		t.Errorf("expected failure to keep %q, got %q", first, second)
	}
	if c.LastURL() != first {
		t.Errorf("expected LastURL to stay %q, got %q", first, c.LastURL())
	}
	if c.UniqueUploads() != 1 {
		t.Errorf("failed upload must not count, got %d", c.UniqueUploads())
	}
}

func TestCache_FailureWithoutCache(t *testing.T) {
	c, host, _ := newTestCache(t)

	host.EXPECT().Upload(gomock.Any(), gomock.Any()).Return("", errors.New("boom"))

	if got := c.Upload(context.Background(), []byte("a"), domain.ForceFileChanged); got != "" {
		t.Errorf("expected empty URL, got %q", got)
	}
}

func TestCache_ResetUploads(t *testing.T) {
	c, host, clock := newTestCache(t)
	ctx := context.Background()

	host.EXPECT().Upload(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, data []byte) (string, error) {
		return fmt.Sprintf("https://i.imgur.com/%s.jpg", data), nil
	}).Times(3)

	for _, frame := range []string{"a", "b", "c"} {
		c.Upload(ctx, []byte(frame), domain.ForceNone)
		clock.Advance(2 * time.Minute)
	}

	if c.UniqueUploads() != 3 {
		t.Fatalf("expected 3 uploads, got %d", c.UniqueUploads())
	}
	c.ResetUploads()
	if c.UniqueUploads() != 0 {
		t.Errorf("expected counter reset, got %d", c.UniqueUploads())
	}
	if c.LastURL() == "" {
		t.Error("reset must not clear the cached URL")
	}
}

func TestCacheBust(t *testing.T) {
	at := time.UnixMilli(1700000000123)

	tests := []struct {
		link string
		want string
	}{
		{"https://i.imgur.com/a.jpg", "https://i.imgur.com/a.jpg?t=1700000000123"},
		{"https://i.imgur.com/a.jpg?x=1", "https://i.imgur.com/a.jpg?x=1&t=1700000000123"},
	}
	for _, tt := range tests {
		got := cacheBust(tt.link, at)
		if got != tt.want {
			t.Errorf("cacheBust(%q) = %q, want %q", tt.link, got, tt.want)
		}
		if _, err := url.Parse(got); err != nil {
			t.Errorf("invalid URL %q: %v", got, err)
		}
	}
}
