package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/genricoloni/mpcpresence/internal/domain"
	"go.uber.org/zap"
)

const (
	_maxImageSize    = 10 * 1024 * 1024 // 10 MB
	_maxStatusSize   = 1024 * 1024
	_statusTimeout   = 5 * time.Second
	_snapshotTimeout = 10 * time.Second
	_pingTimeout     = 3 * time.Second

	variablesPath = "/variables.html"
	snapshotPath  = "/snapshot.jpg"
)

// MPCClient reads status and snapshots from the MPC-HC web interface
type MPCClient struct {
	logger  *zap.Logger
	client  *http.Client
	baseURL string
}

// NewMPCClient creates a client for the web interface rooted at baseURL
func NewMPCClient(logger *zap.Logger, baseURL string) *MPCClient {
	return &MPCClient{
		logger:  logger,
		client:  &http.Client{},
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Status fetches and parses the player variables page
func (c *MPCClient) Status(ctx context.Context) (*domain.PlaybackStatus, error) {
	body, _, err := c.get(ctx, variablesPath, _statusTimeout, _maxStatusSize)
	if err != nil {
		return nil, err
	}

	vars := ParseVariables(string(body))

	stateCode := parseIntOr(vars["state"], -1)
	status := &domain.PlaybackStatus{
		File:       vars["file"],
		FilePath:   vars["filepath"],
		StateCode:  stateCode,
		State:      domain.PlayStateFromCode(stateCode),
		PositionMs: int64(parseIntOr(vars["position"], 0)),
		DurationMs: int64(parseIntOr(vars["duration"], 0)),
	}
	return status, nil
}

// Snapshot captures the frame currently displayed by the player
func (c *MPCClient) Snapshot(ctx context.Context) ([]byte, error) {
	data, contentType, err := c.get(ctx, snapshotPath, _snapshotTimeout, _maxImageSize)
	if err != nil {
		return nil, err
	}

	if !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("snapshot is not an image: %s", contentType)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty snapshot")
	}

	c.logger.Debug("Snapshot fetched successfully", zap.Int("bytes", len(data)))
	return data, nil
}

// Ping reports whether the web interface answers
func (c *MPCClient) Ping(ctx context.Context) error {
	_, _, err := c.get(ctx, variablesPath, _pingTimeout, _maxStatusSize)
	return err
}

func (c *MPCClient) get(ctx context.Context, path string, timeout time.Duration, limit int64) ([]byte, string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "mpcpresence/1.0")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read body: %w", err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

func parseIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return n
}
