package upload

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const (
	defaultEndpoint = "https://api.imgur.com/3/image"
	uploadTimeout   = 60 * time.Second
	maxResponseSize = 1024 * 1024
	breakerName     = "imgur-upload"
)

// ErrMalformedResponse is returned when the host answers 2xx without a usable link
var ErrMalformedResponse = errors.New("malformed upload response")

// StatusError is returned when the host answers with a non-2xx status
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upload rejected with HTTP %d: %s", e.StatusCode, e.Body)
}

// imgurResponse is the subset of the Imgur API envelope we read
type imgurResponse struct {
	Data struct {
		ID   string `json:"id"`
		Link string `json:"link"`
		Type string `json:"type"`
		Size int64  `json:"size"`
	} `json:"data"`
	Success bool `json:"success"`
	Status  int  `json:"status"`
}

// ImgurHost uploads base64 encoded images to Imgur.
// Calls go through a circuit breaker so a failing API is not hammered every cycle.
type ImgurHost struct {
	logger   *zap.Logger
	client   *http.Client
	clientID string
	endpoint string
	cb       *gobreaker.CircuitBreaker[string]
}

// NewImgurHost creates an Imgur client authenticated with clientID
func NewImgurHost(logger *zap.Logger, clientID string) *ImgurHost {
	return newImgurHost(logger, clientID, defaultEndpoint)
}

func newImgurHost(logger *zap.Logger, clientID, endpoint string) *ImgurHost {
	cb := gobreaker.NewCircuitBreaker[string](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,               // One probe in half-open state
		Interval:    0,               // Never reset counts while closed
		Timeout:     2 * time.Minute, // Wait before probing again
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// Abandoned cycles and shutdown say nothing about the host's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Upload circuit state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()))
		},
	})

	return &ImgurHost{
		logger:   logger,
		client:   &http.Client{Timeout: uploadTimeout},
		clientID: clientID,
		endpoint: endpoint,
		cb:       cb,
	}
}

// Upload publishes imageData and returns the image link
func (h *ImgurHost) Upload(ctx context.Context, imageData []byte) (string, error) {
	return h.cb.Execute(func() (string, error) {
		return h.upload(ctx, imageData)
	})
}

func (h *ImgurHost) upload(ctx context.Context, imageData []byte) (string, error) {
	body := new(bytes.Buffer)
	form := multipart.NewWriter(body)
	if err := form.WriteField("image", base64.StdEncoding.EncodeToString(imageData)); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if err := form.WriteField("type", "base64"); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("failed to build form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint, body)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+h.clientID)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := h.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("network error: failed to read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(raw), 200)}
	}

	var parsed imgurResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if !parsed.Success || parsed.Data.Link == "" {
		return "", fmt.Errorf("%w: success=%t status=%d", ErrMalformedResponse, parsed.Success, parsed.Status)
	}

	h.logger.Debug("Imgur response",
		zap.String("id", parsed.Data.ID),
		zap.String("type", parsed.Data.Type),
		zap.Int64("size", parsed.Data.Size))
	return parsed.Data.Link, nil
}

// truncate caps s at n runes
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
