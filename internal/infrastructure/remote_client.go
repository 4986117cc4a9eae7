package infrastructure

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"adsplanner/internal/domain"
	"adsplanner/pkg/logger"
	"adsplanner/pkg/metrics"

	"golang.org/x/time/rate"
)

// RemoteClientConfig configures the remote ads provider
type RemoteClientConfig struct {
	FeedURL    string
	SinkURL    string
	SinkSecret string
	Timeout    time.Duration
	RateLimit  float64
}

// implements domain.RemoteClient
type RemoteClient struct {
	client      *http.Client
	feedURL     string
	sinkURL     string
	sinkSecret  string
	logger      *logger.Logger
	metrics     *metrics.Metrics
	rateLimiter *rate.Limiter
}

func NewRemoteClient(cfg RemoteClientConfig, logger *logger.Logger, metrics *metrics.Metrics) *RemoteClient {
	limit := rate.Limit(cfg.RateLimit)
	if cfg.RateLimit <= 0 {
		limit = rate.Inf
	}

	return &RemoteClient{
		client: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		feedURL:     cfg.FeedURL,
		sinkURL:     cfg.SinkURL,
		sinkSecret:  cfg.SinkSecret,
		logger:      logger,
		metrics:     metrics,
		rateLimiter: rate.NewLimiter(limit, 1),
	}
}

// FetchRows downloads a JSON array of editor rows from the feed
func (c *RemoteClient) FetchRows(ctx context.Context) ([]domain.Row, error) {
	if c.feedURL == "" {
		return nil, domain.ErrRemoteNotConfigured
	}

	start := time.Now()

	// Apply rate limiting
	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure("feed", "rate_limit")
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("feed", "request_creation")
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("feed", "network_error")
		return nil, fmt.Errorf("failed to fetch rows: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode != http.StatusOK {
		c.metrics.RecordExternalAPICall("feed", fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return nil, fmt.Errorf("feed API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("feed", "read_body")
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var rows []domain.Row
	if err := json.Unmarshal(body, &rows); err != nil {
		c.metrics.RecordExternalAPIFailure("feed", "json_parse")
		return nil, fmt.Errorf("failed to parse rows: %w", err)
	}

	c.metrics.RecordExternalAPICall("feed", "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"url":      c.feedURL,
		"duration": duration,
		"rows":     len(rows),
	}).Info("Successfully fetched remote rows")

	return rows, nil
}

// PushSnapshot posts the exported workspace to the sink
func (c *RemoteClient) PushSnapshot(ctx context.Context, doc domain.ExportDocument) error {
	if c.sinkURL == "" {
		return domain.ErrRemoteNotConfigured
	}

	start := time.Now()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		c.metrics.RecordExternalAPIFailure("sink", "rate_limit")
		return fmt.Errorf("rate limit exceeded: %w", err)
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("sink", "json_marshal")
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sinkURL, bytes.NewReader(payload))
	if err != nil {
		c.metrics.RecordExternalAPIFailure("sink", "request_creation")
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Add HMAC signature if secret is provided
	if c.sinkSecret != "" {
		req.Header.Set("X-Signature", Sign(c.sinkSecret, payload))
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.RecordExternalAPIFailure("sink", "network_error")
		return fmt.Errorf("failed to push snapshot: %w", err)
	}
	defer resp.Body.Close()

	duration := time.Since(start)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.metrics.RecordExternalAPICall("sink", fmt.Sprintf("error_%d", resp.StatusCode), duration)
		return fmt.Errorf("sink API returned status %d", resp.StatusCode)
	}

	c.metrics.RecordExternalAPICall("sink", "success", duration)

	c.logger.WithContext(ctx).WithFields(map[string]any{
		"url":       c.sinkURL,
		"duration":  duration,
		"campaigns": len(doc.Campaigns),
		"keywords":  len(doc.Keywords),
	}).Info("Successfully pushed workspace snapshot")

	return nil
}

// Sign returns the hex HMAC-SHA256 of payload
func Sign(secret string, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}
