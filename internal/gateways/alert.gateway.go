package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/possxc/ledger/pkg/logger"
	"github.com/valyala/fasthttp"
)

var ErrProviderUnavailable = errors.New("alert provider unavailable")

type DeliveryStatus string

const (
	StatusDelivered DeliveryStatus = "DELIVERED"
	StatusFailed    DeliveryStatus = "FAILED"
)

// PushRequest is the reminder as handed to the alert provider.
type PushRequest struct {
	ReminderID string    `json:"reminder_id"`
	OrderID    int64     `json:"order_id"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	DueDate    time.Time `json:"due_date"`
}

type PushResponse struct {
	ReminderID  string         `json:"reminder_id"`
	Status      DeliveryStatus `json:"status"`
	DeliveredAt *time.Time     `json:"delivered_at,omitempty"`
	ErrorMsg    string         `json:"error_message,omitempty"`
	ProviderID  string         `json:"provider_id"`
	ProcessedAt time.Time      `json:"processed_at"`
}

type Config struct {
	URL             string
	Timeout         time.Duration
	MaxRetries      int
	RetryDelay      time.Duration
	MaxConns        int
	ReadBufferSize  int
	WriteBufferSize int
}

// Stats are cheap delivery counters exposed on the notifier's debug
// endpoint.
type Stats struct {
	TotalRequests  int64
	SuccessfulReqs int64
	FailedReqs     int64
	LastLatencyMs  int64
}

// Client talks to the push-alert provider over HTTP.
type Client struct {
	config *Config
	client *fasthttp.Client

	totalRequests  atomic.Int64
	successfulReqs atomic.Int64
	failedReqs     atomic.Int64
	lastLatencyMs  atomic.Int64
}

func NewClient(config *Config) (*Client, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.URL == "" {
		return nil, errors.New("provider url is required")
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 500 * time.Millisecond
	}

	c := &Client{
		config: config,
		client: &fasthttp.Client{
			MaxConnsPerHost:     config.MaxConns,
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxIdleConnDuration: 60 * time.Second,
			ReadBufferSize:      config.ReadBufferSize,
			WriteBufferSize:     config.WriteBufferSize,
		},
	}

	logger.Info("alert client initialized", "url", config.URL, "timeout", config.Timeout)

	return c, nil
}

// Push delivers one reminder, retrying transient failures up to
// MaxRetries times before giving up.
func (c *Client) Push(ctx context.Context, req *PushRequest) (*PushResponse, error) {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.config.RetryDelay):
			}
		}

		startTime := time.Now()
		response, err := c.doRequest(ctx, "POST", "/api/v1/alerts/push", reqBody)
		latency := time.Since(startTime).Milliseconds()

		c.totalRequests.Add(1)
		c.lastLatencyMs.Store(latency)

		if err != nil {
			c.failedReqs.Add(1)
			logger.Warn("push failed, retrying", "error", err, "attempt", attempt+1)
			lastErr = err
			continue
		}

		c.successfulReqs.Add(1)

		var resp PushResponse
		if err := json.Unmarshal(response, &resp); err != nil {
			return nil, fmt.Errorf("failed to unmarshal response: %w", err)
		}

		logger.Info("reminder pushed",
			"reminder_id", req.ReminderID,
			"order_id", req.OrderID,
			"status", string(resp.Status),
			"latency_ms", latency)

		return &resp, nil
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

// Healthy reports whether the provider answers its health endpoint.
func (c *Client) Healthy(ctx context.Context) bool {
	response, err := c.doRequest(ctx, "GET", "/health", nil)
	if err != nil {
		return false
	}

	var health struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(response, &health); err != nil {
		return false
	}
	return health.Status == "healthy"
}

func (c *Client) doRequest(ctx context.Context, method, path string, body []byte) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(c.config.URL + path)
	req.Header.SetMethod(method)
	req.Header.SetContentType("application/json")

	if body != nil {
		req.SetBody(body)
	}

	deadline, ok := ctx.Deadline()
	if !ok {
		deadline = time.Now().Add(c.config.Timeout)
	}

	if err := c.client.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	statusCode := resp.StatusCode()
	if statusCode != fasthttp.StatusOK && statusCode != fasthttp.StatusAccepted {
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", statusCode, resp.Body())
	}

	result := make([]byte, len(resp.Body()))
	copy(result, resp.Body())

	return result, nil
}

func (c *Client) GetStats() Stats {
	return Stats{
		TotalRequests:  c.totalRequests.Load(),
		SuccessfulReqs: c.successfulReqs.Load(),
		FailedReqs:     c.failedReqs.Load(),
		LastLatencyMs:  c.lastLatencyMs.Load(),
	}
}
