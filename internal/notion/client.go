package notion

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://api.notion.com/v1"
	apiVersion     = "2022-06-28"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *zap.Logger

	maxAttempts    int
	initialBackoff time.Duration
	sleep          func(time.Duration)
}

type Option func(*Client)

// WithBaseURL points the client at a different endpoint (tests).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithSleep replaces the inter-attempt wait (tests).
func WithSleep(fn func(time.Duration)) Option {
	return func(c *Client) { c.sleep = fn }
}

func WithRetryPolicy(maxAttempts int, initialBackoff time.Duration) Option {
	return func(c *Client) {
		c.maxAttempts = maxAttempts
		c.initialBackoff = initialBackoff
	}
}

func NewClient(token string, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		httpClient:     &http.Client{Timeout: 60 * time.Second},
		baseURL:        defaultBaseURL,
		token:          token,
		logger:         logger,
		maxAttempts:    5,
		initialBackoff: 2 * time.Second,
		sleep:          time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// QueryDatabase fetches one page of records from a workspace database.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string, req QueryRequest) (*QueryResponse, error) {
	url := fmt.Sprintf("%s/databases/%s/query", c.baseURL, databaseID)

	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	var resp QueryResponse
	if err := c.doRequest(ctx, http.MethodPost, url, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
