package notion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Statuses worth retrying: rate limits and transient server errors.
// Anything else non-2xx is a permanent source-data error.
var retryableStatus = map[int]bool{
	http.StatusTooManyRequests:     true,
	http.StatusInternalServerError: true,
	http.StatusBadGateway:          true,
	http.StatusServiceUnavailable:  true,
	http.StatusGatewayTimeout:      true,
}

// doRequest issues one API call with exponential backoff on transient
// failures. Network-level errors follow the same policy as retryable
// statuses; exhausting every attempt surfaces the last error, which callers
// treat as fatal for the run.
func (c *Client) doRequest(ctx context.Context, method, url string, body []byte, response any) error {
	backoff := c.initialBackoff

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			c.logger.Warn("retrying workspace request",
				zap.String("url", url),
				zap.Int("attempt", attempt),
				zap.Duration("wait", backoff),
				zap.Error(lastErr),
			)
			c.sleep(backoff)
			backoff *= 2
		}

		retryable, err := c.attempt(ctx, method, url, body, response)
		if err == nil {
			return nil
		}
		if !retryable {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("workspace request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

func (c *Client) attempt(ctx context.Context, method, url string, body []byte, response any) (retryable bool, err error) {
	var reqBody io.Reader
	if body != nil {
		reqBody = bytes.NewBuffer(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return false, err
	}
	req.Header.Add("Authorization", "Bearer "+c.token)
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Notion-Version", apiVersion)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return true, err
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		b, _ := io.ReadAll(res.Body)
		err := fmt.Errorf("workspace error %d: %s", res.StatusCode, string(b))
		return retryableStatus[res.StatusCode], err
	}

	return false, json.NewDecoder(res.Body).Decode(response)
}
