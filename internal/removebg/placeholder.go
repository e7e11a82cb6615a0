package removebg

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// PlaceholderClient ignores the upload and returns a fixed transparent PNG.
type PlaceholderClient struct {
	url        string
	httpClient *http.Client
	backoffs   []time.Duration
}

func NewPlaceholderClient(url string, timeout time.Duration) *PlaceholderClient {
	return &PlaceholderClient{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		backoffs: []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second},
	}
}

// SetBackoffs replaces the delays between retry attempts.
func (c *PlaceholderClient) SetBackoffs(backoffs ...time.Duration) {
	c.backoffs = backoffs
}

func (c *PlaceholderClient) Remove(ctx context.Context, filename string, data []byte) (*Image, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	var body []byte
	err := c.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("failed to execute request: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("placeholder request failed: status %d", resp.StatusCode)
		}

		body, err = readResponse(resp.Body)
		if err != nil {
			return err
		}
		return nil
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch placeholder image: %w", err)
	}

	return &Image{Data: body, MIMEType: "image/png"}, nil
}

// RetryWithBackoff executes a function with exponential backoff retry logic
func (c *PlaceholderClient) RetryWithBackoff(ctx context.Context, fn func() error, maxRetries int) error {
	var lastErr error
	for i := 0; i < maxRetries; i++ {
		err := fn()
		if err == nil {
			return nil
		}

		lastErr = err
		if i < len(c.backoffs) && i < maxRetries-1 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("retry aborted: %w", ctx.Err())
			case <-time.After(c.backoffs[i]):
			}
		}
	}

	return fmt.Errorf("failed after %d retries: %w", maxRetries, lastErr)
}
