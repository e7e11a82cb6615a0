package imagen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const placeholderMIMEType = "image/jpeg"

// PlaceholderClient returns stock photos sized to the requested aspect ratio.
// The prompt only gates the request.
type PlaceholderClient struct {
	baseURL    string
	httpClient *http.Client
	backoffs   []time.Duration
}

type PlaceholderOption func(*PlaceholderClient)

func WithPlaceholderHTTPClient(httpClient *http.Client) PlaceholderOption {
	return func(c *PlaceholderClient) {
		c.httpClient = httpClient
	}
}

// WithBackoffs replaces the delays between retry attempts.
func WithBackoffs(backoffs ...time.Duration) PlaceholderOption {
	return func(c *PlaceholderClient) {
		c.backoffs = backoffs
	}
}

func NewPlaceholderClient(baseURL string, timeout time.Duration, opts ...PlaceholderOption) *PlaceholderClient {
	c := &PlaceholderClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		backoffs: defaultBackoffs,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *PlaceholderClient) Generate(ctx context.Context, prompt, aspectRatio string) (*Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	width, height := PlaceholderSize(aspectRatio)
	url := fmt.Sprintf("%s/%d/%d", c.baseURL, width, height)

	var data []byte
	err := c.RetryWithBackoff(ctx, func() error {
		var fetchErr error
		data, fetchErr = c.fetch(ctx, url)
		return fetchErr
	}, 3)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch placeholder image: %w", err)
	}

	return &Image{Data: data, MIMEType: placeholderMIMEType}, nil
}

func (c *PlaceholderClient) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := readResponse(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("placeholder request failed: status %d", resp.StatusCode)
	}

	return body, nil
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
