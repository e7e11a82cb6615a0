package imagen

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type TextPrompt struct {
	Text string `json:"text"`
}

type TextToImageRequest struct {
	TextPrompts []TextPrompt `json:"text_prompts"`
	CfgScale    int          `json:"cfg_scale"`
	Height      int          `json:"height"`
	Width       int          `json:"width"`
	Samples     int          `json:"samples"`
	Steps       int          `json:"steps"`
}

type TextToImageResponse struct {
	Artifacts []struct {
		Base64       string `json:"base64"`
		FinishReason string `json:"finishReason"`
		Seed         int64  `json:"seed"`
	} `json:"artifacts"`
}

type stabilityError struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// StabilityClient calls the Stability AI text-to-image endpoint.
type StabilityClient struct {
	baseURL    string
	apiKey     string
	engine     string
	httpClient *http.Client
}

func NewStabilityClient(baseURL, apiKey, engine string, timeout time.Duration) *StabilityClient {
	return &StabilityClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		engine:  engine,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *StabilityClient) Generate(ctx context.Context, prompt, aspectRatio string) (*Image, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, ErrEmptyPrompt
	}

	width, height := StabilitySize(aspectRatio)
	reqBody := TextToImageRequest{
		TextPrompts: []TextPrompt{{Text: prompt}},
		CfgScale:    7,
		Height:      height,
		Width:       width,
		Samples:     1,
		Steps:       30,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/generation/%s/text-to-image", c.baseURL, c.engine)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

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
		var apiErr stabilityError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("failed to generate image: status %d: %s", resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("failed to generate image: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result TextToImageResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(result.Artifacts) == 0 {
		return nil, fmt.Errorf("no artifacts in response")
	}

	data, err := base64.StdEncoding.DecodeString(result.Artifacts[0].Base64)
	if err != nil {
		return nil, fmt.Errorf("failed to decode artifact: %w", err)
	}

	return &Image{Data: data, MIMEType: "image/png"}, nil
}
