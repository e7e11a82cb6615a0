// Package imagen turns a text prompt into image bytes.
package imagen

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

var ErrEmptyPrompt = errors.New("prompt is required")

// Image is a generated image and its MIME type.
type Image struct {
	Data     []byte
	MIMEType string
}

type Generator interface {
	Generate(ctx context.Context, prompt, aspectRatio string) (*Image, error)
}

var defaultBackoffs = []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}

// maxResponseSize caps how much of an upstream response body is read.
var maxResponseSize int64 = 32 << 20

var ErrResponseTooLarge = errors.New("upstream response is too large")

func readResponse(r io.Reader) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r, maxResponseSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > maxResponseSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, maxResponseSize)
	}
	return body, nil
}

// PlaceholderSize returns the placeholder dimensions for an aspect ratio.
func PlaceholderSize(aspectRatio string) (width, height int) {
	width, height = 512, 512
	if aspectRatio == "16:9" {
		width = 1024
	}
	if aspectRatio == "9:16" {
		height = 1024
	}
	return width, height
}

// StabilitySize returns the text-to-image dimensions for an aspect ratio.
func StabilitySize(aspectRatio string) (width, height int) {
	width, height = 768, 768
	if aspectRatio == "16:9" {
		width = 1024
	}
	if aspectRatio == "9:16" {
		height = 1024
	}
	return width, height
}
