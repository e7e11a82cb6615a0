// Package removebg strips the background from an uploaded image.
package removebg

import (
	"context"
	"errors"
	"fmt"
	"io"
)

var ErrEmptyImage = errors.New("image file is required")

// Image is a processed cut-out, always a PNG.
type Image struct {
	Data     []byte
	MIMEType string
}

type Remover interface {
	Remove(ctx context.Context, filename string, data []byte) (*Image, error)
}

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

