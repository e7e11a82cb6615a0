// Package datauri converts uploaded assets to and from the self-describing
// "data:<mime>;base64,<payload>" form that is stored in the image_data
// columns.
package datauri

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	scheme       = "data:"
	base64Marker = ";base64"
)

var (
	ErrEmptyMIMEType    = errors.New("mime type is empty")
	ErrInvalidMIMEType  = errors.New("mime type must not contain a comma")
	ErrMalformedDataURI = errors.New("malformed data uri")
)

// EncodingError reports a failure to read or encode an asset payload.
type EncodingError struct {
	MIMEType string
	Err      error
}

func (e *EncodingError) Error() string {
	if e.MIMEType == "" {
		return fmt.Sprintf("failed to encode asset: %v", e.Err)
	}
	return fmt.Sprintf("failed to encode %s asset: %v", e.MIMEType, e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// Asset is an uploaded binary payload together with its declared MIME type.
type Asset struct {
	Reader   io.Reader
	MIMEType string
}

// NewAsset wraps an in-memory payload.
func NewAsset(data []byte, mimeType string) *Asset {
	return &Asset{Reader: bytes.NewReader(data), MIMEType: mimeType}
}

// Encode returns the data URI for the asset. Errors from the underlying
// reader are returned as *EncodingError.
func (a *Asset) Encode() (string, error) {
	if a.Reader == nil {
		return "", &EncodingError{MIMEType: a.MIMEType, Err: errors.New("asset has no payload")}
	}
	data, err := io.ReadAll(a.Reader)
	if err != nil {
		return "", &EncodingError{MIMEType: a.MIMEType, Err: fmt.Errorf("failed to read payload: %w", err)}
	}
	return Encode(data, a.MIMEType)
}

// Encode builds a data URI from data and mimeType. The output is
// deterministic for a given input.
func Encode(data []byte, mimeType string) (string, error) {
	if err := validateMIMEType(mimeType); err != nil {
		return "", &EncodingError{MIMEType: mimeType, Err: err}
	}

	var sb strings.Builder
	sb.Grow(len(scheme) + len(mimeType) + len(base64Marker) + 1 + base64.StdEncoding.EncodedLen(len(data)))
	sb.WriteString(scheme)
	sb.WriteString(mimeType)
	sb.WriteString(base64Marker)
	sb.WriteByte(',')
	sb.WriteString(base64.StdEncoding.EncodeToString(data))
	return sb.String(), nil
}

// Decode splits a data URI produced by Encode back into its payload and
// MIME type.
func Decode(uri string) ([]byte, string, error) {
	if !strings.HasPrefix(uri, scheme) {
		return nil, "", fmt.Errorf("%w: missing %q prefix", ErrMalformedDataURI, scheme)
	}

	meta, payload, ok := strings.Cut(uri[len(scheme):], ",")
	if !ok {
		return nil, "", fmt.Errorf("%w: missing payload separator", ErrMalformedDataURI)
	}

	mimeType, isBase64 := strings.CutSuffix(meta, base64Marker)
	if !isBase64 {
		return nil, "", fmt.Errorf("%w: payload is not base64", ErrMalformedDataURI)
	}
	if mimeType == "" {
		return nil, "", fmt.Errorf("%w: %w", ErrMalformedDataURI, ErrEmptyMIMEType)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrMalformedDataURI, err)
	}

	return data, mimeType, nil
}

// DetectMIMEType sniffs the content type of data. It is used when a client
// uploads a file without a usable Content-Type header.
func DetectMIMEType(data []byte) string {
	return mimetype.Detect(data).String()
}

// ResolveMIMEType returns declared when it is specific enough, otherwise the
// sniffed type of data.
func ResolveMIMEType(declared string, data []byte) string {
	declared = strings.TrimSpace(declared)
	if declared == "" || declared == "application/octet-stream" || validateMIMEType(declared) != nil {
		return DetectMIMEType(data)
	}
	return declared
}

func validateMIMEType(mimeType string) error {
	if strings.TrimSpace(mimeType) == "" {
		return ErrEmptyMIMEType
	}
	if strings.Contains(mimeType, ",") {
		return ErrInvalidMIMEType
	}
	return nil
}
