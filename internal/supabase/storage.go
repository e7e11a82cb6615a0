// Package supabase mirrors saved assets into Supabase Storage so clients can
// load them by URL instead of by data URI.
package supabase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	storage "github.com/supabase-community/storage-go"
	"go.uber.org/zap"
)

type StorageClient struct {
	bucket  string
	baseURL string
	logger  *zap.Logger

	upload func(path string, data io.Reader, contentType string) error
	remove func(paths []string) error
}

func NewStorageClient(supabaseURL, serviceRoleKey, bucket string, logger *zap.Logger) (*StorageClient, error) {
	if supabaseURL == "" || serviceRoleKey == "" || bucket == "" {
		return nil, fmt.Errorf("supabase url, service key and bucket are required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	baseURL := strings.TrimSuffix(supabaseURL, "/")
	client := storage.NewClient(baseURL+"/storage/v1", serviceRoleKey, nil)

	return &StorageClient{
		bucket:  bucket,
		baseURL: baseURL,
		logger:  logger.Named("storage"),
		upload: func(path string, data io.Reader, contentType string) error {
			upsert := true
			_, err := client.UploadFile(bucket, path, data, storage.FileOptions{
				ContentType: &contentType,
				Upsert:      &upsert,
			})
			return err
		},
		remove: func(paths []string) error {
			_, err := client.RemoveFile(bucket, paths)
			return err
		},
	}, nil
}

// ObjectPath is users/{user_id}/{kind}/{record_id}.
func ObjectPath(userID, kind, recordID string) string {
	return fmt.Sprintf("users/%s/%s/%s", userID, kind, recordID)
}

func (s *StorageClient) GetPublicURL(storagePath string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s",
		s.baseURL, s.bucket, storagePath)
}

// Upload stores the asset of a saved record and returns its public URL.
func (s *StorageClient) Upload(ctx context.Context, userID, kind, recordID string, data []byte, mimeType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	storagePath := ObjectPath(userID, kind, recordID)
	if err := s.upload(storagePath, bytes.NewReader(data), mimeType); err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.Debug("Asset mirrored",
		zap.String("path", storagePath),
		zap.Int("size", len(data)),
	)
	return s.GetPublicURL(storagePath), nil
}

// Delete removes the mirrored asset of a record. Missing objects are not an
// error.
func (s *StorageClient) Delete(ctx context.Context, userID, kind, recordID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	storagePath := ObjectPath(userID, kind, recordID)
	if err := s.remove([]string{storagePath}); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
