package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"minimalist-backend/internal/datauri"
	"minimalist-backend/internal/models"
)

var errStoreDown = errors.New("store is down")

// clock hands out strictly increasing timestamps so list order is stable.
type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) next() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.now.IsZero() {
		c.now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	c.now = c.now.Add(time.Second)
	return c.now
}

type fakeImageStore struct {
	mu      sync.Mutex
	clock   clock
	records []models.GeneratedImage
	err     error
}

func (s *fakeImageStore) Create(ctx context.Context, userID string, attrs models.ImageAttributes, asset *datauri.Asset) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	attrs = attrs.WithDefaults()
	record := models.GeneratedImage{
		ID:          fmt.Sprintf("img-%d", len(s.records)+1),
		UserID:      userID,
		Prompt:      attrs.Prompt,
		AspectRatio: attrs.AspectRatio,
		CreatedAt:   s.clock.next(),
	}
	if asset != nil {
		uri, err := asset.Encode()
		if err != nil {
			return "", err
		}
		record.ImageData.String, record.ImageData.Valid = uri, true
	}
	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
	return record.ID, nil
}

func (s *fakeImageStore) ListByUser(ctx context.Context, userID string) ([]models.GeneratedImage, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.GeneratedImage{}
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].UserID == userID {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

func (s *fakeImageStore) DeleteByOwner(ctx context.Context, userID, id string) (bool, error) {
	if s.err != nil {
		return false, s.err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, record := range s.records {
		if record.ID == id && record.UserID == userID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeBackgroundStore struct {
	mu      sync.Mutex
	clock   clock
	records []models.BackgroundRemoval
}

func (s *fakeBackgroundStore) Create(ctx context.Context, userID string, attrs models.BackgroundAttributes, asset *datauri.Asset) (string, error) {
	attrs = attrs.WithDefaults()
	record := models.BackgroundRemoval{
		ID:        fmt.Sprintf("bg-%d", len(s.records)+1),
		UserID:    userID,
		Prompt:    attrs.Prompt,
		CreatedAt: s.clock.next(),
	}
	if asset != nil {
		uri, err := asset.Encode()
		if err != nil {
			return "", err
		}
		record.ImageData.String, record.ImageData.Valid = uri, true
	}
	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
	return record.ID, nil
}

func (s *fakeBackgroundStore) ListByUser(ctx context.Context, userID string) ([]models.BackgroundRemoval, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.BackgroundRemoval{}
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].UserID == userID {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

func (s *fakeBackgroundStore) DeleteByOwner(ctx context.Context, userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, record := range s.records {
		if record.ID == id && record.UserID == userID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeContentStore struct {
	mu      sync.Mutex
	clock   clock
	records []models.GeneratedContent
}

func (s *fakeContentStore) Create(ctx context.Context, userID string, attrs models.ContentAttributes) (string, error) {
	attrs = attrs.WithDefaults()
	record := models.GeneratedContent{
		ID:          fmt.Sprintf("content-%d", len(s.records)+1),
		UserID:      userID,
		Title:       attrs.Title,
		Content:     attrs.Content,
		ContentType: attrs.ContentType,
		CreatedAt:   s.clock.next(),
	}
	s.mu.Lock()
	s.records = append(s.records, record)
	s.mu.Unlock()
	return record.ID, nil
}

func (s *fakeContentStore) ListByUser(ctx context.Context, userID string) ([]models.GeneratedContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []models.GeneratedContent{}
	for i := len(s.records) - 1; i >= 0; i-- {
		if s.records[i].UserID == userID {
			out = append(out, s.records[i])
		}
	}
	return out, nil
}

func (s *fakeContentStore) DeleteByOwner(ctx context.Context, userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, record := range s.records {
		if record.ID == id && record.UserID == userID {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

type fakeMirror struct {
	uploadErr error
	uploaded  []string
	deleted   []string
}

func (m *fakeMirror) Upload(ctx context.Context, userID, kind, recordID string, data []byte, mimeType string) (string, error) {
	if m.uploadErr != nil {
		return "", m.uploadErr
	}
	path := fmt.Sprintf("users/%s/%s/%s", userID, kind, recordID)
	m.uploaded = append(m.uploaded, path)
	return "https://cdn.example.com/" + path, nil
}

func (m *fakeMirror) Delete(ctx context.Context, userID, kind, recordID string) error {
	m.deleted = append(m.deleted, fmt.Sprintf("users/%s/%s/%s", userID, kind, recordID))
	return nil
}
