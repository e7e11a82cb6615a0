package models_test

import (
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"minimalist-backend/internal/models"
)

func TestAttributeDefaults(t *testing.T) {
	assert.Equal(t, "1:1", models.ImageAttributes{Prompt: "sunset"}.WithDefaults().AspectRatio)
	assert.Equal(t, "16:9", models.ImageAttributes{AspectRatio: "16:9"}.WithDefaults().AspectRatio)

	assert.Equal(t, "Background removed image", models.BackgroundAttributes{}.WithDefaults().Prompt)
	assert.Equal(t, "cat", models.BackgroundAttributes{Prompt: "cat"}.WithDefaults().Prompt)

	content := models.ContentAttributes{Content: "body"}.WithDefaults()
	assert.Equal(t, "Generated Content", content.Title)
	assert.Equal(t, "paragraph", content.ContentType)
	assert.Equal(t, "body", content.Content)
}

func TestAttributeDefaults_BlankValues(t *testing.T) {
	assert.Equal(t, "1:1", models.ImageAttributes{Prompt: "sunset", AspectRatio: " \t"}.WithDefaults().AspectRatio)
	assert.Equal(t, "sunset", models.ImageAttributes{Prompt: "  sunset "}.WithDefaults().Prompt)

	assert.Equal(t, "Background removed image", models.BackgroundAttributes{Prompt: "   "}.WithDefaults().Prompt)
	assert.Equal(t, "cat", models.BackgroundAttributes{Prompt: " cat\n"}.WithDefaults().Prompt)

	content := models.ContentAttributes{Title: "  ", Content: "body", ContentType: "\t"}.WithDefaults()
	assert.Equal(t, "Generated Content", content.Title)
	assert.Equal(t, "paragraph", content.ContentType)
}

func TestFormatTimestamp(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 123456789, time.FixedZone("CET", 3600))

	assert.Equal(t, "2024-03-09T13:05:07.123Z", models.FormatTimestamp(ts))
}

func TestNewImageHistoryItem(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	item := models.NewImageHistoryItem(models.GeneratedImage{
		ID:        "img1",
		UserID:    "u1",
		Prompt:    "sunset",
		ImageData: sql.NullString{String: "data:image/png;base64,iVBORw0KGgo=", Valid: true},
		CreatedAt: created,
	})

	assert.Equal(t, models.ImageHistoryItem{
		ID:          "img1",
		URL:         "data:image/png;base64,iVBORw0KGgo=",
		Prompt:      "sunset",
		AspectRatio: "1:1",
		CreatedAt:   "2024-01-02T03:04:05.000Z",
		IsBase64:    true,
	}, item)
}

func TestNewBackgroundHistoryItem_DefaultLabel(t *testing.T) {
	item := models.NewBackgroundHistoryItem(models.BackgroundRemoval{ID: "bg1"})

	assert.Equal(t, "Background removed image", item.Prompt)
	assert.False(t, item.IsBase64)
}

func TestNewContentHistoryItem(t *testing.T) {
	item := models.NewContentHistoryItem(models.GeneratedContent{ID: "c1", Content: "Hello"})

	assert.Equal(t, "Generated Content", item.Title)
	assert.Equal(t, "paragraph", item.ContentType)
	assert.Equal(t, "Hello", item.Content)
}
