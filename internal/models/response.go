package models

import "time"

// timestampLayout matches JavaScript's Date.prototype.toISOString.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

type SaveImageResponse struct {
	Success  bool   `json:"success"`
	ImageID  string `json:"imageId"`
	TempURL  string `json:"tempUrl"`
	IsBase64 bool   `json:"isBase64"`
}

type SaveContentResponse struct {
	Success   bool   `json:"success"`
	ContentID string `json:"contentId"`
}

type DeleteResponse struct {
	Success bool `json:"success"`
	Deleted bool `json:"deleted"`
}

type GenerateContentResponse struct {
	Content string `json:"content"`
}

type ImageHistoryItem struct {
	ID          string `json:"id"`
	URL         string `json:"url"`
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
	CreatedAt   string `json:"createdAt"`
	IsBase64    bool   `json:"isBase64"`
}

type BackgroundHistoryItem struct {
	ID        string `json:"id"`
	URL       string `json:"url"`
	Prompt    string `json:"prompt"`
	CreatedAt string `json:"createdAt"`
	IsBase64  bool   `json:"isBase64"`
}

type ContentHistoryItem struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Content     string `json:"content"`
	ContentType string `json:"contentType"`
	CreatedAt   string `json:"createdAt"`
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Service  string `json:"service" example:"minimalist-developer-api"`
	Version  string `json:"version" example:"1.0.0"`
	Database string `json:"database" example:"ok"`
}

func NewImageHistoryItem(img GeneratedImage) ImageHistoryItem {
	aspectRatio := img.AspectRatio
	if aspectRatio == "" {
		aspectRatio = DefaultAspectRatio
	}
	return ImageHistoryItem{
		ID:          img.ID,
		URL:         img.ImageData.String,
		Prompt:      img.Prompt,
		AspectRatio: aspectRatio,
		CreatedAt:   FormatTimestamp(img.CreatedAt),
		IsBase64:    img.ImageData.Valid,
	}
}

func NewBackgroundHistoryItem(bg BackgroundRemoval) BackgroundHistoryItem {
	prompt := bg.Prompt
	if prompt == "" {
		prompt = DefaultBackgroundLabel
	}
	return BackgroundHistoryItem{
		ID:        bg.ID,
		URL:       bg.ImageData.String,
		Prompt:    prompt,
		CreatedAt: FormatTimestamp(bg.CreatedAt),
		IsBase64:  bg.ImageData.Valid,
	}
}

func NewContentHistoryItem(content GeneratedContent) ContentHistoryItem {
	attrs := ContentAttributes{Title: content.Title, ContentType: content.ContentType}.WithDefaults()
	return ContentHistoryItem{
		ID:          content.ID,
		Title:       attrs.Title,
		Content:     content.Content,
		ContentType: attrs.ContentType,
		CreatedAt:   FormatTimestamp(content.CreatedAt),
	}
}
