package models

import (
	"database/sql"
	"strings"
	"time"
)

// Record kinds, used in logs, errors, metrics and storage paths.
const (
	KindGeneratedImage    = "generated_image"
	KindBackgroundRemoval = "background_removal"
	KindGeneratedContent  = "generated_content"
)

const (
	DefaultAspectRatio     = "1:1"
	DefaultBackgroundLabel = "Background removed image"
	DefaultContentTitle    = "Generated Content"
	DefaultContentType     = "paragraph"
)

type GeneratedImage struct {
	ID          string         `db:"id"`
	UserID      string         `db:"user_id"`
	Prompt      string         `db:"prompt"`
	AspectRatio string         `db:"aspect_ratio"`
	ImageData   sql.NullString `db:"image_data"`
	CreatedAt   time.Time      `db:"created_at"`
}

type BackgroundRemoval struct {
	ID        string         `db:"id"`
	UserID    string         `db:"user_id"`
	Prompt    string         `db:"prompt"`
	ImageData sql.NullString `db:"image_data"`
	CreatedAt time.Time      `db:"created_at"`
}

type GeneratedContent struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	Title       string    `db:"title"`
	Content     string    `db:"content"`
	ContentType string    `db:"content_type"`
	CreatedAt   time.Time `db:"created_at"`
}

// ImageAttributes are the caller supplied fields of a GeneratedImage.
type ImageAttributes struct {
	Prompt      string
	AspectRatio string
}

func (a ImageAttributes) WithDefaults() ImageAttributes {
	a.Prompt = strings.TrimSpace(a.Prompt)
	a.AspectRatio = strings.TrimSpace(a.AspectRatio)
	if a.AspectRatio == "" {
		a.AspectRatio = DefaultAspectRatio
	}
	return a
}

type BackgroundAttributes struct {
	Prompt string
}

// WithDefaults trims every field; blank values fall back to the defaults.
func (a BackgroundAttributes) WithDefaults() BackgroundAttributes {
	a.Prompt = strings.TrimSpace(a.Prompt)
	if a.Prompt == "" {
		a.Prompt = DefaultBackgroundLabel
	}
	return a
}

type ContentAttributes struct {
	Title       string
	Content     string
	ContentType string
}

func (a ContentAttributes) WithDefaults() ContentAttributes {
	a.Title = strings.TrimSpace(a.Title)
	a.ContentType = strings.TrimSpace(a.ContentType)
	if a.Title == "" {
		a.Title = DefaultContentTitle
	}
	if a.ContentType == "" {
		a.ContentType = DefaultContentType
	}
	return a
}
