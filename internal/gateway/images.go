package gateway

import (
	"context"
	"database/sql"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"minimalist-backend/internal/datauri"
	"minimalist-backend/internal/models"
)

const imageColumns = "id, user_id, prompt, aspect_ratio, image_data, created_at"

type ImageRepository struct {
	table
}

func NewImageRepository(db *sqlx.DB, logger *zap.Logger) *ImageRepository {
	return &ImageRepository{table: newTable(db, logger, models.KindGeneratedImage, "generated_images")}
}

// Create encodes asset (when given) as a data URI and inserts a new
// generated image owned by userID. It returns the store assigned id.
func (r *ImageRepository) Create(ctx context.Context, userID string, attrs models.ImageAttributes, asset *datauri.Asset) (string, error) {
	if err := r.requireUser(userID); err != nil {
		return "", err
	}
	attrs = attrs.WithDefaults()
	if strings.TrimSpace(attrs.Prompt) == "" {
		return "", &ValidationError{Kind: r.kind, Field: "prompt", Reason: "is required"}
	}

	imageData, err := encodeAsset(asset)
	if err != nil {
		return "", err
	}

	return r.insert(ctx, userID, `
		INSERT INTO generated_images (user_id, prompt, aspect_ratio, image_data)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, attrs.Prompt, attrs.AspectRatio, imageData)
}

// ListByUser returns the user's images, newest first.
func (r *ImageRepository) ListByUser(ctx context.Context, userID string) ([]models.GeneratedImage, error) {
	return listByUser[models.GeneratedImage](ctx, r.table, userID, imageColumns)
}

// GetByID is not owner scoped; callers check UserID before exposing the
// record.
func (r *ImageRepository) GetByID(ctx context.Context, id string) (*models.GeneratedImage, bool, error) {
	return getByID[models.GeneratedImage](ctx, r.table, id, imageColumns)
}

func (r *ImageRepository) DeleteByOwner(ctx context.Context, userID, id string) (bool, error) {
	return r.deleteByOwner(ctx, userID, id)
}

func encodeAsset(asset *datauri.Asset) (sql.NullString, error) {
	if asset == nil {
		return sql.NullString{}, nil
	}
	uri, err := asset.Encode()
	if err != nil {
		return sql.NullString{}, err
	}
	return sql.NullString{String: uri, Valid: true}, nil
}
