package gateway

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"minimalist-backend/internal/datauri"
	"minimalist-backend/internal/models"
)

const backgroundColumns = "id, user_id, prompt, image_data, created_at"

type BackgroundRepository struct {
	table
}

func NewBackgroundRepository(db *sqlx.DB, logger *zap.Logger) *BackgroundRepository {
	return &BackgroundRepository{table: newTable(db, logger, models.KindBackgroundRemoval, "background_removals")}
}

// Create stores a background removal result. An empty prompt is replaced by
// models.DefaultBackgroundLabel.
func (r *BackgroundRepository) Create(ctx context.Context, userID string, attrs models.BackgroundAttributes, asset *datauri.Asset) (string, error) {
	if err := r.requireUser(userID); err != nil {
		return "", err
	}
	attrs = attrs.WithDefaults()

	imageData, err := encodeAsset(asset)
	if err != nil {
		return "", err
	}

	return r.insert(ctx, userID, `
		INSERT INTO background_removals (user_id, prompt, image_data)
		VALUES ($1, $2, $3)
		RETURNING id
	`, userID, attrs.Prompt, imageData)
}

func (r *BackgroundRepository) ListByUser(ctx context.Context, userID string) ([]models.BackgroundRemoval, error) {
	return listByUser[models.BackgroundRemoval](ctx, r.table, userID, backgroundColumns)
}

func (r *BackgroundRepository) GetByID(ctx context.Context, id string) (*models.BackgroundRemoval, bool, error) {
	return getByID[models.BackgroundRemoval](ctx, r.table, id, backgroundColumns)
}

func (r *BackgroundRepository) DeleteByOwner(ctx context.Context, userID, id string) (bool, error) {
	return r.deleteByOwner(ctx, userID, id)
}
