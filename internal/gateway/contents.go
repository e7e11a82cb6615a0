package gateway

import (
	"context"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
	"minimalist-backend/internal/models"
)

const contentColumns = "id, user_id, title, content, content_type, created_at"

type ContentRepository struct {
	table
}

func NewContentRepository(db *sqlx.DB, logger *zap.Logger) *ContentRepository {
	return &ContentRepository{table: newTable(db, logger, models.KindGeneratedContent, "generated_contents")}
}

func (r *ContentRepository) Create(ctx context.Context, userID string, attrs models.ContentAttributes) (string, error) {
	if err := r.requireUser(userID); err != nil {
		return "", err
	}
	attrs = attrs.WithDefaults()
	if strings.TrimSpace(attrs.Content) == "" {
		return "", &ValidationError{Kind: r.kind, Field: "content", Reason: "is required"}
	}

	return r.insert(ctx, userID, `
		INSERT INTO generated_contents (user_id, title, content, content_type)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, userID, attrs.Title, attrs.Content, attrs.ContentType)
}

func (r *ContentRepository) ListByUser(ctx context.Context, userID string) ([]models.GeneratedContent, error) {
	return listByUser[models.GeneratedContent](ctx, r.table, userID, contentColumns)
}

func (r *ContentRepository) GetByID(ctx context.Context, id string) (*models.GeneratedContent, bool, error) {
	return getByID[models.GeneratedContent](ctx, r.table, id, contentColumns)
}

func (r *ContentRepository) DeleteByOwner(ctx context.Context, userID, id string) (bool, error) {
	return r.deleteByOwner(ctx, userID, id)
}
