// Package gateway is the persistence layer for generated images, background
// removals and generated content.
//
// Every method trusts the userID it is given: callers must have
// authenticated the user before reaching this package. Reads and deletes
// exposed to users are always filtered by both record id and owner.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrInvalidRecord is wrapped by every ValidationError.
var ErrInvalidRecord = errors.New("invalid record")

// StorageError is returned for any failure at the store boundary. It is never
// retried here.
type StorageError struct {
	Kind     string
	Op       string
	UserID   string
	RecordID string
	Err      error
}

func (e *StorageError) Error() string {
	msg := fmt.Sprintf("%s %s failed", e.Kind, e.Op)
	if e.UserID != "" {
		msg += fmt.Sprintf(" for user %q", e.UserID)
	}
	if e.RecordID != "" {
		msg += fmt.Sprintf(" (record %q)", e.RecordID)
	}
	return msg + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError rejects a record before it reaches the store.
type ValidationError struct {
	Kind   string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s %s", e.Kind, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidRecord
}

// Gateway groups the repositories that share one database handle.
type Gateway struct {
	Images      *ImageRepository
	Backgrounds *BackgroundRepository
	Contents    *ContentRepository
}

func New(db *sqlx.DB, logger *zap.Logger) *Gateway {
	return &Gateway{
		Images:      NewImageRepository(db, logger),
		Backgrounds: NewBackgroundRepository(db, logger),
		Contents:    NewContentRepository(db, logger),
	}
}

// table holds what the three repositories have in common.
type table struct {
	db     *sqlx.DB
	logger *zap.Logger
	kind   string
	name   string
}

func newTable(db *sqlx.DB, logger *zap.Logger, kind, name string) table {
	if logger == nil {
		logger = zap.NewNop()
	}
	return table{
		db:     db,
		logger: logger.Named("gateway").With(zap.String("kind", kind)),
		kind:   kind,
		name:   name,
	}
}

func (t table) storageError(op, userID, recordID string, err error) error {
	t.logger.Error("Store operation failed",
		zap.String("op", op),
		zap.String("user_id", userID),
		zap.String("record_id", recordID),
		zap.Error(err),
	)
	return &StorageError{Kind: t.kind, Op: op, UserID: userID, RecordID: recordID, Err: err}
}

func (t table) requireUser(userID string) error {
	if userID == "" {
		return &ValidationError{Kind: t.kind, Field: "user id", Reason: "is required"}
	}
	return nil
}

func (t table) insert(ctx context.Context, userID, query string, args ...interface{}) (string, error) {
	var id string
	if err := t.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
		return "", t.storageError("create", userID, "", err)
	}
	t.logger.Debug("Record created", zap.String("user_id", userID), zap.String("record_id", id))
	return id, nil
}

func listByUser[T any](ctx context.Context, t table, userID, columns string) ([]T, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, columns, t.name)

	records := []T{}
	if err := t.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, t.storageError("list", userID, "", err)
	}
	t.logger.Debug("Records listed", zap.String("user_id", userID), zap.Int("count", len(records)))
	return records, nil
}

func getByID[T any](ctx context.Context, t table, id, columns string) (*T, bool, error) {
	// Ids are uuids; anything else cannot match a row.
	if _, err := uuid.Parse(id); err != nil {
		return nil, false, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE id = $1`, columns, t.name)

	var record T
	if err := t.db.GetContext(ctx, &record, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, t.storageError("get", "", id, err)
	}
	return &record, true, nil
}

func (t table) deleteByOwner(ctx context.Context, userID, id string) (bool, error) {
	if _, err := uuid.Parse(id); err != nil {
		return false, nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 AND user_id = $2`, t.name)
	result, err := t.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return false, t.storageError("delete", userID, id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, t.storageError("delete", userID, id, err)
	}

	t.logger.Debug("Delete by owner",
		zap.String("user_id", userID),
		zap.String("record_id", id),
		zap.Bool("deleted", affected > 0),
	)
	return affected > 0, nil
}
