package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fabricyo/doc-manager-api/internal/models"
)

// ColumnRepository manages persistence for columns. Soft-deleted like
// document types.
type ColumnRepository struct {
	db *sqlx.DB
}

// NewColumnRepository constructs a ColumnRepository.
func NewColumnRepository(db *sqlx.DB) *ColumnRepository {
	return &ColumnRepository{db: db}
}

// List returns non-deleted columns in insertion order.
func (r *ColumnRepository) List(ctx context.Context) ([]models.Column, error) {
	const query = `SELECT id, name, document_types_id, created_at, updated_at, deleted_at
FROM columns WHERE deleted_at IS NULL ORDER BY id ASC`
	var columns []models.Column
	if err := r.db.SelectContext(ctx, &columns, query); err != nil {
		return nil, fmt.Errorf("list columns: %w", err)
	}
	return columns, nil
}

// ListByDocumentType returns the live columns belonging to one document type.
func (r *ColumnRepository) ListByDocumentType(ctx context.Context, documentTypeID int64) ([]models.Column, error) {
	const query = `SELECT id, name, document_types_id, created_at, updated_at, deleted_at
FROM columns WHERE document_types_id = $1 AND deleted_at IS NULL ORDER BY id ASC`
	var columns []models.Column
	if err := r.db.SelectContext(ctx, &columns, query, documentTypeID); err != nil {
		return nil, fmt.Errorf("list columns by document type: %w", err)
	}
	return columns, nil
}

// FindByID fetches a non-deleted column.
func (r *ColumnRepository) FindByID(ctx context.Context, id int64) (*models.Column, error) {
	const query = `SELECT id, name, document_types_id, created_at, updated_at, deleted_at
FROM columns WHERE id = $1 AND deleted_at IS NULL`
	var column models.Column
	if err := r.db.GetContext(ctx, &column, query, id); err != nil {
		return nil, err
	}
	return &column, nil
}

// Create inserts a new column.
func (r *ColumnRepository) Create(ctx context.Context, column *models.Column) error {
	now := time.Now().UTC()
	column.CreatedAt = now
	column.UpdatedAt = now

	const query = `INSERT INTO columns (name, document_types_id, created_at, updated_at)
VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, column.Name, column.DocumentTypesID, column.CreatedAt, column.UpdatedAt).Scan(&column.ID); err != nil {
		return fmt.Errorf("create column: %w", err)
	}
	return nil
}

// Update modifies an existing column.
func (r *ColumnRepository) Update(ctx context.Context, column *models.Column) error {
	column.UpdatedAt = time.Now().UTC()
	const query = `UPDATE columns SET name = :name, document_types_id = :document_types_id, updated_at = :updated_at
WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, column); err != nil {
		return fmt.Errorf("update column: %w", err)
	}
	return nil
}

// SoftDelete stamps deleted_at on a live column.
// Returns sql.ErrNoRows if no live row matched.
func (r *ColumnRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `UPDATE columns SET deleted_at = $2, updated_at = $2
WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete column: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete column: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
