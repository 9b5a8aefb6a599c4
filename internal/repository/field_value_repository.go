package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/fabricyo/doc-manager-api/internal/models"
)

// FieldValueRepository reads and deletes individual field values and builds
// the ordered projection of a document.
type FieldValueRepository struct {
	db *sqlx.DB
}

// NewFieldValueRepository constructs a FieldValueRepository.
func NewFieldValueRepository(db *sqlx.DB) *FieldValueRepository {
	return &FieldValueRepository{db: db}
}

// Project joins field values to their columns for one document, ordered by
// column id ascending. The join deliberately skips the columns soft-delete
// filter: a document keeps projecting fields of removed columns.
func (r *FieldValueRepository) Project(ctx context.Context, documentID int64) ([]models.ProjectionRow, error) {
	const query = `SELECT columns.name AS name, column_document.content AS content, column_document.id AS rel_id
FROM column_document
JOIN columns ON column_document.column_id = columns.id
WHERE column_document.document_id = $1
ORDER BY columns.id ASC`
	var rows []models.ProjectionRow
	if err := r.db.SelectContext(ctx, &rows, query, documentID); err != nil {
		return nil, fmt.Errorf("project document %d: %w", documentID, err)
	}
	return rows, nil
}

// FindOwned fetches a field value only when it belongs to the given document.
func (r *FieldValueRepository) FindOwned(ctx context.Context, id, documentID int64) (*models.FieldValue, error) {
	const query = `SELECT id, column_id, document_id, content, created_at, updated_at
FROM column_document WHERE id = $1 AND document_id = $2`
	var value models.FieldValue
	if err := r.db.GetContext(ctx, &value, query, id, documentID); err != nil {
		return nil, err
	}
	return &value, nil
}

// ExistsForColumn reports whether the document already populates the column.
func (r *FieldValueRepository) ExistsForColumn(ctx context.Context, documentID, columnID int64) (bool, error) {
	const query = `SELECT 1 FROM column_document WHERE document_id = $1 AND column_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, documentID, columnID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check field value for column %d: %w", columnID, err)
	}
	return true, nil
}

// DeleteOwned removes one field value, verifying it belongs to the document.
// Returns sql.ErrNoRows when no such binding exists.
func (r *FieldValueRepository) DeleteOwned(ctx context.Context, id, documentID int64) error {
	const query = `DELETE FROM column_document WHERE id = $1 AND document_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, documentID)
	if err != nil {
		return fmt.Errorf("delete field value %d: %w", id, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete field value %d: %w", id, err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
