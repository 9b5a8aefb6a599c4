package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fabricyo/doc-manager-api/internal/models"
)

// DocumentTypeRepository manages persistence for document types.
// Deletes are soft: rows keep a deleted_at timestamp and default reads skip them.
type DocumentTypeRepository struct {
	db *sqlx.DB
}

// NewDocumentTypeRepository constructs a DocumentTypeRepository.
func NewDocumentTypeRepository(db *sqlx.DB) *DocumentTypeRepository {
	return &DocumentTypeRepository{db: db}
}

// List returns non-deleted document types in insertion order.
func (r *DocumentTypeRepository) List(ctx context.Context) ([]models.DocumentType, error) {
	const query = `SELECT id, name, active, created_at, updated_at, deleted_at
FROM document_types WHERE deleted_at IS NULL ORDER BY id ASC`
	var types []models.DocumentType
	if err := r.db.SelectContext(ctx, &types, query); err != nil {
		return nil, fmt.Errorf("list document types: %w", err)
	}
	return types, nil
}

// FindByID fetches a non-deleted document type.
func (r *DocumentTypeRepository) FindByID(ctx context.Context, id int64) (*models.DocumentType, error) {
	const query = `SELECT id, name, active, created_at, updated_at, deleted_at
FROM document_types WHERE id = $1 AND deleted_at IS NULL`
	var docType models.DocumentType
	if err := r.db.GetContext(ctx, &docType, query, id); err != nil {
		return nil, err
	}
	return &docType, nil
}

// FindByIDIncludeDeleted fetches a document type even after soft deletion.
// Documents resolve their type through this so history stays readable.
func (r *DocumentTypeRepository) FindByIDIncludeDeleted(ctx context.Context, id int64) (*models.DocumentType, error) {
	const query = `SELECT id, name, active, created_at, updated_at, deleted_at
FROM document_types WHERE id = $1`
	var docType models.DocumentType
	if err := r.db.GetContext(ctx, &docType, query, id); err != nil {
		return nil, err
	}
	return &docType, nil
}

// ExistsByName checks if another live document type uses the same name.
func (r *DocumentTypeRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM document_types WHERE LOWER(name) = LOWER($1) AND deleted_at IS NULL"
	args := []interface{}{name}
	if excludeID > 0 {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check document type name: %w", err)
	}
	return true, nil
}

// Create inserts a new document type.
func (r *DocumentTypeRepository) Create(ctx context.Context, docType *models.DocumentType) error {
	now := time.Now().UTC()
	docType.CreatedAt = now
	docType.UpdatedAt = now

	const query = `INSERT INTO document_types (name, active, created_at, updated_at)
VALUES ($1, $2, $3, $4) RETURNING id`
	if err := r.db.QueryRowxContext(ctx, query, docType.Name, docType.Active, docType.CreatedAt, docType.UpdatedAt).Scan(&docType.ID); err != nil {
		return fmt.Errorf("create document type: %w", err)
	}
	return nil
}

// Update modifies an existing document type.
func (r *DocumentTypeRepository) Update(ctx context.Context, docType *models.DocumentType) error {
	docType.UpdatedAt = time.Now().UTC()
	const query = `UPDATE document_types SET name = :name, active = :active, updated_at = :updated_at
WHERE id = :id AND deleted_at IS NULL`
	if _, err := r.db.NamedExecContext(ctx, query, docType); err != nil {
		return fmt.Errorf("update document type: %w", err)
	}
	return nil
}

// SoftDelete stamps deleted_at on a live document type.
// Returns sql.ErrNoRows if no live row matched.
func (r *DocumentTypeRepository) SoftDelete(ctx context.Context, id int64) error {
	const query = `UPDATE document_types SET deleted_at = $2, updated_at = $2
WHERE id = $1 AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("soft delete document type: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete document type: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
