package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/fabricyo/doc-manager-api/internal/models"
)

// FieldChange is one ordered mutation of a document's field values. RelID > 0
// edits the content of an existing field value; otherwise ColumnID names the
// column a new field value is created for.
type FieldChange struct {
	RelID    int64
	ColumnID int64
	Content  string
}

// DocumentRepository manages persistence for documents and their composite
// writes. Documents are hard-deleted; deletes cascade to field values.
type DocumentRepository struct {
	db *sqlx.DB
}

// NewDocumentRepository constructs a DocumentRepository.
func NewDocumentRepository(db *sqlx.DB) *DocumentRepository {
	return &DocumentRepository{db: db}
}

// List returns all documents in insertion order.
func (r *DocumentRepository) List(ctx context.Context) ([]models.Document, error) {
	const query = `SELECT id, name, document_types_id, created_at, updated_at
FROM documents ORDER BY id ASC`
	var documents []models.Document
	if err := r.db.SelectContext(ctx, &documents, query); err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return documents, nil
}

// FindByID fetches a document by id.
func (r *DocumentRepository) FindByID(ctx context.Context, id int64) (*models.Document, error) {
	const query = `SELECT id, name, document_types_id, created_at, updated_at
FROM documents WHERE id = $1`
	var document models.Document
	if err := r.db.GetContext(ctx, &document, query, id); err != nil {
		return nil, err
	}
	return &document, nil
}

// ExistsByName checks if another document uses the same name.
func (r *DocumentRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := "SELECT 1 FROM documents WHERE LOWER(name) = LOWER($1)"
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
		return false, fmt.Errorf("check document name: %w", err)
	}
	return true, nil
}

// CreateWithFields inserts the document and one field value per change inside
// a single transaction. A failing insert rolls back everything, so a
// half-populated document is never visible.
func (r *DocumentRepository) CreateWithFields(ctx context.Context, document *models.Document, changes []FieldChange) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create document tx: %w", err)
	}

	now := time.Now().UTC()
	document.CreatedAt = now
	document.UpdatedAt = now

	const insertDocument = `INSERT INTO documents (name, document_types_id, created_at, updated_at)
VALUES ($1, $2, $3, $4) RETURNING id`
	if err := tx.QueryRowxContext(ctx, insertDocument, document.Name, document.DocumentTypesID, document.CreatedAt, document.UpdatedAt).Scan(&document.ID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("create document: %w", err)
	}

	const insertFieldValue = `INSERT INTO column_document (column_id, document_id, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	for _, change := range changes {
		if _, err := tx.ExecContext(ctx, insertFieldValue, change.ColumnID, document.ID, change.Content, now, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("create field value for column %d: %w", change.ColumnID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create document tx: %w", err)
	}
	return nil
}

// UpdateWithFields applies a rename plus field changes in input order within
// one transaction, then bumps the document's updated_at so it reflects the
// last touch even when only field values changed.
func (r *DocumentRepository) UpdateWithFields(ctx context.Context, document *models.Document, changes []FieldChange) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update document tx: %w", err)
	}

	now := time.Now().UTC()
	document.UpdatedAt = now

	const updateDocument = `UPDATE documents SET name = $2, updated_at = $3 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateDocument, document.ID, document.Name, document.UpdatedAt); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("update document: %w", err)
	}

	const updateFieldValue = `UPDATE column_document SET content = $2, updated_at = $3 WHERE id = $1`
	const insertFieldValue = `INSERT INTO column_document (column_id, document_id, content, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5)`
	for _, change := range changes {
		if change.RelID > 0 {
			if _, err := tx.ExecContext(ctx, updateFieldValue, change.RelID, change.Content, now); err != nil {
				_ = tx.Rollback()
				return fmt.Errorf("update field value %d: %w", change.RelID, err)
			}
			continue
		}
		if _, err := tx.ExecContext(ctx, insertFieldValue, change.ColumnID, document.ID, change.Content, now, now); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("create field value for column %d: %w", change.ColumnID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update document tx: %w", err)
	}
	return nil
}

// Delete removes the document and all its field values, permanently.
func (r *DocumentRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete document tx: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM column_document WHERE document_id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete field values of document %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("delete document %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete document tx: %w", err)
	}
	return nil
}
