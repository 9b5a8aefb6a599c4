package models

import "time"

// FieldValue links one column to one document and holds the stored content.
// Persisted in the column_document table; hard-deleted with its document.
type FieldValue struct {
	ID         int64     `db:"id" json:"id"`
	ColumnID   int64     `db:"column_id" json:"column_id"`
	DocumentID int64     `db:"document_id" json:"document_id"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}
