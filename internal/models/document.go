package models

import "time"

// Document is an instance of a document type populated with field values.
// Documents are hard-deleted, never soft-deleted.
type Document struct {
	ID              int64     `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	DocumentTypesID int64     `db:"document_types_id" json:"document_types_id"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`

	// Data is the ordered projection of the document's field values.
	// DocumentType resolves through an include-deleted lookup so historical
	// documents of a removed type stay readable.
	Data         []ProjectionRow `db:"-" json:"data,omitempty"`
	DocumentType *DocumentType   `db:"-" json:"document_type,omitempty"`
}

// ProjectionRow is one projected field: the column name, the stored content
// and the field-value id callers use to address it on update/delete.
type ProjectionRow struct {
	Name    string `db:"name" json:"name"`
	Content string `db:"content" json:"content"`
	RelID   int64  `db:"rel_id" json:"rel_id"`
}
