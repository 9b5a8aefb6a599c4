package models

import "time"

// Column is a named field definition scoped to one document type.
// Recoverably deleted, like its owning type.
type Column struct {
	ID              int64      `db:"id" json:"id"`
	Name            string     `db:"name" json:"name"`
	DocumentTypesID int64      `db:"document_types_id" json:"document_types_id"`
	CreatedAt       time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt       *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`

	DocumentType *DocumentType `db:"-" json:"document_type,omitempty"`
}
