package models

import "time"

// DocumentType is a named schema grouping a set of columns.
// It is recoverably deleted: DeletedAt is set instead of removing the row.
type DocumentType struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Active    bool       `db:"active" json:"active"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at" json:"deleted_at,omitempty"`

	// Columns is populated by list endpoints, never persisted directly.
	Columns []Column `db:"-" json:"columns,omitempty"`
}
