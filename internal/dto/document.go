package dto

// FieldEntry is one element of the polymorphic "column" list. On create only
// ID and Content are meaningful. On update the entry is either an edit of an
// existing field value (RelID + Content) or the population of a new column
// (ID + Content); anything else is malformed.
type FieldEntry struct {
	ID      *int64  `json:"id"`
	RelID   *int64  `json:"rel_id"`
	Content *string `json:"content"`
}

// CreateDocumentRequest is the payload for composing a new document.
type CreateDocumentRequest struct {
	Name            string       `json:"name"`
	DocumentTypesID int64        `json:"document_types_id"`
	Column          []FieldEntry `json:"column"`
}

// UpdateDocumentRequest carries a rename and/or field value changes.
type UpdateDocumentRequest struct {
	Name   *string      `json:"name" validate:"omitempty,min=3"`
	Column []FieldEntry `json:"column"`
}

// DeleteDocumentRequest optionally narrows a delete to one field value.
type DeleteDocumentRequest struct {
	RelID *int64 `json:"rel_id"`
}
