package dto

// CreateDocumentTypeRequest is the payload for registering a document type.
type CreateDocumentTypeRequest struct {
	Name   string `json:"name" validate:"required,min=3"`
	Active *bool  `json:"active"`
}

// UpdateDocumentTypeRequest carries partial document type changes.
type UpdateDocumentTypeRequest struct {
	Name   *string `json:"name" validate:"omitempty,min=3"`
	Active *bool   `json:"active"`
}
