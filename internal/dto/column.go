package dto

// CreateColumnRequest is the payload for registering a column.
type CreateColumnRequest struct {
	Name            string `json:"name" validate:"required,min=3"`
	DocumentTypesID int64  `json:"document_types_id" validate:"required"`
}

// UpdateColumnRequest carries partial column changes.
type UpdateColumnRequest struct {
	Name            *string `json:"name" validate:"omitempty,min=3"`
	DocumentTypesID *int64  `json:"document_types_id"`
}
