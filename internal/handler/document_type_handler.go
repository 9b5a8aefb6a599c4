package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabricyo/doc-manager-api/internal/dto"
	"github.com/fabricyo/doc-manager-api/internal/models"
	appErrors "github.com/fabricyo/doc-manager-api/pkg/errors"
	"github.com/fabricyo/doc-manager-api/pkg/response"
)

type documentTypeService interface {
	List(ctx context.Context) ([]models.DocumentType, error)
	Get(ctx context.Context, id int64) (*models.DocumentType, error)
	Create(ctx context.Context, req dto.CreateDocumentTypeRequest) (*models.DocumentType, error)
	Update(ctx context.Context, id int64, req dto.UpdateDocumentTypeRequest) (*models.DocumentType, error)
	Delete(ctx context.Context, id int64) error
}

// DocumentTypeHandler exposes the document type endpoints.
type DocumentTypeHandler struct {
	service documentTypeService
}

// NewDocumentTypeHandler builds a new handler.
func NewDocumentTypeHandler(service documentTypeService) *DocumentTypeHandler {
	return &DocumentTypeHandler{service: service}
}

// List godoc
// @Summary List document types with their columns
// @Tags Document Types
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /doctypes [get]
func (h *DocumentTypeHandler) List(c *gin.Context) {
	types, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, types)
}

// Get godoc
// @Summary Get a document type
// @Tags Document Types
// @Produce json
// @Param id path int true "Document type id"
// @Success 200 {object} response.Envelope
// @Router /doctypes/{id} [get]
func (h *DocumentTypeHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	docType, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docType)
}

// Create godoc
// @Summary Create a document type
// @Tags Document Types
// @Accept json
// @Produce json
// @Param payload body dto.CreateDocumentTypeRequest true "Document type payload"
// @Success 201 {object} response.Envelope
// @Router /doctypes [post]
func (h *DocumentTypeHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document type payload"))
		return
	}
	docType, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, docType, "Document type created successfully!!")
}

// Update godoc
// @Summary Update a document type
// @Tags Document Types
// @Accept json
// @Produce json
// @Param id path int true "Document type id"
// @Param payload body dto.UpdateDocumentTypeRequest true "Partial document type payload"
// @Success 200 {object} response.Envelope
// @Router /doctypes/{id} [put]
func (h *DocumentTypeHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateDocumentTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document type payload"))
		return
	}
	docType, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, docType)
}

// Delete godoc
// @Summary Soft-delete a document type
// @Tags Document Types
// @Produce json
// @Param id path int true "Document type id"
// @Success 200 {object} response.Envelope
// @Router /doctypes/{id} [delete]
func (h *DocumentTypeHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Document type deleted successfully!!")
}
