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

type columnService interface {
	List(ctx context.Context) ([]models.Column, error)
	Get(ctx context.Context, id int64) (*models.Column, error)
	Create(ctx context.Context, req dto.CreateColumnRequest) (*models.Column, error)
	Update(ctx context.Context, id int64, req dto.UpdateColumnRequest) (*models.Column, error)
	Delete(ctx context.Context, id int64) error
}

// ColumnHandler exposes the column endpoints.
type ColumnHandler struct {
	service columnService
}

// NewColumnHandler builds a new handler.
func NewColumnHandler(service columnService) *ColumnHandler {
	return &ColumnHandler{service: service}
}

// List godoc
// @Summary List columns with their document type
// @Tags Columns
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /columns [get]
func (h *ColumnHandler) List(c *gin.Context) {
	columns, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, columns)
}

// Get godoc
// @Summary Get a column
// @Tags Columns
// @Produce json
// @Param id path int true "Column id"
// @Success 200 {object} response.Envelope
// @Router /columns/{id} [get]
func (h *ColumnHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	column, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, column)
}

// Create godoc
// @Summary Create a column under a document type
// @Tags Columns
// @Accept json
// @Produce json
// @Param payload body dto.CreateColumnRequest true "Column payload"
// @Success 201 {object} response.Envelope
// @Router /columns [post]
func (h *ColumnHandler) Create(c *gin.Context) {
	var req dto.CreateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid column payload"))
		return
	}
	column, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, column, "Column created successfully!!")
}

// Update godoc
// @Summary Update a column
// @Tags Columns
// @Accept json
// @Produce json
// @Param id path int true "Column id"
// @Param payload body dto.UpdateColumnRequest true "Partial column payload"
// @Success 200 {object} response.Envelope
// @Router /columns/{id} [put]
func (h *ColumnHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateColumnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid column payload"))
		return
	}
	column, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, column)
}

// Delete godoc
// @Summary Soft-delete a column
// @Tags Columns
// @Produce json
// @Param id path int true "Column id"
// @Success 200 {object} response.Envelope
// @Router /columns/{id} [delete]
func (h *ColumnHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Column deleted successfully!!")
}
