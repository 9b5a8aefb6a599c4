package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fabricyo/doc-manager-api/internal/dto"
	"github.com/fabricyo/doc-manager-api/internal/models"
	appErrors "github.com/fabricyo/doc-manager-api/pkg/errors"
	"github.com/fabricyo/doc-manager-api/pkg/export"
	"github.com/fabricyo/doc-manager-api/pkg/response"
)

type documentService interface {
	List(ctx context.Context) ([]models.Document, error)
	Get(ctx context.Context, id int64) (*models.Document, error)
	Create(ctx context.Context, req dto.CreateDocumentRequest) (*models.Document, error)
	Update(ctx context.Context, id int64, req dto.UpdateDocumentRequest) (*models.Document, error)
	Delete(ctx context.Context, id int64, relID *int64) error
}

// DocumentHandler exposes the document endpoints, including PDF/CSV download.
type DocumentHandler struct {
	service documentService
	pdf     *export.PDFExporter
	csv     *export.CSVExporter
}

// NewDocumentHandler builds a new handler.
func NewDocumentHandler(service documentService, pdf *export.PDFExporter, csv *export.CSVExporter) *DocumentHandler {
	return &DocumentHandler{service: service, pdf: pdf, csv: csv}
}

// List godoc
// @Summary List documents with their document type
// @Tags Documents
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /documents [get]
func (h *DocumentHandler) List(c *gin.Context) {
	documents, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, documents)
}

// Get godoc
// @Summary Get a document with its projected data
// @Description The rel_id of each data entry is what addresses that value on update and delete.
// @Tags Documents
// @Produce json
// @Param id path int true "Document id"
// @Success 200 {object} response.Envelope
// @Router /documents/{id} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	document, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, document)
}

// Create godoc
// @Summary Create a document with its field values
// @Tags Documents
// @Accept json
// @Produce json
// @Param payload body dto.CreateDocumentRequest true "Document payload"
// @Success 201 {object} response.Envelope
// @Router /documents [post]
func (h *DocumentHandler) Create(c *gin.Context) {
	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document payload"))
		return
	}
	document, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, document, "Document created successfully!!")
}

// Update godoc
// @Summary Update a document and/or its field values
// @Description Each column entry either edits an existing value (rel_id + content) or populates a new column (id + content).
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path int true "Document id"
// @Param payload body dto.UpdateDocumentRequest true "Partial document payload"
// @Success 200 {object} response.Envelope
// @Router /documents/{id} [put]
func (h *DocumentHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid document payload"))
		return
	}
	document, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, document)
}

// Delete godoc
// @Summary Delete a document, or one field value when rel_id is supplied
// @Description Documents are NOT soft-deleted. With rel_id only that field value is removed and the document stays.
// @Tags Documents
// @Accept json
// @Produce json
// @Param id path int true "Document id"
// @Param payload body dto.DeleteDocumentRequest false "Optional rel_id"
// @Success 200 {object} response.Envelope
// @Router /documents/{id} [delete]
func (h *DocumentHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	var req dto.DeleteDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid delete payload"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id, req.RelID); err != nil {
		response.Error(c, err)
		return
	}
	if req.RelID != nil {
		response.Message(c, "Column Document relationship deleted successfully!!")
		return
	}
	response.Message(c, "Document and columns deleted successfully!!")
}

// Download godoc
// @Summary Download a document with all its values
// @Description Renders the document as PDF by default; pass format=csv for CSV.
// @Tags Documents
// @Produce application/pdf
// @Param id path int true "Document id"
// @Param format query string false "Export format (pdf or csv)"
// @Success 200 {file} binary
// @Router /documents/{id}/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	document, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	sheet := export.DocumentSheet{
		Name:      document.Name,
		CreatedAt: document.CreatedAt,
		UpdatedAt: document.UpdatedAt,
	}
	if document.DocumentType != nil {
		sheet.TypeName = document.DocumentType.Name
	}
	for _, row := range document.Data {
		sheet.Fields = append(sheet.Fields, export.FieldLine{Name: row.Name, Content: row.Content, RelID: row.RelID})
	}

	if c.Query("format") == "csv" {
		payload, err := h.csv.Render(sheet)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.Name+".csv"))
		c.Data(http.StatusOK, "text/csv", payload)
		return
	}

	payload, err := h.pdf.Render(sheet)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", document.Name+".pdf"))
	c.Data(http.StatusOK, "application/pdf", payload)
}
