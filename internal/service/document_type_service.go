package service

import (
	"context"
	"database/sql"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/fabricyo/doc-manager-api/internal/dto"
	"github.com/fabricyo/doc-manager-api/internal/models"
	appErrors "github.com/fabricyo/doc-manager-api/pkg/errors"
)

type documentTypeRepository interface {
	List(ctx context.Context) ([]models.DocumentType, error)
	FindByID(ctx context.Context, id int64) (*models.DocumentType, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	Create(ctx context.Context, docType *models.DocumentType) error
	Update(ctx context.Context, docType *models.DocumentType) error
	SoftDelete(ctx context.Context, id int64) error
}

type typeColumnLister interface {
	ListByDocumentType(ctx context.Context, documentTypeID int64) ([]models.Column, error)
}

// DocumentTypeService is the schema-store entry point for document types.
type DocumentTypeService struct {
	repo      documentTypeRepository
	columns   typeColumnLister
	validator *validator.Validate
	logger    *zap.Logger
}

// NewDocumentTypeService constructs a DocumentTypeService.
func NewDocumentTypeService(repo documentTypeRepository, columns typeColumnLister, validate *validator.Validate, logger *zap.Logger) *DocumentTypeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentTypeService{repo: repo, columns: columns, validator: validate, logger: logger}
}

// List returns all live document types with their columns eager-loaded.
func (s *DocumentTypeService) List(ctx context.Context) ([]models.DocumentType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list document types")
	}
	for i := range types {
		columns, err := s.columns.ListByDocumentType(ctx, types[i].ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load columns of document type")
		}
		types[i].Columns = columns
	}
	return types, nil
}

// Get returns a live document type by id.
func (s *DocumentTypeService) Get(ctx context.Context, id int64) (*models.DocumentType, error) {
	docType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document type")
	}
	return docType, nil
}

// Create registers a new document type. Active defaults to true.
func (s *DocumentTypeService) Create(ctx context.Context, req dto.CreateDocumentTypeRequest) (*models.DocumentType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid document type payload"), fieldErrors(err))
	}
	exists, err := s.repo.ExistsByName(ctx, req.Name, 0)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check document type name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrDuplicateName, "document type name already in use")
	}

	docType := &models.DocumentType{Name: req.Name, Active: true}
	if req.Active != nil {
		docType.Active = *req.Active
	}
	if err := s.repo.Create(ctx, docType); err != nil {
		s.logger.Error("create document type failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create document type")
	}
	return docType, nil
}

// Update applies partial changes: only supplied fields change, and the
// uniqueness check excludes the record itself.
func (s *DocumentTypeService) Update(ctx context.Context, id int64, req dto.UpdateDocumentTypeRequest) (*models.DocumentType, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid document type payload"), fieldErrors(err))
	}

	docType, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document type")
	}

	if req.Name != nil {
		exists, err := s.repo.ExistsByName(ctx, *req.Name, id)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check document type name")
		}
		if exists {
			return nil, appErrors.Clone(appErrors.ErrDuplicateName, "document type name already in use")
		}
		docType.Name = *req.Name
	}
	if req.Active != nil {
		docType.Active = *req.Active
	}

	if err := s.repo.Update(ctx, docType); err != nil {
		s.logger.Error("update document type failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update document type")
	}
	return docType, nil
}

// Delete soft-deletes a document type.
func (s *DocumentTypeService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "document type not found")
		}
		if isForeignKeyViolation(err) {
			s.logger.Error("delete document type rejected", zap.Int64("id", id), zap.Error(err))
			return appErrors.Clone(appErrors.ErrConflict, "couldn't delete the document type")
		}
		s.logger.Error("delete document type failed", zap.Int64("id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete document type")
	}
	return nil
}
