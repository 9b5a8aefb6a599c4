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

type columnRepository interface {
	List(ctx context.Context) ([]models.Column, error)
	FindByID(ctx context.Context, id int64) (*models.Column, error)
	Create(ctx context.Context, column *models.Column) error
	Update(ctx context.Context, column *models.Column) error
	SoftDelete(ctx context.Context, id int64) error
}

type columnTypeFinder interface {
	FindByID(ctx context.Context, id int64) (*models.DocumentType, error)
}

// ColumnService is the schema-store entry point for columns.
type ColumnService struct {
	repo      columnRepository
	types     columnTypeFinder
	validator *validator.Validate
	logger    *zap.Logger
}

// NewColumnService constructs a ColumnService.
func NewColumnService(repo columnRepository, types columnTypeFinder, validate *validator.Validate, logger *zap.Logger) *ColumnService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ColumnService{repo: repo, types: types, validator: validate, logger: logger}
}

// List returns all live columns with their document type attached. Columns of
// a soft-deleted type keep a nil relation, matching the default read scope.
func (s *ColumnService) List(ctx context.Context) ([]models.Column, error) {
	columns, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list columns")
	}
	for i := range columns {
		docType, err := s.types.FindByID(ctx, columns[i].DocumentTypesID)
		if err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document type of column")
		}
		columns[i].DocumentType = docType
	}
	return columns, nil
}

// Get returns a live column by id.
func (s *ColumnService) Get(ctx context.Context, id int64) (*models.Column, error) {
	column, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "column not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load column")
	}
	return column, nil
}

// Create registers a new column under an existing document type.
func (s *ColumnService) Create(ctx context.Context, req dto.CreateColumnRequest) (*models.Column, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid column payload"), fieldErrors(err))
	}
	if _, err := s.types.FindByID(ctx, req.DocumentTypesID); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document type not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document type")
	}

	column := &models.Column{Name: req.Name, DocumentTypesID: req.DocumentTypesID}
	if err := s.repo.Create(ctx, column); err != nil {
		s.logger.Error("create column failed", zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create column")
	}
	return column, nil
}

// Update applies partial changes to a column. Moving it to another existing
// document type is allowed.
func (s *ColumnService) Update(ctx context.Context, id int64, req dto.UpdateColumnRequest) (*models.Column, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid column payload"), fieldErrors(err))
	}

	column, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "column not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load column")
	}

	if req.DocumentTypesID != nil {
		if _, err := s.types.FindByID(ctx, *req.DocumentTypesID); err != nil {
			if err == sql.ErrNoRows {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "document type not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document type")
		}
		column.DocumentTypesID = *req.DocumentTypesID
	}
	if req.Name != nil {
		column.Name = *req.Name
	}

	if err := s.repo.Update(ctx, column); err != nil {
		s.logger.Error("update column failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update column")
	}
	return column, nil
}

// Delete soft-deletes a column. Documents already referencing it keep their
// field values and stay projectable.
func (s *ColumnService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "column not found")
		}
		if isForeignKeyViolation(err) {
			s.logger.Error("delete column rejected", zap.Int64("id", id), zap.Error(err))
			return appErrors.Clone(appErrors.ErrConflict, "couldn't delete the column")
		}
		s.logger.Error("delete column failed", zap.Int64("id", id), zap.Error(err))
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete column")
	}
	return nil
}
