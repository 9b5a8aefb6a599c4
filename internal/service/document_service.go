package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fabricyo/doc-manager-api/internal/dto"
	"github.com/fabricyo/doc-manager-api/internal/models"
	"github.com/fabricyo/doc-manager-api/internal/repository"
	appErrors "github.com/fabricyo/doc-manager-api/pkg/errors"
)

type documentRepository interface {
	List(ctx context.Context) ([]models.Document, error)
	FindByID(ctx context.Context, id int64) (*models.Document, error)
	ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error)
	CreateWithFields(ctx context.Context, document *models.Document, changes []repository.FieldChange) error
	UpdateWithFields(ctx context.Context, document *models.Document, changes []repository.FieldChange) error
	Delete(ctx context.Context, id int64) error
}

type fieldValueRepository interface {
	Project(ctx context.Context, documentID int64) ([]models.ProjectionRow, error)
	FindOwned(ctx context.Context, id, documentID int64) (*models.FieldValue, error)
	ExistsForColumn(ctx context.Context, documentID, columnID int64) (bool, error)
	DeleteOwned(ctx context.Context, id, documentID int64) error
}

type documentTypeFinder interface {
	FindByID(ctx context.Context, id int64) (*models.DocumentType, error)
	FindByIDIncludeDeleted(ctx context.Context, id int64) (*models.DocumentType, error)
}

type columnChecker interface {
	Check(ctx context.Context, columnID, expectedTypeID int64) error
}

type projectionCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// DocumentService composes documents and their field values: transactional
// create, multiplexed partial update, targeted or cascading delete, and the
// ordered projection used by reads and exports.
type DocumentService struct {
	documents   documentRepository
	fieldValues fieldValueRepository
	types       documentTypeFinder
	rule        columnChecker
	cache       projectionCache
	cacheTTL    time.Duration
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewDocumentService constructs a DocumentService. cache and metrics may be
// nil, in which case projections always hit the database.
func NewDocumentService(documents documentRepository, fieldValues fieldValueRepository, types documentTypeFinder, rule columnChecker, cache projectionCache, cacheTTL time.Duration, metrics *MetricsService, logger *zap.Logger) *DocumentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentService{
		documents:   documents,
		fieldValues: fieldValues,
		types:       types,
		rule:        rule,
		cache:       cache,
		cacheTTL:    cacheTTL,
		metrics:     metrics,
		logger:      logger,
	}
}

// List returns all documents with their type attached (soft-deleted types
// included, so historical documents stay readable).
func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	documents, err := s.documents.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list documents")
	}
	for i := range documents {
		if err := s.attachType(ctx, &documents[i]); err != nil {
			return nil, err
		}
	}
	return documents, nil
}

// Get returns one document with its type and projection attached.
func (s *DocumentService) Get(ctx context.Context, id int64) (*models.Document, error) {
	document, err := s.documents.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}
	if err := s.attachType(ctx, document); err != nil {
		return nil, err
	}
	data, err := s.projection(ctx, id)
	if err != nil {
		return nil, err
	}
	document.Data = data
	return document, nil
}

// Project returns the ordered name/content/rel_id rows of a document.
func (s *DocumentService) Project(ctx context.Context, id int64) ([]models.ProjectionRow, error) {
	if _, err := s.documents.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}
	return s.projection(ctx, id)
}

// Create validates the whole payload field by field, then persists the
// document and its field values as one transaction.
func (s *DocumentService) Create(ctx context.Context, req dto.CreateDocumentRequest) (*models.Document, error) {
	fields := map[string][]string{}

	name := strings.TrimSpace(req.Name)
	switch {
	case name == "":
		fields["name"] = append(fields["name"], "name is required")
	case len(name) < 3:
		fields["name"] = append(fields["name"], "name must be at least 3 characters")
	default:
		exists, err := s.documents.ExistsByName(ctx, name, 0)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check document name")
		}
		if exists {
			fields["name"] = append(fields["name"], "name already in use")
		}
	}

	if req.DocumentTypesID <= 0 {
		fields["document_types_id"] = append(fields["document_types_id"], "document_types_id is required")
	} else if _, err := s.types.FindByID(ctx, req.DocumentTypesID); err != nil {
		if err == sql.ErrNoRows {
			fields["document_types_id"] = append(fields["document_types_id"], fmt.Sprintf("document type %d does not exist", req.DocumentTypesID))
		} else {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document type")
		}
	}

	if len(req.Column) == 0 {
		fields["column"] = append(fields["column"], "column is required")
	}
	seen := make(map[int64]struct{}, len(req.Column))
	for i, entry := range req.Column {
		idKey := fmt.Sprintf("column.%d.id", i)
		contentKey := fmt.Sprintf("column.%d.content", i)
		if entry.ID == nil {
			fields[idKey] = append(fields[idKey], "id is required")
		} else {
			if _, dup := seen[*entry.ID]; dup {
				fields[idKey] = append(fields[idKey], fmt.Sprintf("column %d is duplicated in the request", *entry.ID))
			}
			seen[*entry.ID] = struct{}{}
		}
		if entry.Content == nil || *entry.Content == "" {
			fields[contentKey] = append(fields[contentKey], "content is required")
		} else if len(*entry.Content) < 3 {
			fields[contentKey] = append(fields[contentKey], "content must be at least 3 characters")
		}
	}

	if len(fields) > 0 {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid document payload"), fields)
	}

	for _, entry := range req.Column {
		if err := s.rule.Check(ctx, *entry.ID, req.DocumentTypesID); err != nil {
			return nil, err
		}
	}

	changes := make([]repository.FieldChange, len(req.Column))
	for i, entry := range req.Column {
		changes[i] = repository.FieldChange{ColumnID: *entry.ID, Content: *entry.Content}
	}

	document := &models.Document{Name: name, DocumentTypesID: req.DocumentTypesID}
	if err := s.documents.CreateWithFields(ctx, document, changes); err != nil {
		s.logger.Error("create document failed", zap.String("name", name), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "couldn't create the document")
	}
	return document, nil
}

// Update applies a rename and/or field value changes. Each entry either edits
// an existing field value (rel_id + content) or populates a new column
// (id + content). Entries that fit neither shape are ignored rather than
// failing the request, while well-shaped entries are validated strictly.
func (s *DocumentService) Update(ctx context.Context, id int64, req dto.UpdateDocumentRequest) (*models.Document, error) {
	document, err := s.documents.FindByID(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}

	fields := map[string][]string{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if len(name) < 3 {
			fields["name"] = append(fields["name"], "name must be at least 3 characters")
		} else {
			exists, err := s.documents.ExistsByName(ctx, name, id)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check document name")
			}
			if exists {
				fields["name"] = append(fields["name"], "name already in use")
			} else {
				document.Name = name
			}
		}
	}

	var changes []repository.FieldChange
	addSeen := make(map[int64]struct{})
	for i, entry := range req.Column {
		idKey := fmt.Sprintf("column.%d.id", i)
		relKey := fmt.Sprintf("column.%d.rel_id", i)
		contentKey := fmt.Sprintf("column.%d.content", i)

		switch {
		case entry.RelID != nil && entry.Content != nil:
			if len(*entry.Content) < 3 {
				fields[contentKey] = append(fields[contentKey], "content must be at least 3 characters")
				continue
			}
			if _, err := s.fieldValues.FindOwned(ctx, *entry.RelID, id); err != nil {
				if err == sql.ErrNoRows {
					fields[relKey] = append(fields[relKey], fmt.Sprintf("rel_id %d does not reference a field value of this document", *entry.RelID))
					continue
				}
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load field value")
			}
			changes = append(changes, repository.FieldChange{RelID: *entry.RelID, Content: *entry.Content})

		case entry.ID != nil && entry.Content != nil:
			if len(*entry.Content) < 3 {
				fields[contentKey] = append(fields[contentKey], "content must be at least 3 characters")
				continue
			}
			if _, dup := addSeen[*entry.ID]; dup {
				fields[idKey] = append(fields[idKey], fmt.Sprintf("column %d is duplicated in the request", *entry.ID))
				continue
			}
			addSeen[*entry.ID] = struct{}{}
			if err := s.rule.Check(ctx, *entry.ID, document.DocumentTypesID); err != nil {
				return nil, err
			}
			populated, err := s.fieldValues.ExistsForColumn(ctx, id, *entry.ID)
			if err != nil {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check column population")
			}
			if populated {
				fields[idKey] = append(fields[idKey], fmt.Sprintf("column %d is already populated on this document", *entry.ID))
				continue
			}
			changes = append(changes, repository.FieldChange{ColumnID: *entry.ID, Content: *entry.Content})

		default:
			// Entry fits neither the edit nor the add shape: ignored on
			// purpose, the remaining entries still apply.
			continue
		}
	}

	if len(fields) > 0 {
		return nil, appErrors.WithFields(appErrors.Clone(appErrors.ErrValidation, "invalid document payload"), fields)
	}

	if err := s.documents.UpdateWithFields(ctx, document, changes); err != nil {
		s.logger.Error("update document failed", zap.Int64("id", id), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, "couldn't update the document")
	}
	s.invalidateProjection(ctx, id)

	if err := s.attachType(ctx, document); err != nil {
		return nil, err
	}
	data, err := s.projection(ctx, id)
	if err != nil {
		return nil, err
	}
	document.Data = data
	return document, nil
}

// Delete removes one field value when relID is given, otherwise the whole
// document and all its field values. Both are permanent.
func (s *DocumentService) Delete(ctx context.Context, id int64, relID *int64) error {
	if _, err := s.documents.FindByID(ctx, id); err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, "document not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document")
	}

	if relID != nil {
		if err := s.fieldValues.DeleteOwned(ctx, *relID, id); err != nil {
			if err == sql.ErrNoRows {
				return appErrors.Clone(appErrors.ErrNotFound, "field value not found for this document")
			}
			s.logger.Error("delete field value failed", zap.Int64("document_id", id), zap.Int64("rel_id", *relID), zap.Error(err))
			return appErrors.Clone(appErrors.ErrConflict, "couldn't delete the field value")
		}
		s.invalidateProjection(ctx, id)
		return nil
	}

	if err := s.documents.Delete(ctx, id); err != nil {
		s.logger.Error("delete document failed", zap.Int64("id", id), zap.Error(err))
		return appErrors.Clone(appErrors.ErrConflict, "couldn't delete the document")
	}
	s.invalidateProjection(ctx, id)
	return nil
}

func (s *DocumentService) attachType(ctx context.Context, document *models.Document) error {
	docType, err := s.types.FindByIDIncludeDeleted(ctx, document.DocumentTypesID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load document type of document")
	}
	document.DocumentType = docType
	return nil
}

func (s *DocumentService) projection(ctx context.Context, id int64) ([]models.ProjectionRow, error) {
	key := projectionCacheKey(id)
	if s.cache != nil {
		var rows []models.ProjectionRow
		err := s.cache.Get(ctx, key, &rows)
		if err == nil {
			s.metrics.ObserveCacheHit()
			return rows, nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("projection cache read failed", zap.Int64("document_id", id), zap.Error(err))
		}
		s.metrics.ObserveCacheMiss()
	}

	rows, err := s.fieldValues.Project(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to project document")
	}
	if rows == nil {
		rows = []models.ProjectionRow{}
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rows, s.cacheTTL); err != nil {
			s.logger.Warn("projection cache write failed", zap.Int64("document_id", id), zap.Error(err))
		}
	}
	return rows, nil
}

func (s *DocumentService) invalidateProjection(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, projectionCacheKey(id)); err != nil {
		s.logger.Warn("projection cache invalidation failed", zap.Int64("document_id", id), zap.Error(err))
	}
}

func projectionCacheKey(id int64) string {
	return fmt.Sprintf("document:%d:projection", id)
}
