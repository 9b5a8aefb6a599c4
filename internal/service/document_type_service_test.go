package service

import (
	"context"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fabricyo/doc-manager-api/internal/dto"
	"github.com/fabricyo/doc-manager-api/internal/models"
	appErrors "github.com/fabricyo/doc-manager-api/pkg/errors"
)

func newDocumentTypeService(repo *mockDocumentTypeRepo, columns *mockColumnRepo) *DocumentTypeService {
	if columns == nil {
		columns = &mockColumnRepo{}
	}
	return NewDocumentTypeService(repo, columns, nil, zap.NewNop())
}

func TestDocumentTypeServiceCreateDefaultsActive(t *testing.T) {
	repo := &mockDocumentTypeRepo{}
	service := newDocumentTypeService(repo, nil)

	docType, err := service.Create(context.Background(), dto.CreateDocumentTypeRequest{Name: "Personal Info"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), docType.ID)
	assert.True(t, docType.Active)
}

func TestDocumentTypeServiceCreateHonoursActiveFalse(t *testing.T) {
	repo := &mockDocumentTypeRepo{}
	service := newDocumentTypeService(repo, nil)

	docType, err := service.Create(context.Background(), dto.CreateDocumentTypeRequest{Name: "Drafts", Active: boolPtr(false)})
	require.NoError(t, err)
	assert.False(t, docType.Active)
}

func TestDocumentTypeServiceCreateRejectsShortName(t *testing.T) {
	service := newDocumentTypeService(&mockDocumentTypeRepo{}, nil)

	_, err := service.Create(context.Background(), dto.CreateDocumentTypeRequest{Name: "ab"})
	require.Error(t, err)

	apiErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrValidation.Code, apiErr.Code)
	assert.NotEmpty(t, apiErr.Fields["name"])
}

func TestDocumentTypeServiceCreateRejectsDuplicateName(t *testing.T) {
	repo := &mockDocumentTypeRepo{items: map[int64]*models.DocumentType{
		1: {ID: 1, Name: "Personal Info", Active: true},
	}}
	service := newDocumentTypeService(repo, nil)

	_, err := service.Create(context.Background(), dto.CreateDocumentTypeRequest{Name: "Personal Info"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateName.Code, appErrors.FromError(err).Code)
}

func TestDocumentTypeServiceUpdatePartial(t *testing.T) {
	repo := &mockDocumentTypeRepo{items: map[int64]*models.DocumentType{
		1: {ID: 1, Name: "Personal Info", Active: true},
	}}
	service := newDocumentTypeService(repo, nil)

	docType, err := service.Update(context.Background(), 1, dto.UpdateDocumentTypeRequest{Active: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "Personal Info", docType.Name)
	assert.False(t, docType.Active)
}

func TestDocumentTypeServiceUpdateKeepsOwnName(t *testing.T) {
	repo := &mockDocumentTypeRepo{items: map[int64]*models.DocumentType{
		1: {ID: 1, Name: "Personal Info", Active: true},
	}}
	service := newDocumentTypeService(repo, nil)

	docType, err := service.Update(context.Background(), 1, dto.UpdateDocumentTypeRequest{Name: strPtr("Personal Info")})
	require.NoError(t, err)
	assert.Equal(t, "Personal Info", docType.Name)
}

func TestDocumentTypeServiceUpdateMissing(t *testing.T) {
	service := newDocumentTypeService(&mockDocumentTypeRepo{}, nil)

	_, err := service.Update(context.Background(), 9, dto.UpdateDocumentTypeRequest{Name: strPtr("Contracts")})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDocumentTypeServiceListEagerLoadsColumns(t *testing.T) {
	repo := &mockDocumentTypeRepo{items: map[int64]*models.DocumentType{
		1: {ID: 1, Name: "Personal Info", Active: true},
	}}
	columns := &mockColumnRepo{items: map[int64]*models.Column{
		1: {ID: 1, Name: "First name", DocumentTypesID: 1},
		2: {ID: 2, Name: "Last name", DocumentTypesID: 1},
	}}
	service := newDocumentTypeService(repo, columns)

	types, err := service.List(context.Background())
	require.NoError(t, err)
	require.Len(t, types, 1)
	require.Len(t, types[0].Columns, 2)
	assert.Equal(t, "First name", types[0].Columns[0].Name)
}

func TestDocumentTypeServiceDeleteHidesFromReads(t *testing.T) {
	repo := &mockDocumentTypeRepo{items: map[int64]*models.DocumentType{
		1: {ID: 1, Name: "Personal Info", Active: true},
	}}
	service := newDocumentTypeService(repo, nil)

	require.NoError(t, service.Delete(context.Background(), 1))

	_, err := service.Get(context.Background(), 1)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDocumentTypeServiceDeleteMissing(t *testing.T) {
	service := newDocumentTypeService(&mockDocumentTypeRepo{}, nil)

	err := service.Delete(context.Background(), 9)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestDocumentTypeServiceDeleteConflictOnDependents(t *testing.T) {
	repo := &mockDocumentTypeRepo{
		items:         map[int64]*models.DocumentType{1: {ID: 1, Name: "Personal Info", Active: true}},
		softDeleteErr: &pq.Error{Code: "23503"},
	}
	service := newDocumentTypeService(repo, nil)

	err := service.Delete(context.Background(), 1)
	require.Error(t, err)
	apiErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrConflict.Code, apiErr.Code)
	assert.Equal(t, "couldn't delete the document type", apiErr.Message)
}

func TestDocumentTypeServiceNameFreedAfterDelete(t *testing.T) {
	now := time.Now()
	repo := &mockDocumentTypeRepo{
		items:  map[int64]*models.DocumentType{1: {ID: 1, Name: "Personal Info", Active: true, DeletedAt: &now}},
		nextID: 1,
	}
	service := newDocumentTypeService(repo, nil)

	docType, err := service.Create(context.Background(), dto.CreateDocumentTypeRequest{Name: "Personal Info"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), docType.ID)
}
