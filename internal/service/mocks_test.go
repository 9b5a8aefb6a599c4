package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"sort"
	"time"

	"github.com/fabricyo/doc-manager-api/internal/models"
	"github.com/fabricyo/doc-manager-api/internal/repository"
	appErrors "github.com/fabricyo/doc-manager-api/pkg/errors"
)

type mockDocumentTypeRepo struct {
	items         map[int64]*models.DocumentType
	nextID        int64
	softDeleteErr error
}

func (m *mockDocumentTypeRepo) List(ctx context.Context) ([]models.DocumentType, error) {
	ids := make([]int64, 0, len(m.items))
	for id, item := range m.items {
		if item.DeletedAt == nil {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]models.DocumentType, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.items[id])
	}
	return result, nil
}

func (m *mockDocumentTypeRepo) FindByID(ctx context.Context, id int64) (*models.DocumentType, error) {
	if item, ok := m.items[id]; ok && item.DeletedAt == nil {
		cp := *item
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDocumentTypeRepo) FindByIDIncludeDeleted(ctx context.Context, id int64) (*models.DocumentType, error) {
	if item, ok := m.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDocumentTypeRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	for id, item := range m.items {
		if item.DeletedAt == nil && item.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockDocumentTypeRepo) Create(ctx context.Context, docType *models.DocumentType) error {
	if m.items == nil {
		m.items = make(map[int64]*models.DocumentType)
	}
	m.nextID++
	docType.ID = m.nextID
	now := time.Now()
	docType.CreatedAt = now
	docType.UpdatedAt = now
	cp := *docType
	m.items[docType.ID] = &cp
	return nil
}

func (m *mockDocumentTypeRepo) Update(ctx context.Context, docType *models.DocumentType) error {
	cp := *docType
	m.items[docType.ID] = &cp
	return nil
}

func (m *mockDocumentTypeRepo) SoftDelete(ctx context.Context, id int64) error {
	if m.softDeleteErr != nil {
		return m.softDeleteErr
	}
	item, ok := m.items[id]
	if !ok || item.DeletedAt != nil {
		return sql.ErrNoRows
	}
	now := time.Now()
	item.DeletedAt = &now
	return nil
}

type mockColumnRepo struct {
	items         map[int64]*models.Column
	nextID        int64
	softDeleteErr error
}

func (m *mockColumnRepo) List(ctx context.Context) ([]models.Column, error) {
	return m.listWhere(func(c *models.Column) bool { return c.DeletedAt == nil }), nil
}

func (m *mockColumnRepo) ListByDocumentType(ctx context.Context, documentTypeID int64) ([]models.Column, error) {
	return m.listWhere(func(c *models.Column) bool {
		return c.DeletedAt == nil && c.DocumentTypesID == documentTypeID
	}), nil
}

func (m *mockColumnRepo) listWhere(keep func(*models.Column) bool) []models.Column {
	ids := make([]int64, 0, len(m.items))
	for id, item := range m.items {
		if keep(item) {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]models.Column, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.items[id])
	}
	return result
}

func (m *mockColumnRepo) FindByID(ctx context.Context, id int64) (*models.Column, error) {
	if item, ok := m.items[id]; ok && item.DeletedAt == nil {
		cp := *item
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockColumnRepo) Create(ctx context.Context, column *models.Column) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Column)
	}
	m.nextID++
	column.ID = m.nextID
	now := time.Now()
	column.CreatedAt = now
	column.UpdatedAt = now
	cp := *column
	m.items[column.ID] = &cp
	return nil
}

func (m *mockColumnRepo) Update(ctx context.Context, column *models.Column) error {
	cp := *column
	m.items[column.ID] = &cp
	return nil
}

func (m *mockColumnRepo) SoftDelete(ctx context.Context, id int64) error {
	if m.softDeleteErr != nil {
		return m.softDeleteErr
	}
	item, ok := m.items[id]
	if !ok || item.DeletedAt != nil {
		return sql.ErrNoRows
	}
	now := time.Now()
	item.DeletedAt = &now
	return nil
}

type mockDocumentRepo struct {
	items       map[int64]*models.Document
	nextID      int64
	createErr   error
	updateErr   error
	deleteErr   error
	lastChanges []repository.FieldChange
}

func (m *mockDocumentRepo) List(ctx context.Context) ([]models.Document, error) {
	ids := make([]int64, 0, len(m.items))
	for id := range m.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	result := make([]models.Document, 0, len(ids))
	for _, id := range ids {
		result = append(result, *m.items[id])
	}
	return result, nil
}

func (m *mockDocumentRepo) FindByID(ctx context.Context, id int64) (*models.Document, error) {
	if item, ok := m.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockDocumentRepo) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	for id, item := range m.items {
		if item.Name == name && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockDocumentRepo) CreateWithFields(ctx context.Context, document *models.Document, changes []repository.FieldChange) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.items == nil {
		m.items = make(map[int64]*models.Document)
	}
	m.nextID++
	document.ID = m.nextID
	now := time.Now()
	document.CreatedAt = now
	document.UpdatedAt = now
	cp := *document
	m.items[document.ID] = &cp
	m.lastChanges = changes
	return nil
}

func (m *mockDocumentRepo) UpdateWithFields(ctx context.Context, document *models.Document, changes []repository.FieldChange) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	document.UpdatedAt = time.Now()
	cp := *document
	m.items[document.ID] = &cp
	m.lastChanges = changes
	return nil
}

func (m *mockDocumentRepo) Delete(ctx context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	delete(m.items, id)
	return nil
}

type mockFieldValueRepo struct {
	values     map[int64]*models.FieldValue
	projection []models.ProjectionRow
	projectErr error
	projected  int
	deleted    []int64
}

func (m *mockFieldValueRepo) Project(ctx context.Context, documentID int64) ([]models.ProjectionRow, error) {
	m.projected++
	if m.projectErr != nil {
		return nil, m.projectErr
	}
	return m.projection, nil
}

func (m *mockFieldValueRepo) FindOwned(ctx context.Context, id, documentID int64) (*models.FieldValue, error) {
	if value, ok := m.values[id]; ok && value.DocumentID == documentID {
		cp := *value
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockFieldValueRepo) ExistsForColumn(ctx context.Context, documentID, columnID int64) (bool, error) {
	for _, value := range m.values {
		if value.DocumentID == documentID && value.ColumnID == columnID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockFieldValueRepo) DeleteOwned(ctx context.Context, id, documentID int64) error {
	value, ok := m.values[id]
	if !ok || value.DocumentID != documentID {
		return sql.ErrNoRows
	}
	delete(m.values, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type mockProjectionCache struct {
	store   map[string][]byte
	deletes []string
}

func (m *mockProjectionCache) Get(ctx context.Context, key string, dest interface{}) error {
	raw, ok := m.store[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *mockProjectionCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if m.store == nil {
		m.store = make(map[string][]byte)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.store[key] = raw
	return nil
}

func (m *mockProjectionCache) Delete(ctx context.Context, key string) error {
	delete(m.store, key)
	m.deletes = append(m.deletes, key)
	return nil
}

func int64Ptr(v int64) *int64 {
	return &v
}

func strPtr(v string) *string {
	return &v
}

func boolPtr(v bool) *bool {
	return &v
}
