package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricyo/doc-manager-api/internal/models"
)

func TestDocumentRepositoryCreateWithFields(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDocumentRepository(db)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO documents").
		WithArgs("My first Document", int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("INSERT INTO column_document").
		WithArgs(int64(1), int64(1), "Nicolas", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO column_document").
		WithArgs(int64(2), int64(1), "Dupont", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	document := &models.Document{Name: "My first Document", DocumentTypesID: 1}
	changes := []FieldChange{
		{ColumnID: 1, Content: "Nicolas"},
		{ColumnID: 2, Content: "Dupont"},
	}
	require.NoError(t, repo.CreateWithFields(context.Background(), document, changes))
	assert.Equal(t, int64(1), document.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryCreateWithFieldsRollsBack(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDocumentRepository(db)
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO documents").
		WithArgs("My first Document", int64(1), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectExec("INSERT INTO column_document").
		WithArgs(int64(1), int64(1), "Nicolas", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnError(errors.New("insert failed"))
	mock.ExpectRollback()

	document := &models.Document{Name: "My first Document", DocumentTypesID: 1}
	err := repo.CreateWithFields(context.Background(), document, []FieldChange{{ColumnID: 1, Content: "Nicolas"}})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryUpdateWithFieldsAppliesInOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDocumentRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE documents SET name").
		WithArgs(int64(1), "My first Document", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE column_document SET content").
		WithArgs(int64(1), "Yasmin", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO column_document").
		WithArgs(int64(2), int64(1), "Dupont", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	document := &models.Document{ID: 1, Name: "My first Document", DocumentTypesID: 1}
	changes := []FieldChange{
		{RelID: 1, Content: "Yasmin"},
		{ColumnID: 2, Content: "Dupont"},
	}
	before := document.UpdatedAt
	require.NoError(t, repo.UpdateWithFields(context.Background(), document, changes))
	assert.True(t, document.UpdatedAt.After(before))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryDeleteCascades(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDocumentRepository(db)
	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM column_document WHERE document_id").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM documents WHERE id").
		WithArgs(int64(1)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 1))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDocumentRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewDocumentRepository(db)
	rows := sqlmock.NewRows([]string{"id", "name", "document_types_id", "created_at", "updated_at"}).
		AddRow(1, "My first Document", 1, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, name, document_types_id").
		WithArgs(int64(1)).
		WillReturnRows(rows)

	document, err := repo.FindByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "My first Document", document.Name)
}
