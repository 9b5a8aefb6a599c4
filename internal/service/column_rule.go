package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/fabricyo/doc-manager-api/internal/models"
	appErrors "github.com/fabricyo/doc-manager-api/pkg/errors"
)

type columnRuleRepository interface {
	FindByID(ctx context.Context, id int64) (*models.Column, error)
	ListByDocumentType(ctx context.Context, documentTypeID int64) ([]models.Column, error)
}

// ColumnRule confirms that a candidate column belongs to an expected document
// type. On mismatch the failure message enumerates the ids of every column
// that is valid for the type, so callers can surface actionable guidance.
type ColumnRule struct {
	columns columnRuleRepository
}

// NewColumnRule constructs a ColumnRule.
func NewColumnRule(columns columnRuleRepository) *ColumnRule {
	return &ColumnRule{columns: columns}
}

// Check validates that columnID belongs to expectedTypeID.
func (r *ColumnRule) Check(ctx context.Context, columnID, expectedTypeID int64) error {
	column, err := r.columns.FindByID(ctx, columnID)
	if err != nil {
		if err == sql.ErrNoRows {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("column %d not found", columnID))
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load column")
	}

	if column.DocumentTypesID == expectedTypeID {
		return nil
	}

	valid, err := r.columns.ListByDocumentType(ctx, expectedTypeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list columns for document type")
	}
	ids := make([]string, len(valid))
	for i, c := range valid {
		ids[i] = strconv.FormatInt(c.ID, 10)
	}
	message := fmt.Sprintf("column %d (%s) is not a valid column for this type of document, these are the right columns that you can use: [%s]",
		columnID, column.Name, strings.Join(ids, ","))
	return appErrors.Clone(appErrors.ErrTypeMismatch, message)
}
