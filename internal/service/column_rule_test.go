package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fabricyo/doc-manager-api/internal/models"
	appErrors "github.com/fabricyo/doc-manager-api/pkg/errors"
)

func TestColumnRuleAcceptsMatchingType(t *testing.T) {
	columns := &mockColumnRepo{items: map[int64]*models.Column{
		1: {ID: 1, Name: "First name", DocumentTypesID: 1},
	}}
	rule := NewColumnRule(columns)

	require.NoError(t, rule.Check(context.Background(), 1, 1))
}

func TestColumnRuleMissingColumn(t *testing.T) {
	rule := NewColumnRule(&mockColumnRepo{})

	err := rule.Check(context.Background(), 9, 1)
	require.Error(t, err)

	apiErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, apiErr.Code)
	assert.Equal(t, "column 9 not found", apiErr.Message)
}

func TestColumnRuleMismatchEnumeratesValidColumns(t *testing.T) {
	columns := &mockColumnRepo{items: map[int64]*models.Column{
		1: {ID: 1, Name: "First name", DocumentTypesID: 1},
		2: {ID: 2, Name: "Last name", DocumentTypesID: 1},
		3: {ID: 3, Name: "Salary", DocumentTypesID: 2},
	}}
	rule := NewColumnRule(columns)

	err := rule.Check(context.Background(), 3, 1)
	require.Error(t, err)

	apiErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrTypeMismatch.Code, apiErr.Code)
	assert.Equal(t, "column 3 (Salary) is not a valid column for this type of document, these are the right columns that you can use: [1,2]", apiErr.Message)
}

func TestColumnRuleMismatchWithNoValidColumns(t *testing.T) {
	columns := &mockColumnRepo{items: map[int64]*models.Column{
		3: {ID: 3, Name: "Salary", DocumentTypesID: 2},
	}}
	rule := NewColumnRule(columns)

	err := rule.Check(context.Background(), 3, 1)
	require.Error(t, err)
	assert.Contains(t, appErrors.FromError(err).Message, "[]")
}
