package queries_test

import (
	"testing"

	"relief/internal/core/application/usecases/queries"
	"relief/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetLowStockQuery_Valid(t *testing.T) {
	threshold, err := kernel.QuantityFromString("25")
	require.NoError(t, err)

	query, err := queries.NewGetLowStockQuery(threshold)
	require.NoError(t, err)
	require.NoError(t, query.Validate())
	assert.Equal(t, "25.00", query.Threshold().String())
}

func TestNewGetLowStockQuery_ZeroThreshold(t *testing.T) {
	_, err := queries.NewGetLowStockQuery(kernel.ZeroQuantity())
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrThresholdMustBePositive)
}

func TestGetLowStockQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetLowStockQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetLowStockQueryIsNotConstructed)
}
