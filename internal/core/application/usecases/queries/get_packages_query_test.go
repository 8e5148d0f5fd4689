package queries_test

import (
	"testing"

	"relief/internal/core/application/usecases/queries"
	"relief/internal/core/domain/model/reliefpkg"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetPackagesQuery_Valid(t *testing.T) {
	query := queries.NewGetPackagesQuery()
	err := query.Validate()
	require.NoError(t, err)

	_, hasStatus := query.Status()
	assert.False(t, hasStatus)
}

func TestNewGetPackagesQueryForStatus_Valid(t *testing.T) {
	query, err := queries.NewGetPackagesQueryForStatus(reliefpkg.Dispatched)
	require.NoError(t, err)
	require.NoError(t, query.Validate())

	status, hasStatus := query.Status()
	assert.True(t, hasStatus)
	assert.Equal(t, reliefpkg.Dispatched, status)
}

func TestNewGetPackagesQueryForStatus_InvalidStatus(t *testing.T) {
	_, err := queries.NewGetPackagesQueryForStatus(reliefpkg.Unknown)
	require.Error(t, err)
}

func TestGetPackagesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetPackagesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetPackagesQueryIsNotConstructed)
}
