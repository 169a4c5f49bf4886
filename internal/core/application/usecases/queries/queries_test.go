package queries_test

import (
	"testing"
	"time"

	"parcels/internal/core/application/usecases/queries"
	"parcels/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetParcelQuery(t *testing.T) {
	t.Run("creates a valid query", func(t *testing.T) {
		id := kernel.NewUUID()
		query, err := queries.NewGetParcelQuery(id)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.ParcelID().IsEqual(id))
	})

	t.Run("rejects an empty identifier", func(t *testing.T) {
		_, err := queries.NewGetParcelQuery(kernel.UUID{})
		assert.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		query := queries.GetParcelQuery{}
		assert.ErrorIs(t, query.Validate(), queries.ErrGetParcelQueryIsNotConstructed)
	})
}

func TestNewGetScanEventsQuery(t *testing.T) {
	t.Run("creates a valid query", func(t *testing.T) {
		id := kernel.NewUUID()
		query, err := queries.NewGetScanEventsQuery(id)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.True(t, query.ParcelID().IsEqual(id))
	})

	t.Run("rejects an empty identifier", func(t *testing.T) {
		_, err := queries.NewGetScanEventsQuery(kernel.UUID{})
		assert.Error(t, err)
	})
}

func TestNewGetActiveAssignmentQuery(t *testing.T) {
	t.Run("creates a valid query", func(t *testing.T) {
		id := kernel.NewUUID()
		query, err := queries.NewGetActiveAssignmentQuery(id)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
	})

	t.Run("rejects an empty identifier", func(t *testing.T) {
		_, err := queries.NewGetActiveAssignmentQuery(kernel.UUID{})
		assert.Error(t, err)
	})
}

func TestNewGetOverdueParcelsQuery(t *testing.T) {
	t.Run("creates a valid query", func(t *testing.T) {
		asOf := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
		query, err := queries.NewGetOverdueParcelsQuery(asOf)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Equal(t, asOf, query.AsOf())
	})

	t.Run("rejects a zero cutoff", func(t *testing.T) {
		_, err := queries.NewGetOverdueParcelsQuery(time.Time{})
		assert.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		query := queries.GetOverdueParcelsQuery{}
		assert.ErrorIs(t, query.Validate(), queries.ErrGetOverdueParcelsQueryIsNotConstructed)
	})
}
