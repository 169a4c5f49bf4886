package kernel_test

import (
	"fmt"
	"testing"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGeoPoint(t *testing.T) {
	t.Run("should create points within bounds", func(t *testing.T) {
		cases := []struct{ lat, lng float64 }{
			{0, 0},
			{55.751, 37.617},
			{-90, -180},
			{90, 180},
		}

		for _, tc := range cases {
			t.Run(fmt.Sprintf("(%f,%f)", tc.lat, tc.lng), func(t *testing.T) {
				point, err := kernel.NewGeoPoint(tc.lat, tc.lng)

				require.NoError(t, err)
				require.NoError(t, point.Validate())
				assert.Equal(t, tc.lat, point.Latitude())
				assert.Equal(t, tc.lng, point.Longitude())
			})
		}
	})

	t.Run("should reject out-of-range coordinates", func(t *testing.T) {
		cases := []struct{ lat, lng float64 }{
			{-90.001, 0},
			{90.001, 0},
			{0, -180.001},
			{0, 180.001},
		}

		for _, tc := range cases {
			t.Run(fmt.Sprintf("(%f,%f)", tc.lat, tc.lng), func(t *testing.T) {
				_, err := kernel.NewGeoPoint(tc.lat, tc.lng)

				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
			})
		}
	})
}

func TestGeoPoint_IsEqual(t *testing.T) {
	t.Run("equal coordinates compare equal", func(t *testing.T) {
		a, err := kernel.NewGeoPoint(1.5, 2.5)
		require.NoError(t, err)
		b, err := kernel.NewGeoPoint(1.5, 2.5)
		require.NoError(t, err)
		c, err := kernel.NewGeoPoint(1.5, 3.5)
		require.NoError(t, err)

		assert.True(t, a.IsEqual(b))
		assert.False(t, a.IsEqual(c))
	})
}

func TestGeoPoint_Validate(t *testing.T) {
	t.Run("zero value is invalid", func(t *testing.T) {
		var point kernel.GeoPoint

		err := point.Validate()

		require.Error(t, err)
		assert.Equal(t, kernel.ErrGeoPointIsNotConstructed, err)
	})
}
