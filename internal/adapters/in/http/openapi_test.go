package http

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadOpenAPISpec(t *testing.T) {
	spec, err := LoadOpenAPISpec(context.Background())
	require.NoError(t, err)
	require.NotNil(t, spec)

	assert.Equal(t, "Parcel Lifecycle Engine API", spec.Info.Title)

	for _, path := range []string{
		"/api/v1/parcels",
		"/api/v1/parcels/{parcelId}",
		"/api/v1/parcels/{parcelId}/scan-events",
		"/api/v1/parcels/{parcelId}/assignments",
		"/api/v1/parcels/{parcelId}/assignments/active",
		"/api/v1/parcels/{parcelId}/proof-of-delivery",
		"/api/v1/routes",
		"/api/v1/routes/{routeId}/start",
		"/api/v1/routes/{routeId}/complete",
		"/api/v1/routes/{routeId}/cancel",
		"/health",
	} {
		assert.NotNil(t, spec.Paths.Find(path), "missing path %s", path)
	}
}
