package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"parcels/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalGeoPoint(t *testing.T) {
	lat := 55.75
	lng := 37.61

	t.Run("both absent returns nil", func(t *testing.T) {
		point, err := optionalGeoPoint(nil, nil)
		require.NoError(t, err)
		assert.Nil(t, point)
	})

	t.Run("both present returns point", func(t *testing.T) {
		point, err := optionalGeoPoint(&lat, &lng)
		require.NoError(t, err)
		require.NotNil(t, point)
		assert.InDelta(t, lat, point.Latitude(), 0.0001)
		assert.InDelta(t, lng, point.Longitude(), 0.0001)
	})

	t.Run("latitude without longitude is an error", func(t *testing.T) {
		_, err := optionalGeoPoint(&lat, nil)
		require.Error(t, err)
	})

	t.Run("longitude without latitude is an error", func(t *testing.T) {
		_, err := optionalGeoPoint(nil, &lng)
		require.Error(t, err)
	})
}

func TestSubmitProof_HalfSpecifiedLocation_ReturnsBadRequest(t *testing.T) {
	e := echo.New()
	body := `{"recipient_name": "Jordan Lee", "signed_at": "2026-03-14T12:00:00Z", "latitude": 55.75}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	ctx := e.NewContext(req, rec)
	ctx.SetParamNames("parcelId")
	ctx.SetParamValues(kernel.NewUUID().String())

	server := &Server{}
	require.NoError(t, server.SubmitProof(ctx))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid location")
}
