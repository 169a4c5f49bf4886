package kernel

import (
	"fmt"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"
)

const (
	// GeoPointMinLatitude is the minimum valid latitude in degrees.
	GeoPointMinLatitude = -90.0
	// GeoPointMaxLatitude is the maximum valid latitude in degrees.
	GeoPointMaxLatitude = 90.0
	// GeoPointMinLongitude is the minimum valid longitude in degrees.
	GeoPointMinLongitude = -180.0
	// GeoPointMaxLongitude is the maximum valid longitude in degrees.
	GeoPointMaxLongitude = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
// Geo points must be created using the NewGeoPoint constructor to ensure validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a WGS84 coordinate pair with validated bounds.
// It is an immutable value object, used for the optional geolocation captured
// alongside a proof of delivery.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(55.751, 37.617)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("%s", point) // Output: GeoPoint(55.751000,37.617000)
type GeoPoint struct {
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the specified coordinates.
// Latitude must lie in [-90, 90] and longitude in [-180, 180] degrees.
func NewGeoPoint(latitude, longitude float64) (GeoPoint, error) {
	if latitude < GeoPointMinLatitude || latitude > GeoPointMaxLatitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError(
			"latitude", latitude, GeoPointMinLatitude, GeoPointMaxLatitude)
	}
	if longitude < GeoPointMinLongitude || longitude > GeoPointMaxLongitude {
		return GeoPoint{}, errs.NewValueIsOutOfRangeError(
			"longitude", longitude, GeoPointMinLongitude, GeoPointMaxLongitude)
	}

	return GeoPoint{
		latitude:  latitude,
		longitude: longitude,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.latitude
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.longitude
}

// IsEqual compares two geo points by exact coordinate values.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.latitude == other.latitude && p.longitude == other.longitude
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f,%f)", p.latitude, p.longitude)
}

// Validate ensures the geo point was created through the constructor.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}
