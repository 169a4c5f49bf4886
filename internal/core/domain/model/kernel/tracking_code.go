package kernel

import (
	"fmt"
	"regexp"
	"strings"

	"parcels/internal/pkg/errs"
	"parcels/internal/pkg/guard"

	"github.com/google/uuid"
)

// TrackingCodePrefix is the fixed prefix of every campus parcel tracking code.
const TrackingCodePrefix = "PCL-"

// ErrTrackingCodeIsNotConstructed is returned when attempting to use an improperly initialized TrackingCode.
// Tracking codes must be created via NewTrackingCode or TrackingCodeFromString.
var ErrTrackingCodeIsNotConstructed = errs.NewValueIsRequiredError(
	"tracking code must be created via NewTrackingCode or TrackingCodeFromString constructors")

var trackingCodePattern = regexp.MustCompile(`^PCL-[0-9A-F]{12}$`)

// TrackingCode is the globally unique, immutable code assigned to a parcel at
// registration. It is the identifier senders and recipients use to look a
// parcel up, as opposed to the internal UUID.
//
// The code has the shape "PCL-" followed by twelve uppercase hexadecimal
// digits, e.g. "PCL-550E8400E29B". It is assigned once and never mutated.
//
// Example:
//
//	code := kernel.NewTrackingCode()
//	fmt.Println(code.String()) // e.g. "PCL-550E8400E29B"
type TrackingCode struct {
	value string
	guard guard.ConstructorGuard
}

// NewTrackingCode generates a fresh tracking code.
// Uniqueness is inherited from the random UUID the code is derived from and
// additionally backed by the unique constraint on the parcels table.
func NewTrackingCode() TrackingCode {
	raw := uuid.New()
	hex := strings.ToUpper(strings.ReplaceAll(raw.String(), "-", ""))
	return TrackingCode{
		value: TrackingCodePrefix + hex[:12],
		guard: guard.NewConstructorGuard(),
	}
}

// TrackingCodeFromString reconstructs a tracking code from its string form,
// typically when rehydrating a parcel from persistence.
// Returns an error if the string does not match the tracking code shape.
func TrackingCodeFromString(s string) (TrackingCode, error) {
	if s == "" {
		return TrackingCode{}, errs.NewValueIsRequiredError("trackingCode")
	}
	if !trackingCodePattern.MatchString(s) {
		return TrackingCode{}, errs.NewValueIsInvalidErrorWithCause(
			"trackingCode",
			fmt.Errorf("%q does not match %s", s, trackingCodePattern.String()),
		)
	}
	return TrackingCode{value: s, guard: guard.NewConstructorGuard()}, nil
}

// String returns the full tracking code, prefix included.
func (c TrackingCode) String() string {
	return c.value
}

// IsEqual compares two tracking codes by value.
func (c TrackingCode) IsEqual(other TrackingCode) bool {
	return c.value == other.value
}

// Validate ensures the tracking code was created through a constructor.
func (c TrackingCode) Validate() error {
	return c.guard.Validate(ErrTrackingCodeIsNotConstructed)
}
