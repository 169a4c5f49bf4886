// Package directory holds the reference records the lifecycle engine reads
// but never mutates: hubs and couriers. Scan events and assignments point at
// these records by id; the engine only needs to know that the referenced id
// exists and is active.
package directory

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// ErrHubIsNotConstructed is returned when a Hub instance was not created
// through the NewHub or RestoreHub factory methods.
var ErrHubIsNotConstructed = errors.New("Hub must be created via NewHub or RestoreHub constructor")

// Hub is a fixed scanning and sorting point in the campus network.
type Hub struct {
	id       kernel.UUID
	code     string
	name     string
	zone     *string
	location *kernel.GeoPoint
	active   bool

	isConstructed bool
}

// NewHub registers a hub. zone and location are optional.
func NewHub(
	id kernel.UUID,
	code string,
	name string,
	zone *string,
	location *kernel.GeoPoint,
) (*Hub, error) {
	hub := &Hub{
		zone:          zone,
		location:      location,
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		hub.setID(id),
		hub.setCode(code),
		hub.setName(name),
		hub.validateLocation(),
	); err != nil {
		return nil, err
	}

	return hub, nil
}

// RestoreHub reconstructs a hub from persistence.
func RestoreHub(
	id kernel.UUID,
	code string,
	name string,
	zone *string,
	location *kernel.GeoPoint,
	active bool,
) (*Hub, error) {
	hub, err := NewHub(id, code, name, zone, location)
	if err != nil {
		return nil, err
	}

	hub.active = active
	return hub, nil
}

// Deactivate takes the hub out of service. Existing scan events keep
// referencing it.
func (h *Hub) Deactivate() {
	h.active = false
}

// ID returns the hub's unique identifier.
func (h *Hub) ID() kernel.UUID { return h.id }

// Code returns the short hub code, e.g. "HUB-NE".
func (h *Hub) Code() string { return h.code }

// Name returns the human-readable hub name.
func (h *Hub) Name() string { return h.name }

// Zone returns the optional campus zone code the hub serves.
func (h *Hub) Zone() *string { return h.zone }

// Location returns the hub's optional geolocation.
func (h *Hub) Location() *kernel.GeoPoint { return h.location }

// IsActive reports whether the hub is in service.
func (h *Hub) IsActive() bool { return h.active }

// Validate ensures the Hub instance was properly constructed.
func (h *Hub) Validate() error {
	if h == nil || !h.isConstructed {
		return ErrHubIsNotConstructed
	}
	return nil
}

func (h *Hub) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	h.id = id
	return nil
}

func (h *Hub) setCode(code string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code")
	}
	h.code = code
	return nil
}

func (h *Hub) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	h.name = name
	return nil
}

func (h *Hub) validateLocation() error {
	if h.location != nil {
		return h.location.Validate()
	}
	return nil
}
