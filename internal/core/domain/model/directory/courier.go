package directory

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/errs"
)

// ErrCourierIsNotConstructed is returned when a Courier instance was not
// created through the NewCourier or RestoreCourier factory methods.
var ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier or RestoreCourier constructor")

// Courier is a person carrying parcels on delivery routes.
type Courier struct {
	id        kernel.UUID
	name      string
	phone     *string
	homeHubID *kernel.UUID
	active    bool

	isConstructed bool
}

// NewCourier registers a courier. phone and homeHubID are optional.
func NewCourier(
	id kernel.UUID,
	name string,
	phone *string,
	homeHubID *kernel.UUID,
) (*Courier, error) {
	courier := &Courier{
		phone:         phone,
		homeHubID:     homeHubID,
		active:        true,
		isConstructed: true,
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setName(name),
		courier.validateHomeHub(),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// RestoreCourier reconstructs a courier from persistence.
func RestoreCourier(
	id kernel.UUID,
	name string,
	phone *string,
	homeHubID *kernel.UUID,
	active bool,
) (*Courier, error) {
	courier, err := NewCourier(id, name, phone, homeHubID)
	if err != nil {
		return nil, err
	}

	courier.active = active
	return courier, nil
}

// Deactivate takes the courier out of service. Existing routes and scan
// events keep referencing them.
func (c *Courier) Deactivate() {
	c.active = false
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID { return c.id }

// Name returns the courier's display name.
func (c *Courier) Name() string { return c.name }

// Phone returns the courier's optional contact phone.
func (c *Courier) Phone() *string { return c.phone }

// HomeHubID returns the hub the courier usually works out of, or nil.
func (c *Courier) HomeHubID() *kernel.UUID { return c.homeHubID }

// IsActive reports whether the courier is in service.
func (c *Courier) IsActive() bool { return c.active }

// Validate ensures the Courier instance was properly constructed.
func (c *Courier) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCourierIsNotConstructed
	}
	return nil
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *Courier) validateHomeHub() error {
	if c.homeHubID != nil {
		return c.homeHubID.Validate()
	}
	return nil
}
