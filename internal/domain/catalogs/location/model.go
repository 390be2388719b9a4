// Package location provides the Location catalog.
// A location is one retail point with its own daily cashier report.
package location

import (
	"context"

	"kassa/internal/core/entity"
)

// Location represents a retail point (store, kiosk, branch).
type Location struct {
	entity.Catalog

	// Address is the physical address
	Address *string `db:"address" json:"address,omitempty"`
}

// NewLocation creates a new Location with required fields.
func NewLocation(name string) *Location {
	return &Location{
		Catalog: entity.NewCatalog(name),
	}
}

// Validate implements entity.Validatable.
func (l *Location) Validate(ctx context.Context) error {
	return l.Catalog.Validate(ctx)
}
