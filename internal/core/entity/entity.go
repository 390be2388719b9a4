// Package entity provides base types shared by all catalog entities.
package entity

import (
	"context"
	"strings"
	"time"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
)

// Validatable is implemented by every entity that can check its own invariants.
type Validatable interface {
	Validate(ctx context.Context) error
}

// Identifiable exposes the entity primary key.
type Identifiable interface {
	GetID() id.ID
	SetID(id.ID)
}

// Catalog is the embedded base for all catalog entities
// (accounts, payment methods, locations, categories, users).
type Catalog struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Name is the human-readable display name
	Name string `db:"name" json:"name"`

	// IsActive is the soft-delete flag; inactive rows are hidden from listings
	IsActive bool `db:"is_active" json:"isActive"`

	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewCatalog creates a base catalog entity with a fresh ID.
func NewCatalog(name string) Catalog {
	now := time.Now().UTC()
	return Catalog{
		ID:        id.New(),
		Name:      strings.TrimSpace(name),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GetID implements Identifiable.
func (c *Catalog) GetID() id.ID { return c.ID }

// SetID implements Identifiable.
func (c *Catalog) SetID(v id.ID) { c.ID = v }

// Touch updates the modification timestamp.
func (c *Catalog) Touch() { c.UpdatedAt = time.Now().UTC() }

// Validate checks base catalog invariants.
func (c *Catalog) Validate(_ context.Context) error {
	if strings.TrimSpace(c.Name) == "" {
		return apperror.NewValidation("name is required").
			WithDetail("field", "name")
	}
	if len(c.Name) > 255 {
		return apperror.NewValidation("name is too long").
			WithDetail("field", "name").
			WithDetail("max_length", 255)
	}
	return nil
}
