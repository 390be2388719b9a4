package paymethod

import (
	"context"

	"kassa/internal/core/id"
	"kassa/internal/domain"
)

// Repository defines the interface for PaymentMethod persistence.
type Repository interface {
	domain.CatalogRepository[*PaymentMethod]

	// GetByName retrieves a method by name among active rows.
	GetByName(ctx context.Context, name string) (*PaymentMethod, error)

	// ListVisible returns active, visible methods ordered for the cashier UI.
	ListVisible(ctx context.Context) ([]*PaymentMethod, error)

	// SetVisibility toggles cashier visibility.
	SetVisibility(ctx context.Context, id id.ID, visible bool) error

	// SetDisplayOrder sets the manual sort position of one method.
	SetDisplayOrder(ctx context.Context, id id.ID, order int) error
}
