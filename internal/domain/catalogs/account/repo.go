package account

import (
	"context"

	"kassa/internal/domain"
)

// Repository defines the interface for Account persistence.
type Repository interface {
	domain.CatalogRepository[*Account]

	// GetByName retrieves an account by its unique name.
	GetByName(ctx context.Context, name string) (*Account, error)
}
