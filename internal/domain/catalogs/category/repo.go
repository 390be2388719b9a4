package category

import (
	"context"

	"kassa/internal/core/id"
	"kassa/internal/domain"
)

// Repository defines the interface for Category persistence.
type Repository interface {
	domain.CatalogRepository[*Category]

	// ListByType returns active categories of the given type.
	// When parentID is nil, only top-level categories are returned.
	ListByType(ctx context.Context, cType Type, parentID *id.ID) ([]*Category, error)

	// HasChildren reports whether any active category points at id.
	HasChildren(ctx context.Context, id id.ID) (bool, error)
}
