package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"kassa/internal/core/id"
	"kassa/internal/domain/catalogs/category"
	"kassa/internal/infrastructure/storage/postgres"
)

// CategoryRepo implements category.Repository.
type CategoryRepo struct {
	*BaseCatalogRepo[*category.Category]
}

// NewCategoryRepo creates the repository for the categories table.
func NewCategoryRepo(txm *postgres.TxManager) *CategoryRepo {
	return &CategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"categories",
			postgres.ExtractDBColumns[category.Category](),
			func() *category.Category { return &category.Category{} },
		),
	}
}

// ListByType returns active categories of the given type.
// With a nil parentID only top-level categories are returned.
func (r *CategoryRepo) ListByType(ctx context.Context, cType category.Type, parentID *id.ID) ([]*category.Category, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[category.Category]()...).
		From("categories").
		Where(squirrel.Eq{"category_type": string(cType)}).
		Where(squirrel.Eq{"is_active": true}).
		OrderBy("name ASC")

	if parentID == nil {
		q = q.Where(squirrel.Eq{"parent_id": nil})
	} else {
		q = q.Where(squirrel.Eq{"parent_id": *parentID})
	}

	return r.FindMany(ctx, q)
}

// HasChildren reports whether any active category points at the given id.
func (r *CategoryRepo) HasChildren(ctx context.Context, parentID id.ID) (bool, error) {
	q := r.Builder().
		Select("1").
		From("categories").
		Where(squirrel.Eq{"parent_id": parentID}).
		Where(squirrel.Eq{"is_active": true}).
		Limit(1)

	return r.exists(ctx, q)
}
