package category

import (
	"context"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/core/tx"
	"kassa/internal/domain"
)

// Service provides business logic for the Category catalog.
type Service struct {
	*domain.CatalogService[*Category]
	repo Repository
}

// NewService creates a new Category service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Category]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "category",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkParent)
	base.Hooks().OnBeforeUpdate(svc.checkParent)
	base.Hooks().OnBeforeDelete(svc.checkNoChildren)

	return svc
}

// checkParent enforces the single-level hierarchy.
func (s *Service) checkParent(ctx context.Context, c *Category) error {
	if c.ParentID == nil {
		return nil
	}

	parent, err := s.repo.GetByID(ctx, *c.ParentID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return apperror.NewValidation("parent category does not exist").
				WithDetail("field", "parentId").
				WithDetail("value", c.ParentID.String())
		}
		return err
	}

	if !parent.IsTopLevel() {
		return apperror.NewValidation("categories nest only one level deep").
			WithDetail("field", "parentId")
	}
	if parent.Type != c.Type {
		return apperror.NewValidation("subcategory type must match parent type").
			WithDetail("field", "type")
	}
	return nil
}

// checkNoChildren blocks deactivating a category that still has active children.
func (s *Service) checkNoChildren(ctx context.Context, c *Category) error {
	has, err := s.repo.HasChildren(ctx, c.ID)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if has {
		return apperror.NewConflict("category has active subcategories").
			WithDetail("id", c.ID.String())
	}
	return nil
}

// ListByType returns active categories of one type.
// With parentID unset, only top-level categories are listed.
func (s *Service) ListByType(ctx context.Context, cType Type, parentID *id.ID) ([]*Category, error) {
	if !isValidType(cType) {
		return nil, apperror.NewValidation("invalid category type").
			WithDetail("value", string(cType))
	}
	return s.repo.ListByType(ctx, cType, parentID)
}

// Subcategories returns the active children of a top-level category.
func (s *Service) Subcategories(ctx context.Context, parentID id.ID) ([]*Category, error) {
	parent, err := s.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByType(ctx, parent.Type, &parentID)
}
