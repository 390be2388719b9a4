package account

import (
	"context"

	"kassa/internal/core/apperror"
	"kassa/internal/core/tx"
	"kassa/internal/domain"
)

// Service provides business logic for the Account catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Account]
	repo Repository
}

// NewService creates a new Account service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Account]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "account",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)

	return svc
}

// checkNameUnique pre-checks the unique name constraint for a friendlier error.
func (s *Service) checkNameUnique(ctx context.Context, acc *Account) error {
	exists, err := s.repo.ExistsByName(ctx, acc.Name)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if exists {
		return apperror.NewDuplicate("account", "name", acc.Name)
	}
	return nil
}

// GetByName retrieves an account by its unique name.
func (s *Service) GetByName(ctx context.Context, name string) (*Account, error) {
	acc, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("account", name)
		}
		return nil, err
	}
	return acc, nil
}
