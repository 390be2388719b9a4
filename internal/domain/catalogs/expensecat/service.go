package expensecat

import (
	"context"

	"kassa/internal/core/apperror"
	"kassa/internal/core/tx"
	"kassa/internal/domain"
)

// Service provides business logic for the ExpenseCategory catalog.
type Service struct {
	*domain.CatalogService[*ExpenseCategory]
	repo Repository
}

// NewService creates a new ExpenseCategory service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*ExpenseCategory]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "expense category",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)

	return svc
}

func (s *Service) checkNameUnique(ctx context.Context, ec *ExpenseCategory) error {
	exists, err := s.repo.ExistsByName(ctx, ec.Name)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if exists {
		return apperror.NewDuplicate("expense category", "name", ec.Name)
	}
	return nil
}
