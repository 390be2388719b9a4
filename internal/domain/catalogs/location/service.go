package location

import (
	"context"

	"kassa/internal/core/apperror"
	"kassa/internal/core/tx"
	"kassa/internal/domain"
)

// Service provides business logic for the Location catalog.
type Service struct {
	*domain.CatalogService[*Location]
	repo Repository
}

// NewService creates a new Location service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Location]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "location",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkNameUnique)

	return svc
}

func (s *Service) checkNameUnique(ctx context.Context, loc *Location) error {
	exists, err := s.repo.ExistsByName(ctx, loc.Name)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if exists {
		return apperror.NewDuplicate("location", "name", loc.Name)
	}
	return nil
}
