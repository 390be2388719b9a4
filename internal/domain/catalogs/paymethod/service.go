package paymethod

import (
	"context"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/core/tx"
	"kassa/internal/domain"
	"kassa/pkg/logger"
)

// AccountChecker verifies that the default account exists.
// Satisfied by account.Service.
type AccountChecker interface {
	Exists(ctx context.Context, accountID id.ID) (bool, error)
}

// Service provides business logic for the PaymentMethod catalog.
type Service struct {
	*domain.CatalogService[*PaymentMethod]
	repo      Repository
	accounts  AccountChecker
	txManager tx.Manager
}

// NewService creates a new PaymentMethod service.
func NewService(repo Repository, accounts AccountChecker, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*PaymentMethod]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "payment method",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		accounts:       accounts,
		txManager:      txManager,
	}

	base.Hooks().OnBeforeCreate(svc.checkAccount)
	base.Hooks().OnBeforeUpdate(svc.checkAccount)

	return svc
}

// checkAccount rejects methods pointing at a missing default account.
func (s *Service) checkAccount(ctx context.Context, m *PaymentMethod) error {
	ok, err := s.accounts.Exists(ctx, m.DefaultAccountID)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if !ok {
		return apperror.NewValidation("default account does not exist").
			WithDetail("field", "defaultAccountId").
			WithDetail("value", m.DefaultAccountID.String())
	}
	return nil
}

// GetByName retrieves a method by name among active rows.
func (s *Service) GetByName(ctx context.Context, name string) (*PaymentMethod, error) {
	m, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("payment method", name)
		}
		return nil, err
	}
	return m, nil
}

// ListVisible returns active, visible methods ordered for the cashier UI.
func (s *Service) ListVisible(ctx context.Context) ([]*PaymentMethod, error) {
	return s.repo.ListVisible(ctx)
}

// SetVisibility toggles cashier visibility for one method.
func (s *Service) SetVisibility(ctx context.Context, methodID id.ID, visible bool) error {
	exists, err := s.repo.Exists(ctx, methodID)
	if err != nil {
		return apperror.NewDatabase(err)
	}
	if !exists {
		return apperror.NewNotFound("payment method", methodID.String())
	}
	return s.repo.SetVisibility(ctx, methodID, visible)
}

// Reorder assigns display_order by position in orderedIDs.
// Methods not listed keep their current order.
func (s *Service) Reorder(ctx context.Context, orderedIDs []id.ID) error {
	if len(orderedIDs) == 0 {
		return apperror.NewValidation("ordered ids must not be empty")
	}

	return s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for pos, methodID := range orderedIDs {
			if err := s.repo.SetDisplayOrder(ctx, methodID, pos); err != nil {
				if apperror.IsNotFound(err) {
					logger.Warn(ctx, "reorder references unknown payment method",
						"method_id", methodID.String())
					continue
				}
				return err
			}
		}
		return nil
	})
}
