package user

import (
	"context"

	"kassa/internal/core/apperror"
	"kassa/internal/core/tx"
	"kassa/internal/domain"
)

// Service provides business logic for the User catalog.
type Service struct {
	*domain.CatalogService[*User]
	repo Repository
}

// NewService creates a new User service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*User]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "user",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkTelegramUnique)

	return svc
}

// checkTelegramUnique pre-checks the unique telegram_id constraint.
func (s *Service) checkTelegramUnique(ctx context.Context, u *User) error {
	existing, err := s.repo.GetByTelegramID(ctx, u.TelegramID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil
		}
		return err
	}
	if existing != nil {
		return apperror.NewDuplicate("user", "telegram_id", "")
	}
	return nil
}

// GetByTelegramID retrieves a user by Telegram id.
func (s *Service) GetByTelegramID(ctx context.Context, telegramID int64) (*User, error) {
	u, err := s.repo.GetByTelegramID(ctx, telegramID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("user", telegramID)
		}
		return nil, err
	}
	return u, nil
}
