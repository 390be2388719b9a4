package user

import (
	"context"

	"kassa/internal/domain"
)

// Repository defines the interface for User persistence.
type Repository interface {
	domain.CatalogRepository[*User]

	// GetByTelegramID retrieves a user by Telegram id.
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
}
