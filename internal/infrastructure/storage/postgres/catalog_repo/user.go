package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"kassa/internal/domain/catalogs/user"
	"kassa/internal/infrastructure/storage/postgres"
)

// UserRepo implements user.Repository.
type UserRepo struct {
	*BaseCatalogRepo[*user.User]
}

// NewUserRepo creates the repository for the users table.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"users",
			postgres.ExtractDBColumns[user.User](),
			func() *user.User { return &user.User{} },
		),
	}
}

// GetByTelegramID retrieves a user by Telegram id.
func (r *UserRepo) GetByTelegramID(ctx context.Context, telegramID int64) (*user.User, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[user.User]()...).
		From("users").
		Where(squirrel.Eq{"telegram_id": telegramID}).
		Limit(1)

	return r.FindOne(ctx, q)
}
