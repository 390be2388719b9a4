package catalog_repo

import (
	"context"

	"github.com/Masterminds/squirrel"

	"kassa/internal/domain/catalogs/account"
	"kassa/internal/infrastructure/storage/postgres"
)

// AccountRepo implements account.Repository.
type AccountRepo struct {
	*BaseCatalogRepo[*account.Account]
}

// NewAccountRepo creates the repository for the accounts table.
func NewAccountRepo(txm *postgres.TxManager) *AccountRepo {
	return &AccountRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"accounts",
			postgres.ExtractDBColumns[account.Account](),
			func() *account.Account { return &account.Account{} },
		),
	}
}

// GetByName retrieves an account by its unique name.
func (r *AccountRepo) GetByName(ctx context.Context, name string) (*account.Account, error) {
	q := r.Builder().
		Select(postgres.ExtractDBColumns[account.Account]()...).
		From("accounts").
		Where(squirrel.Eq{"name": name}).
		Limit(1)

	return r.FindOne(ctx, q)
}
