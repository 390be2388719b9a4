package catalog_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/domain/catalogs/paymethod"
	"kassa/internal/infrastructure/storage/postgres"
)

// PaymentMethodRepo implements paymethod.Repository.
type PaymentMethodRepo struct {
	*BaseCatalogRepo[*paymethod.PaymentMethod]
}

// NewPaymentMethodRepo creates the repository for the payment_methods table.
func NewPaymentMethodRepo(txm *postgres.TxManager) *PaymentMethodRepo {
	return &PaymentMethodRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"payment_methods",
			postgres.ExtractDBColumns[paymethod.PaymentMethod](),
			func() *paymethod.PaymentMethod { return &paymethod.PaymentMethod{} },
		),
	}
}

func (r *PaymentMethodRepo) methodSelect() squirrel.SelectBuilder {
	return r.Builder().
		Select(postgres.ExtractDBColumns[paymethod.PaymentMethod]()...).
		From("payment_methods")
}

// GetByName retrieves a method by name among active rows.
func (r *PaymentMethodRepo) GetByName(ctx context.Context, name string) (*paymethod.PaymentMethod, error) {
	q := r.methodSelect().
		Where(squirrel.Eq{"name": name}).
		Where(squirrel.Eq{"is_active": true}).
		Limit(1)

	return r.FindOne(ctx, q)
}

// ListVisible returns active, visible methods in cashier UI order.
func (r *PaymentMethodRepo) ListVisible(ctx context.Context) ([]*paymethod.PaymentMethod, error) {
	q := r.methodSelect().
		Where(squirrel.Eq{"is_active": true}).
		Where(squirrel.Eq{"is_visible": true}).
		OrderBy("display_order ASC", "name ASC")

	return r.FindMany(ctx, q)
}

// SetVisibility toggles cashier visibility.
func (r *PaymentMethodRepo) SetVisibility(ctx context.Context, methodID id.ID, visible bool) error {
	return r.updateOne(ctx, methodID, map[string]any{"is_visible": visible})
}

// SetDisplayOrder sets the manual sort position of one method.
func (r *PaymentMethodRepo) SetDisplayOrder(ctx context.Context, methodID id.ID, order int) error {
	return r.updateOne(ctx, methodID, map[string]any{"display_order": order})
}

func (r *PaymentMethodRepo) updateOne(ctx context.Context, methodID id.ID, set map[string]any) error {
	set["updated_at"] = squirrel.Expr("now()")

	q := r.Builder().
		Update("payment_methods").
		SetMap(set).
		Where(squirrel.Eq{"id": methodID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update payment_methods: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("payment_methods", methodID.String())
	}
	return nil
}
