// Package ledger_repo aggregates report rows into the sums and history
// streams the ledger derives balances from. The cash stream counts only
// closed and verified reports (cash_actual exists once the drawer is
// counted); payment, income and expense lines are aggregated from every
// report that carries them, open included.
package ledger_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"kassa/internal/core/id"
	"kassa/internal/core/types"
	"kassa/internal/domain/ledger"
	"kassa/internal/domain/report"
	"kassa/internal/infrastructure/storage/postgres"
)

// Repo implements ledger.Repository.
type Repo struct {
	txm *postgres.TxManager
}

// NewRepo creates the ledger repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

var _ ledger.Repository = (*Repo)(nil)

var closedStatuses = []string{
	string(report.StatusClosed),
	string(report.StatusVerified),
}

func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// SumClosedCash sums counted cash over all closed reports.
func (r *Repo) SumClosedCash(ctx context.Context) (types.Money, error) {
	return r.sum(ctx, r.closedCashQuery())
}

func (r *Repo) closedCashQuery() squirrel.SelectBuilder {
	return r.builder().
		Select("COALESCE(SUM(cash_actual), 0)").
		From("daily_reports").
		Where(squirrel.Eq{"status": closedStatuses})
}

// SumPaymentsNet sums net payment amounts credited to the account.
func (r *Repo) SumPaymentsNet(ctx context.Context, accountID id.ID) (types.Money, error) {
	return r.sum(ctx, r.paymentsNetQuery(accountID))
}

func (r *Repo) paymentsNetQuery(accountID id.ID) squirrel.SelectBuilder {
	return r.builder().
		Select("COALESCE(SUM(net_amount), 0)").
		From("report_payments").
		Where(squirrel.Eq{"account_id": accountID})
}

// SumIncome sums non-sales income lines on the account.
func (r *Repo) SumIncome(ctx context.Context, accountID id.ID) (types.Money, error) {
	return r.sum(ctx, r.linesSumQuery("non_sales_income", accountID))
}

// SumExpenses sums expense lines on the account.
func (r *Repo) SumExpenses(ctx context.Context, accountID id.ID) (types.Money, error) {
	return r.sum(ctx, r.linesSumQuery("report_expenses", accountID))
}

func (r *Repo) linesSumQuery(table string, accountID id.ID) squirrel.SelectBuilder {
	return r.builder().
		Select("COALESCE(SUM(amount), 0)").
		From(table).
		Where(squirrel.Eq{"account_id": accountID})
}

func (r *Repo) sum(ctx context.Context, q squirrel.SelectBuilder) (types.Money, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return types.Zero(), fmt.Errorf("build query: %w", err)
	}

	var total types.Money
	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return types.Zero(), fmt.Errorf("sum: %w", err)
	}
	return total, nil
}

// CashSalesEntries returns one entry per closed report with counted cash.
func (r *Repo) CashSalesEntries(ctx context.Context) ([]*ledger.Entry, error) {
	return r.entries(ctx, r.cashEntriesQuery())
}

func (r *Repo) cashEntriesQuery() squirrel.SelectBuilder {
	return r.builder().
		Select(
			"dr.report_date AS entry_date",
			"dr.id AS report_id",
			"dr.cash_actual AS amount",
			"'cash sales' AS description",
			"l.name AS location",
		).
		From("daily_reports dr").
		Join("locations l ON l.id = dr.location_id").
		Where(squirrel.Eq{"dr.status": closedStatuses}).
		Where("dr.cash_actual IS NOT NULL").
		OrderBy("dr.report_date DESC")
}

// PaymentEntries returns one entry per payment line on the account,
// described by the payment method name.
func (r *Repo) PaymentEntries(ctx context.Context, accountID id.ID) ([]*ledger.Entry, error) {
	return r.entries(ctx, r.paymentEntriesQuery(accountID))
}

func (r *Repo) paymentEntriesQuery(accountID id.ID) squirrel.SelectBuilder {
	return r.builder().
		Select(
			"dr.report_date AS entry_date",
			"dr.id AS report_id",
			"p.net_amount AS amount",
			"m.name AS description",
			"l.name AS location",
		).
		From("report_payments p").
		Join("daily_reports dr ON dr.id = p.report_id").
		Join("locations l ON l.id = dr.location_id").
		Join("payment_methods m ON m.id = p.payment_method_id").
		Where(squirrel.Eq{"p.account_id": accountID}).
		OrderBy("dr.report_date DESC")
}

// IncomeEntries returns one entry per income line on the account.
func (r *Repo) IncomeEntries(ctx context.Context, accountID id.ID) ([]*ledger.Entry, error) {
	return r.entries(ctx, r.lineEntriesQuery("non_sales_income", "categories", "non-sales income", accountID))
}

// ExpenseEntries returns one entry per expense line on the account.
func (r *Repo) ExpenseEntries(ctx context.Context, accountID id.ID) ([]*ledger.Entry, error) {
	return r.entries(ctx, r.lineEntriesQuery("report_expenses", "expense_categories", "expense", accountID))
}

func (r *Repo) lineEntriesQuery(table, categoryTable, fallback string, accountID id.ID) squirrel.SelectBuilder {
	return r.builder().
		Select(
			"dr.report_date AS entry_date",
			"dr.id AS report_id",
			"t.amount AS amount",
			fmt.Sprintf("COALESCE(NULLIF(t.description, ''), c.name, '%s') AS description", fallback),
			"l.name AS location",
		).
		From(table + " t").
		Join("daily_reports dr ON dr.id = t.report_id").
		Join("locations l ON l.id = dr.location_id").
		LeftJoin(categoryTable + " c ON c.id = t.category_id").
		Where(squirrel.Eq{"t.account_id": accountID}).
		OrderBy("dr.report_date DESC")
}

func (r *Repo) entries(ctx context.Context, q squirrel.SelectBuilder) ([]*ledger.Entry, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*ledger.Entry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("select entries: %w", err)
	}
	return items, nil
}
