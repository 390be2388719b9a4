// Package report_repo provides the PostgreSQL implementation of the
// daily report repository: the header, its three line tables and the
// joined reads used by the API.
package report_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgconn"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/core/types"
	"kassa/internal/domain/report"
	"kassa/internal/infrastructure/storage/postgres"
)

// Repo implements report.Repository.
type Repo struct {
	txm *postgres.TxManager
}

// NewRepo creates the daily report repository.
func NewRepo(txm *postgres.TxManager) *Repo {
	return &Repo{txm: txm}
}

var _ report.Repository = (*Repo)(nil)

func (r *Repo) builder() squirrel.StatementBuilderType {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
}

// headerSelect joins the location name into every header read.
func (r *Repo) headerSelect() squirrel.SelectBuilder {
	return r.builder().
		Select(
			"r.id", "r.report_date", "r.location_id",
			"l.name AS location_name",
			"r.total_sales",
			"r.cash_expected", "r.cash_actual", "r.cash_difference", "r.cash_breakdown",
			"r.status",
			"r.created_by", "r.created_at", "r.closed_at",
			"r.verified_by", "r.verified_at",
			"r.notes",
		).
		From("daily_reports r").
		Join("locations l ON l.id = r.location_id")
}

// Create inserts the report header.
// The UNIQUE(report_date, location_id) constraint is mapped to
// DUPLICATE_REPORT so concurrent submissions fail cleanly.
func (r *Repo) Create(ctx context.Context, rep *report.Report) error {
	q := r.builder().
		Insert("daily_reports").
		Columns(
			"id", "report_date", "location_id", "total_sales",
			"cash_expected", "cash_actual", "cash_difference", "cash_breakdown",
			"status", "created_by", "created_at", "notes",
		).
		Values(
			rep.ID, rep.ReportDate, rep.LocationID, rep.TotalSales,
			rep.CashExpected, rep.CashActual, rep.CashDifference, rep.CashBreakdown,
			string(rep.Status), rep.CreatedBy, rep.CreatedAt, rep.Notes,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	_, err = r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewDuplicateReport(rep.ReportDate, rep.LocationID.String()).
				WithCause(err)
		}
		return fmt.Errorf("insert daily_reports: %w", err)
	}
	return nil
}

// GetByID retrieves a header with the location name joined in.
func (r *Repo) GetByID(ctx context.Context, reportID id.ID) (*report.Report, error) {
	q := r.headerSelect().Where(squirrel.Eq{"r.id": reportID})
	return r.getHeader(ctx, q, reportID.String())
}

// GetByDateLocation retrieves the header for one (date, location) pair.
func (r *Repo) GetByDateLocation(ctx context.Context, date time.Time, locationID id.ID) (*report.Report, error) {
	q := r.headerSelect().
		Where(squirrel.Eq{"r.report_date": date}).
		Where(squirrel.Eq{"r.location_id": locationID})
	return r.getHeader(ctx, q, date.Format("2006-01-02"))
}

func (r *Repo) getHeader(ctx context.Context, q squirrel.SelectBuilder, key string) (*report.Report, error) {
	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rep report.Report
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &rep, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("report", key)
		}
		return nil, fmt.Errorf("get report: %w", err)
	}
	return &rep, nil
}

// List returns headers sorted by report date descending.
func (r *Repo) List(ctx context.Context, filter report.ListFilter) ([]*report.Report, error) {
	q := r.headerSelect().
		OrderBy("r.report_date DESC", "r.created_at DESC")

	if filter.LocationID != nil {
		q = q.Where(squirrel.Eq{"r.location_id": *filter.LocationID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"r.status": string(*filter.Status)})
	}
	if filter.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"r.report_date": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"r.report_date": *filter.DateTo})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []*report.Report
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}
	return items, nil
}

// InsertPayment appends a payment line.
func (r *Repo) InsertPayment(ctx context.Context, line *report.PaymentLine) error {
	q := r.builder().
		Insert("report_payments").
		Columns(
			"id", "report_id", "payment_method_id", "account_id",
			"amount", "commission_amount", "net_amount", "created_at",
		).
		Values(
			line.ID, line.ReportID, line.PaymentMethodID, line.AccountID,
			line.Amount, line.CommissionAmount, line.NetAmount, line.CreatedAt,
		)

	return r.execInsert(ctx, q, "report_payments")
}

// InsertIncome appends a non-sales income line.
func (r *Repo) InsertIncome(ctx context.Context, line *report.MoneyLine) error {
	return r.insertMoneyLine(ctx, "non_sales_income", line)
}

// InsertExpense appends an expense line.
func (r *Repo) InsertExpense(ctx context.Context, line *report.MoneyLine) error {
	return r.insertMoneyLine(ctx, "report_expenses", line)
}

func (r *Repo) insertMoneyLine(ctx context.Context, table string, line *report.MoneyLine) error {
	q := r.builder().
		Insert(table).
		Columns("id", "report_id", "category_id", "account_id", "amount", "description", "created_at").
		Values(line.ID, line.ReportID, line.CategoryID, line.AccountID, line.Amount, line.Description, line.CreatedAt)

	return r.execInsert(ctx, q, table)
}

func (r *Repo) execInsert(ctx context.Context, q squirrel.InsertBuilder, table string) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}
	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert %s: %w", table, err)
	}
	return nil
}

// Payments returns the payment lines with method names joined in.
func (r *Repo) Payments(ctx context.Context, reportID id.ID) ([]*report.PaymentLine, error) {
	q := r.builder().
		Select(
			"p.id", "p.report_id", "p.payment_method_id",
			"m.name AS method_name",
			"p.account_id", "p.amount", "p.commission_amount", "p.net_amount",
			"p.created_at",
		).
		From("report_payments p").
		Join("payment_methods m ON m.id = p.payment_method_id").
		Where(squirrel.Eq{"p.report_id": reportID}).
		OrderBy("p.created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []*report.PaymentLine
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("select report_payments: %w", err)
	}
	return lines, nil
}

// Incomes returns the non-sales income lines with category names.
func (r *Repo) Incomes(ctx context.Context, reportID id.ID) ([]*report.MoneyLine, error) {
	return r.moneyLines(ctx, "non_sales_income", "categories", reportID)
}

// Expenses returns the expense lines with category names.
func (r *Repo) Expenses(ctx context.Context, reportID id.ID) ([]*report.MoneyLine, error) {
	return r.moneyLines(ctx, "report_expenses", "expense_categories", reportID)
}

func (r *Repo) moneyLines(ctx context.Context, table, categoryTable string, reportID id.ID) ([]*report.MoneyLine, error) {
	q := r.builder().
		Select(
			"t.id", "t.report_id", "t.category_id",
			"c.name AS category_name",
			"t.account_id", "t.amount", "t.description", "t.created_at",
		).
		From(table+" t").
		LeftJoin(categoryTable+" c ON c.id = t.category_id").
		Where(squirrel.Eq{"t.report_id": reportID}).
		OrderBy("t.created_at ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []*report.MoneyLine
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	return lines, nil
}

// UpdateCash stores the counted cash figures and breakdown.
func (r *Repo) UpdateCash(ctx context.Context, reportID id.ID, expected, actual, difference types.Money, breakdown report.CashBreakdown) error {
	q := r.builder().
		Update("daily_reports").
		Set("cash_expected", expected).
		Set("cash_actual", actual).
		Set("cash_difference", difference).
		Set("cash_breakdown", breakdown).
		Where(squirrel.Eq{"id": reportID})

	return r.execUpdate(ctx, q, reportID)
}

// SetClosed transitions the report to closed.
func (r *Repo) SetClosed(ctx context.Context, reportID id.ID, cashActual *types.Money, closedAt time.Time) error {
	q := r.builder().
		Update("daily_reports").
		Set("status", string(report.StatusClosed)).
		Set("closed_at", closedAt).
		Where(squirrel.Eq{"id": reportID}).
		Where(squirrel.Eq{"status": string(report.StatusOpen)})

	if cashActual != nil {
		q = q.Set("cash_actual", *cashActual)
	}

	return r.execUpdate(ctx, q, reportID)
}

// SetVerified transitions a closed report to verified.
func (r *Repo) SetVerified(ctx context.Context, reportID, verifiedBy id.ID, verifiedAt time.Time) error {
	q := r.builder().
		Update("daily_reports").
		Set("status", string(report.StatusVerified)).
		Set("verified_by", verifiedBy).
		Set("verified_at", verifiedAt).
		Where(squirrel.Eq{"id": reportID}).
		Where(squirrel.Eq{"status": string(report.StatusClosed)})

	return r.execUpdate(ctx, q, reportID)
}

func (r *Repo) execUpdate(ctx context.Context, q squirrel.UpdateBuilder, reportID id.ID) error {
	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	result, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update daily_reports: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperror.NewNotFound("report", reportID.String())
	}
	return nil
}
