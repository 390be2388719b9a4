package report

import (
	"context"
	"time"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/core/tx"
	"kassa/internal/core/types"
	"kassa/internal/domain/catalogs/paymethod"
	"kassa/pkg/logger"
)

// LocationChecker verifies that a location exists.
// Satisfied by location.Service.
type LocationChecker interface {
	Exists(ctx context.Context, locationID id.ID) (bool, error)
}

// MethodSource resolves payment methods for commission snapshots.
// Satisfied by paymethod.Service.
type MethodSource interface {
	GetByID(ctx context.Context, methodID id.ID) (*paymethod.PaymentMethod, error)
}

// Archiver stores an immutable snapshot of a report when it closes.
// Satisfied by the postgres archive store; a no-op implementation is
// used when archiving is disabled.
type Archiver interface {
	ArchiveReport(ctx context.Context, details *Details) error
}

// NopArchiver discards snapshots.
type NopArchiver struct{}

// ArchiveReport implements Archiver.
func (NopArchiver) ArchiveReport(context.Context, *Details) error { return nil }

// Service implements the report lifecycle.
type Service struct {
	repo      Repository
	locations LocationChecker
	methods   MethodSource
	archiver  Archiver
	txManager tx.Manager
}

// NewService creates the report service.
func NewService(
	repo Repository,
	locations LocationChecker,
	methods MethodSource,
	archiver Archiver,
	txManager tx.Manager,
) *Service {
	if archiver == nil {
		archiver = NopArchiver{}
	}
	return &Service{
		repo:      repo,
		locations: locations,
		methods:   methods,
		archiver:  archiver,
		txManager: txManager,
	}
}

// --- Inputs ---

// PaymentInput is one sales line as submitted by the cashier.
type PaymentInput struct {
	MethodID id.ID
	Amount   types.Money
}

// MoneyLineInput is one income or expense line as submitted.
type MoneyLineInput struct {
	CategoryID  *id.ID
	AccountID   id.ID
	Amount      types.Money
	Description *string
}

// CreateInput is the full end-of-shift submission.
type CreateInput struct {
	Date       time.Time
	LocationID id.ID
	TotalSales types.Money
	CreatedBy  *id.ID
	Notes      *string

	Payments []PaymentInput
	Incomes  []MoneyLineInput
	Expenses []MoneyLineInput

	// CashActual, when positive, closes the report in the same transaction
	CashActual *types.Money
}

// --- Lifecycle ---

// Create records a full daily report atomically: header, every usable
// line, and the close transition when counted cash is submitted.
// A second report for the same (date, location) fails with DUPLICATE_REPORT.
func (s *Service) Create(ctx context.Context, in CreateInput) (*Report, error) {
	r := NewReport(in.Date, in.LocationID, in.TotalSales, in.CreatedBy)
	r.Notes = in.Notes
	if err := r.Validate(ctx); err != nil {
		return nil, err
	}

	ok, err := s.locations.Exists(ctx, in.LocationID)
	if err != nil {
		return nil, apperror.NewDatabase(err)
	}
	if !ok {
		return nil, apperror.NewNotFound("location", in.LocationID.String())
	}

	// Pre-check for a friendlier error; the unique constraint still
	// backs this up under concurrent submissions.
	if existing, err := s.repo.GetByDateLocation(ctx, r.ReportDate, in.LocationID); err == nil && existing != nil {
		return nil, apperror.NewDuplicateReport(r.ReportDate, in.LocationID.String())
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, r); err != nil {
			return err
		}

		for _, p := range in.Payments {
			if _, err := s.appendPayment(ctx, r, p); err != nil {
				return err
			}
		}
		for _, line := range in.Incomes {
			if _, err := s.appendMoneyLine(ctx, r, line, s.repo.InsertIncome); err != nil {
				return err
			}
		}
		for _, line := range in.Expenses {
			if _, err := s.appendMoneyLine(ctx, r, line, s.repo.InsertExpense); err != nil {
				return err
			}
		}

		if in.CashActual != nil && in.CashActual.IsPositive() {
			return s.closeLocked(ctx, r, *in.CashActual)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "daily report created",
		"report_id", r.ID.String(),
		"date", r.ReportDate.Format("2006-01-02"),
		"location_id", r.LocationID.String(),
		"status", string(r.Status))
	return r, nil
}

// AddPayment appends a payment line to an open report.
func (s *Service) AddPayment(ctx context.Context, reportID id.ID, in PaymentInput) (*PaymentLine, error) {
	r, err := s.getOpen(ctx, reportID)
	if err != nil {
		return nil, err
	}

	var line *PaymentLine
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		line, err = s.appendPayment(ctx, r, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, apperror.NewValidation("payment line was not accepted").
			WithDetail("method_id", in.MethodID.String()).
			WithDetail("amount", in.Amount.String())
	}
	return line, nil
}

// AddIncome appends a non-sales income line to an open report.
func (s *Service) AddIncome(ctx context.Context, reportID id.ID, in MoneyLineInput) (*MoneyLine, error) {
	return s.addMoneyLine(ctx, reportID, in, s.repo.InsertIncome)
}

// AddExpense appends an expense line to an open report.
func (s *Service) AddExpense(ctx context.Context, reportID id.ID, in MoneyLineInput) (*MoneyLine, error) {
	return s.addMoneyLine(ctx, reportID, in, s.repo.InsertExpense)
}

// Close transitions an open report to closed and archives a snapshot.
// Cash expected/difference are left as they are; UpdateCash fills them.
func (s *Service) Close(ctx context.Context, reportID id.ID, cashActual types.Money) (*Report, error) {
	r, err := s.getOpen(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if cashActual.IsNegative() {
		return nil, apperror.NewValidation("cash actual cannot be negative").
			WithDetail("field", "cashActual")
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.closeLocked(ctx, r, cashActual)
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// UpdateCash records counted cash against expected and the difference.
func (s *Service) UpdateCash(ctx context.Context, reportID id.ID, expected, actual types.Money, breakdown CashBreakdown) (*Report, error) {
	r, err := s.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if r.Status == StatusVerified {
		return nil, apperror.NewReportClosed(r.ID.String(), string(r.Status))
	}

	difference := actual.Sub(expected)
	if err := s.repo.UpdateCash(ctx, reportID, expected, actual, difference, breakdown); err != nil {
		return nil, err
	}

	r.CashExpected = &expected
	r.CashActual = &actual
	r.CashDifference = &difference
	r.CashBreakdown = breakdown
	return r, nil
}

// Verify transitions a closed report to verified.
func (s *Service) Verify(ctx context.Context, reportID, verifiedBy id.ID) (*Report, error) {
	r, err := s.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if r.Status != StatusClosed {
		return nil, apperror.NewConflict("only closed reports can be verified").
			WithDetail("report_id", r.ID.String()).
			WithDetail("status", string(r.Status))
	}

	now := time.Now().UTC()
	if err := s.repo.SetVerified(ctx, reportID, verifiedBy, now); err != nil {
		return nil, err
	}

	r.Status = StatusVerified
	r.VerifiedBy = &verifiedBy
	r.VerifiedAt = &now
	return r, nil
}

// --- Reads ---

// GetByID retrieves a report header.
func (s *Service) GetByID(ctx context.Context, reportID id.ID) (*Report, error) {
	r, err := s.repo.GetByID(ctx, reportID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("report", reportID.String())
		}
		return nil, err
	}
	return r, nil
}

// GetByDateLocation retrieves the header for one (date, location) pair.
func (s *Service) GetByDateLocation(ctx context.Context, date time.Time, locationID id.ID) (*Report, error) {
	r, err := s.repo.GetByDateLocation(ctx, truncateToDay(date), locationID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("report", date.Format("2006-01-02"))
		}
		return nil, err
	}
	return r, nil
}

// Details retrieves a header with all three line collections.
func (s *Service) Details(ctx context.Context, reportID id.ID) (*Details, error) {
	r, err := s.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	return s.details(ctx, r)
}

// List returns report headers sorted by date descending.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]*Report, error) {
	if filter.Limit <= 0 {
		filter.Limit = 30
	}
	return s.repo.List(ctx, filter)
}

// --- Internals ---

// appendPayment inserts one payment line with its commission snapshot.
// Non-positive amounts and unknown methods are skipped, matching how
// cashier submissions tolerate stray rows, and a nil line is returned.
func (s *Service) appendPayment(ctx context.Context, r *Report, in PaymentInput) (*PaymentLine, error) {
	if !in.Amount.IsPositive() {
		logger.Debug(ctx, "skipping non-positive payment line",
			"report_id", r.ID.String(),
			"method_id", in.MethodID.String(),
			"amount", in.Amount.String())
		return nil, nil
	}

	method, err := s.methods.GetByID(ctx, in.MethodID)
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.Warn(ctx, "skipping payment line with unknown method",
				"report_id", r.ID.String(),
				"method_id", in.MethodID.String())
			return nil, nil
		}
		return nil, err
	}

	commission, net := method.Split(in.Amount)
	line := &PaymentLine{
		ID:               id.New(),
		ReportID:         r.ID,
		PaymentMethodID:  method.ID,
		MethodName:       method.Name,
		AccountID:        method.DefaultAccountID,
		Amount:           in.Amount,
		CommissionAmount: commission,
		NetAmount:        net,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.repo.InsertPayment(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

type moneyInsert func(ctx context.Context, line *MoneyLine) error

func (s *Service) appendMoneyLine(ctx context.Context, r *Report, in MoneyLineInput, insert moneyInsert) (*MoneyLine, error) {
	if !in.Amount.IsPositive() {
		logger.Debug(ctx, "skipping non-positive money line",
			"report_id", r.ID.String(),
			"amount", in.Amount.String())
		return nil, nil
	}
	if id.IsNil(in.AccountID) {
		return nil, apperror.NewValidation("account is required").
			WithDetail("field", "accountId")
	}

	line := &MoneyLine{
		ID:          id.New(),
		ReportID:    r.ID,
		CategoryID:  in.CategoryID,
		AccountID:   in.AccountID,
		Amount:      in.Amount,
		Description: in.Description,
		CreatedAt:   time.Now().UTC(),
	}
	if err := insert(ctx, line); err != nil {
		return nil, err
	}
	return line, nil
}

func (s *Service) addMoneyLine(ctx context.Context, reportID id.ID, in MoneyLineInput, insert moneyInsert) (*MoneyLine, error) {
	r, err := s.getOpen(ctx, reportID)
	if err != nil {
		return nil, err
	}

	var line *MoneyLine
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		line, err = s.appendMoneyLine(ctx, r, in, insert)
		return err
	})
	if err != nil {
		return nil, err
	}
	if line == nil {
		return nil, apperror.NewValidation("amount must be positive").
			WithDetail("field", "amount").
			WithDetail("value", in.Amount.String())
	}
	return line, nil
}

func (s *Service) getOpen(ctx context.Context, reportID id.ID) (*Report, error) {
	r, err := s.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := r.EnsureOpen(); err != nil {
		return nil, err
	}
	return r, nil
}

// closeLocked performs the close transition inside the caller's transaction.
func (s *Service) closeLocked(ctx context.Context, r *Report, cashActual types.Money) error {
	now := time.Now().UTC()
	if err := s.repo.SetClosed(ctx, r.ID, &cashActual, now); err != nil {
		return err
	}
	r.Status = StatusClosed
	r.CashActual = &cashActual
	r.ClosedAt = &now

	details, err := s.details(ctx, r)
	if err != nil {
		return err
	}
	if err := s.archiver.ArchiveReport(ctx, details); err != nil {
		// Archive failures must not lose the cashier's submission.
		logger.Error(ctx, "report archive failed",
			"report_id", r.ID.String(),
			"error", err)
	}
	return nil
}

func (s *Service) details(ctx context.Context, r *Report) (*Details, error) {
	payments, err := s.repo.Payments(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	incomes, err := s.repo.Incomes(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repo.Expenses(ctx, r.ID)
	if err != nil {
		return nil, err
	}
	return &Details{
		Report:   *r,
		Payments: payments,
		Incomes:  incomes,
		Expenses: expenses,
	}, nil
}
