package report

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/core/types"
	"kassa/internal/domain/catalogs/paymethod"
)

// --- Fakes ---

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRepo struct {
	reports  map[id.ID]*Report
	payments map[id.ID][]*PaymentLine
	incomes  map[id.ID][]*MoneyLine
	expenses map[id.ID][]*MoneyLine
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reports:  make(map[id.ID]*Report),
		payments: make(map[id.ID][]*PaymentLine),
		incomes:  make(map[id.ID][]*MoneyLine),
		expenses: make(map[id.ID][]*MoneyLine),
	}
}

func (f *fakeRepo) Create(_ context.Context, r *Report) error {
	for _, existing := range f.reports {
		if existing.ReportDate.Equal(r.ReportDate) && existing.LocationID == r.LocationID {
			return apperror.NewDuplicateReport(r.ReportDate, r.LocationID.String())
		}
	}
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(_ context.Context, reportID id.ID) (*Report, error) {
	r, ok := f.reports[reportID]
	if !ok {
		return nil, apperror.NewNotFound("report", reportID.String())
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) GetByDateLocation(_ context.Context, date time.Time, locationID id.ID) (*Report, error) {
	for _, r := range f.reports {
		if r.ReportDate.Equal(date) && r.LocationID == locationID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, apperror.NewNotFound("report", date.Format("2006-01-02"))
}

func (f *fakeRepo) List(_ context.Context, filter ListFilter) ([]*Report, error) {
	var out []*Report
	for _, r := range f.reports {
		cp := *r
		out = append(out, &cp)
	}
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (f *fakeRepo) InsertPayment(_ context.Context, line *PaymentLine) error {
	f.payments[line.ReportID] = append(f.payments[line.ReportID], line)
	return nil
}

func (f *fakeRepo) InsertIncome(_ context.Context, line *MoneyLine) error {
	f.incomes[line.ReportID] = append(f.incomes[line.ReportID], line)
	return nil
}

func (f *fakeRepo) InsertExpense(_ context.Context, line *MoneyLine) error {
	f.expenses[line.ReportID] = append(f.expenses[line.ReportID], line)
	return nil
}

func (f *fakeRepo) Payments(_ context.Context, reportID id.ID) ([]*PaymentLine, error) {
	return f.payments[reportID], nil
}

func (f *fakeRepo) Incomes(_ context.Context, reportID id.ID) ([]*MoneyLine, error) {
	return f.incomes[reportID], nil
}

func (f *fakeRepo) Expenses(_ context.Context, reportID id.ID) ([]*MoneyLine, error) {
	return f.expenses[reportID], nil
}

func (f *fakeRepo) UpdateCash(_ context.Context, reportID id.ID, expected, actual, difference types.Money, breakdown CashBreakdown) error {
	r, ok := f.reports[reportID]
	if !ok {
		return apperror.NewNotFound("report", reportID.String())
	}
	r.CashExpected = &expected
	r.CashActual = &actual
	r.CashDifference = &difference
	r.CashBreakdown = breakdown
	return nil
}

func (f *fakeRepo) SetClosed(_ context.Context, reportID id.ID, cashActual *types.Money, closedAt time.Time) error {
	r, ok := f.reports[reportID]
	if !ok {
		return apperror.NewNotFound("report", reportID.String())
	}
	r.Status = StatusClosed
	r.CashActual = cashActual
	r.ClosedAt = &closedAt
	return nil
}

func (f *fakeRepo) SetVerified(_ context.Context, reportID id.ID, verifiedBy id.ID, verifiedAt time.Time) error {
	r, ok := f.reports[reportID]
	if !ok {
		return apperror.NewNotFound("report", reportID.String())
	}
	r.Status = StatusVerified
	r.VerifiedBy = &verifiedBy
	r.VerifiedAt = &verifiedAt
	return nil
}

type fakeLocations struct {
	exists bool
}

func (f fakeLocations) Exists(context.Context, id.ID) (bool, error) {
	return f.exists, nil
}

type fakeMethods struct {
	methods map[id.ID]*paymethod.PaymentMethod
}

func (f fakeMethods) GetByID(_ context.Context, methodID id.ID) (*paymethod.PaymentMethod, error) {
	m, ok := f.methods[methodID]
	if !ok {
		return nil, apperror.NewNotFound("payment method", methodID.String())
	}
	return m, nil
}

type captureArchiver struct {
	calls []*Details
	err   error
}

func (a *captureArchiver) ArchiveReport(_ context.Context, d *Details) error {
	a.calls = append(a.calls, d)
	return a.err
}

// --- Fixtures ---

type fixture struct {
	repo     *fakeRepo
	methods  fakeMethods
	archiver *captureArchiver
	service  *Service

	accountID id.ID
	terminal  *paymethod.PaymentMethod
	payme     *paymethod.PaymentMethod
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	accountID := id.New()
	terminal := paymethod.NewPaymentMethod("Terminal", paymethod.TypeTerminal, accountID, types.MustMoney("0.2"))
	payme := paymethod.NewPaymentMethod("Payme", paymethod.TypeOnline, accountID, types.MustMoney("1"))

	f := &fixture{
		repo: newFakeRepo(),
		methods: fakeMethods{methods: map[id.ID]*paymethod.PaymentMethod{
			terminal.ID: terminal,
			payme.ID:    payme,
		}},
		archiver:  &captureArchiver{},
		accountID: accountID,
		terminal:  terminal,
		payme:     payme,
	}
	f.service = NewService(f.repo, fakeLocations{exists: true}, f.methods, f.archiver, fakeTxManager{})
	return f
}

func (f *fixture) createOpen(t *testing.T) *Report {
	t.Helper()
	r, err := f.service.Create(context.Background(), CreateInput{
		Date:       time.Date(2026, 3, 14, 21, 30, 0, 0, time.UTC),
		LocationID: id.New(),
		TotalSales: types.MustMoney("500000"),
	})
	require.NoError(t, err)
	return r
}

// --- Tests ---

func TestCreate_FullSubmission(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cash := types.MustMoney("150000")
	r, err := f.service.Create(ctx, CreateInput{
		Date:       time.Date(2026, 3, 14, 23, 50, 0, 0, time.UTC),
		LocationID: id.New(),
		TotalSales: types.MustMoney("500000"),
		Payments: []PaymentInput{
			{MethodID: f.terminal.ID, Amount: types.MustMoney("200000")},
			{MethodID: f.payme.ID, Amount: types.MustMoney("150000")},
			{MethodID: f.payme.ID, Amount: types.Zero()}, // stray row, skipped
			{MethodID: id.New(), Amount: types.MustMoney("999")}, // unknown method, skipped
		},
		Incomes: []MoneyLineInput{
			{AccountID: f.accountID, Amount: types.MustMoney("30000")},
		},
		Expenses: []MoneyLineInput{
			{AccountID: f.accountID, Amount: types.MustMoney("12000")},
		},
		CashActual: &cash,
	})
	require.NoError(t, err)

	assert.Equal(t, StatusClosed, r.Status)
	assert.NotNil(t, r.ClosedAt)

	// Date is normalized to the UTC day
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), r.ReportDate)

	// Stray rows are dropped, valid ones kept
	require.Len(t, f.repo.payments[r.ID], 2)
	require.Len(t, f.repo.incomes[r.ID], 1)
	require.Len(t, f.repo.expenses[r.ID], 1)

	// Commission snapshot reassembles exactly
	for _, line := range f.repo.payments[r.ID] {
		assert.True(t, line.CommissionAmount.Add(line.NetAmount).Equal(line.Amount),
			"line %s: %s + %s != %s", line.MethodName, line.CommissionAmount, line.NetAmount, line.Amount)
	}

	terminalLine := f.repo.payments[r.ID][0]
	assert.True(t, types.MustMoney("400").Equal(terminalLine.CommissionAmount))
	assert.True(t, types.MustMoney("199600").Equal(terminalLine.NetAmount))
	assert.Equal(t, f.accountID, terminalLine.AccountID)

	// Closing archived a snapshot with all the lines
	require.Len(t, f.archiver.calls, 1)
	assert.Len(t, f.archiver.calls[0].Payments, 2)
}

func TestCreate_WithoutCashStaysOpen(t *testing.T) {
	f := newFixture(t)

	r := f.createOpen(t)

	assert.Equal(t, StatusOpen, r.Status)
	assert.Nil(t, r.ClosedAt)
	assert.Empty(t, f.archiver.calls)
}

func TestCreate_DuplicateDateLocation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	locationID := id.New()
	in := CreateInput{
		Date:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		LocationID: locationID,
		TotalSales: types.MustMoney("100000"),
	}

	_, err := f.service.Create(ctx, in)
	require.NoError(t, err)

	_, err = f.service.Create(ctx, in)
	require.Error(t, err)
	assert.True(t, apperror.IsDuplicateReport(err))
}

func TestCreate_UnknownLocation(t *testing.T) {
	f := newFixture(t)
	f.service = NewService(f.repo, fakeLocations{exists: false}, f.methods, f.archiver, fakeTxManager{})

	_, err := f.service.Create(context.Background(), CreateInput{
		Date:       time.Now(),
		LocationID: id.New(),
		TotalSales: types.Zero(),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCreate_NegativeTotalSales(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Create(context.Background(), CreateInput{
		Date:       time.Now(),
		LocationID: id.New(),
		TotalSales: types.MustMoney("-1"),
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestAddPayment_OpenReport(t *testing.T) {
	f := newFixture(t)
	r := f.createOpen(t)

	line, err := f.service.AddPayment(context.Background(), r.ID, PaymentInput{
		MethodID: f.payme.ID,
		Amount:   types.MustMoney("75000"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Payme", line.MethodName)
	assert.True(t, types.MustMoney("750").Equal(line.CommissionAmount))
	assert.True(t, types.MustMoney("74250").Equal(line.NetAmount))
}

func TestAddPayment_ClosedReport(t *testing.T) {
	f := newFixture(t)
	r := f.createOpen(t)

	_, err := f.service.Close(context.Background(), r.ID, types.MustMoney("100000"))
	require.NoError(t, err)

	_, err = f.service.AddPayment(context.Background(), r.ID, PaymentInput{
		MethodID: f.payme.ID,
		Amount:   types.MustMoney("1000"),
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeReportClosed, appErr.Code)
}

func TestAddPayment_NonPositiveAmount(t *testing.T) {
	f := newFixture(t)
	r := f.createOpen(t)

	_, err := f.service.AddPayment(context.Background(), r.ID, PaymentInput{
		MethodID: f.payme.ID,
		Amount:   types.Zero(),
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestAddIncome_RequiresAccount(t *testing.T) {
	f := newFixture(t)
	r := f.createOpen(t)

	_, err := f.service.AddIncome(context.Background(), r.ID, MoneyLineInput{
		Amount: types.MustMoney("5000"),
	})
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestClose_NegativeCash(t *testing.T) {
	f := newFixture(t)
	r := f.createOpen(t)

	_, err := f.service.Close(context.Background(), r.ID, types.MustMoney("-100"))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestClose_ArchiveFailureDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.archiver.err = errors.New("storage unavailable")
	r := f.createOpen(t)

	closed, err := f.service.Close(context.Background(), r.ID, types.MustMoney("50000"))
	require.NoError(t, err)
	assert.Equal(t, StatusClosed, closed.Status)
}

func TestVerify(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	verifier := id.New()

	r := f.createOpen(t)

	// Open reports cannot be verified
	_, err := f.service.Verify(ctx, r.ID, verifier)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)

	_, err = f.service.Close(ctx, r.ID, types.MustMoney("10000"))
	require.NoError(t, err)

	verified, err := f.service.Verify(ctx, r.ID, verifier)
	require.NoError(t, err)
	assert.Equal(t, StatusVerified, verified.Status)
	require.NotNil(t, verified.VerifiedBy)
	assert.Equal(t, verifier, *verified.VerifiedBy)

	// Verification is final
	_, err = f.service.Verify(ctx, r.ID, verifier)
	require.Error(t, err)
}

func TestUpdateCash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.createOpen(t)

	updated, err := f.service.UpdateCash(ctx, r.ID,
		types.MustMoney("120000"), types.MustMoney("118500"),
		CashBreakdown{"100000": 1, "10000": 1, "5000": 1, "1000": 3, "500": 1})
	require.NoError(t, err)

	require.NotNil(t, updated.CashDifference)
	assert.True(t, types.MustMoney("-1500").Equal(*updated.CashDifference))
}

func TestUpdateCash_VerifiedReportRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	r := f.createOpen(t)

	_, err := f.service.Close(ctx, r.ID, types.MustMoney("10000"))
	require.NoError(t, err)
	_, err = f.service.Verify(ctx, r.ID, id.New())
	require.NoError(t, err)

	_, err = f.service.UpdateCash(ctx, r.ID, types.Zero(), types.Zero(), nil)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeReportClosed, appErr.Code)
}
