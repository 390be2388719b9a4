package ledger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/core/types"
	"kassa/internal/domain"
	"kassa/internal/domain/catalogs/account"
)

// --- Fakes ---

type fakeLedgerRepo struct {
	closedCash types.Money

	paymentsNet map[id.ID]types.Money
	income      map[id.ID]types.Money
	expenses    map[id.ID]types.Money

	cashEntries    []*Entry
	paymentEntries map[id.ID][]*Entry
	incomeEntries  map[id.ID][]*Entry
	expenseEntries map[id.ID][]*Entry
}

func newFakeLedgerRepo() *fakeLedgerRepo {
	return &fakeLedgerRepo{
		closedCash:     types.Zero(),
		paymentsNet:    make(map[id.ID]types.Money),
		income:         make(map[id.ID]types.Money),
		expenses:       make(map[id.ID]types.Money),
		paymentEntries: make(map[id.ID][]*Entry),
		incomeEntries:  make(map[id.ID][]*Entry),
		expenseEntries: make(map[id.ID][]*Entry),
	}
}

func orZero(m map[id.ID]types.Money, key id.ID) types.Money {
	if v, ok := m[key]; ok {
		return v
	}
	return types.Zero()
}

func (f *fakeLedgerRepo) SumClosedCash(context.Context) (types.Money, error) {
	return f.closedCash, nil
}

func (f *fakeLedgerRepo) SumPaymentsNet(_ context.Context, accountID id.ID) (types.Money, error) {
	return orZero(f.paymentsNet, accountID), nil
}

func (f *fakeLedgerRepo) SumIncome(_ context.Context, accountID id.ID) (types.Money, error) {
	return orZero(f.income, accountID), nil
}

func (f *fakeLedgerRepo) SumExpenses(_ context.Context, accountID id.ID) (types.Money, error) {
	return orZero(f.expenses, accountID), nil
}

func (f *fakeLedgerRepo) CashSalesEntries(context.Context) ([]*Entry, error) {
	return f.cashEntries, nil
}

func (f *fakeLedgerRepo) PaymentEntries(_ context.Context, accountID id.ID) ([]*Entry, error) {
	return f.paymentEntries[accountID], nil
}

func (f *fakeLedgerRepo) IncomeEntries(_ context.Context, accountID id.ID) ([]*Entry, error) {
	return f.incomeEntries[accountID], nil
}

func (f *fakeLedgerRepo) ExpenseEntries(_ context.Context, accountID id.ID) ([]*Entry, error) {
	return f.expenseEntries[accountID], nil
}

type fakeAccounts struct {
	accounts map[id.ID]*account.Account
}

func (f fakeAccounts) GetByID(_ context.Context, accountID id.ID) (*account.Account, error) {
	acc, ok := f.accounts[accountID]
	if !ok {
		return nil, apperror.NewNotFound("account", accountID.String())
	}
	return acc, nil
}

func (f fakeAccounts) List(_ context.Context, filter domain.ListFilter) (domain.ListResult[*account.Account], error) {
	var items []*account.Account
	for _, acc := range f.accounts {
		if !acc.IsActive && !filter.IncludeInactive {
			continue
		}
		items = append(items, acc)
	}
	return domain.ListResult[*account.Account]{
		Items:      items,
		TotalCount: int64(len(items)),
	}, nil
}

// --- Fixtures ---

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func newLedgerFixture() (*fakeLedgerRepo, *account.Account, *account.Account, *Service) {
	repo := newFakeLedgerRepo()

	cash := account.NewAccount("Cash register", account.TypeCash)
	bank := account.NewAccount("Bank account", account.TypeBank)

	accounts := fakeAccounts{accounts: map[id.ID]*account.Account{
		cash.ID: cash,
		bank.ID: bank,
	}}

	return repo, cash, bank, NewService(repo, accounts)
}

// --- Tests ---

func TestAccountBalance_Cash(t *testing.T) {
	repo, cash, _, svc := newLedgerFixture()

	repo.closedCash = types.MustMoney("450000")
	// Income and expense lines never touch the drawer balance.
	repo.income[cash.ID] = types.MustMoney("99999")
	repo.expenses[cash.ID] = types.MustMoney("88888")

	b, err := svc.AccountBalance(context.Background(), cash.ID)
	require.NoError(t, err)

	assert.True(t, types.MustMoney("450000").Equal(b.Balance))
	assert.True(t, types.MustMoney("450000").Equal(b.SalesIncome))
	assert.True(t, b.NonSalesIncome.IsZero())
	assert.True(t, b.Expenses.IsZero())
}

func TestAccountBalance_Bank(t *testing.T) {
	repo, _, bank, svc := newLedgerFixture()

	repo.paymentsNet[bank.ID] = types.MustMoney("300000")
	repo.income[bank.ID] = types.MustMoney("50000")
	repo.expenses[bank.ID] = types.MustMoney("120000")

	b, err := svc.AccountBalance(context.Background(), bank.ID)
	require.NoError(t, err)

	assert.True(t, types.MustMoney("230000").Equal(b.Balance))
	assert.True(t, types.MustMoney("300000").Equal(b.SalesIncome))
	assert.True(t, types.MustMoney("50000").Equal(b.NonSalesIncome))
	assert.True(t, types.MustMoney("120000").Equal(b.Expenses))
}

func TestAccountBalance_UnknownAccount(t *testing.T) {
	_, _, _, svc := newLedgerFixture()

	_, err := svc.AccountBalance(context.Background(), id.New())
	require.Error(t, err)
	assert.True(t, apperror.IsNotFound(err))
}

func TestBalances(t *testing.T) {
	repo, cash, bank, svc := newLedgerFixture()

	repo.closedCash = types.MustMoney("100000")
	repo.paymentsNet[bank.ID] = types.MustMoney("200000")

	balances, err := svc.Balances(context.Background(), BalanceOptions{})
	require.NoError(t, err)
	require.Len(t, balances, 2)

	byID := make(map[id.ID]*AccountBalance, len(balances))
	for _, b := range balances {
		byID[b.Account.ID] = b
	}
	assert.True(t, types.MustMoney("100000").Equal(byID[cash.ID].Balance))
	assert.True(t, types.MustMoney("200000").Equal(byID[bank.ID].Balance))
}

func TestBalances_InactiveAccounts(t *testing.T) {
	_, cash, _, svc := newLedgerFixture()

	cash.IsActive = false

	balances, err := svc.Balances(context.Background(), BalanceOptions{})
	require.NoError(t, err)
	assert.Len(t, balances, 1)

	balances, err = svc.Balances(context.Background(), BalanceOptions{IncludeInactive: true})
	require.NoError(t, err)
	assert.Len(t, balances, 2)

	// A deactivated account can still be inspected directly.
	b, err := svc.AccountBalance(context.Background(), cash.ID)
	require.NoError(t, err)
	assert.NotNil(t, b)
}

func TestAccountHistory_Bank(t *testing.T) {
	repo, _, bank, svc := newLedgerFixture()

	repo.paymentEntries[bank.ID] = []*Entry{
		{Date: day(12), Amount: types.MustMoney("99000"), Description: "Payme"},
		{Date: day(10), Amount: types.MustMoney("49500"), Description: "Terminal"},
	}
	repo.incomeEntries[bank.ID] = []*Entry{
		{Date: day(11), Amount: types.MustMoney("30000"), Description: "refund"},
	}
	repo.expenseEntries[bank.ID] = []*Entry{
		{Date: day(13), Amount: types.MustMoney("15000"), Description: "supplies"},
	}

	entries, err := svc.AccountHistory(context.Background(), bank.ID)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	// Newest first
	dates := []time.Time{entries[0].Date, entries[1].Date, entries[2].Date, entries[3].Date}
	assert.Equal(t, []time.Time{day(13), day(12), day(11), day(10)}, dates)

	// Operations by stream
	assert.Equal(t, OperationOut, entries[0].Operation)
	assert.Equal(t, OperationIn, entries[1].Operation)
	assert.Equal(t, OperationIn, entries[2].Operation)
	assert.Equal(t, OperationIn, entries[3].Operation)
}

func TestAccountHistory_Cash(t *testing.T) {
	repo, cash, _, svc := newLedgerFixture()

	repo.cashEntries = []*Entry{
		{Date: day(14), Amount: types.MustMoney("150000"), Description: "cash sales"},
	}
	repo.expenseEntries[cash.ID] = []*Entry{
		{Date: day(14), Amount: types.MustMoney("20000"), Description: "courier"},
	}

	entries, err := svc.AccountHistory(context.Background(), cash.ID)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Same-day entries keep stream order: sales stream first
	assert.Equal(t, "cash sales", entries[0].Description)
	assert.Equal(t, OperationIn, entries[0].Operation)
	assert.Equal(t, "courier", entries[1].Description)
	assert.Equal(t, OperationOut, entries[1].Operation)
}
