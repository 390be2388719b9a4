package ledger

import (
	"context"
	"sort"

	"kassa/internal/core/apperror"
	"kassa/internal/core/id"
	"kassa/internal/core/types"
	"kassa/internal/domain"
	"kassa/internal/domain/catalogs/account"
)

// AccountSource supplies accounts for balance and history derivation.
// Satisfied by account.Service.
type AccountSource interface {
	GetByID(ctx context.Context, accountID id.ID) (*account.Account, error)
	List(ctx context.Context, filter domain.ListFilter) (domain.ListResult[*account.Account], error)
}

// BalanceOptions narrows balance listings.
type BalanceOptions struct {
	// IncludeInactive lists balances for deactivated accounts too
	IncludeInactive bool
}

// Service derives balances and histories per account type.
type Service struct {
	repo     Repository
	accounts AccountSource

	strategies map[account.Type]strategy
}

// strategy is one balance/history derivation rule.
type strategy interface {
	balance(ctx context.Context, acc *account.Account) (*AccountBalance, error)
	salesEntries(ctx context.Context, acc *account.Account) ([]*Entry, error)
}

// NewService creates the ledger service.
func NewService(repo Repository, accounts AccountSource) *Service {
	return &Service{
		repo:     repo,
		accounts: accounts,
		strategies: map[account.Type]strategy{
			account.TypeCash: cashStrategy{repo: repo},
			account.TypeBank: bankStrategy{repo: repo},
		},
	}
}

// Balances computes the balance of every account.
func (s *Service) Balances(ctx context.Context, opts BalanceOptions) ([]*AccountBalance, error) {
	filter := domain.DefaultListFilter()
	filter.IncludeInactive = opts.IncludeInactive
	filter.OrderBy = "account_type, name"
	filter.Limit = 0

	res, err := s.accounts.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	balances := make([]*AccountBalance, 0, len(res.Items))
	for _, acc := range res.Items {
		b, err := s.balanceFor(ctx, acc)
		if err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, nil
}

// AccountBalance computes the balance of one account, active or not.
func (s *Service) AccountBalance(ctx context.Context, accountID id.ID) (*AccountBalance, error) {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	return s.balanceFor(ctx, acc)
}

// AccountHistory returns the merged transaction feed of one account,
// newest first. The primary stream depends on the account type; income
// and expense lines are appended for both types.
func (s *Service) AccountHistory(ctx context.Context, accountID id.ID) ([]*Entry, error) {
	acc, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	strat, err := s.strategyFor(acc)
	if err != nil {
		return nil, err
	}

	entries, err := strat.salesEntries(ctx, acc)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Operation = OperationIn
	}

	incomes, err := s.repo.IncomeEntries(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, e := range incomes {
		e.Operation = OperationIn
		entries = append(entries, e)
	}

	expenses, err := s.repo.ExpenseEntries(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, e := range expenses {
		e.Operation = OperationOut
		entries = append(entries, e)
	}

	// Stable keeps same-day entries in stream order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date.After(entries[j].Date)
	})
	return entries, nil
}

func (s *Service) balanceFor(ctx context.Context, acc *account.Account) (*AccountBalance, error) {
	strat, err := s.strategyFor(acc)
	if err != nil {
		return nil, err
	}
	return strat.balance(ctx, acc)
}

func (s *Service) strategyFor(acc *account.Account) (strategy, error) {
	strat, ok := s.strategies[acc.Type]
	if !ok {
		return nil, apperror.NewInternal(nil).
			WithDetail("reason", "no ledger strategy for account type").
			WithDetail("type", string(acc.Type))
	}
	return strat, nil
}

// --- Cash accounts ---

// cashStrategy: the drawer balance is the counted cash over all closed
// reports, regardless of which account income and expense lines point at.
type cashStrategy struct {
	repo Repository
}

func (c cashStrategy) balance(ctx context.Context, acc *account.Account) (*AccountBalance, error) {
	total, err := c.repo.SumClosedCash(ctx)
	if err != nil {
		return nil, err
	}
	return &AccountBalance{
		Account:        acc,
		Balance:        total,
		SalesIncome:    total,
		NonSalesIncome: types.Zero(),
		Expenses:       types.Zero(),
	}, nil
}

func (c cashStrategy) salesEntries(ctx context.Context, _ *account.Account) ([]*Entry, error) {
	return c.repo.CashSalesEntries(ctx)
}

// --- Bank accounts ---

// bankStrategy: net payments in, plus income lines, minus expense lines.
type bankStrategy struct {
	repo Repository
}

func (b bankStrategy) balance(ctx context.Context, acc *account.Account) (*AccountBalance, error) {
	sales, err := b.repo.SumPaymentsNet(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	income, err := b.repo.SumIncome(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	expenses, err := b.repo.SumExpenses(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	return &AccountBalance{
		Account:        acc,
		Balance:        sales.Add(income).Sub(expenses),
		SalesIncome:    sales,
		NonSalesIncome: income,
		Expenses:       expenses,
	}, nil
}

func (b bankStrategy) salesEntries(ctx context.Context, acc *account.Account) ([]*Entry, error) {
	return b.repo.PaymentEntries(ctx, acc.ID)
}
