package ledger

import (
	"context"

	"kassa/internal/core/id"
	"kassa/internal/core/types"
)

// Repository aggregates report rows into sums and history streams.
// Cash counts come from closed and verified reports only; payment,
// income and expense lines contribute from the moment they are recorded,
// whatever the report status.
type Repository interface {
	// SumClosedCash sums counted cash over all closed reports.
	SumClosedCash(ctx context.Context) (types.Money, error)

	// SumPaymentsNet sums net payment amounts credited to the account.
	SumPaymentsNet(ctx context.Context, accountID id.ID) (types.Money, error)

	// SumIncome sums non-sales income lines on the account.
	SumIncome(ctx context.Context, accountID id.ID) (types.Money, error)

	// SumExpenses sums expense lines on the account.
	SumExpenses(ctx context.Context, accountID id.ID) (types.Money, error)

	// CashSalesEntries returns one entry per closed report with counted cash.
	CashSalesEntries(ctx context.Context) ([]*Entry, error)

	// PaymentEntries returns one entry per payment line on the account,
	// described by the payment method name.
	PaymentEntries(ctx context.Context, accountID id.ID) ([]*Entry, error)

	// IncomeEntries returns one entry per income line on the account.
	IncomeEntries(ctx context.Context, accountID id.ID) ([]*Entry, error)

	// ExpenseEntries returns one entry per expense line on the account.
	ExpenseEntries(ctx context.Context, accountID id.ID) ([]*Entry, error)
}
