// Package ledger derives account balances and transaction histories
// from daily report rows. Nothing here writes; the daily report is
// the single source of truth and the ledger is a read model over it.
package ledger

import (
	"time"

	"kassa/internal/core/id"
	"kassa/internal/core/types"
	"kassa/internal/domain/catalogs/account"
)

// Operation marks the direction of a history entry.
type Operation string

const (
	OperationIn  Operation = "+"
	OperationOut Operation = "-"
)

// AccountBalance is the derived balance of one account with its breakdown.
type AccountBalance struct {
	Account *account.Account `json:"account"`

	// Balance is the bottom line per the account type's rule
	Balance types.Money `json:"balance"`

	// SalesIncome is money that arrived through daily sales
	SalesIncome types.Money `json:"salesIncome"`

	// NonSalesIncome is money recorded as non-sales income lines
	NonSalesIncome types.Money `json:"nonSalesIncome"`

	// Expenses is money recorded as expense lines
	Expenses types.Money `json:"expenses"`
}

// Entry is one row of an account's transaction history.
type Entry struct {
	Date        time.Time   `db:"entry_date" json:"date"`
	ReportID    id.ID       `db:"report_id" json:"reportId"`
	Amount      types.Money `db:"amount" json:"amount"`
	Description string      `db:"description" json:"description"`
	Operation   Operation   `db:"-" json:"operation"`

	// Location is the name of the report's retail point
	Location string `db:"location" json:"location"`
}
