package dto

import (
	"kassa/internal/core/types"
	"kassa/internal/domain/ledger"
)

// AccountBalanceResponse is one account's derived balance.
type AccountBalanceResponse struct {
	Account        AccountResponse `json:"account"`
	Balance        types.Money     `json:"balance"`
	SalesIncome    types.Money     `json:"salesIncome"`
	NonSalesIncome types.Money     `json:"nonSalesIncome"`
	Expenses       types.Money     `json:"expenses"`
}

// FromBalance creates the response from the model.
func FromBalance(b *ledger.AccountBalance) AccountBalanceResponse {
	return AccountBalanceResponse{
		Account:        FromAccount(b.Account),
		Balance:        b.Balance,
		SalesIncome:    b.SalesIncome,
		NonSalesIncome: b.NonSalesIncome,
		Expenses:       b.Expenses,
	}
}

// FromBalances converts a listing.
func FromBalances(items []*ledger.AccountBalance) []AccountBalanceResponse {
	out := make([]AccountBalanceResponse, 0, len(items))
	for _, b := range items {
		out = append(out, FromBalance(b))
	}
	return out
}

// HistoryEntryResponse is one row of an account's transaction feed.
type HistoryEntryResponse struct {
	Date        string      `json:"date"`
	ReportID    string      `json:"reportId"`
	Amount      types.Money `json:"amount"`
	Description string      `json:"description"`
	Operation   string      `json:"operation"`
	Location    string      `json:"location"`
}

// FromHistory converts an account history.
func FromHistory(items []*ledger.Entry) []HistoryEntryResponse {
	out := make([]HistoryEntryResponse, 0, len(items))
	for _, e := range items {
		out = append(out, HistoryEntryResponse{
			Date:        e.Date.Format(dateLayout),
			ReportID:    e.ReportID.String(),
			Amount:      e.Amount,
			Description: e.Description,
			Operation:   string(e.Operation),
			Location:    e.Location,
		})
	}
	return out
}
