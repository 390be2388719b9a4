// Package account provides the Account catalog.
// Accounts are the money destinations reports post into: the physical
// cash drawer and bank/settlement accounts for card and online payments.
package account

import (
	"context"

	"kassa/internal/core/apperror"
	"kassa/internal/core/entity"
)

// Type defines how balances for the account are derived.
type Type string

const (
	// TypeCash balances come from counted cash on closed reports.
	TypeCash Type = "cash"

	// TypeBank balances come from net payment amounts, incomes and expenses.
	TypeBank Type = "bank"
)

// DefaultCurrency is applied when an account is created without one.
const DefaultCurrency = "UZS"

// Account represents a money destination (cash drawer or bank account).
type Account struct {
	entity.Catalog

	// Type selects the balance derivation rule
	Type Type `db:"account_type" json:"type"`

	// Currency is an ISO-ish currency code, informational only
	Currency string `db:"currency" json:"currency"`

	// Description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewAccount creates a new Account with required fields.
func NewAccount(name string, accType Type) *Account {
	return &Account{
		Catalog:  entity.NewCatalog(name),
		Type:     accType,
		Currency: DefaultCurrency,
	}
}

// Validate implements entity.Validatable.
func (a *Account) Validate(ctx context.Context) error {
	if err := a.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidType(a.Type) {
		return apperror.NewValidation("invalid account type").
			WithDetail("field", "type").
			WithDetail("value", string(a.Type))
	}

	if a.Currency == "" {
		a.Currency = DefaultCurrency
	}

	return nil
}

// IsCash reports whether the account holds physical cash.
func (a *Account) IsCash() bool {
	return a.Type == TypeCash
}

func isValidType(t Type) bool {
	switch t {
	case TypeCash, TypeBank:
		return true
	}
	return false
}
