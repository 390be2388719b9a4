// Package expensecat provides the flat ExpenseCategory catalog shown
// to cashiers when recording an expense from the drawer.
package expensecat

import (
	"context"

	"kassa/internal/core/entity"
)

// ExpenseCategory is a flat expense classifier for the cashier UI.
type ExpenseCategory struct {
	entity.Catalog

	// Description
	Description *string `db:"description" json:"description,omitempty"`
}

// NewExpenseCategory creates a new ExpenseCategory.
func NewExpenseCategory(name string) *ExpenseCategory {
	return &ExpenseCategory{
		Catalog: entity.NewCatalog(name),
	}
}

// Validate implements entity.Validatable.
func (e *ExpenseCategory) Validate(ctx context.Context) error {
	return e.Catalog.Validate(ctx)
}
