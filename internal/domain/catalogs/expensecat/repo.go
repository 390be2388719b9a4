package expensecat

import (
	"kassa/internal/domain"
)

// Repository defines the interface for ExpenseCategory persistence.
type Repository interface {
	domain.CatalogRepository[*ExpenseCategory]
}
