package catalog_repo

import (
	"kassa/internal/domain/catalogs/expensecat"
	"kassa/internal/infrastructure/storage/postgres"
)

// ExpenseCategoryRepo implements expensecat.Repository.
type ExpenseCategoryRepo struct {
	*BaseCatalogRepo[*expensecat.ExpenseCategory]
}

// NewExpenseCategoryRepo creates the repository for the expense_categories table.
func NewExpenseCategoryRepo(txm *postgres.TxManager) *ExpenseCategoryRepo {
	return &ExpenseCategoryRepo{
		BaseCatalogRepo: NewBaseCatalogRepo(
			txm,
			"expense_categories",
			postgres.ExtractDBColumns[expensecat.ExpenseCategory](),
			func() *expensecat.ExpenseCategory { return &expensecat.ExpenseCategory{} },
		),
	}
}
