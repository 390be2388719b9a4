package ledger_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kassa/internal/core/id"
)

// Only the cash streams look at report status: cash_actual exists once
// the drawer is counted at close. Line rows count from the moment they
// are recorded, so their queries must not filter on status.

func TestCashQueriesRestrictToClosedReports(t *testing.T) {
	r := &Repo{}

	sql, args, err := r.closedCashQuery().ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "status IN")
	assert.ElementsMatch(t, []any{"closed", "verified"}, args)

	sql, args, err = r.cashEntriesQuery().ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "dr.status IN")
	assert.Contains(t, sql, "cash_actual IS NOT NULL")
	assert.ElementsMatch(t, []any{"closed", "verified"}, args)
}

func TestLineQueriesIncludeOpenReports(t *testing.T) {
	r := &Repo{}
	accountID := id.New()

	queries := map[string]interface{ ToSql() (string, []any, error) }{
		"payments sum":    r.paymentsNetQuery(accountID),
		"income sum":      r.linesSumQuery("non_sales_income", accountID),
		"expenses sum":    r.linesSumQuery("report_expenses", accountID),
		"payment entries": r.paymentEntriesQuery(accountID),
		"income entries":  r.lineEntriesQuery("non_sales_income", "categories", "non-sales income", accountID),
		"expense entries": r.lineEntriesQuery("report_expenses", "expense_categories", "expense", accountID),
	}

	for name, q := range queries {
		sql, args, err := q.ToSql()
		require.NoError(t, err, name)
		assert.NotContains(t, sql, "status", name)
		assert.Equal(t, []any{accountID}, args, name)
	}
}
