package calculation

import (
	"testing"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// assertDecimal compares at two decimal places, the precision reported to the SAT.
func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.Equal(t, dec(expected).StringFixed(2), actual.StringFixed(2), msgAndArgs...)
}

func incomeRecords(standard ...string) []domain.MonthlyIncomeRecord {
	out := make([]domain.MonthlyIncomeRecord, len(standard))
	for i, s := range standard {
		out[i].Standard = dec(s)
	}
	return out
}

func expenseRecords(standard ...string) []domain.MonthlyExpenseRecord {
	out := make([]domain.MonthlyExpenseRecord, len(standard))
	for i, s := range standard {
		out[i].Standard = dec(s)
	}
	return out
}

func repeat(value string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = value
	}
	return out
}
