package calculation

import (
	"fmt"
	"testing"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	NopLogger
	errors []string
	warns  []string
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func isrLedger(calc *ISRCalculator, income, expenses []string, priorLosses string) domain.ISRLedger {
	rate := dec("16")
	return calc.Calculate(
		AggregateIncome(incomeRecords(income...), rate),
		AggregateExpenses(expenseRecords(expenses...), rate),
		2025,
		dec(priorLosses),
	)
}

func TestTariffTax(t *testing.T) {
	tables := DefaultTaxTables()

	tests := []struct {
		name     string
		table    domain.ISRTable
		base     string
		expected string
	}{
		{name: "Zero base", table: tables.ISR[0], base: "0", expected: "0"},
		{name: "First monthly bracket", table: tables.ISR[0], base: "500", expected: "9.60"},
		{name: "Third monthly bracket", table: tables.ISR[0], base: "10000", expected: "770.90"},
		{name: "Monthly 34% bracket", table: tables.ISR[0], base: "300000", expected: "92080.61"},
		{name: "February cumulative table", table: tables.ISR[1], base: "500000", expected: "150161.22"},
		{name: "Annual table", table: tables.AnnualTable(), base: "500000", expected: "89487.53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, TariffTax(tt.table, dec(tt.base)))
		})
	}
}

func TestLookupISRBracketScansFromTop(t *testing.T) {
	table := DefaultTaxTables().ISR[0]

	b, ok := LookupISRBracket(table, dec("746.05"))
	require.True(t, ok)
	assertDecimal(t, "14.32", b.FixedFee, "a base equal to a lower limit belongs to that bracket")

	_, ok = LookupISRBracket(table, dec("0"))
	assert.False(t, ok, "no bracket below the first lower limit")
}

func TestISRLossApplication(t *testing.T) {
	calc := NewISRCalculator(DefaultTaxTables().ISR, nil)
	ledger := isrLedger(calc, []string{"500000"}, nil, "200000")

	jan := ledger.Months[0]
	assertDecimal(t, "500000", jan.Profit)
	assertDecimal(t, "200000", jan.LossApplied, "capped by the remaining loss")
	assertDecimal(t, "300000", jan.TaxableBase)
	assertDecimal(t, "0", jan.LossRemaining)
	assertDecimal(t, "92080.61", jan.TaxCaused)
	assertDecimal(t, "92080.61", jan.PaymentDue)

	feb := ledger.Months[1]
	assertDecimal(t, "0", feb.LossApplied, "the loss is exhausted")
	assertDecimal(t, "500000", feb.TaxableBase)
	assertDecimal(t, "92080.61", feb.PriorPayments)
	assertDecimal(t, "58080.61", feb.PaymentDue)

	assertDecimal(t, "200000", ledger.Totals.LossApplied)
	assertDecimal(t, "0", ledger.Totals.LossRemaining)
}

func TestISRLossCappedByProfit(t *testing.T) {
	calc := NewISRCalculator(DefaultTaxTables().ISR, nil)
	ledger := isrLedger(calc, []string{"50000", "50000"}, []string{"20000", "20000"}, "100000")

	jan := ledger.Months[0]
	assertDecimal(t, "30000", jan.LossApplied)
	assertDecimal(t, "0", jan.TaxableBase)
	assertDecimal(t, "70000", jan.LossRemaining)
	assertDecimal(t, "0", jan.TaxCaused)

	feb := ledger.Months[1]
	assertDecimal(t, "60000", feb.Profit)
	assertDecimal(t, "60000", feb.LossApplied)
	assertDecimal(t, "10000", feb.LossRemaining)

	// Applied plus remaining always equals the original loss.
	total := ledger.Totals.LossApplied.Add(ledger.Totals.LossRemaining)
	assertDecimal(t, "100000", total)
}

func TestISRPaymentsNeverNegative(t *testing.T) {
	calc := NewISRCalculator(DefaultTaxTables().ISR, nil)
	// Expenses in March reduce cumulative profit below what was already paid.
	ledger := isrLedger(calc,
		[]string{"100000", "100000", "0", "50000"},
		[]string{"0", "0", "150000"},
		"0")

	paid := decimal.Zero
	for i, m := range ledger.Months {
		assert.False(t, m.PaymentDue.IsNegative(), "month %d payment negative", i)
		assert.False(t, m.Profit.IsNegative(), "month %d profit negative", i)
		assert.True(t, m.PriorPayments.Equal(paid), "month %d prior payments", i)
		paid = paid.Add(m.PaymentDue)
	}
	assert.True(t, ledger.Months[2].PaymentDue.IsZero())
	assert.True(t, paid.Equal(ledger.Totals.ProvisionalPayments))
}

func TestISRMissingMonthTable(t *testing.T) {
	schedule := DefaultTaxTables().ISR
	schedule[2] = nil
	logger := &recordingLogger{}
	calc := NewISRCalculator(schedule, logger)

	ledger := isrLedger(calc, repeat("20000", 4), nil, "0")

	march := ledger.Months[2]
	assert.True(t, march.TableMissing)
	assert.True(t, march.TaxCaused.IsZero())
	assert.True(t, march.PaymentDue.IsZero())
	assertDecimal(t, "60000", march.CumulativeIncome)
	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "Marzo")

	april := ledger.Months[3]
	assert.False(t, april.TableMissing)
	assert.True(t, april.PaymentDue.IsPositive(), "later months are still computed")
}

func TestISRAnnualUsesRawProfit(t *testing.T) {
	calc := NewISRCalculator(DefaultTaxTables().ISR, nil)
	ledger := isrLedger(calc, []string{"500000"}, nil, "200000")

	assertDecimal(t, "500000", ledger.Totals.Profit)
	assertDecimal(t, "500000", ledger.Totals.TaxableBase)
	assertDecimal(t, "89487.53", ledger.Totals.AnnualTax, "the loss offset does not reduce the annual base")
	assert.False(t, ledger.Totals.AnnualTableMissing)
}

func TestISRMissingAnnualTable(t *testing.T) {
	schedule := DefaultTaxTables().ISR
	schedule[11] = domain.ISRTable{}
	logger := &recordingLogger{}
	calc := NewISRCalculator(schedule, logger)

	ledger := isrLedger(calc, []string{"100000"}, nil, "0")

	assert.True(t, ledger.Totals.AnnualTableMissing)
	assert.True(t, ledger.Totals.AnnualTax.IsZero())
	assert.True(t, ledger.Months[11].TableMissing)
	assert.Len(t, logger.errors, 2, "December month and annual recomputation both log")
}
