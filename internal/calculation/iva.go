package calculation

import (
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CalculateIVALedger runs the monthly VAT carry chain. Each month's caused
// VAT first absorbs the credit carried in; any excess credit, including a
// negative caused amount, is carried to the next month. January starts at zero.
func CalculateIVALedger(income domain.IncomeSummary, expenses domain.ExpenseSummary, vatRatePercent decimal.Decimal) domain.IVALedger {
	rate := rateFraction(vatRatePercent)
	var ledger domain.IVALedger
	carry := decimal.Zero

	for i := 0; i < domain.MonthsPerYear; i++ {
		taxedIncome := income.Months[i].TaxedTotal()
		taxedExpense := expenses.Months[i].TaxedTotal()
		collected := taxedIncome.Mul(rate)
		creditable := taxedExpense.Mul(rate)
		caused := collected.Sub(creditable)
		base := caused.Sub(carry)

		m := domain.IVAMonth{
			Month:         domain.Month(i),
			TaxedIncome:   taxedIncome,
			VATCollected:  collected,
			TaxedExpense:  taxedExpense,
			VATCreditable: creditable,
			VATCaused:     caused,
			CarryIn:       carry,
			Due:           fiscaldec.Max0(base),
			CarryForward:  fiscaldec.Max0(base.Neg()),
		}
		ledger.Months[i] = m
		carry = m.CarryForward

		t := &ledger.Totals
		t.TaxedIncome = t.TaxedIncome.Add(taxedIncome)
		t.VATCollected = t.VATCollected.Add(collected)
		t.TaxedExpense = t.TaxedExpense.Add(taxedExpense)
		t.VATCreditable = t.VATCreditable.Add(creditable)
		t.VATCaused = t.VATCaused.Add(caused)
		t.Due = t.Due.Add(m.Due)
	}
	return ledger
}
