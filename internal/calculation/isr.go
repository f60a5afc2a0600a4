package calculation

import (
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ISRCalculator computes general-regime provisional payments against the
// cumulative monthly tariffs.
type ISRCalculator struct {
	Schedule domain.ISRSchedule
	Logger   Logger
}

// NewISRCalculator creates a calculator over schedule. A nil logger discards output.
func NewISRCalculator(schedule domain.ISRSchedule, logger Logger) *ISRCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ISRCalculator{Schedule: schedule, Logger: logger}
}

// LookupISRBracket returns the highest bracket whose lower limit does not
// exceed base. Brackets are scanned from the top, first match wins.
func LookupISRBracket(table domain.ISRTable, base decimal.Decimal) (domain.ISRBracket, bool) {
	for i := len(table) - 1; i >= 0; i-- {
		if base.GreaterThanOrEqual(table[i].LowerLimit) {
			return table[i], true
		}
	}
	return domain.ISRBracket{}, false
}

// TariffTax applies table to base. Bases below the first bracket owe nothing.
func TariffTax(table domain.ISRTable, base decimal.Decimal) decimal.Decimal {
	bracket, ok := LookupISRBracket(table, base)
	if !ok {
		return decimal.Zero
	}
	excess := base.Sub(bracket.LowerLimit)
	tax := excess.Mul(bracket.RatePercent).Div(hundred).Add(bracket.FixedFee)
	return fiscaldec.Max0(tax)
}

// Calculate builds the twelve cumulative provisional payments and the annual
// totals. A month without a tariff is logged and reported with zero tax and
// zero payment; the remaining months are still computed.
func (c *ISRCalculator) Calculate(income domain.IncomeSummary, expenses domain.ExpenseSummary, fiscalYear int, priorLosses decimal.Decimal) domain.ISRLedger {
	ledger := domain.ISRLedger{FiscalYear: fiscalYear}

	cumIncome := decimal.Zero
	cumDeducted := decimal.Zero
	paid := decimal.Zero
	lossRemaining := fiscaldec.Max0(priorLosses)
	lossApplied := decimal.Zero

	for i := 0; i < domain.MonthsPerYear; i++ {
		cumIncome = cumIncome.Add(income.Months[i].Total)
		cumDeducted = cumDeducted.Add(expenses.Months[i].Total)
		profit := fiscaldec.Max0(cumIncome.Sub(cumDeducted))

		row := domain.ISRMonth{
			Month:              domain.Month(i),
			CumulativeIncome:   cumIncome,
			CumulativeDeducted: cumDeducted,
			Profit:             profit,
			PriorPayments:      paid,
			LossRemaining:      lossRemaining,
			TaxableBase:        profit,
		}

		table := c.Schedule[i]
		if len(table) == 0 {
			c.Logger.Errorf("ISR tariff missing for %s %d; provisional payment reported as zero", domain.Month(i), fiscalYear)
			row.TableMissing = true
			ledger.Months[i] = row
			continue
		}

		if profit.IsPositive() && lossRemaining.IsPositive() {
			applied := decimal.Min(profit, lossRemaining)
			lossRemaining = lossRemaining.Sub(applied)
			lossApplied = lossApplied.Add(applied)
			row.LossApplied = applied
			row.LossRemaining = lossRemaining
			row.TaxableBase = fiscaldec.Max0(profit.Sub(applied))
		}

		row.TaxCaused = TariffTax(table, row.TaxableBase)
		row.PaymentDue = fiscaldec.Max0(row.TaxCaused.Sub(paid))
		paid = paid.Add(row.PaymentDue)
		ledger.Months[i] = row
	}

	annualProfit := fiscaldec.Max0(income.Annual.Total.Sub(expenses.Annual.Total))
	totals := domain.ISRTotals{
		Income:              income.Annual.Total,
		Deductions:          expenses.Annual.Total,
		Profit:              annualProfit,
		TaxableBase:         annualProfit,
		ProvisionalPayments: paid,
		LossApplied:         lossApplied,
		LossRemaining:       lossRemaining,
	}
	// The annual tax uses the December tariff on the raw annual profit; the
	// monthly loss offset does not carry into it.
	annualTable := c.Schedule[domain.MonthsPerYear-1]
	if len(annualTable) == 0 {
		c.Logger.Errorf("annual ISR tariff missing for %d; annual tax reported as zero", fiscalYear)
		totals.AnnualTableMissing = true
	} else {
		totals.AnnualTax = TariffTax(annualTable, annualProfit)
	}
	ledger.Totals = totals

	c.Logger.Debugf("ISR %d: income=%s deductions=%s annual tax=%s provisional=%s",
		fiscalYear, totals.Income.StringFixed(2), totals.Deductions.StringFixed(2),
		totals.AnnualTax.StringFixed(2), totals.ProvisionalPayments.StringFixed(2))
	return ledger
}
