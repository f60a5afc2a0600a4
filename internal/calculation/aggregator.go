package calculation

import (
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// rateFraction turns a percentage such as 16 into 0.16.
func rateFraction(percent decimal.Decimal) decimal.Decimal {
	return percent.Div(hundred)
}

// AggregateIncome derives VAT collected and monthly totals. Records beyond
// the twelfth are ignored and missing months are zero.
func AggregateIncome(records []domain.MonthlyIncomeRecord, vatRatePercent decimal.Decimal) domain.IncomeSummary {
	rate := rateFraction(vatRatePercent)
	var s domain.IncomeSummary
	for i := 0; i < domain.MonthsPerYear; i++ {
		var r domain.MonthlyIncomeRecord
		if i < len(records) {
			r = records[i]
		}
		m := domain.IncomeMonth{
			Month:        domain.Month(i),
			Standard:     r.Standard,
			ZeroRated:    r.ZeroRated,
			Exempt:       r.Exempt,
			VATCollected: r.Standard.Mul(rate),
			Total:        r.Standard.Add(r.ZeroRated).Add(r.Exempt),
		}
		s.Months[i] = m

		s.Annual.Standard = s.Annual.Standard.Add(m.Standard)
		s.Annual.ZeroRated = s.Annual.ZeroRated.Add(m.ZeroRated)
		s.Annual.Exempt = s.Annual.Exempt.Add(m.Exempt)
		s.Annual.VATCollected = s.Annual.VATCollected.Add(m.VATCollected)
		s.Annual.Total = s.Annual.Total.Add(m.Total)
	}
	return s
}

// AggregateExpenses derives creditable VAT, over standard and strategic
// purchases, and monthly totals.
func AggregateExpenses(records []domain.MonthlyExpenseRecord, vatRatePercent decimal.Decimal) domain.ExpenseSummary {
	rate := rateFraction(vatRatePercent)
	var s domain.ExpenseSummary
	for i := 0; i < domain.MonthsPerYear; i++ {
		var r domain.MonthlyExpenseRecord
		if i < len(records) {
			r = records[i]
		}
		m := domain.ExpenseMonth{
			Month:     domain.Month(i),
			Standard:  r.Standard,
			ZeroRated: r.ZeroRated,
			Exempt:    r.Exempt,
			Payroll:   r.Payroll,
			Strategic: r.Strategic,
			Total:     r.Standard.Add(r.ZeroRated).Add(r.Exempt).Add(r.Payroll).Add(r.Strategic),
		}
		m.VATCreditable = m.TaxedTotal().Mul(rate)
		s.Months[i] = m

		s.Annual.Standard = s.Annual.Standard.Add(m.Standard)
		s.Annual.ZeroRated = s.Annual.ZeroRated.Add(m.ZeroRated)
		s.Annual.Exempt = s.Annual.Exempt.Add(m.Exempt)
		s.Annual.Payroll = s.Annual.Payroll.Add(m.Payroll)
		s.Annual.Strategic = s.Annual.Strategic.Add(m.Strategic)
		s.Annual.VATCreditable = s.Annual.VATCreditable.Add(m.VATCreditable)
		s.Annual.Total = s.Annual.Total.Add(m.Total)
	}
	return s
}
