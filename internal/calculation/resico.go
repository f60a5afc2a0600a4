package calculation

import (
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ResicoCalculator computes the flat-rate regime. RESICO recognizes no
// deductions and no loss carryforward.
type ResicoCalculator struct {
	Table  domain.ResicoTable
	Logger Logger
}

// NewResicoCalculator creates a calculator over table. A nil logger discards output.
func NewResicoCalculator(table domain.ResicoTable, logger Logger) *ResicoCalculator {
	if logger == nil {
		logger = NopLogger{}
	}
	return &ResicoCalculator{Table: table, Logger: logger}
}

// LookupResicoRate returns the flat rate for a month's income. A bracket
// matches when income lies within its limits, both inclusive; amounts in a
// gap between brackets get no rate. Income above the second-to-last upper
// limit that matches nothing takes the last rate.
func LookupResicoRate(table domain.ResicoTable, income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() || len(table) == 0 {
		return decimal.Zero
	}
	for _, b := range table {
		if income.LessThan(b.LowerLimit) {
			continue
		}
		if b.Unbounded() || income.LessThanOrEqual(b.UpperLimit.Decimal) {
			return b.Rate
		}
	}
	if n := len(table); n > 1 {
		prev := table[n-2]
		if prev.UpperLimit.Valid && income.GreaterThan(prev.UpperLimit.Decimal) {
			return table[n-1].Rate
		}
	}
	return decimal.Zero
}

// Calculate builds the twelve RESICO months and their annual sums.
func (c *ResicoCalculator) Calculate(records []domain.MonthlyResicoRecord) domain.ResicoLedger {
	var ledger domain.ResicoLedger
	for i := 0; i < domain.MonthsPerYear; i++ {
		var r domain.MonthlyResicoRecord
		if i < len(records) {
			r = records[i]
		}
		rate := LookupResicoRate(c.Table, r.Income)
		tax := r.Income.Mul(rate)
		if r.Income.IsPositive() && rate.IsZero() {
			c.Logger.Warnf("no RESICO rate applies to %s income %s", domain.Month(i), r.Income.StringFixed(2))
		}

		m := domain.ResicoMonth{
			Month:    domain.Month(i),
			Income:   r.Income,
			Rate:     rate,
			Tax:      tax,
			Withheld: r.Withheld,
			NetDue:   fiscaldec.Max0(tax.Sub(r.Withheld)),
		}
		ledger.Months[i] = m

		t := &ledger.Totals
		t.Income = t.Income.Add(m.Income)
		t.Tax = t.Tax.Add(m.Tax)
		t.Withheld = t.Withheld.Add(m.Withheld)
		t.NetDue = t.NetDue.Add(m.NetDue)
	}
	return ledger
}

// ExceedsResicoCeiling reports whether annual RESICO income is above the
// regulatory ceiling. The ledger itself is computed regardless.
func ExceedsResicoCeiling(ledger domain.ResicoLedger) bool {
	return ledger.Totals.Income.GreaterThan(ResicoAnnualIncomeCeiling)
}
