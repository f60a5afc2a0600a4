package domain

import "github.com/shopspring/decimal"

// IncomeMonth is the derived view of one MonthlyIncomeRecord.
type IncomeMonth struct {
	Month        Month           `json:"month"`
	Standard     decimal.Decimal `json:"standard"`
	ZeroRated    decimal.Decimal `json:"zero_rated"`
	Exempt       decimal.Decimal `json:"exempt"`
	VATCollected decimal.Decimal `json:"vat_collected"`
	Total        decimal.Decimal `json:"total"`
}

// TaxedTotal is the income subject to the standard VAT rate.
func (m IncomeMonth) TaxedTotal() decimal.Decimal { return m.Standard }

// IncomeSummary is twelve derived income months plus annual sums per bucket.
type IncomeSummary struct {
	Months [MonthsPerYear]IncomeMonth `json:"months"`
	Annual IncomeMonth                `json:"annual"` // Month field is unused
}

// Totals returns the twelve month totals in calendar order
func (s IncomeSummary) Totals() []decimal.Decimal {
	out := make([]decimal.Decimal, MonthsPerYear)
	for i, m := range s.Months {
		out[i] = m.Total
	}
	return out
}

// ExpenseMonth is the derived view of one MonthlyExpenseRecord.
type ExpenseMonth struct {
	Month         Month           `json:"month"`
	Standard      decimal.Decimal `json:"standard"`
	ZeroRated     decimal.Decimal `json:"zero_rated"`
	Exempt        decimal.Decimal `json:"exempt"`
	Payroll       decimal.Decimal `json:"payroll"`
	Strategic     decimal.Decimal `json:"strategic"`
	VATCreditable decimal.Decimal `json:"vat_creditable"`
	Total         decimal.Decimal `json:"total"`
}

// TaxedTotal is the expense that generates VAT credit: standard plus strategic.
func (m ExpenseMonth) TaxedTotal() decimal.Decimal { return m.Standard.Add(m.Strategic) }

// ExpenseSummary is twelve derived expense months plus annual sums per bucket.
type ExpenseSummary struct {
	Months [MonthsPerYear]ExpenseMonth `json:"months"`
	Annual ExpenseMonth                `json:"annual"`
}

// Totals returns the twelve month totals in calendar order
func (s ExpenseSummary) Totals() []decimal.Decimal {
	out := make([]decimal.Decimal, MonthsPerYear)
	for i, m := range s.Months {
		out[i] = m.Total
	}
	return out
}

// IVAMonth is one step of the monthly VAT carry chain. At most one of Due
// and CarryForward is non-zero.
type IVAMonth struct {
	Month         Month           `json:"month"`
	TaxedIncome   decimal.Decimal `json:"taxed_income"`
	VATCollected  decimal.Decimal `json:"vat_collected"`
	TaxedExpense  decimal.Decimal `json:"taxed_expense"`
	VATCreditable decimal.Decimal `json:"vat_creditable"`
	VATCaused     decimal.Decimal `json:"vat_caused"`    // collected - creditable, may be negative
	CarryIn       decimal.Decimal `json:"carry_in"`      // saldo a favor from the previous month
	Due           decimal.Decimal `json:"due"`           // IVA a cargo
	CarryForward  decimal.Decimal `json:"carry_forward"` // saldo a favor for the next month
}

// IVATotals are annual sums of the IVA ledger.
type IVATotals struct {
	TaxedIncome   decimal.Decimal `json:"taxed_income"`
	VATCollected  decimal.Decimal `json:"vat_collected"`
	TaxedExpense  decimal.Decimal `json:"taxed_expense"`
	VATCreditable decimal.Decimal `json:"vat_creditable"`
	VATCaused     decimal.Decimal `json:"vat_caused"`
	Due           decimal.Decimal `json:"due"`
}

// IVALedger is the full year of the VAT carry chain.
type IVALedger struct {
	Months [MonthsPerYear]IVAMonth `json:"months"`
	Totals IVATotals               `json:"totals"`
}

// DecemberCarryForward is the credit balance left at year end.
func (l IVALedger) DecemberCarryForward() decimal.Decimal {
	return l.Months[MonthsPerYear-1].CarryForward
}

// ISRMonth is one cumulative provisional-payment computation.
type ISRMonth struct {
	Month              Month           `json:"month"`
	CumulativeIncome   decimal.Decimal `json:"cumulative_income"`
	CumulativeDeducted decimal.Decimal `json:"cumulative_deducted"`
	Profit             decimal.Decimal `json:"profit"` // max(0, income - deductions)
	LossApplied        decimal.Decimal `json:"loss_applied"`
	LossRemaining      decimal.Decimal `json:"loss_remaining"`
	TaxableBase        decimal.Decimal `json:"taxable_base"`
	TaxCaused          decimal.Decimal `json:"tax_caused"`
	PriorPayments      decimal.Decimal `json:"prior_payments"`
	PaymentDue         decimal.Decimal `json:"payment_due"`
	// TableMissing marks a month computed without a tariff; tax and payment are zero.
	TableMissing bool `json:"table_missing,omitempty"`
}

// ISRTotals are the annual figures of the general regime.
type ISRTotals struct {
	Income              decimal.Decimal `json:"income"`
	Deductions          decimal.Decimal `json:"deductions"`
	Profit              decimal.Decimal `json:"profit"`
	TaxableBase         decimal.Decimal `json:"taxable_base"`
	AnnualTax           decimal.Decimal `json:"annual_tax"`
	ProvisionalPayments decimal.Decimal `json:"provisional_payments"`
	LossApplied         decimal.Decimal `json:"loss_applied"`
	LossRemaining       decimal.Decimal `json:"loss_remaining"`
	AnnualTableMissing  bool            `json:"annual_table_missing,omitempty"`
}

// ISRLedger is the full year of general-regime provisional payments.
type ISRLedger struct {
	FiscalYear int                     `json:"fiscal_year"`
	Months     [MonthsPerYear]ISRMonth `json:"months"`
	Totals     ISRTotals               `json:"totals"`
}

// ResicoMonth is one month of the flat-rate regime.
type ResicoMonth struct {
	Month    Month           `json:"month"`
	Income   decimal.Decimal `json:"income"`
	Rate     decimal.Decimal `json:"rate"`
	Tax      decimal.Decimal `json:"tax"`
	Withheld decimal.Decimal `json:"withheld"`
	NetDue   decimal.Decimal `json:"net_due"`
}

// ResicoTotals are annual sums of the RESICO ledger.
type ResicoTotals struct {
	Income   decimal.Decimal `json:"income"`
	Tax      decimal.Decimal `json:"tax"`
	Withheld decimal.Decimal `json:"withheld"`
	NetDue   decimal.Decimal `json:"net_due"`
}

// ResicoLedger is the full year of the flat-rate regime.
type ResicoLedger struct {
	Months [MonthsPerYear]ResicoMonth `json:"months"`
	Totals ResicoTotals               `json:"totals"`
}

// BenfordDistribution holds the observed leading-digit percentage for digits 1..9.
type BenfordDistribution struct {
	Percentages [9]decimal.Decimal `json:"percentages"`
	Samples     int                `json:"samples"` // values that qualified
}

// Digit returns the percentage observed for leading digit d (1..9).
func (b BenfordDistribution) Digit(d int) decimal.Decimal {
	if d < 1 || d > 9 {
		return decimal.Zero
	}
	return b.Percentages[d-1]
}

// MaxDeviation returns the largest absolute gap, in percentage points,
// between the observed and expected distributions, and its digit.
func (b BenfordDistribution) MaxDeviation(expected BenfordExpected) (decimal.Decimal, int) {
	worst, digit := decimal.Zero, 0
	for i := range b.Percentages {
		gap := b.Percentages[i].Sub(expected[i]).Abs()
		if gap.GreaterThan(worst) {
			worst, digit = gap, i+1
		}
	}
	return worst, digit
}
