package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// FiscalSummary are the headline annual figures for the selected regime.
type FiscalSummary struct {
	Regime   Regime          `json:"regime"`
	Income   decimal.Decimal `json:"income"`
	Expenses decimal.Decimal `json:"expenses"` // zero under RESICO
	Profit   decimal.Decimal `json:"profit"`   // income - expenses, may be negative
	ISRDue   decimal.Decimal `json:"isr_due"`  // provisional payments or RESICO net due
	VATDue   decimal.Decimal `json:"vat_due"`
}

// FiscalReport is every derived structure for one taxpayer-year. It is a
// read-only view; editing records requires recomputing the whole report.
type FiscalReport struct {
	GeneratedAt    time.Time           `json:"generated_at"`
	Config         TaxConfiguration    `json:"config"`
	Income         IncomeSummary       `json:"income"`
	Expenses       ExpenseSummary      `json:"expenses"`
	IVA            IVALedger           `json:"iva"`
	ISR            ISRLedger           `json:"isr"`
	Resico         ResicoLedger        `json:"resico"`
	Declaration    Declaration         `json:"-"`
	Annual         AnnualDeclaration   `json:"declaration"`
	BenfordIncome  BenfordDistribution `json:"benford_income"`
	BenfordExpense BenfordDistribution `json:"benford_expense"`
	Summary        FiscalSummary       `json:"summary"`
	Alerts         []FiscalAlert       `json:"alerts"`
}
