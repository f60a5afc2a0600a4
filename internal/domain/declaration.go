package domain

import "github.com/shopspring/decimal"

// Declaration is the preliminary annual statement of exactly one regime.
// The variants are GeneralDeclaration and ResicoDeclaration; consumers
// switch on the concrete type instead of re-reading the regime selector.
type Declaration interface {
	Regime() Regime
	sealed()
}

// GeneralDeclaration is built from the general-regime ISR ledger.
type GeneralDeclaration struct {
	AccumulableIncome    decimal.Decimal `json:"accumulable_income"`
	AuthorizedDeductions decimal.Decimal `json:"authorized_deductions"`
	Profit               decimal.Decimal `json:"profit"`
	TaxableBase          decimal.Decimal `json:"taxable_base"`
	AnnualTax            decimal.Decimal `json:"annual_tax"`
	ProvisionalPayments  decimal.Decimal `json:"provisional_payments"`
	NetDue               decimal.Decimal `json:"net_due"` // negative is a refund
	PriorLosses          decimal.Decimal `json:"prior_losses"`
	PriorLossesApplied   decimal.Decimal `json:"prior_losses_applied"`
}

// Regime implements Declaration
func (GeneralDeclaration) Regime() Regime { return RegimeGeneral }
func (GeneralDeclaration) sealed()        {}

// ResicoDeclaration is built from the RESICO ledger. The flat regime has no
// deductions, so profit and taxable base both equal Income.
type ResicoDeclaration struct {
	Income       decimal.Decimal `json:"income"`
	AnnualTax    decimal.Decimal `json:"annual_tax"`
	Withheld     decimal.Decimal `json:"withheld"`
	MonthlyPaid  decimal.Decimal `json:"monthly_paid"`
	PaymentsMade decimal.Decimal `json:"payments_made"` // equals MonthlyPaid
	NetDue       decimal.Decimal `json:"net_due"`
}

// Regime implements Declaration
func (ResicoDeclaration) Regime() Regime { return RegimeResicoPF }
func (ResicoDeclaration) sealed()        {}

// AnnualDeclaration is the flat, display-oriented view of a Declaration.
type AnnualDeclaration struct {
	Regime               Regime          `json:"regime"`
	AccumulableIncome    decimal.Decimal `json:"accumulable_income"`
	AuthorizedDeductions decimal.Decimal `json:"authorized_deductions"`
	Profit               decimal.Decimal `json:"profit"`
	TaxableBase          decimal.Decimal `json:"taxable_base"`
	AnnualTax            decimal.Decimal `json:"annual_tax"`
	PaymentsMade         decimal.Decimal `json:"payments_made"`
	NetDue               decimal.Decimal `json:"net_due"`
	// PriorLosses is set only for the general regime.
	PriorLosses *decimal.Decimal `json:"prior_losses,omitempty"`
}

// IsRefund reports whether the declaration ends with a balance in the taxpayer's favor.
func (d AnnualDeclaration) IsRefund() bool { return d.NetDue.IsNegative() }

// FlattenDeclaration renders a Declaration as an AnnualDeclaration. Every
// field comes from the single variant passed in.
func FlattenDeclaration(d Declaration) AnnualDeclaration {
	switch v := d.(type) {
	case GeneralDeclaration:
		losses := v.PriorLosses
		return AnnualDeclaration{
			Regime:               RegimeGeneral,
			AccumulableIncome:    v.AccumulableIncome,
			AuthorizedDeductions: v.AuthorizedDeductions,
			Profit:               v.Profit,
			TaxableBase:          v.TaxableBase,
			AnnualTax:            v.AnnualTax,
			PaymentsMade:         v.ProvisionalPayments,
			NetDue:               v.NetDue,
			PriorLosses:          &losses,
		}
	case ResicoDeclaration:
		return AnnualDeclaration{
			Regime:               RegimeResicoPF,
			AccumulableIncome:    v.Income,
			AuthorizedDeductions: decimal.Zero,
			Profit:               v.Income,
			TaxableBase:          v.Income,
			AnnualTax:            v.AnnualTax,
			PaymentsMade:         v.PaymentsMade,
			NetDue:               v.NetDue,
		}
	default:
		return AnnualDeclaration{}
	}
}
