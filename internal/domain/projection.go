package domain

import "github.com/shopspring/decimal"

// ProjectionSettings are the what-if adjustments for next year's estimate.
// Percentages are signed: 10 means +10%, -5 means -5%.
type ProjectionSettings struct {
	IncomeAdjustmentPercent  decimal.Decimal `yaml:"income_adjustment_percent" json:"income_adjustment_percent"`
	ExpenseAdjustmentPercent decimal.Decimal `yaml:"expense_adjustment_percent" json:"expense_adjustment_percent"`
}

// ProjectedFiscalData is a one-year-ahead estimate scaled from the base year.
type ProjectedFiscalData struct {
	BaseYear          int             `json:"base_year"`
	ProjectionYear    int             `json:"projection_year"`
	ProjectedIncome   decimal.Decimal `json:"projected_income"`
	ProjectedExpenses decimal.Decimal `json:"projected_expenses"`
	ProjectedProfit   decimal.Decimal `json:"projected_profit"` // may be negative

	// General regime: annual tariff on the projected profit, less provisional
	// payments scaled by the base year's payments-to-tax ratio.
	GeneralAnnualTax    decimal.Decimal `json:"general_annual_tax"`
	GeneralProvisionals decimal.Decimal `json:"general_provisionals"`
	GeneralNetISR       decimal.Decimal `json:"general_net_isr"`

	// ResicoApplicable is false when the base year had no RESICO income.
	ResicoApplicable bool            `json:"resico_applicable"`
	ResicoIncome     decimal.Decimal `json:"resico_income"`
	ResicoRate       decimal.Decimal `json:"resico_rate"`
	ResicoTax        decimal.Decimal `json:"resico_tax"`
	ResicoWithheld   decimal.Decimal `json:"resico_withheld"`
	ResicoNetISR     decimal.Decimal `json:"resico_net_isr"`

	ProjectedVATDue decimal.Decimal `json:"projected_vat_due"`
}
