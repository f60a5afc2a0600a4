package output

import (
	calc "github.com/defycont/SIFIDE2025-v1.0/internal/calculation"
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// Recommendation compares the general regime's annual ISR with what the same
// income would owe under RESICO PF.
type Recommendation struct {
	Regime         domain.Regime // empty when there is no general-regime income to compare
	Income         decimal.Decimal
	GeneralTax     decimal.Decimal
	ResicoRate     decimal.Decimal
	ResicoTax      decimal.Decimal
	ResicoEligible bool
	Savings        decimal.Decimal // tax difference between the two regimes
	PercentSavings decimal.Decimal
}

// AnalyzeRegimes estimates RESICO ISR on the general-regime income, at the rate
// of its monthly average, and recommends the regime with the lower annual tax.
// Income above the RESICO ceiling always recommends the general regime; a tie
// keeps the configured regime.
func AnalyzeRegimes(report *domain.FiscalReport, resico domain.ResicoTable) Recommendation {
	income := report.Income.Annual.Total
	if !income.IsPositive() {
		return Recommendation{}
	}
	rate := calc.LookupResicoRate(resico, income.Div(decimal.NewFromInt(domain.MonthsPerYear)).Round(2))
	rec := Recommendation{
		Income:         income,
		GeneralTax:     report.ISR.Totals.AnnualTax,
		ResicoRate:     rate,
		ResicoTax:      income.Mul(rate).Round(2),
		ResicoEligible: !income.GreaterThan(calc.ResicoAnnualIncomeCeiling),
	}

	switch {
	case !rec.ResicoEligible:
		rec.Regime = domain.RegimeGeneral
	case rec.ResicoTax.LessThan(rec.GeneralTax):
		rec.Regime = domain.RegimeResicoPF
	case rec.GeneralTax.LessThan(rec.ResicoTax):
		rec.Regime = domain.RegimeGeneral
	default:
		rec.Regime = report.Config.Regime
	}

	higher := decimal.Max(rec.GeneralTax, rec.ResicoTax)
	rec.Savings = rec.GeneralTax.Sub(rec.ResicoTax).Abs()
	if higher.IsPositive() {
		rec.PercentSavings = rec.Savings.Div(higher).Mul(decimalHundred)
	}
	return rec
}
