package output

import (
	"testing"

	calc "github.com/defycont/SIFIDE2025-v1.0/internal/calculation"
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func reportWith(income, generalTax string, regime domain.Regime) *domain.FiscalReport {
	r := &domain.FiscalReport{}
	r.Config.Regime = regime
	r.Income.Annual.Total = decimal.RequireFromString(income)
	r.ISR.Totals.AnnualTax = decimal.RequireFromString(generalTax)
	return r
}

func TestAnalyzeRegimes(t *testing.T) {
	table := calc.DefaultResicoTable()

	t.Run("resico wins on lower tax", func(t *testing.T) {
		rec := AnalyzeRegimes(reportWith("1200000", "89487.53", domain.RegimeGeneral), table)
		assert.Equal(t, domain.RegimeResicoPF, rec.Regime)
		assert.True(t, rec.ResicoEligible)
		assert.Equal(t, "0.02", rec.ResicoRate.String())
		assert.Equal(t, "24000.00", rec.ResicoTax.StringFixed(2))
		assert.Equal(t, "65487.53", rec.Savings.StringFixed(2))
		assert.Equal(t, "73.18", rec.PercentSavings.StringFixed(2))
	})

	t.Run("income above the ceiling keeps the general regime", func(t *testing.T) {
		rec := AnalyzeRegimes(reportWith("4000000", "1200000", domain.RegimeResicoPF), table)
		assert.Equal(t, domain.RegimeGeneral, rec.Regime)
		assert.False(t, rec.ResicoEligible)
		assert.Equal(t, "100000.00", rec.ResicoTax.StringFixed(2))
	})

	t.Run("general wins on lower tax", func(t *testing.T) {
		rec := AnalyzeRegimes(reportWith("1200000", "1000", domain.RegimeResicoPF), table)
		assert.Equal(t, domain.RegimeGeneral, rec.Regime)
		assert.Equal(t, "23000.00", rec.Savings.StringFixed(2))
	})

	t.Run("tie keeps the configured regime", func(t *testing.T) {
		rec := AnalyzeRegimes(reportWith("1200000", "24000", domain.RegimeResicoPF), table)
		assert.Equal(t, domain.RegimeResicoPF, rec.Regime)
		assert.True(t, rec.Savings.IsZero())
	})

	t.Run("no income means nothing to compare", func(t *testing.T) {
		rec := AnalyzeRegimes(reportWith("0", "0", domain.RegimeGeneral), table)
		assert.Equal(t, domain.Regime(""), rec.Regime)
	})
}

func TestGenerateAssumptions(t *testing.T) {
	r := reportWith("0", "0", domain.RegimeGeneral)
	r.Config.FiscalYear = 2024
	r.Config.VATRatePercent = decimal.NewFromInt(16)
	r.Config.PriorLosses = decimal.NewFromInt(5000)

	got := GenerateAssumptions(r)
	assert.Equal(t, "Ejercicio fiscal 2024, Régimen General", got[0])
	assert.Equal(t, "Tasa de IVA: 16.00%", got[1])
	assert.Equal(t, "Pérdidas fiscales de ejercicios anteriores: $5,000.00", got[2])
	assert.Len(t, got, 3+len(DefaultAssumptions))

	r.Config.Regime = domain.RegimeResicoPF
	assert.Len(t, GenerateAssumptions(r), 2+len(DefaultAssumptions))
}
