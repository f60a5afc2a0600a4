package calculation

import (
	"testing"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/stretchr/testify/assert"
)

func generalTaxpayer() domain.TaxpayerData {
	data := domain.NewTaxpayerData("GODE561231GR8", 2024)
	for i := 0; i < domain.MonthsPerYear; i++ {
		data.Income[i].Standard = dec("100000")
		data.Expenses[i].Standard = dec("50000")
	}
	return data
}

func TestProjectGeneralRegime(t *testing.T) {
	engine := NewCalculationEngine()
	report := engine.Calculate(generalTaxpayer())

	p := engine.Project(report, domain.ProjectionSettings{
		IncomeAdjustmentPercent:  dec("10"),
		ExpenseAdjustmentPercent: dec("0"),
	})

	assert.Equal(t, 2024, p.BaseYear)
	assert.Equal(t, 2025, p.ProjectionYear)
	assertDecimal(t, "1320000", p.ProjectedIncome)
	assertDecimal(t, "600000", p.ProjectedExpenses)
	assertDecimal(t, "720000", p.ProjectedProfit)
	assertDecimal(t, "149603.94", p.GeneralAnnualTax)
	// Base-year provisionals covered the whole annual tax, so the projection keeps that ratio.
	assertDecimal(t, "149603.94", p.GeneralProvisionals)
	assertDecimal(t, "0", p.GeneralNetISR)
	assertDecimal(t, "115200", p.ProjectedVATDue)
	assert.False(t, p.ResicoApplicable)
}

func TestProjectLossYieldsNoTax(t *testing.T) {
	engine := NewCalculationEngine()
	report := engine.Calculate(generalTaxpayer())

	p := engine.Project(report, domain.ProjectionSettings{
		IncomeAdjustmentPercent:  dec("-60"),
		ExpenseAdjustmentPercent: dec("0"),
	})

	assertDecimal(t, "-120000", p.ProjectedProfit)
	assertDecimal(t, "0", p.GeneralAnnualTax)
	assertDecimal(t, "0", p.ProjectedVATDue, "scaled creditable VAT exceeds scaled collected VAT")
}

func TestProjectResico(t *testing.T) {
	data := domain.NewTaxpayerData("GODE561231GR8", 2024)
	data.Config.Regime = domain.RegimeResicoPF
	for i := 0; i < domain.MonthsPerYear; i++ {
		data.Resico[i] = domain.MonthlyResicoRecord{Income: dec("30000"), Withheld: dec("300")}
	}
	engine := NewCalculationEngine()
	report := engine.Calculate(data)

	p := engine.Project(report, domain.ProjectionSettings{IncomeAdjustmentPercent: dec("20")})

	assert.True(t, p.ResicoApplicable)
	assertDecimal(t, "432000", p.ResicoIncome)
	assert.True(t, dec("0.0110").Equal(p.ResicoRate), "rate follows the 36,000 monthly average")
	assertDecimal(t, "4752", p.ResicoTax)
	assertDecimal(t, "4320", p.ResicoWithheld)
	assertDecimal(t, "432", p.ResicoNetISR)
}
