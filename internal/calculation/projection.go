package calculation

import (
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ProjectionCalculator estimates next year's taxes by scaling a computed report.
type ProjectionCalculator struct {
	AnnualTable domain.ISRTable
	ResicoTable domain.ResicoTable
}

// NewProjectionCalculator creates a projection calculator from the reference tables.
func NewProjectionCalculator(tables domain.TaxTables) *ProjectionCalculator {
	return &ProjectionCalculator{AnnualTable: tables.AnnualTable(), ResicoTable: tables.Resico}
}

func adjustment(percent decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(percent.Div(hundred))
}

// Project scales the base year by the income and expense adjustments.
// Provisional payments and RESICO withholding keep their base-year
// proportions; the VAT estimate assumes no credit carried in.
func (pc *ProjectionCalculator) Project(report *domain.FiscalReport, settings domain.ProjectionSettings) domain.ProjectedFiscalData {
	incomeFactor := adjustment(settings.IncomeAdjustmentPercent)
	expenseFactor := adjustment(settings.ExpenseAdjustmentPercent)

	out := domain.ProjectedFiscalData{
		BaseYear:          report.Config.FiscalYear,
		ProjectionYear:    report.Config.FiscalYear + 1,
		ProjectedIncome:   report.Income.Annual.Total.Mul(incomeFactor),
		ProjectedExpenses: report.Expenses.Annual.Total.Mul(expenseFactor),
	}
	out.ProjectedProfit = out.ProjectedIncome.Sub(out.ProjectedExpenses)

	out.GeneralAnnualTax = TariffTax(pc.AnnualTable, out.ProjectedProfit)
	baseTax := report.ISR.Totals.AnnualTax
	if baseTax.IsZero() {
		baseTax = decimal.NewFromInt(1)
	}
	paymentRatio := report.ISR.Totals.ProvisionalPayments.Div(baseTax)
	out.GeneralProvisionals = paymentRatio.Mul(out.GeneralAnnualTax)
	out.GeneralNetISR = out.GeneralAnnualTax.Sub(out.GeneralProvisionals)

	if base := report.Resico.Totals; base.Income.IsPositive() {
		out.ResicoApplicable = true
		out.ResicoIncome = base.Income.Mul(incomeFactor)
		// The RESICO table is monthly; the rate follows the average month.
		monthly := out.ResicoIncome.Div(decimal.NewFromInt(domain.MonthsPerYear)).Round(2)
		out.ResicoRate = LookupResicoRate(pc.ResicoTable, monthly)
		out.ResicoTax = out.ResicoIncome.Mul(out.ResicoRate)
		out.ResicoWithheld = base.Withheld.Div(base.Income).Mul(out.ResicoIncome)
		out.ResicoNetISR = fiscaldec.Max0(out.ResicoTax.Sub(out.ResicoWithheld))
	}

	iva := report.IVA.Totals
	out.ProjectedVATDue = fiscaldec.Max0(iva.VATCollected.Mul(incomeFactor).Sub(iva.VATCreditable.Mul(expenseFactor)))
	return out
}
