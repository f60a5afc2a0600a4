package calculation

import (
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// BuildDeclaration folds the ledger of the selected regime into its
// declaration variant. The other regime's ledger is never read.
func BuildDeclaration(regime domain.Regime, isr domain.ISRLedger, resico domain.ResicoLedger, priorLosses decimal.Decimal) domain.Declaration {
	if regime.IsResico() {
		return buildResicoDeclaration(resico)
	}
	return buildGeneralDeclaration(isr, priorLosses)
}

func buildGeneralDeclaration(isr domain.ISRLedger, priorLosses decimal.Decimal) domain.GeneralDeclaration {
	t := isr.Totals
	return domain.GeneralDeclaration{
		AccumulableIncome:    t.Income,
		AuthorizedDeductions: t.Deductions,
		Profit:               t.Profit,
		TaxableBase:          t.TaxableBase,
		AnnualTax:            t.AnnualTax,
		ProvisionalPayments:  t.ProvisionalPayments,
		NetDue:               t.AnnualTax.Sub(t.ProvisionalPayments),
		PriorLosses:          priorLosses,
		PriorLossesApplied:   t.LossApplied,
	}
}

// RESICO payments made are the monthly net amounts the taxpayer paid.
// Withholding is reported but not credited again.
func buildResicoDeclaration(resico domain.ResicoLedger) domain.ResicoDeclaration {
	t := resico.Totals
	return domain.ResicoDeclaration{
		Income:       t.Income,
		AnnualTax:    t.Tax,
		Withheld:     t.Withheld,
		MonthlyPaid:  t.NetDue,
		PaymentsMade: t.NetDue,
		NetDue:       t.Tax.Sub(t.NetDue),
	}
}
