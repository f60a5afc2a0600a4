package calculation

import (
	"fmt"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/shopspring/decimal"
)

// AlertPolicy holds the thresholds of the compliance checks.
type AlertPolicy struct {
	BenfordDeviationPoints decimal.Decimal // per-digit gap that flags the income distribution
	HighVATDueRatio        decimal.Decimal // VAT due / VAT collected above this is flagged
	ResicoCeiling          decimal.Decimal
}

// DefaultAlertPolicy returns the thresholds used by the dashboard.
func DefaultAlertPolicy() AlertPolicy {
	return AlertPolicy{
		BenfordDeviationPoints: decimal.NewFromInt(15),
		HighVATDueRatio:        decimal.RequireFromString("0.6"),
		ResicoCeiling:          ResicoAnnualIncomeCeiling,
	}
}

// EvaluateAlerts inspects a computed report and returns the alerts that
// apply, in a stable order. TODO_OK is returned only when nothing else fired.
func EvaluateAlerts(report *domain.FiscalReport, expected domain.BenfordExpected, policy AlertPolicy) []domain.FiscalAlert {
	var alerts []domain.FiscalAlert
	cfg := report.Config
	year := cfg.FiscalYear
	temporary := domain.IsTemporaryRFC(cfg.RFC)

	income := report.Summary.Income
	profit := report.Summary.Profit

	if income.IsPositive() && profit.IsNegative() {
		alerts = append(alerts, newAlert(domain.AlertFiscalLoss, domain.SeverityWarning,
			"Pérdida Fiscal Estimada",
			fmt.Sprintf("Se estima una pérdida fiscal de %s para el ejercicio %d. Revise sus deducciones y estrategias.",
				fiscaldec.FormatMXN(profit.Abs()), year)))
	}

	// Empty-year detection reads the general records whatever the regime.
	if report.Income.Annual.Total.IsZero() && report.Expenses.Annual.Total.IsZero() && year == nowFunc().Year() && !temporary {
		alerts = append(alerts, newAlert(domain.AlertNoData, domain.SeverityWarning,
			"Sin Datos Registrados",
			fmt.Sprintf("No hay ingresos ni egresos registrados para el ejercicio fiscal actual (%d).", year)))
	}

	if resicoIncome := report.Resico.Totals.Income; resicoIncome.GreaterThan(policy.ResicoCeiling) {
		alerts = append(alerts, newAlert(domain.AlertResicoCeiling, domain.SeverityError,
			"Límite de Ingresos RESICO PF Excedido",
			fmt.Sprintf("Sus ingresos anuales en RESICO PF (%s) superan el límite de %s. Debe cambiar de régimen fiscal.",
				fiscaldec.FormatMXN(resicoIncome), fiscaldec.FormatMXN(policy.ResicoCeiling))))
	}

	if b := report.BenfordIncome; b.Samples > 0 {
		if gap, digit := b.MaxDeviation(expected); gap.GreaterThan(policy.BenfordDeviationPoints) {
			alerts = append(alerts, newAlert(domain.AlertBenfordIncome, domain.SeverityInfo,
				"Posible Desviación Ley de Benford (Ingresos)",
				fmt.Sprintf("El dígito inicial %d se desvía %s puntos de la Ley de Benford en sus ingresos mensuales. Considere una revisión interna.",
					digit, gap.StringFixed(1))))
		}
	}

	iva := report.IVA.Totals
	if iva.VATCollected.IsPositive() && iva.Due.Div(iva.VATCollected).GreaterThan(policy.HighVATDueRatio) {
		alerts = append(alerts, newAlert(domain.AlertHighVATDue, domain.SeverityInfo,
			"IVA a Cargo Proporcionalmente Alto",
			fmt.Sprintf("Su IVA a cargo anual (%s) es alto en proporción a su IVA cobrado (%s). Podría haber oportunidad de optimizar su IVA acreditable.",
				fiscaldec.FormatMXN(iva.Due), fiscaldec.FormatMXN(iva.VATCollected))))
	}

	if len(alerts) == 0 && !temporary {
		alerts = append(alerts, newAlert(domain.AlertAllClear, domain.SeveritySuccess,
			"Todo Parece en Orden",
			"Con la información actual no se detectan alertas críticas."))
	}
	return alerts
}

func newAlert(code string, severity domain.AlertSeverity, title, message string) domain.FiscalAlert {
	return domain.FiscalAlert{ID: code, Code: code, Severity: severity, Title: title, Message: message}
}
