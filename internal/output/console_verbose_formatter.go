package output

import (
	"bytes"
	"fmt"
	"strings"

	calc "github.com/defycont/SIFIDE2025-v1.0/internal/calculation"
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/defycont/SIFIDE2025-v1.0/pkg/dateutil"
)

// ConsoleVerboseFormatter renders the monthly working papers (cédulas) of a fiscal report.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

const ruleWidth = 100

func (c ConsoleVerboseFormatter) Format(report *domain.FiscalReport) ([]byte, error) {
	var buf bytes.Buffer
	cfg := report.Config

	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(&buf, "REPORTE FISCAL %d - %s\n", cfg.FiscalYear, cfg.RFC)
	fmt.Fprintln(&buf, strings.Repeat("=", ruleWidth))
	if cfg.CompanyName != "" {
		fmt.Fprintf(&buf, "Contribuyente: %s\n", cfg.CompanyName)
	}
	fmt.Fprintf(&buf, "Régimen:       %s\n", cfg.Regime.Label())
	fmt.Fprintf(&buf, "Generado:      %s\n", report.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "SUPUESTOS:")
	for _, a := range GenerateAssumptions(report) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeIVALedger(&buf, report.IVA)
	if cfg.Regime.IsResico() {
		writeResicoLedger(&buf, report.Resico)
	} else {
		writeISRLedger(&buf, report.ISR)
	}
	writeDeclaration(&buf, report.Annual)
	writeBenford(&buf, report)
	writeAlerts(&buf, report.Alerts)

	if rec := AnalyzeRegimes(report, calc.DefaultResicoTable()); rec.Regime != "" {
		fmt.Fprintln(&buf, "COMPARATIVO DE RÉGIMEN")
		fmt.Fprintln(&buf, strings.Repeat("-", ruleWidth))
		fmt.Fprintf(&buf, "  ISR anual régimen general:  %s\n", FormatCurrency(rec.GeneralTax))
		fmt.Fprintf(&buf, "  ISR estimado RESICO (%s): %s\n", FormatRate(rec.ResicoRate), FormatCurrency(rec.ResicoTax))
		if !rec.ResicoEligible {
			fmt.Fprintln(&buf, "  Los ingresos superan el límite de RESICO PF.")
		}
		fmt.Fprintf(&buf, "  Recomendado: %s (diferencia %s / %s)\n", rec.Regime.Label(), FormatCurrency(rec.Savings), FormatPercentage(rec.PercentSavings))
		fmt.Fprintln(&buf)
	}
	return buf.Bytes(), nil
}

func writeIVALedger(buf *bytes.Buffer, iva domain.IVALedger) {
	fmt.Fprintln(buf, "CÉDULA DE IVA")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(buf, "%-5s %16s %16s %16s %16s %14s %14s\n", "Mes", "IVA cobrado", "IVA acreditable", "IVA causado", "Saldo anterior", "A cargo", "A favor")
	for i, m := range iva.Months {
		fmt.Fprintf(buf, "%-5s %16s %16s %16s %16s %14s %14s\n",
			dateutil.MonthShortName(i),
			FormatCurrency(m.VATCollected),
			FormatCurrency(m.VATCreditable),
			FormatCurrency(m.VATCaused),
			FormatCurrency(m.CarryIn),
			FormatCurrency(m.Due),
			FormatCurrency(m.CarryForward),
		)
	}
	t := iva.Totals
	fmt.Fprintf(buf, "%-5s %16s %16s %16s %16s %14s %14s\n", "Total",
		FormatCurrency(t.VATCollected), FormatCurrency(t.VATCreditable), FormatCurrency(t.VATCaused),
		"", FormatCurrency(t.Due), FormatCurrency(iva.DecemberCarryForward()))
	fmt.Fprintln(buf)
}

func writeISRLedger(buf *bytes.Buffer, isr domain.ISRLedger) {
	fmt.Fprintln(buf, "CÉDULA DE PAGOS PROVISIONALES ISR")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(buf, "%-5s %16s %16s %14s %14s %14s %14s\n", "Mes", "Ingresos acum.", "Deducciones", "Pérdida apl.", "Base", "ISR causado", "Pago")
	for i, m := range isr.Months {
		note := ""
		if m.TableMissing {
			note = " (sin tarifa)"
		}
		fmt.Fprintf(buf, "%-5s %16s %16s %14s %14s %14s %14s%s\n",
			dateutil.MonthShortName(i),
			FormatCurrency(m.CumulativeIncome),
			FormatCurrency(m.CumulativeDeducted),
			FormatCurrency(m.LossApplied),
			FormatCurrency(m.TaxableBase),
			FormatCurrency(m.TaxCaused),
			FormatCurrency(m.PaymentDue),
			note,
		)
	}
	t := isr.Totals
	fmt.Fprintf(buf, "Pagos provisionales: %s   ISR anual: %s   Pérdida por aplicar: %s\n",
		FormatCurrency(t.ProvisionalPayments), FormatCurrency(t.AnnualTax), FormatCurrency(t.LossRemaining))
	fmt.Fprintln(buf)
}

func writeResicoLedger(buf *bytes.Buffer, resico domain.ResicoLedger) {
	fmt.Fprintln(buf, "CÉDULA RESICO PERSONA FÍSICA")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(buf, "%-5s %16s %8s %14s %14s %14s\n", "Mes", "Ingresos", "Tasa", "ISR", "Retenido", "A pagar")
	for i, m := range resico.Months {
		fmt.Fprintf(buf, "%-5s %16s %8s %14s %14s %14s\n",
			dateutil.MonthShortName(i),
			FormatCurrency(m.Income),
			FormatRate(m.Rate),
			FormatCurrency(m.Tax),
			FormatCurrency(m.Withheld),
			FormatCurrency(m.NetDue),
		)
	}
	t := resico.Totals
	fmt.Fprintf(buf, "%-5s %16s %8s %14s %14s %14s\n", "Total",
		FormatCurrency(t.Income), "", FormatCurrency(t.Tax), FormatCurrency(t.Withheld), FormatCurrency(t.NetDue))
	fmt.Fprintln(buf)
}

func writeDeclaration(buf *bytes.Buffer, d domain.AnnualDeclaration) {
	fmt.Fprintln(buf, "DECLARACIÓN ANUAL PRELIMINAR")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(buf, "  Ingresos acumulables:     %s\n", FormatCurrency(d.AccumulableIncome))
	fmt.Fprintf(buf, "  Deducciones autorizadas:  %s\n", FormatCurrency(d.AuthorizedDeductions))
	fmt.Fprintf(buf, "  Utilidad fiscal:          %s\n", FormatCurrency(d.Profit))
	if d.PriorLosses != nil {
		fmt.Fprintf(buf, "  Pérdidas anteriores:      %s\n", FormatCurrency(*d.PriorLosses))
	}
	fmt.Fprintf(buf, "  Base gravable:            %s\n", FormatCurrency(d.TaxableBase))
	fmt.Fprintf(buf, "  ISR del ejercicio:        %s\n", FormatCurrency(d.AnnualTax))
	fmt.Fprintf(buf, "  Pagos efectuados:         %s\n", FormatCurrency(d.PaymentsMade))
	if d.IsRefund() {
		fmt.Fprintf(buf, "  Saldo a favor:            %s\n", FormatCurrency(d.NetDue.Abs()))
	} else {
		fmt.Fprintf(buf, "  ISR a cargo:              %s\n", FormatCurrency(d.NetDue))
	}
	fmt.Fprintln(buf)
}

func writeBenford(buf *bytes.Buffer, report *domain.FiscalReport) {
	fmt.Fprintln(buf, "LEY DE BENFORD (primer dígito, %)")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	fmt.Fprintf(buf, "%-10s", "Dígito")
	for d := 1; d <= 9; d++ {
		fmt.Fprintf(buf, " %7d", d)
	}
	fmt.Fprintln(buf)
	for _, row := range []struct {
		label string
		dist  domain.BenfordDistribution
	}{{"Ingresos", report.BenfordIncome}, {"Egresos", report.BenfordExpense}} {
		fmt.Fprintf(buf, "%-10s", row.label)
		for d := 1; d <= 9; d++ {
			fmt.Fprintf(buf, " %7s", row.dist.Digit(d).StringFixed(1))
		}
		fmt.Fprintf(buf, "  (n=%d)\n", row.dist.Samples)
	}
	fmt.Fprintln(buf)
}

func writeAlerts(buf *bytes.Buffer, alerts []domain.FiscalAlert) {
	fmt.Fprintln(buf, "ALERTAS")
	fmt.Fprintln(buf, strings.Repeat("-", ruleWidth))
	if len(alerts) == 0 {
		fmt.Fprintln(buf, "  (ninguna)")
	}
	for _, a := range alerts {
		fmt.Fprintf(buf, "  [%s] %s: %s\n", strings.ToUpper(string(a.Severity)), a.Title, a.Message)
	}
	fmt.Fprintln(buf)
}
