package output

import (
	"bytes"
	"fmt"

	calc "github.com/defycont/SIFIDE2025-v1.0/internal/calculation"
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(report *domain.FiscalReport) ([]byte, error) {
	var buf bytes.Buffer
	s := report.Summary
	fmt.Fprintf(&buf, "RESUMEN FISCAL %d - %s\n", report.Config.FiscalYear, report.Config.RFC)
	fmt.Fprintln(&buf, "================================")
	fmt.Fprintf(&buf, "Régimen:   %s\n", s.Regime.Label())
	fmt.Fprintf(&buf, "Ingresos:  %s\n", FormatCurrency(s.Income))
	fmt.Fprintf(&buf, "Egresos:   %s\n", FormatCurrency(s.Expenses))
	fmt.Fprintf(&buf, "Utilidad:  %s\n", FormatCurrency(s.Profit))
	fmt.Fprintf(&buf, "ISR:       %s\n", FormatCurrency(s.ISRDue))
	fmt.Fprintf(&buf, "IVA:       %s\n", FormatCurrency(s.VATDue))
	fmt.Fprintf(&buf, "Anual:     %s\n", FormatCurrency(report.Annual.NetDue))
	fmt.Fprintln(&buf)
	for _, a := range report.Alerts {
		fmt.Fprintf(&buf, "%s: %s\n", a.Code, a.Title)
	}
	rec := AnalyzeRegimes(report, calc.DefaultResicoTable())
	if rec.Regime != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recomendado: %s (Δ %s / %s)\n", rec.Regime.Label(), FormatCurrency(rec.Savings), FormatPercentage(rec.PercentSavings))
	}
	return buf.Bytes(), nil
}
