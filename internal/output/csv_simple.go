package output

import (
	"bytes"
	"encoding/csv"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVSummarizer implements the monthly summary CSV output (one row per month plus a total row).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(report *domain.FiscalReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Mes", "Ingresos", "Egresos", "IVACobrado", "IVAAcreditable", "IVACargo", "IVAFavor", "ISRBase", "ISRCausado", "PagoProvisional", "ResicoIngresos", "ResicoNeto"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for i := 0; i < domain.MonthsPerYear; i++ {
		inc, exp := report.Income.Months[i], report.Expenses.Months[i]
		iva, isr, res := report.IVA.Months[i], report.ISR.Months[i], report.Resico.Months[i]
		row := fixedRow(domain.Month(i).String(),
			inc.Total, exp.Total,
			iva.VATCollected, iva.VATCreditable, iva.Due, iva.CarryForward,
			isr.TaxableBase, isr.TaxCaused, isr.PaymentDue,
			res.Income, res.NetDue,
		)
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	total := fixedRow("Total",
		report.Income.Annual.Total, report.Expenses.Annual.Total,
		report.IVA.Totals.VATCollected, report.IVA.Totals.VATCreditable, report.IVA.Totals.Due, report.IVA.DecemberCarryForward(),
		report.ISR.Totals.TaxableBase, report.ISR.Totals.AnnualTax, report.ISR.Totals.ProvisionalPayments,
		report.Resico.Totals.Income, report.Resico.Totals.NetDue,
	)
	if err := w.Write(total); err != nil {
		return nil, err
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func fixedRow(label string, values ...decimal.Decimal) []string {
	row := make([]string, 0, len(values)+1)
	row = append(row, label)
	for _, v := range values {
		row = append(row, v.StringFixed(2))
	}
	return row
}
