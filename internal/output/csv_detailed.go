package output

import (
	"bytes"
	"encoding/csv"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// CSVDetailedExporter writes every ledger line in long form: one row per
// ledger, month and concept.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

type detailLine struct {
	concept string
	amount  decimal.Decimal
}

func (c CSVDetailedExporter) Format(report *domain.FiscalReport) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write([]string{"Cedula", "MesNumero", "Mes", "Concepto", "Importe", "SinTarifa"}); err != nil {
		return nil, err
	}

	write := func(ledger string, month int, lines []detailLine, flag bool) error {
		for _, l := range lines {
			row := []string{ledger, intToString(month + 1), domain.Month(month).String(), l.concept, l.amount.StringFixed(2), boolToString(flag)}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	}

	for i := 0; i < domain.MonthsPerYear; i++ {
		inc, exp := report.Income.Months[i], report.Expenses.Months[i]
		if err := write("ingresos", i, []detailLine{
			{"gravado", inc.Standard}, {"tasa_cero", inc.ZeroRated}, {"exento", inc.Exempt},
			{"iva_cobrado", inc.VATCollected}, {"total", inc.Total},
		}, false); err != nil {
			return nil, err
		}
		if err := write("egresos", i, []detailLine{
			{"gravado", exp.Standard}, {"tasa_cero", exp.ZeroRated}, {"exento", exp.Exempt},
			{"nomina", exp.Payroll}, {"estrategico", exp.Strategic},
			{"iva_acreditable", exp.VATCreditable}, {"total", exp.Total},
		}, false); err != nil {
			return nil, err
		}
		iva := report.IVA.Months[i]
		if err := write("iva", i, []detailLine{
			{"causado", iva.VATCaused}, {"saldo_anterior", iva.CarryIn},
			{"a_cargo", iva.Due}, {"a_favor", iva.CarryForward},
		}, false); err != nil {
			return nil, err
		}
		isr := report.ISR.Months[i]
		if err := write("isr", i, []detailLine{
			{"ingresos_acumulados", isr.CumulativeIncome}, {"deducciones_acumuladas", isr.CumulativeDeducted},
			{"utilidad", isr.Profit}, {"perdida_aplicada", isr.LossApplied}, {"base", isr.TaxableBase},
			{"isr_causado", isr.TaxCaused}, {"pagos_anteriores", isr.PriorPayments}, {"pago", isr.PaymentDue},
		}, isr.TableMissing); err != nil {
			return nil, err
		}
		res := report.Resico.Months[i]
		if err := write("resico", i, []detailLine{
			{"ingresos", res.Income}, {"tasa_pct", res.Rate.Mul(decimalHundred)}, {"isr", res.Tax},
			{"retenido", res.Withheld}, {"a_pagar", res.NetDue},
		}, false); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
