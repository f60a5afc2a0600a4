package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	calc "github.com/defycont/SIFIDE2025-v1.0/internal/calculation"
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with the monthly cédulas and a Benford chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":  FormatCurrency,
	"pct":   FormatPercentage,
	"rate":  FormatRate,
	"month": func(m domain.Month) string { return m.String() },
	"neg":   func(d decimal.Decimal) bool { return d.IsNegative() },
	"abs":   func(d decimal.Decimal) decimal.Decimal { return d.Abs() },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

func (h HTMLFormatter) Format(report *domain.FiscalReport) ([]byte, error) {
	var buf bytes.Buffer
	expected := calc.DefaultBenfordExpected()

	data := struct {
		*domain.FiscalReport
		Recommendation Recommendation
		Assumptions    []string
		Benford        benfordChart
	}{
		FiscalReport:   report,
		Recommendation: AnalyzeRegimes(report, calc.DefaultResicoTable()),
		Assumptions:    GenerateAssumptions(report),
		Benford: benfordChart{
			Expected: floats(expected[:]),
			Income:   floats(report.BenfordIncome.Percentages[:]),
			Expense:  floats(report.BenfordExpense.Percentages[:]),
		},
	}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// benfordChart carries the chart series as plain numbers for the embedded script.
type benfordChart struct {
	Expected []float64 `json:"expected"`
	Income   []float64 `json:"income"`
	Expense  []float64 `json:"expense"`
}

func floats(values []decimal.Decimal) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v.InexactFloat64()
	}
	return out
}
