package calculation

import (
	"testing"
	"time"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func alertCodes(alerts []domain.FiscalAlert) []string {
	codes := make([]string, len(alerts))
	for i, a := range alerts {
		codes[i] = a.Code
	}
	return codes
}

func withNow(t *testing.T, now time.Time) {
	t.Helper()
	SetNowFunc(func() time.Time { return now })
	t.Cleanup(func() { SetNowFunc(time.Now) })
}

func TestEvaluateAlerts(t *testing.T) {
	withNow(t, time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC))
	expected := DefaultBenfordExpected()
	policy := DefaultAlertPolicy()

	tests := []struct {
		name     string
		report   domain.FiscalReport
		expected []string
	}{
		{
			name: "Fiscal loss",
			report: domain.FiscalReport{
				Config:  domain.TaxConfiguration{RFC: "GODE561231GR8", FiscalYear: 2024},
				Summary: domain.FiscalSummary{Income: dec("100"), Expenses: dec("300"), Profit: dec("-200")},
			},
			expected: []string{domain.AlertFiscalLoss},
		},
		{
			name: "No data in the current year",
			report: domain.FiscalReport{
				Config: domain.TaxConfiguration{RFC: "GODE561231GR8", FiscalYear: 2025},
			},
			expected: []string{domain.AlertNoData},
		},
		{
			name: "RESICO taxpayer with general records but no RESICO income",
			report: domain.FiscalReport{
				Config: domain.TaxConfiguration{RFC: "GODE561231GR8", FiscalYear: 2025, Regime: domain.RegimeResicoPF},
				Income: domain.IncomeSummary{Annual: domain.IncomeMonth{Total: dec("5000")}},
			},
			expected: []string{domain.AlertAllClear},
		},
		{
			name: "RESICO income alone does not count as captured data",
			report: domain.FiscalReport{
				Config:  domain.TaxConfiguration{RFC: "GODE561231GR8", FiscalYear: 2025, Regime: domain.RegimeResicoPF},
				Resico:  domain.ResicoLedger{Totals: domain.ResicoTotals{Income: dec("5000")}},
				Summary: domain.FiscalSummary{Regime: domain.RegimeResicoPF, Income: dec("5000"), Profit: dec("5000")},
			},
			expected: []string{domain.AlertNoData},
		},
		{
			name: "No data in a past year is fine",
			report: domain.FiscalReport{
				Config: domain.TaxConfiguration{RFC: "GODE561231GR8", FiscalYear: 2023},
			},
			expected: []string{domain.AlertAllClear},
		},
		{
			name: "Temporary RFC suppresses empty-year and all-clear notices",
			report: domain.FiscalReport{
				Config: domain.TaxConfiguration{RFC: domain.NewTemporaryRFC(), FiscalYear: 2025},
			},
			expected: nil,
		},
		{
			name: "RESICO ceiling",
			report: domain.FiscalReport{
				Config:  domain.TaxConfiguration{RFC: "GODE561231GR8", FiscalYear: 2024},
				Resico:  domain.ResicoLedger{Totals: domain.ResicoTotals{Income: dec("4000000")}},
				Summary: domain.FiscalSummary{Income: dec("4000000"), Profit: dec("4000000")},
			},
			expected: []string{domain.AlertResicoCeiling},
		},
		{
			name: "High VAT due",
			report: domain.FiscalReport{
				Config:  domain.TaxConfiguration{RFC: "GODE561231GR8", FiscalYear: 2024},
				IVA:     domain.IVALedger{Totals: domain.IVATotals{VATCollected: dec("1000"), Due: dec("700")}},
				Summary: domain.FiscalSummary{Income: dec("6250"), Profit: dec("6250")},
			},
			expected: []string{domain.AlertHighVATDue},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			alerts := EvaluateAlerts(&tt.report, expected, policy)
			if tt.expected == nil {
				assert.Empty(t, alerts)
				return
			}
			assert.Equal(t, tt.expected, alertCodes(alerts))
		})
	}
}

func TestEvaluateAlertsBenford(t *testing.T) {
	report := domain.FiscalReport{
		Config:        domain.TaxConfiguration{RFC: "GODE561231GR8", FiscalYear: 2024},
		Summary:       domain.FiscalSummary{Income: dec("2700"), Profit: dec("2700")},
		BenfordIncome: AnalyzeBenford([]decimal.Decimal{dec("900"), dec("900"), dec("900")}),
	}

	alerts := EvaluateAlerts(&report, DefaultBenfordExpected(), DefaultAlertPolicy())

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertBenfordIncome, alerts[0].Code)
	assert.Equal(t, domain.SeverityInfo, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "dígito inicial 9")
}

func TestEvaluateAlertsBenfordNeedsSamples(t *testing.T) {
	report := domain.FiscalReport{
		Config: domain.TaxConfiguration{RFC: "GODE561231GR8", FiscalYear: 2020},
	}

	alerts := EvaluateAlerts(&report, DefaultBenfordExpected(), DefaultAlertPolicy())

	assert.Equal(t, []string{domain.AlertAllClear}, alertCodes(alerts))
}

func TestEvaluateAlertsFiscalLossMessage(t *testing.T) {
	report := domain.FiscalReport{
		Config:  domain.TaxConfiguration{RFC: "GODE561231GR8", FiscalYear: 2024},
		Summary: domain.FiscalSummary{Income: dec("1000"), Expenses: dec("2234.5"), Profit: dec("-1234.5")},
	}

	alerts := EvaluateAlerts(&report, DefaultBenfordExpected(), DefaultAlertPolicy())

	require.Len(t, alerts, 1)
	assert.Equal(t, domain.SeverityWarning, alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "$1,234.50")
	assert.Contains(t, alerts[0].Message, "2024")
}
