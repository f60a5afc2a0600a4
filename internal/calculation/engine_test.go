package calculation

import (
	"sync"
	"testing"
	"time"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngineCalculateGeneral(t *testing.T) {
	withNow(t, time.Date(2025, time.March, 3, 10, 30, 0, 0, time.UTC))
	data := domain.NewTaxpayerData("GODE561231GR8", 2024)
	data.Income[0].Standard = dec("100000")
	data.Expenses[0].Standard = dec("40000")

	report := NewCalculationEngine().Calculate(data)

	assert.Equal(t, time.Date(2025, time.March, 3, 10, 30, 0, 0, time.UTC), report.GeneratedAt)
	assertDecimal(t, "16000", report.Income.Months[0].VATCollected)
	assertDecimal(t, "100000", report.Income.Months[0].Total)
	assertDecimal(t, "9600", report.IVA.Months[0].Due)

	_, ok := report.Declaration.(domain.GeneralDeclaration)
	require.True(t, ok)
	assert.Equal(t, domain.RegimeGeneral, report.Annual.Regime)

	s := report.Summary
	assertDecimal(t, "100000", s.Income)
	assertDecimal(t, "40000", s.Expenses)
	assertDecimal(t, "60000", s.Profit)
	assert.True(t, s.ISRDue.Equal(report.ISR.Totals.ProvisionalPayments))
	assertDecimal(t, "9600", s.VATDue)

	assert.Equal(t, 1, report.BenfordIncome.Samples)
	assert.Equal(t, 1, report.BenfordExpense.Samples)
}

func TestEngineCalculateResicoCeiling(t *testing.T) {
	data := domain.NewTaxpayerData("GODE561231GR8", 2024)
	data.Config.Regime = domain.RegimeResicoPF
	data.Resico[0].Income = dec("4000000")

	report := NewCalculationEngine().Calculate(data)

	r, ok := report.Declaration.(domain.ResicoDeclaration)
	require.True(t, ok)
	assertDecimal(t, "100000", r.AnnualTax)
	assertDecimal(t, "4000000", report.Summary.Income)
	assertDecimal(t, "0", report.Summary.Expenses)
	assertDecimal(t, "100000", report.Summary.ISRDue)
	assert.Contains(t, alertCodes(report.Alerts), domain.AlertResicoCeiling)
	assert.NotContains(t, alertCodes(report.Alerts), domain.AlertAllClear)
}

func TestEngineResolvesHistoricalLosses(t *testing.T) {
	data := generalTaxpayer()
	data.HistoricalLosses = []domain.HistoricalLoss{{OriginYear: 2022, Amount: dec("100000")}}

	report := NewCalculationEngine().Calculate(data)

	assertDecimal(t, "109472.30", report.Config.PriorLosses)
	assertDecimal(t, "50000", report.ISR.Months[0].LossApplied)

	data.Config.PriorLosses = dec("5000")
	report = NewCalculationEngine().Calculate(data)
	assertDecimal(t, "5000", report.Config.PriorLosses, "an explicit amount wins over the history")
}

func TestEngineSetLoggerPropagates(t *testing.T) {
	engine := NewCalculationEngine()
	logger := &recordingLogger{}
	engine.SetLogger(logger)

	assert.Same(t, logger, engine.ISRCalc.Logger)
	assert.Same(t, logger, engine.ResicoCalc.Logger)

	engine.SetLogger(nil)
	assert.Equal(t, NopLogger{}, engine.Logger)
}

func TestEngineConcurrentUse(t *testing.T) {
	engine := NewCalculationEngine()
	data := generalTaxpayer()
	want := engine.Calculate(data).Summary

	var wg sync.WaitGroup
	results := make([]domain.FiscalSummary, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Calculate(data).Summary
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}
