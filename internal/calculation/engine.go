package calculation

import (
	"time"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the fiscal calculations for one taxpayer-year.
// It holds only read-only reference data, so a single engine may serve
// concurrent requests.
type CalculationEngine struct {
	Tables     domain.TaxTables
	INPC       INPCSeries
	Policy     AlertPolicy
	ISRCalc    *ISRCalculator
	ResicoCalc *ResicoCalculator
	Logger     Logger
}

// NewCalculationEngine creates an engine over the bundled tables and INPC series.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithTables(DefaultTaxTables(), DefaultINPCSeries())
}

// NewCalculationEngineWithTables creates an engine over caller-provided reference data.
func NewCalculationEngineWithTables(tables domain.TaxTables, inpc INPCSeries) *CalculationEngine {
	logger := NopLogger{}
	return &CalculationEngine{
		Tables:     tables,
		INPC:       inpc,
		Policy:     DefaultAlertPolicy(),
		ISRCalc:    NewISRCalculator(tables.ISR, logger),
		ResicoCalc: NewResicoCalculator(tables.Resico, logger),
		Logger:     logger,
	}
}

// SetLogger sets the logger for the engine and its calculators. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		l = NopLogger{}
	}
	ce.Logger = l
	ce.ISRCalc.Logger = l
	ce.ResicoCalc.Logger = l
}

// Calculate derives the full fiscal report from a taxpayer's records. It
// never rejects input: malformed amounts were already coerced to zero when
// the records were decoded.
func (ce *CalculationEngine) Calculate(data domain.TaxpayerData) *domain.FiscalReport {
	cfg := data.Config
	cfg.PriorLosses = ce.resolvePriorLosses(data)
	vatRate := cfg.VATRatePercent

	report := &domain.FiscalReport{
		GeneratedAt: nowFunc().UTC().Truncate(time.Second),
		Config:      cfg,
	}
	report.Income = AggregateIncome(data.IncomeRecords(), vatRate)
	report.Expenses = AggregateExpenses(data.ExpenseRecords(), vatRate)
	report.IVA = CalculateIVALedger(report.Income, report.Expenses, vatRate)
	report.ISR = ce.ISRCalc.Calculate(report.Income, report.Expenses, cfg.FiscalYear, cfg.PriorLosses)
	report.Resico = ce.ResicoCalc.Calculate(data.ResicoRecords())

	report.Declaration = BuildDeclaration(cfg.Regime, report.ISR, report.Resico, cfg.PriorLosses)
	report.Annual = domain.FlattenDeclaration(report.Declaration)

	report.BenfordIncome = AnalyzeBenford(report.Income.Totals())
	report.BenfordExpense = AnalyzeBenford(report.Expenses.Totals())

	report.Summary = buildSummary(cfg.Regime, report)
	report.Alerts = EvaluateAlerts(report, ce.Tables.Benford, ce.Policy)

	ce.Logger.Infof("calculated %s %d (%s): income=%s isr due=%s vat due=%s alerts=%d",
		cfg.RFC, cfg.FiscalYear, cfg.Regime, report.Summary.Income.StringFixed(2),
		report.Summary.ISRDue.StringFixed(2), report.Summary.VATDue.StringFixed(2), len(report.Alerts))
	return report
}

// resolvePriorLosses prefers the explicit configuration amount and otherwise
// restates the historical losses for the fiscal year.
func (ce *CalculationEngine) resolvePriorLosses(data domain.TaxpayerData) decimal.Decimal {
	if data.Config.PriorLosses.IsPositive() || len(data.HistoricalLosses) == 0 {
		return data.Config.PriorLosses
	}
	update := ce.UpdateLosses(data.HistoricalLosses, data.Config.FiscalYear)
	for _, l := range update.Losses {
		if l.Error != "" {
			ce.Logger.Warnf("loss from %d not restated: %s", l.OriginYear, l.Error)
		}
	}
	return update.TotalApplicable
}

func buildSummary(regime domain.Regime, report *domain.FiscalReport) domain.FiscalSummary {
	s := domain.FiscalSummary{Regime: regime, VATDue: report.IVA.Totals.Due}
	if regime.IsResico() {
		s.Income = report.Resico.Totals.Income
		s.Expenses = decimal.Zero
		s.Profit = s.Income
		s.ISRDue = report.Resico.Totals.NetDue
		return s
	}
	s.Income = report.Income.Annual.Total
	s.Expenses = report.Expenses.Annual.Total
	s.Profit = s.Income.Sub(s.Expenses)
	s.ISRDue = report.ISR.Totals.ProvisionalPayments
	return s
}

// Project estimates next year's figures from a computed report.
func (ce *CalculationEngine) Project(report *domain.FiscalReport, settings domain.ProjectionSettings) domain.ProjectedFiscalData {
	return NewProjectionCalculator(ce.Tables).Project(report, settings)
}

// UpdateLosses restates historical losses with the engine's INPC series.
func (ce *CalculationEngine) UpdateLosses(losses []domain.HistoricalLoss, applicationYear int) domain.LossUpdate {
	return UpdateLosses(losses, applicationYear, ce.INPC)
}

// Surcharge computes the update and surcharges of a late payment with the engine's INPC series.
func (ce *CalculationEngine) Surcharge(amount decimal.Decimal, dueDate, paymentDate time.Time) (domain.SurchargeResult, error) {
	return CalculateSurcharge(amount, dueDate, paymentDate, ce.INPC)
}
