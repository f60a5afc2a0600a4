package calculation

import (
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// TABLE ASSUMPTIONS:
//
// 1. ISR: monthly tariff of Anexo 8 RMF 2024 (unchanged for 2025). The
//    cumulative table for month N multiplies limits and fixed fees by N.
//    December uses the published annual tariff, which also drives the
//    annual recomputation.
//
// 2. RESICO PF: article 113-E LISR monthly table; the last row is open-ended.
//
// 3. Benford: first-digit expectation log10(1 + 1/d), as percentages.

// monthlyISRTariff rows: lower limit, fixed fee, percent over excess.
var monthlyISRTariff = [][3]string{
	{"0.01", "0.00", "1.92"},
	{"746.05", "14.32", "6.40"},
	{"6332.06", "371.83", "10.88"},
	{"11128.02", "893.63", "16.00"},
	{"12935.83", "1182.88", "17.92"},
	{"15487.72", "1640.18", "21.36"},
	{"31236.50", "5004.12", "23.52"},
	{"49233.01", "9236.89", "30.00"},
	{"93993.91", "22665.17", "32.00"},
	{"125325.21", "32691.18", "34.00"},
	{"375975.62", "117912.32", "35.00"},
}

var annualISRTariff = [][3]string{
	{"0.01", "0.00", "1.92"},
	{"8952.50", "171.88", "6.40"},
	{"75984.56", "4461.94", "10.88"},
	{"133536.08", "10723.55", "16.00"},
	{"155229.81", "14194.54", "17.92"},
	{"185852.58", "19682.13", "21.36"},
	{"374837.89", "60049.40", "23.52"},
	{"590796.00", "110842.74", "30.00"},
	{"1127926.85", "271981.99", "32.00"},
	{"1503902.47", "392294.17", "34.00"},
	{"4511707.38", "1414947.85", "35.00"},
}

// ResicoAnnualIncomeCeiling is the yearly income above which a taxpayer may not remain in RESICO.
var ResicoAnnualIncomeCeiling = decimal.NewFromInt(3500000)

// DefaultTaxTables returns the bundled reference tables.
func DefaultTaxTables() domain.TaxTables {
	return domain.TaxTables{
		ISR:     BuildSchedule(buildTariff(monthlyISRTariff), buildTariff(annualISRTariff)),
		Resico:  DefaultResicoTable(),
		Benford: DefaultBenfordExpected(),
	}
}

// BuildSchedule derives the twelve cumulative tariffs from the published
// monthly and annual tables. January to November scale the monthly table;
// December is the annual table. An empty input leaves its months empty.
func BuildSchedule(monthly, annual domain.ISRTable) domain.ISRSchedule {
	var schedule domain.ISRSchedule
	if len(monthly) > 0 {
		for m := 0; m < domain.MonthsPerYear-1; m++ {
			schedule[m] = ScaleTariff(monthly, m+1)
		}
	}
	if len(annual) > 0 {
		schedule[domain.MonthsPerYear-1] = ScaleTariff(annual, 1)
	}
	return schedule
}

// DefaultResicoTable returns the RESICO PF monthly rate table.
func DefaultResicoTable() domain.ResicoTable {
	bracket := func(lower, upper, rate string) domain.ResicoBracket {
		b := domain.ResicoBracket{
			LowerLimit: decimal.RequireFromString(lower),
			Rate:       decimal.RequireFromString(rate),
		}
		if upper != "" {
			b.UpperLimit = decimal.NewNullDecimal(decimal.RequireFromString(upper))
		}
		return b
	}
	return domain.ResicoTable{
		bracket("0.01", "25000.00", "0.0100"),
		bracket("25000.01", "50000.00", "0.0110"),
		bracket("50000.01", "83333.33", "0.0150"),
		bracket("83333.34", "208333.33", "0.0200"),
		bracket("208333.34", "", "0.0250"),
	}
}

// DefaultBenfordExpected returns the theoretical leading-digit percentages.
func DefaultBenfordExpected() domain.BenfordExpected {
	values := []string{"30.1", "17.6", "12.5", "9.7", "7.9", "6.7", "5.8", "5.1", "4.6"}
	var out domain.BenfordExpected
	for i, v := range values {
		out[i] = decimal.RequireFromString(v)
	}
	return out
}

func buildTariff(rows [][3]string) domain.ISRTable {
	table := make(domain.ISRTable, len(rows))
	for i, row := range rows {
		table[i] = domain.ISRBracket{
			LowerLimit:  decimal.RequireFromString(row[0]),
			FixedFee:    decimal.RequireFromString(row[1]),
			RatePercent: decimal.RequireFromString(row[2]),
		}
	}
	return table
}

// ScaleTariff builds the cumulative tariff for a month: every limit and fee
// times the number of elapsed months. The first lower limit stays as
// published and upper limits are one cent below the next lower limit.
func ScaleTariff(table domain.ISRTable, months int) domain.ISRTable {
	factor := decimal.NewFromInt(int64(months))
	cent := decimal.New(1, -2)
	out := make(domain.ISRTable, len(table))
	for i, b := range table {
		lower := b.LowerLimit
		if i > 0 {
			lower = lower.Mul(factor)
		}
		out[i] = domain.ISRBracket{
			LowerLimit:  lower,
			FixedFee:    b.FixedFee.Mul(factor),
			RatePercent: b.RatePercent,
		}
	}
	for i := range out {
		if i+1 < len(out) {
			out[i].UpperLimit = out[i+1].LowerLimit.Sub(cent)
		} else {
			out[i].UpperLimit = decimal.Zero // open-ended
		}
	}
	return out
}
