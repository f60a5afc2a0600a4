package calculation

import (
	"testing"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateIncome(t *testing.T) {
	tests := []struct {
		name          string
		record        domain.MonthlyIncomeRecord
		vatRate       string
		wantCollected string
		wantTotal     string
		description   string
	}{
		{
			name:          "Standard rate only",
			record:        domain.MonthlyIncomeRecord{Standard: dec("100000")},
			vatRate:       "16",
			wantCollected: "16000",
			wantTotal:     "100000",
			description:   "VAT is collected on standard-rate income",
		},
		{
			name: "Mixed buckets",
			record: domain.MonthlyIncomeRecord{
				Standard:  dec("50000"),
				ZeroRated: dec("20000"),
				Exempt:    dec("5000"),
			},
			vatRate:       "16",
			wantCollected: "8000",
			wantTotal:     "75000",
			description:   "Zero-rated and exempt income add to the total but not to VAT",
		},
		{
			name:          "Border rate",
			record:        domain.MonthlyIncomeRecord{Standard: dec("10000")},
			vatRate:       "8",
			wantCollected: "800",
			wantTotal:     "10000",
			description:   "The configured rate is honored",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := AggregateIncome([]domain.MonthlyIncomeRecord{tt.record}, dec(tt.vatRate))
			assertDecimal(t, tt.wantCollected, s.Months[0].VATCollected, tt.description)
			assertDecimal(t, tt.wantTotal, s.Months[0].Total, tt.description)
			assertDecimal(t, tt.wantTotal, s.Annual.Total)
		})
	}
}

func TestAggregateIncomeShortInput(t *testing.T) {
	s := AggregateIncome(incomeRecords("1000", "2000"), dec("16"))

	for i := 2; i < domain.MonthsPerYear; i++ {
		assert.True(t, s.Months[i].Total.IsZero(), "month %d should be zero", i)
	}
	assert.Equal(t, domain.Month(11), s.Months[11].Month)
	assertDecimal(t, "3000", s.Annual.Total)
	assertDecimal(t, "480", s.Annual.VATCollected)
}

func TestAggregateIncomeAnnualEqualsSumOfMonths(t *testing.T) {
	records := incomeRecords("100", "200", "150", "119", "287", "356", "412", "198", "275", "310", "125", "99")
	s := AggregateIncome(records, dec("16"))

	sum := decimal.Zero
	for _, v := range s.Totals() {
		sum = sum.Add(v)
	}
	require.Len(t, s.Totals(), domain.MonthsPerYear)
	assert.True(t, sum.Equal(s.Annual.Total), "annual %s != sum %s", s.Annual.Total, sum)
}

func TestAggregateExpenses(t *testing.T) {
	record := domain.MonthlyExpenseRecord{
		Standard:  dec("10000"),
		ZeroRated: dec("1000"),
		Exempt:    dec("500"),
		Payroll:   dec("20000"),
		Strategic: dec("5000"),
	}
	s := AggregateExpenses([]domain.MonthlyExpenseRecord{record}, dec("16"))

	m := s.Months[0]
	assertDecimal(t, "2400", m.VATCreditable, "creditable VAT covers standard and strategic purchases")
	assertDecimal(t, "36500", m.Total, "total includes every bucket")
	assertDecimal(t, "15000", m.TaxedTotal())
	assertDecimal(t, "20000", s.Annual.Payroll)
	assertDecimal(t, "2400", s.Annual.VATCreditable)
}
