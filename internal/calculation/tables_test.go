package calculation

import (
	"testing"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxTables(t *testing.T) {
	tables := DefaultTaxTables()

	for m, table := range tables.ISR {
		require.Len(t, table, 11, "month %d", m)
	}
	jan := tables.ISR[0]
	assertDecimal(t, "0.01", jan[0].LowerLimit)
	assertDecimal(t, "746.04", jan[0].UpperLimit)
	assert.True(t, jan[10].UpperLimit.IsZero(), "last bracket is open-ended")

	feb := tables.ISR[1]
	assertDecimal(t, "0.01", feb[0].LowerLimit, "the first lower limit is not scaled")
	assertDecimal(t, "1492.10", feb[1].LowerLimit)
	assertDecimal(t, "28.64", feb[1].FixedFee)
	assertDecimal(t, "1492.09", feb[0].UpperLimit)

	annual := tables.AnnualTable()
	assertDecimal(t, "8952.50", annual[1].LowerLimit, "December uses the published annual tariff")

	require.Len(t, tables.Resico, 5)
	assert.True(t, tables.Resico[4].Unbounded())
}

func TestBuildScheduleWithoutMonthlyTable(t *testing.T) {
	schedule := BuildSchedule(nil, DefaultTaxTables().AnnualTable())

	for m := 0; m < domain.MonthsPerYear-1; m++ {
		assert.Empty(t, schedule[m])
	}
	assert.NotEmpty(t, schedule[11])
}
