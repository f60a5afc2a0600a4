package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableLoaderOverrides(t *testing.T) {
	input := `
fiscal_year: 2026
isr_annual:
  - {lower_limit: 0.01, fixed_fee: 0, rate_percent: 2}
  - {lower_limit: 10000, fixed_fee: 200, rate_percent: 10}
resico:
  - {lower_limit: 0.01, upper_limit: 30000, rate: 0.01}
  - {lower_limit: 30000.01, upper_limit: ~, rate: 0.02}
inpc:
  "07/2025": 140.9
`
	ref, err := NewTableLoader().Parse([]byte(input))
	require.NoError(t, err)

	assert.Equal(t, 2026, ref.FiscalYear)
	annual := ref.Tables.AnnualTable()
	require.Len(t, annual, 2)
	assert.Equal(t, "9999.99", annual[0].UpperLimit.StringFixed(2))
	assert.Len(t, ref.Tables.ISR[0], 11, "months without an override keep the bundled tariff")

	require.Len(t, ref.Tables.Resico, 2)
	assert.True(t, ref.Tables.Resico[1].Unbounded())

	v, err := ref.INPC.Lookup(2025, time.July)
	require.NoError(t, err)
	assert.Equal(t, "140.9", v.String())
	_, err = ref.INPC.Lookup(2023, time.July)
	assert.NoError(t, err, "bundled periods are kept")
}

func TestTableLoaderEmptyFileKeepsDefaults(t *testing.T) {
	ref, err := NewTableLoader().Parse([]byte("{}"))
	require.NoError(t, err)

	defaults := DefaultReferenceData()
	assert.Equal(t, len(defaults.INPC), len(ref.INPC))
	assert.Len(t, ref.Tables.Resico, len(defaults.Tables.Resico))
}

func TestTableLoaderValidation(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Descending ISR rows",
			input: "isr_monthly:\n  - {lower_limit: 100, rate_percent: 2}\n  - {lower_limit: 50, rate_percent: 5}\n",
			want:  "lower limits must ascend",
		},
		{
			name:  "RESICO rate as percent",
			input: "resico:\n  - {lower_limit: 0.01, upper_limit: ~, rate: 2.5}\n",
			want:  "fraction",
		},
		{
			name:  "Open-ended middle row",
			input: "resico:\n  - {lower_limit: 0.01, rate: 0.01}\n  - {lower_limit: 100, rate: 0.02}\n",
			want:  "open-ended",
		},
		{
			name:  "Short Benford table",
			input: "benford: [30.1, 17.6]\n",
			want:  "9 percentages",
		},
		{
			name:  "Bad INPC key",
			input: "inpc:\n  \"2025-07\": 140\n",
			want:  "MM/YYYY",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTableLoader().Parse([]byte(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestTableLoaderFileNotFound(t *testing.T) {
	_, err := NewTableLoader().LoadFromFile("missing-tables.yaml")
	assert.ErrorContains(t, err, "failed to read file")
}
