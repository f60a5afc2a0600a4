package domain

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseMonth(t *testing.T) {
	tests := []struct {
		input   string
		want    Month
		wantErr bool
	}{
		{input: "1", want: 0},
		{input: "03", want: 2},
		{input: " 12 ", want: 11},
		{input: "diciembre", want: 11},
		{input: "Mayo", want: 4},
		{input: "0", wantErr: true},
		{input: "13", wantErr: true},
		{input: "May", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMonth(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMonthString(t *testing.T) {
	assert.Equal(t, "Enero", Month(0).String())
	assert.Equal(t, "Diciembre", Month(11).String())
	assert.True(t, Month(11).Valid())
	assert.False(t, Month(12).Valid())
}

func TestParseRegime(t *testing.T) {
	assert.Equal(t, RegimeResicoPF, ParseRegime("RESICO_PF"))
	assert.Equal(t, RegimeResicoPF, ParseRegime(" resico "))
	assert.Equal(t, RegimeGeneral, ParseRegime("General"))
	assert.Equal(t, RegimeGeneral, ParseRegime(""))
	assert.Equal(t, RegimeGeneral, ParseRegime("PFAE"), "unknown regimes fall back to the general one")
	assert.Equal(t, "RESICO Persona Física", RegimeResicoPF.Label())
}

func TestFieldEnumerations(t *testing.T) {
	for _, f := range IncomeFields() {
		parsed, err := ParseIncomeField(f.Key())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	for _, f := range ExpenseFields() {
		parsed, err := ParseExpenseField(f.Key())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}
	for _, f := range ResicoFields() {
		parsed, err := ParseResicoField(f.Key())
		require.NoError(t, err)
		assert.Equal(t, f, parsed)
	}

	_, err := ParseExpenseField("travel")
	assert.Error(t, err)
}

func TestRecordSetGet(t *testing.T) {
	var e MonthlyExpenseRecord
	e.Set(ExpensePayroll, decimal.NewFromInt(1200))
	e.Set(ExpenseStrategic, decimal.NewFromInt(300))

	assert.True(t, e.Payroll.Equal(decimal.NewFromInt(1200)))
	assert.True(t, e.Get(ExpenseStrategic).Equal(decimal.NewFromInt(300)))
	assert.True(t, e.Get(ExpenseStandard).IsZero())

	var r MonthlyResicoRecord
	r.Set(ResicoWithheld, decimal.NewFromInt(50))
	assert.True(t, r.Get(ResicoWithheld).Equal(decimal.NewFromInt(50)))
}

func TestIncomeRecordLenientJSON(t *testing.T) {
	var r MonthlyIncomeRecord
	err := json.Unmarshal([]byte(`{"standard": "1,500.50", "zero_rated": null, "exempt": "abc"}`), &r)
	require.NoError(t, err)

	assert.Equal(t, "1500.5", r.Standard.String())
	assert.True(t, r.ZeroRated.IsZero())
	assert.True(t, r.Exempt.IsZero())
}

func TestExpenseRecordLenientYAML(t *testing.T) {
	var r MonthlyExpenseRecord
	err := yaml.Unmarshal([]byte("standard: 1000\npayroll: .nan\nstrategic: \"$250\"\n"), &r)
	require.NoError(t, err)

	assert.Equal(t, "1000", r.Standard.String())
	assert.True(t, r.Payroll.IsZero())
	assert.Equal(t, "250", r.Strategic.String())
}

func TestTaxpayerDataJSON(t *testing.T) {
	input := `{
		"config": {"rfc": " gode561231gr8 ", "fiscal_year": 2025, "regime": "resico_pf", "prior_losses": "bad"},
		"income": [{"standard": 100}, {"standard": 200}],
		"resico": [{"income": 1000, "withheld": 12.5}],
		"historical_losses": [{"origin_year": 2022, "amount": "5000"}]
	}`

	var data TaxpayerData
	require.NoError(t, json.Unmarshal([]byte(input), &data))

	assert.Equal(t, "GODE561231GR8", data.Config.RFC)
	assert.Equal(t, 2025, data.Config.FiscalYear)
	assert.Equal(t, RegimeResicoPF, data.Config.Regime)
	assert.True(t, data.Config.VATRatePercent.Equal(DefaultVATRatePercent), "absent rate defaults to 16")
	assert.True(t, data.Config.PriorLosses.IsZero())
	assert.Equal(t, "200", data.Income[1].Standard.String())
	assert.True(t, data.Income[11].Standard.IsZero(), "short lists are padded")
	assert.Equal(t, "12.5", data.Resico[0].Withheld.String())
	require.Len(t, data.HistoricalLosses, 1)
	assert.Equal(t, 2022, data.HistoricalLosses[0].OriginYear)
}

func TestTaxpayerDataYAML(t *testing.T) {
	input := `
config:
  company_name: Demo SA de CV
  rfc: EKU9003173C9
  vat_rate_percent: ""
  fiscal_year: 2024
expenses:
  - standard: 500
    payroll: 20000
`
	var data TaxpayerData
	require.NoError(t, yaml.Unmarshal([]byte(input), &data))

	assert.Equal(t, "Demo SA de CV", data.Config.CompanyName)
	assert.Equal(t, RegimeGeneral, data.Config.Regime)
	assert.True(t, data.Config.VATRatePercent.IsZero(), "a present but invalid rate is zero")
	assert.Equal(t, "20000", data.Expenses[0].Payroll.String())
	assert.Len(t, data.ExpenseRecords(), MonthsPerYear)
}

func TestTaxpayerDataTruncatesExtraMonths(t *testing.T) {
	records := make([]map[string]int, 14)
	for i := range records {
		records[i] = map[string]int{"standard": i + 1}
	}
	payload, err := json.Marshal(map[string]any{"income": records})
	require.NoError(t, err)

	var data TaxpayerData
	require.NoError(t, json.Unmarshal(payload, &data))

	assert.Equal(t, "12", data.Income[11].Standard.String())
}

func TestNewTaxpayerData(t *testing.T) {
	data := NewTaxpayerData("ekU9003173c9", 2025)

	assert.Equal(t, "EKU9003173C9", data.Config.RFC)
	assert.Equal(t, 2025, data.Config.FiscalYear)
	assert.Equal(t, RegimeGeneral, data.Config.Regime)
	assert.True(t, data.Config.VATRatePercent.Equal(decimal.NewFromInt(16)))
}
