package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestResicoBracketYAML(t *testing.T) {
	input := `
- lower_limit: 0.01
  upper_limit: 25000.00
  rate: 0.0100
- lower_limit: 208333.34
  upper_limit: ~
  rate: "0.0250"
- lower_limit: 1
  upper_limit: inf
  rate: 0.03
`
	var table ResicoTable
	require.NoError(t, yaml.Unmarshal([]byte(input), &table))
	require.Len(t, table, 3)

	assert.False(t, table[0].Unbounded())
	assert.Equal(t, "25000", table[0].UpperLimit.Decimal.String())
	assert.Equal(t, "0.01", table[0].Rate.String())
	assert.True(t, table[1].Unbounded())
	assert.Equal(t, "0.025", table[1].Rate.String())
	assert.True(t, table[2].Unbounded())
}

func TestResicoBracketYAMLInvalidUpper(t *testing.T) {
	var b ResicoBracket
	err := yaml.Unmarshal([]byte("lower_limit: 1\nupper_limit: lots\nrate: 0.01\n"), &b)
	assert.Error(t, err)
}

func TestAnnualTable(t *testing.T) {
	var tables TaxTables
	tables.ISR[11] = ISRTable{{RatePercent: decimal.NewFromInt(35)}}

	assert.Len(t, tables.AnnualTable(), 1)
	assert.Empty(t, tables.ISR[0], "months without a tariff stay empty")
}
