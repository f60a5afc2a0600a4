package domain

import (
	"fmt"
	"strings"

	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ISRBracket is one row of a progressive ISR tariff: tax is
// (base - LowerLimit) * RatePercent / 100 + FixedFee.
type ISRBracket struct {
	LowerLimit  decimal.Decimal `yaml:"lower_limit" json:"lower_limit"`
	UpperLimit  decimal.Decimal `yaml:"upper_limit" json:"upper_limit"`
	FixedFee    decimal.Decimal `yaml:"fixed_fee" json:"fixed_fee"`
	RatePercent decimal.Decimal `yaml:"rate_percent" json:"rate_percent"` // percent over the excess of the lower limit
}

// ISRTable is a tariff ordered by ascending LowerLimit.
type ISRTable []ISRBracket

// ISRSchedule holds the year-to-date tariff for each calendar month.
// An empty table marks a month whose tariff was not published or loaded.
type ISRSchedule [MonthsPerYear]ISRTable

// ResicoBracket is one row of the RESICO flat-rate table. The last row of a
// table is open-ended and carries no UpperLimit.
type ResicoBracket struct {
	LowerLimit decimal.Decimal     `yaml:"lower_limit" json:"lower_limit"`
	UpperLimit decimal.NullDecimal `yaml:"upper_limit" json:"upper_limit"`
	Rate       decimal.Decimal     `yaml:"rate" json:"rate"` // fraction, 0.0110 = 1.10%
}

// Unbounded reports whether the bracket has no upper limit.
func (b ResicoBracket) Unbounded() bool { return !b.UpperLimit.Valid }

// UnmarshalYAML reads upper_limit as unbounded when absent, null or "inf".
func (b *ResicoBracket) UnmarshalYAML(value *yaml.Node) error {
	var aux struct {
		LowerLimit string `yaml:"lower_limit"`
		UpperLimit string `yaml:"upper_limit"`
		Rate       string `yaml:"rate"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	b.LowerLimit = fiscaldec.CoerceString(aux.LowerLimit)
	b.Rate = fiscaldec.CoerceString(aux.Rate)
	b.UpperLimit = decimal.NullDecimal{}
	switch strings.ToLower(strings.TrimSpace(aux.UpperLimit)) {
	case "", "~", "null", "inf", ".inf", "infinity":
	default:
		upper, err := decimal.NewFromString(aux.UpperLimit)
		if err != nil {
			return fmt.Errorf("invalid RESICO upper limit %q: %w", aux.UpperLimit, err)
		}
		b.UpperLimit = decimal.NewNullDecimal(upper)
	}
	return nil
}

// ResicoTable is ordered by ascending income thresholds.
type ResicoTable []ResicoBracket

// BenfordExpected holds the theoretical leading-digit percentages for digits 1..9.
type BenfordExpected [9]decimal.Decimal

// TaxTables is the reference data swapped per fiscal year.
type TaxTables struct {
	ISR     ISRSchedule     `yaml:"isr" json:"isr"`
	Resico  ResicoTable     `yaml:"resico" json:"resico"`
	Benford BenfordExpected `yaml:"benford" json:"benford"`
}

// AnnualTable returns the December cumulative tariff, which is also the annual one.
func (t TaxTables) AnnualTable() ISRTable {
	return t.ISR[MonthsPerYear-1]
}
