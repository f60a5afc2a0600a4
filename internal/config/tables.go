package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/defycont/SIFIDE2025-v1.0/internal/calculation"
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ReferenceData is the per-year data the engine is built from.
type ReferenceData struct {
	FiscalYear int // zero for the bundled data
	Tables     domain.TaxTables
	INPC       calculation.INPCSeries
}

// DefaultReferenceData returns the bundled tables and INPC series.
func DefaultReferenceData() ReferenceData {
	return ReferenceData{
		Tables: calculation.DefaultTaxTables(),
		INPC:   calculation.DefaultINPCSeries(),
	}
}

// tableFile is the on-disk shape of a table override. Every section is
// optional; absent sections keep the bundled values.
type tableFile struct {
	FiscalYear int                        `yaml:"fiscal_year"`
	ISRMonthly domain.ISRTable            `yaml:"isr_monthly"`
	ISRAnnual  domain.ISRTable            `yaml:"isr_annual"`
	Resico     domain.ResicoTable         `yaml:"resico"`
	Benford    []decimal.Decimal          `yaml:"benford"`
	INPC       map[string]decimal.Decimal `yaml:"inpc"` // MM/YYYY -> index, merged into the bundled series
}

var periodKeyPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])/\d{4}$`)

// TableLoader reads bracket-table overrides from YAML files
type TableLoader struct{}

// NewTableLoader creates a new table loader
func NewTableLoader() *TableLoader {
	return &TableLoader{}
}

// LoadFromFile loads reference data, starting from the bundled defaults
func (tl *TableLoader) LoadFromFile(filename string) (ReferenceData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return ReferenceData{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return tl.Parse(data)
}

// Parse applies the overrides in data on top of the bundled defaults
func (tl *TableLoader) Parse(data []byte) (ReferenceData, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ReferenceData{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := tl.validate(&file); err != nil {
		return ReferenceData{}, fmt.Errorf("table validation failed: %w", err)
	}

	ref := DefaultReferenceData()
	ref.FiscalYear = file.FiscalYear
	if len(file.ISRMonthly) > 0 || len(file.ISRAnnual) > 0 {
		defaults := ref.Tables.ISR
		schedule := calculation.BuildSchedule(file.ISRMonthly, file.ISRAnnual)
		for m := range schedule {
			if len(schedule[m]) == 0 {
				schedule[m] = defaults[m]
			}
		}
		ref.Tables.ISR = schedule
	}
	if len(file.Resico) > 0 {
		ref.Tables.Resico = file.Resico
	}
	if len(file.Benford) > 0 {
		copy(ref.Tables.Benford[:], file.Benford)
	}
	for period, value := range file.INPC {
		ref.INPC[period] = value
	}
	return ref, nil
}

func (tl *TableLoader) validate(file *tableFile) error {
	if err := validateISRTable("isr_monthly", file.ISRMonthly); err != nil {
		return err
	}
	if err := validateISRTable("isr_annual", file.ISRAnnual); err != nil {
		return err
	}

	one := decimal.NewFromInt(1)
	for i, b := range file.Resico {
		if b.Rate.IsNegative() || b.Rate.GreaterThan(one) {
			return fmt.Errorf("resico row %d: rate must be a fraction between 0 and 1", i)
		}
		if b.Unbounded() && i != len(file.Resico)-1 {
			return fmt.Errorf("resico row %d: only the last row may be open-ended", i)
		}
		if i > 0 && !b.LowerLimit.GreaterThan(file.Resico[i-1].LowerLimit) {
			return fmt.Errorf("resico row %d: lower limits must ascend", i)
		}
	}

	if n := len(file.Benford); n != 0 && n != 9 {
		return fmt.Errorf("benford needs 9 percentages, got %d", n)
	}

	for period, value := range file.INPC {
		if !periodKeyPattern.MatchString(period) {
			return fmt.Errorf("inpc period %q must be MM/YYYY", period)
		}
		if !value.IsPositive() {
			return fmt.Errorf("inpc %s must be positive", period)
		}
	}
	return nil
}

func validateISRTable(name string, table domain.ISRTable) error {
	for i, b := range table {
		if b.RatePercent.IsNegative() || b.RatePercent.GreaterThan(decimal.NewFromInt(100)) {
			return fmt.Errorf("%s row %d: rate must be between 0 and 100 percent", name, i)
		}
		if b.FixedFee.IsNegative() {
			return fmt.Errorf("%s row %d: fixed fee cannot be negative", name, i)
		}
		if i > 0 && !b.LowerLimit.GreaterThan(table[i-1].LowerLimit) {
			return fmt.Errorf("%s row %d: lower limits must ascend", name, i)
		}
	}
	return nil
}
