package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Supported bundle encodings.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Fiscal years the calculator accepts.
const (
	MinFiscalYear = 2000
	MaxFiscalYear = 2100
)

// TaxpayerParser handles parsing of taxpayer bundle files
type TaxpayerParser struct{}

// NewTaxpayerParser creates a new taxpayer parser
func NewTaxpayerParser() *TaxpayerParser {
	return &TaxpayerParser{}
}

// FormatForFile picks the encoding from the file extension; anything other than .json is YAML.
func FormatForFile(filename string) string {
	if strings.EqualFold(filepath.Ext(filename), ".json") {
		return FormatJSON
	}
	return FormatYAML
}

// LoadFromFile loads a taxpayer bundle from a YAML or JSON file
func (tp *TaxpayerParser) LoadFromFile(filename string) (*domain.TaxpayerData, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return tp.Parse(data, FormatForFile(filename))
}

// Parse decodes and validates a taxpayer bundle
func (tp *TaxpayerParser) Parse(data []byte, format string) (*domain.TaxpayerData, error) {
	var bundle domain.TaxpayerData
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &bundle); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &bundle); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	if err := tp.ValidateTaxpayerData(&bundle); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &bundle, nil
}

// ValidateTaxpayerData checks the configuration of a bundle. Monthly amounts
// are not validated: the engine accepts whatever was captured.
func (tp *TaxpayerParser) ValidateTaxpayerData(data *domain.TaxpayerData) error {
	cfg := data.Config
	if cfg.RFC == "" {
		return fmt.Errorf("RFC is required")
	}
	if err := domain.ValidateRFC(cfg.RFC); err != nil {
		return fmt.Errorf("RFC %s: %w", cfg.RFC, err)
	}
	if cfg.FiscalYear < MinFiscalYear || cfg.FiscalYear > MaxFiscalYear {
		return fmt.Errorf("fiscal year must be between %d and %d", MinFiscalYear, MaxFiscalYear)
	}
	if cfg.VATRatePercent.IsNegative() || cfg.VATRatePercent.GreaterThan(decimal.NewFromInt(100)) {
		return fmt.Errorf("VAT rate must be between 0 and 100 percent")
	}
	if cfg.PriorLosses.IsNegative() {
		return fmt.Errorf("prior losses cannot be negative")
	}

	for i, loss := range data.HistoricalLosses {
		if err := tp.validateHistoricalLoss(loss, cfg.FiscalYear); err != nil {
			return fmt.Errorf("historical loss %d validation failed: %w", i, err)
		}
	}
	return nil
}

func (tp *TaxpayerParser) validateHistoricalLoss(loss domain.HistoricalLoss, fiscalYear int) error {
	if loss.OriginYear >= fiscalYear {
		return fmt.Errorf("origin year %d must precede fiscal year %d", loss.OriginYear, fiscalYear)
	}
	// Losses may be amortized for ten years after the one in which they arose.
	if fiscalYear-loss.OriginYear > 10 {
		return fmt.Errorf("loss from %d expired before %d", loss.OriginYear, fiscalYear)
	}
	if !loss.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive")
	}
	return nil
}

// Marshal encodes a bundle in the given format
func (tp *TaxpayerParser) Marshal(data *domain.TaxpayerData, format string) ([]byte, error) {
	if format == FormatJSON {
		return json.MarshalIndent(data, "", "  ")
	}
	return yaml.Marshal(data)
}

// SaveToFile writes a bundle, choosing the encoding from the file extension
func (tp *TaxpayerParser) SaveToFile(data *domain.TaxpayerData, filename string) error {
	out, err := tp.Marshal(data, FormatForFile(filename))
	if err != nil {
		return fmt.Errorf("failed to encode taxpayer data: %w", err)
	}
	if err := os.WriteFile(filename, out, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleTaxpayer creates an example taxpayer bundle
func (tp *TaxpayerParser) CreateExampleTaxpayer() *domain.TaxpayerData {
	data := domain.NewTaxpayerData("EKU9003173C9", 2024)
	data.Config.CompanyName = "Escuela Kemper Urgate SA de CV"

	income := []int64{185000, 162000, 198500, 174300, 210900, 188250, 205400, 176800, 193200, 221700, 246300, 298100}
	expenses := []int64{96400, 88100, 104300, 91700, 118200, 99800, 112600, 93400, 101900, 123500, 131800, 164200}
	for i := 0; i < domain.MonthsPerYear; i++ {
		data.Income[i] = domain.MonthlyIncomeRecord{
			Standard:  decimal.NewFromInt(income[i]),
			ZeroRated: decimal.NewFromInt(income[i] / 10),
		}
		data.Expenses[i] = domain.MonthlyExpenseRecord{
			Standard:  decimal.NewFromInt(expenses[i]),
			Exempt:    decimal.NewFromInt(4500),
			Payroll:   decimal.NewFromInt(62000),
			Strategic: decimal.NewFromInt(expenses[i] / 20),
		}
	}
	data.HistoricalLosses = []domain.HistoricalLoss{
		{OriginYear: 2022, Amount: decimal.NewFromInt(150000)},
	}
	return &data
}
