package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/defycont/SIFIDE2025-v1.0/pkg/dateutil"
	fiscaldec "github.com/defycont/SIFIDE2025-v1.0/pkg/decimal"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MonthsPerYear is the number of monthly records kept per taxpayer-year.
const MonthsPerYear = 12

// DefaultVATRatePercent is the general IVA rate applied when none is configured.
var DefaultVATRatePercent = decimal.NewFromInt(16)

// Month is a zero-based calendar month index (0 = January).
type Month int

// String returns the Spanish month name
func (m Month) String() string { return dateutil.MonthName(int(m)) }

// Valid reports whether m addresses one of the twelve monthly records.
func (m Month) Valid() bool { return m >= 0 && m < MonthsPerYear }

// ParseMonth accepts a 1-based month number ("1".."12") or a Spanish month name.
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		if n < 1 || n > MonthsPerYear {
			return 0, fmt.Errorf("month %d out of range 1-12", n)
		}
		return Month(n - 1), nil
	}
	for i := 0; i < MonthsPerYear; i++ {
		if strings.EqualFold(dateutil.MonthName(i), s) {
			return Month(i), nil
		}
	}
	return 0, fmt.Errorf("unknown month %q", s)
}

// Regime is the taxpayer's ISR regime selector.
type Regime string

const (
	RegimeGeneral  Regime = "GENERAL"
	RegimeResicoPF Regime = "RESICO_PF"
)

// ParseRegime maps free-form input onto a regime; anything unrecognized is the general regime.
func ParseRegime(s string) Regime {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "RESICO_PF", "RESICO", "RESICO-PF":
		return RegimeResicoPF
	default:
		return RegimeGeneral
	}
}

// IsResico reports whether r is the flat-rate regime.
func (r Regime) IsResico() bool { return r == RegimeResicoPF }

// Label returns the display name of the regime
func (r Regime) Label() string {
	if r.IsResico() {
		return "RESICO Persona Física"
	}
	return "Régimen General"
}

// IncomeField enumerates the amounts of a MonthlyIncomeRecord.
type IncomeField int

const (
	IncomeStandard IncomeField = iota
	IncomeZeroRated
	IncomeExempt
)

var incomeFieldKeys = []string{"standard", "zero_rated", "exempt"}

// Key returns the serialized name of the field
func (f IncomeField) Key() string { return incomeFieldKeys[f] }

// IncomeFields lists every income field in record order.
func IncomeFields() []IncomeField { return []IncomeField{IncomeStandard, IncomeZeroRated, IncomeExempt} }

// ParseIncomeField resolves a serialized field name.
func ParseIncomeField(key string) (IncomeField, error) {
	for i, k := range incomeFieldKeys {
		if k == key {
			return IncomeField(i), nil
		}
	}
	return 0, fmt.Errorf("unknown income field %q", key)
}

// MonthlyIncomeRecord holds one month of invoiced income by VAT treatment.
type MonthlyIncomeRecord struct {
	Standard  decimal.Decimal `yaml:"standard" json:"standard"`     // taxed at the general rate
	ZeroRated decimal.Decimal `yaml:"zero_rated" json:"zero_rated"` // tasa 0%
	Exempt    decimal.Decimal `yaml:"exempt" json:"exempt"`
}

// Get returns the amount stored in field f
func (r MonthlyIncomeRecord) Get(f IncomeField) decimal.Decimal {
	return [...]decimal.Decimal{r.Standard, r.ZeroRated, r.Exempt}[f]
}

// Set stores v in field f
func (r *MonthlyIncomeRecord) Set(f IncomeField, v decimal.Decimal) {
	switch f {
	case IncomeStandard:
		r.Standard = v
	case IncomeZeroRated:
		r.ZeroRated = v
	case IncomeExempt:
		r.Exempt = v
	}
}

func (r *MonthlyIncomeRecord) assign(values []decimal.Decimal) {
	for i, f := range IncomeFields() {
		r.Set(f, values[i])
	}
}

// UnmarshalYAML decodes leniently; invalid amounts become zero.
func (r *MonthlyIncomeRecord) UnmarshalYAML(value *yaml.Node) error {
	values, err := decodeAmountsYAML(value, incomeFieldKeys)
	if err != nil {
		return err
	}
	r.assign(values)
	return nil
}

// UnmarshalJSON decodes leniently; invalid amounts become zero.
func (r *MonthlyIncomeRecord) UnmarshalJSON(data []byte) error {
	values, err := decodeAmountsJSON(data, incomeFieldKeys)
	if err != nil {
		return err
	}
	r.assign(values)
	return nil
}

// ExpenseField enumerates the amounts of a MonthlyExpenseRecord.
type ExpenseField int

const (
	ExpenseStandard ExpenseField = iota
	ExpenseZeroRated
	ExpenseExempt
	ExpensePayroll
	ExpenseStrategic
)

var expenseFieldKeys = []string{"standard", "zero_rated", "exempt", "payroll", "strategic"}

// Key returns the serialized name of the field
func (f ExpenseField) Key() string { return expenseFieldKeys[f] }

// ExpenseFields lists every expense field in record order.
func ExpenseFields() []ExpenseField {
	return []ExpenseField{ExpenseStandard, ExpenseZeroRated, ExpenseExempt, ExpensePayroll, ExpenseStrategic}
}

// ParseExpenseField resolves a serialized field name.
func ParseExpenseField(key string) (ExpenseField, error) {
	for i, k := range expenseFieldKeys {
		if k == key {
			return ExpenseField(i), nil
		}
	}
	return 0, fmt.Errorf("unknown expense field %q", key)
}

// MonthlyExpenseRecord holds one month of deductible purchases.
// Strategic purchases credit VAT like Standard ones but are reported apart.
type MonthlyExpenseRecord struct {
	Standard  decimal.Decimal `yaml:"standard" json:"standard"`
	ZeroRated decimal.Decimal `yaml:"zero_rated" json:"zero_rated"`
	Exempt    decimal.Decimal `yaml:"exempt" json:"exempt"`
	Payroll   decimal.Decimal `yaml:"payroll" json:"payroll"`
	Strategic decimal.Decimal `yaml:"strategic" json:"strategic"`
}

// Get returns the amount stored in field f
func (r MonthlyExpenseRecord) Get(f ExpenseField) decimal.Decimal {
	return [...]decimal.Decimal{r.Standard, r.ZeroRated, r.Exempt, r.Payroll, r.Strategic}[f]
}

// Set stores v in field f
func (r *MonthlyExpenseRecord) Set(f ExpenseField, v decimal.Decimal) {
	switch f {
	case ExpenseStandard:
		r.Standard = v
	case ExpenseZeroRated:
		r.ZeroRated = v
	case ExpenseExempt:
		r.Exempt = v
	case ExpensePayroll:
		r.Payroll = v
	case ExpenseStrategic:
		r.Strategic = v
	}
}

func (r *MonthlyExpenseRecord) assign(values []decimal.Decimal) {
	for i, f := range ExpenseFields() {
		r.Set(f, values[i])
	}
}

// UnmarshalYAML decodes leniently; invalid amounts become zero.
func (r *MonthlyExpenseRecord) UnmarshalYAML(value *yaml.Node) error {
	values, err := decodeAmountsYAML(value, expenseFieldKeys)
	if err != nil {
		return err
	}
	r.assign(values)
	return nil
}

// UnmarshalJSON decodes leniently; invalid amounts become zero.
func (r *MonthlyExpenseRecord) UnmarshalJSON(data []byte) error {
	values, err := decodeAmountsJSON(data, expenseFieldKeys)
	if err != nil {
		return err
	}
	r.assign(values)
	return nil
}

// ResicoField enumerates the amounts of a MonthlyResicoRecord.
type ResicoField int

const (
	ResicoIncome ResicoField = iota
	ResicoWithheld
)

var resicoFieldKeys = []string{"income", "withheld"}

// Key returns the serialized name of the field
func (f ResicoField) Key() string { return resicoFieldKeys[f] }

// ResicoFields lists every RESICO field in record order.
func ResicoFields() []ResicoField { return []ResicoField{ResicoIncome, ResicoWithheld} }

// ParseResicoField resolves a serialized field name.
func ParseResicoField(key string) (ResicoField, error) {
	for i, k := range resicoFieldKeys {
		if k == key {
			return ResicoField(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resico field %q", key)
}

// MonthlyResicoRecord holds one month of flat-regime income and ISR withheld by clients.
type MonthlyResicoRecord struct {
	Income   decimal.Decimal `yaml:"income" json:"income"`
	Withheld decimal.Decimal `yaml:"withheld" json:"withheld"`
}

// Get returns the amount stored in field f
func (r MonthlyResicoRecord) Get(f ResicoField) decimal.Decimal {
	if f == ResicoWithheld {
		return r.Withheld
	}
	return r.Income
}

// Set stores v in field f
func (r *MonthlyResicoRecord) Set(f ResicoField, v decimal.Decimal) {
	if f == ResicoWithheld {
		r.Withheld = v
		return
	}
	r.Income = v
}

// UnmarshalYAML decodes leniently; invalid amounts become zero.
func (r *MonthlyResicoRecord) UnmarshalYAML(value *yaml.Node) error {
	values, err := decodeAmountsYAML(value, resicoFieldKeys)
	if err != nil {
		return err
	}
	r.Income, r.Withheld = values[0], values[1]
	return nil
}

// UnmarshalJSON decodes leniently; invalid amounts become zero.
func (r *MonthlyResicoRecord) UnmarshalJSON(data []byte) error {
	values, err := decodeAmountsJSON(data, resicoFieldKeys)
	if err != nil {
		return err
	}
	r.Income, r.Withheld = values[0], values[1]
	return nil
}

// TaxConfiguration is the per-taxpayer calculation setup.
type TaxConfiguration struct {
	CompanyName    string          `yaml:"company_name" json:"company_name"`
	RFC            string          `yaml:"rfc" json:"rfc"`
	VATRatePercent decimal.Decimal `yaml:"vat_rate_percent" json:"vat_rate_percent"`
	FiscalYear     int             `yaml:"fiscal_year" json:"fiscal_year"`
	Regime         Regime          `yaml:"regime" json:"regime"`
	// PriorLosses are carried-forward fiscal losses; only the general regime applies them.
	PriorLosses decimal.Decimal `yaml:"prior_losses" json:"prior_losses"`
}

type taxConfigurationAlias struct {
	CompanyName    string `yaml:"company_name" json:"company_name"`
	RFC            string `yaml:"rfc" json:"rfc"`
	VATRatePercent any    `yaml:"vat_rate_percent" json:"vat_rate_percent"`
	FiscalYear     any    `yaml:"fiscal_year" json:"fiscal_year"`
	Regime         string `yaml:"regime" json:"regime"`
	PriorLosses    any    `yaml:"prior_losses" json:"prior_losses"`
}

func (c *TaxConfiguration) fromAlias(aux taxConfigurationAlias) {
	c.CompanyName = strings.TrimSpace(aux.CompanyName)
	c.RFC = NormalizeRFC(aux.RFC)
	c.Regime = ParseRegime(aux.Regime)
	c.PriorLosses = fiscaldec.Coerce(aux.PriorLosses)
	c.FiscalYear = int(fiscaldec.Coerce(aux.FiscalYear).IntPart())
	// An absent rate takes the policy default; a present but invalid one is zero.
	if aux.VATRatePercent == nil {
		c.VATRatePercent = DefaultVATRatePercent
	} else {
		c.VATRatePercent = fiscaldec.Coerce(aux.VATRatePercent)
	}
}

// UnmarshalYAML implements custom YAML unmarshaling for TaxConfiguration
func (c *TaxConfiguration) UnmarshalYAML(value *yaml.Node) error {
	var aux taxConfigurationAlias
	if err := value.Decode(&aux); err != nil {
		return err
	}
	c.fromAlias(aux)
	return nil
}

// UnmarshalJSON implements custom JSON unmarshaling for TaxConfiguration
func (c *TaxConfiguration) UnmarshalJSON(data []byte) error {
	var aux taxConfigurationAlias
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	if err := dec.Decode(&aux); err != nil {
		return err
	}
	c.fromAlias(aux)
	return nil
}

// TaxpayerData is everything the fiscal engine reads for one taxpayer-year.
type TaxpayerData struct {
	Config           TaxConfiguration                    `yaml:"config" json:"config"`
	Income           [MonthsPerYear]MonthlyIncomeRecord  `yaml:"income" json:"income"`
	Expenses         [MonthsPerYear]MonthlyExpenseRecord `yaml:"expenses" json:"expenses"`
	Resico           [MonthsPerYear]MonthlyResicoRecord  `yaml:"resico" json:"resico"`
	HistoricalLosses []HistoricalLoss                    `yaml:"historical_losses,omitempty" json:"historical_losses,omitempty"`
	LastSaved        *time.Time                          `yaml:"last_saved,omitempty" json:"last_saved,omitempty"`
}

// NewTaxpayerData returns an empty bundle for rfc and fiscal year.
func NewTaxpayerData(rfc string, fiscalYear int) TaxpayerData {
	return TaxpayerData{
		Config: TaxConfiguration{
			RFC:            NormalizeRFC(rfc),
			VATRatePercent: DefaultVATRatePercent,
			FiscalYear:     fiscalYear,
			Regime:         RegimeGeneral,
		},
	}
}

type taxpayerDataAlias struct {
	Config           TaxConfiguration       `yaml:"config" json:"config"`
	Income           []MonthlyIncomeRecord  `yaml:"income" json:"income"`
	Expenses         []MonthlyExpenseRecord `yaml:"expenses" json:"expenses"`
	Resico           []MonthlyResicoRecord  `yaml:"resico" json:"resico"`
	HistoricalLosses []HistoricalLoss       `yaml:"historical_losses" json:"historical_losses"`
	LastSaved        *time.Time             `yaml:"last_saved" json:"last_saved"`
}

func (d *TaxpayerData) fromAlias(aux taxpayerDataAlias) {
	*d = TaxpayerData{
		Config:           aux.Config,
		HistoricalLosses: aux.HistoricalLosses,
		LastSaved:        aux.LastSaved,
	}
	// Short lists are padded with zero months; extra entries are ignored.
	copy(d.Income[:], aux.Income)
	copy(d.Expenses[:], aux.Expenses)
	copy(d.Resico[:], aux.Resico)
}

// UnmarshalYAML accepts monthly lists of any length.
func (d *TaxpayerData) UnmarshalYAML(value *yaml.Node) error {
	aux := taxpayerDataAlias{Config: TaxConfiguration{VATRatePercent: DefaultVATRatePercent}}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	d.fromAlias(aux)
	return nil
}

// UnmarshalJSON accepts monthly lists of any length.
func (d *TaxpayerData) UnmarshalJSON(data []byte) error {
	aux := taxpayerDataAlias{Config: TaxConfiguration{VATRatePercent: DefaultVATRatePercent}}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	d.fromAlias(aux)
	return nil
}

// IncomeRecords returns the twelve income records as a slice
func (d *TaxpayerData) IncomeRecords() []MonthlyIncomeRecord { return d.Income[:] }

// ExpenseRecords returns the twelve expense records as a slice
func (d *TaxpayerData) ExpenseRecords() []MonthlyExpenseRecord { return d.Expenses[:] }

// ResicoRecords returns the twelve RESICO records as a slice
func (d *TaxpayerData) ResicoRecords() []MonthlyResicoRecord { return d.Resico[:] }
