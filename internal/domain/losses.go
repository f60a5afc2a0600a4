package domain

import "github.com/shopspring/decimal"

// HistoricalLoss is a fiscal loss from a prior year, still pending amortization.
type HistoricalLoss struct {
	OriginYear int             `yaml:"origin_year" json:"origin_year"`
	Amount     decimal.Decimal `yaml:"amount" json:"amount"`
}

// UpdatedLoss is a HistoricalLoss restated with INPC factors for an application year.
type UpdatedLoss struct {
	OriginYear       int             `json:"origin_year"`
	Amount           decimal.Decimal `json:"amount"`
	FirstHalfFactor  decimal.Decimal `json:"first_half_factor"`  // INPC Dec(origin) / INPC Jul(origin)
	SecondHalfFactor decimal.Decimal `json:"second_half_factor"` // INPC Jun(application) / INPC Dec(origin)
	UpdatedAmount    decimal.Decimal `json:"updated_amount"`
	Error            string          `json:"error,omitempty"`
}

// LossUpdate is the restatement of every pending loss for one application year.
type LossUpdate struct {
	ApplicationYear int             `json:"application_year"`
	Losses          []UpdatedLoss   `json:"losses"`
	TotalApplicable decimal.Decimal `json:"total_applicable"`
}

// SurchargeResult is the late-payment restatement of an unpaid tax.
type SurchargeResult struct {
	OriginalAmount decimal.Decimal `json:"original_amount"`
	INPCDue        decimal.Decimal `json:"inpc_due"`     // month before the due date
	INPCPayment    decimal.Decimal `json:"inpc_payment"` // month before the payment date
	UpdateFactor   decimal.Decimal `json:"update_factor"`
	UpdatedAmount  decimal.Decimal `json:"updated_amount"`
	MonthsLate     int             `json:"months_late"`
	SurchargeRate  decimal.Decimal `json:"surcharge_rate"`
	Surcharges     decimal.Decimal `json:"surcharges"`
	Total          decimal.Decimal `json:"total"`
}
