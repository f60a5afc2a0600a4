package calculation

import (
	"fmt"
	"time"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/defycont/SIFIDE2025-v1.0/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// MonthlySurchargeRate is the late-payment surcharge per month (1.47 %).
var MonthlySurchargeRate = decimal.RequireFromString("0.0147")

// CalculateSurcharge restates an unpaid amount from its due date to the
// payment date and adds monthly surcharges on the updated amount.
func CalculateSurcharge(amount decimal.Decimal, dueDate, paymentDate time.Time, inpc INPCSeries) (domain.SurchargeResult, error) {
	if paymentDate.Before(dueDate) {
		return domain.SurchargeResult{}, fmt.Errorf("payment date %s precedes due date %s",
			paymentDate.Format("2006-01-02"), dueDate.Format("2006-01-02"))
	}

	dueYear, dueMonth := dateutil.PreviousMonth(dueDate.Year(), dueDate.Month())
	inpcDue, err := inpc.Lookup(dueYear, dueMonth)
	if err != nil {
		return domain.SurchargeResult{}, err
	}
	payYear, payMonth := dateutil.PreviousMonth(paymentDate.Year(), paymentDate.Month())
	inpcPayment, err := inpc.Lookup(payYear, payMonth)
	if err != nil {
		return domain.SurchargeResult{}, err
	}

	factor := inpcPayment.Div(inpcDue)
	updated := amount.Mul(factor)
	months := dateutil.MonthsBetween(dueDate, paymentDate)
	surcharges := updated.Mul(MonthlySurchargeRate).Mul(decimal.NewFromInt(int64(months)))

	return domain.SurchargeResult{
		OriginalAmount: amount,
		INPCDue:        inpcDue,
		INPCPayment:    inpcPayment,
		UpdateFactor:   factor,
		UpdatedAmount:  updated,
		MonthsLate:     months,
		SurchargeRate:  MonthlySurchargeRate,
		Surcharges:     surcharges,
		Total:          updated.Add(surcharges),
	}, nil
}
