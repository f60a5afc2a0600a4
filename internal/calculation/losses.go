package calculation

import (
	"time"

	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// UpdateLosses restates pending losses for use in applicationYear. Each loss
// is first brought to December of its origin year (Dec/Jul) and then to June
// of the application year (Jun/Dec). Losses whose INPC values are missing
// carry an error and do not count toward the total.
func UpdateLosses(losses []domain.HistoricalLoss, applicationYear int, inpc INPCSeries) domain.LossUpdate {
	out := domain.LossUpdate{ApplicationYear: applicationYear, TotalApplicable: decimal.Zero}
	for _, loss := range losses {
		row := domain.UpdatedLoss{OriginYear: loss.OriginYear, Amount: loss.Amount}
		if loss.OriginYear == 0 || !loss.Amount.IsPositive() {
			row.Error = "pérdida sin año de origen o monto"
			out.Losses = append(out.Losses, row)
			continue
		}

		julOrigin, err := inpc.Lookup(loss.OriginYear, time.July)
		if err != nil {
			row.Error = err.Error()
			out.Losses = append(out.Losses, row)
			continue
		}
		decOrigin, err := inpc.Lookup(loss.OriginYear, time.December)
		if err != nil {
			row.Error = err.Error()
			out.Losses = append(out.Losses, row)
			continue
		}
		junApplication, err := inpc.Lookup(applicationYear, time.June)
		if err != nil {
			row.Error = err.Error()
			out.Losses = append(out.Losses, row)
			continue
		}

		row.FirstHalfFactor = decOrigin.Div(julOrigin)
		row.SecondHalfFactor = junApplication.Div(decOrigin)
		row.UpdatedAmount = loss.Amount.Mul(row.FirstHalfFactor).Mul(row.SecondHalfFactor)
		out.TotalApplicable = out.TotalApplicable.Add(row.UpdatedAmount)
		out.Losses = append(out.Losses, row)
	}
	return out
}
