package calculation

import (
	"github.com/defycont/SIFIDE2025-v1.0/internal/domain"
	"github.com/shopspring/decimal"
)

// AnalyzeBenford tallies the first significant digit of every non-zero value
// and returns each digit's share as a percentage. With no qualifying values
// every digit is zero. No threshold is applied here.
func AnalyzeBenford(values []decimal.Decimal) domain.BenfordDistribution {
	var counts [9]int
	samples := 0
	for _, v := range values {
		d := leadingDigit(v)
		if d == 0 {
			continue
		}
		counts[d-1]++
		samples++
	}

	dist := domain.BenfordDistribution{Samples: samples}
	if samples == 0 {
		for i := range dist.Percentages {
			dist.Percentages[i] = decimal.Zero
		}
		return dist
	}
	total := decimal.NewFromInt(int64(samples))
	for i, c := range counts {
		dist.Percentages[i] = decimal.NewFromInt(int64(c)).Mul(hundred).Div(total)
	}
	return dist
}

// leadingDigit returns the first non-zero digit of |v| in decimal notation, or 0 for zero.
func leadingDigit(v decimal.Decimal) int {
	if v.IsZero() {
		return 0
	}
	for _, r := range v.Abs().String() {
		if r >= '1' && r <= '9' {
			return int(r - '0')
		}
	}
	return 0
}
