package catalog

import "math"

// AdjustMode selects how a bulk fee adjustment is applied
type AdjustMode string

const (
	IncreasePercentage AdjustMode = "increase_percentage"
	DecreasePercentage AdjustMode = "decrease_percentage"
	IncreaseFixed      AdjustMode = "increase_fixed"
	DecreaseFixed      AdjustMode = "decrease_fixed"
)

// Round2 rounds a currency amount to 2 decimal places
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// AdjustFee applies mode/value to a single fee, clamping at 0 and
// rounding to 2 decimals.
func AdjustFee(fee float64, mode AdjustMode, value float64) float64 {
	switch mode {
	case IncreasePercentage:
		fee = fee * (1 + value/100)
	case DecreasePercentage:
		fee = fee * (1 - value/100)
	case IncreaseFixed:
		fee = fee + value
	case DecreaseFixed:
		fee = fee - value
	}
	if fee < 0 {
		fee = 0
	}
	return Round2(fee)
}

// AdjustVariationFees applies the adjustment to every role's fee on every
// variation in the list, recursing into nested variations.
func AdjustVariationFees(list []Variation, mode AdjustMode, value float64) {
	for i := range list {
		list[i].Fees.Customer = AdjustFee(list[i].Fees.Customer, mode, value)
		list[i].Fees.Vendor = AdjustFee(list[i].Fees.Vendor, mode, value)
		list[i].Fees.Admin = AdjustFee(list[i].Fees.Admin, mode, value)
		AdjustVariationFees(list[i].Children, mode, value)
	}
}
