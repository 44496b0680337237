package money

import "github.com/shopspring/decimal"

// USD renders v as a dollar amount with two decimals, e.g. "$1234.50".
func USD(v float64) string {
	return "$" + Fixed(v, 2)
}

// Fixed renders v with exactly places decimals using half-up rounding.
func Fixed(v float64, places int32) string {
	return decimal.NewFromFloat(v).StringFixed(places)
}

// Round rounds v half away from zero to places decimals.
func Round(v float64, places int32) float64 {
	f, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return f
}

// Sum adds amounts in decimal space so long currency lists do not drift.
func Sum(values ...float64) float64 {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(decimal.NewFromFloat(v))
	}
	f, _ := total.Float64()
	return f
}
