package pricing

// TierSpec describes one synthetic bulk tier relative to the requested quantity.
type TierSpec struct {
	Multiplier         int
	DiscountPercentage float64
}

type Config struct {
	OrderingCost    float64
	HoldingCostRate float64

	// flat surcharge assumed when an order is below the free-shipping threshold
	ShippingEstimate float64

	// placeholder tiers until vendors publish real bulk pricing
	BulkTiers         []TierSpec
	MaxBulkMultiplier float64

	// EOQ is only adopted when it lies strictly inside (1x, EOQUpperMultiplier x) the request
	EOQUpperMultiplier float64
	// bulk tiers are only adopted when savings exceed this many unit prices
	BulkAdoptionUnits float64

	ShippingProximity float64
	TrendSlopeFactor  float64
	MinTrendPoints    int
	MinSeasonalMonths int
}

const (
	defaultOrderingCost       = 50.0
	defaultHoldingCostRate    = 0.25
	defaultShippingEstimate   = 15.0
	defaultMaxBulkMultiplier  = 3.0
	defaultEOQUpperMultiplier = 2.0
	defaultBulkAdoptionUnits  = 2.0
	defaultShippingProximity  = 0.2
	defaultTrendSlopeFactor   = 0.1
	defaultMinTrendPoints     = 3
	defaultMinSeasonalMonths  = 3
)

func DefaultConfig() Config {
	return Config{
		OrderingCost:     defaultOrderingCost,
		HoldingCostRate:  defaultHoldingCostRate,
		ShippingEstimate: defaultShippingEstimate,

		BulkTiers: []TierSpec{
			{Multiplier: 1, DiscountPercentage: 0},
			{Multiplier: 2, DiscountPercentage: 5},
			{Multiplier: 5, DiscountPercentage: 10},
			{Multiplier: 10, DiscountPercentage: 15},
		},
		MaxBulkMultiplier: defaultMaxBulkMultiplier,

		EOQUpperMultiplier: defaultEOQUpperMultiplier,
		BulkAdoptionUnits:  defaultBulkAdoptionUnits,

		ShippingProximity: defaultShippingProximity,
		TrendSlopeFactor:  defaultTrendSlopeFactor,
		MinTrendPoints:    defaultMinTrendPoints,
		MinSeasonalMonths: defaultMinSeasonalMonths,
	}
}
