package usage

type Config struct {
	MinDataPoints int

	// inventory policy placeholders until vendor lead times are wired in
	LeadTimeDays        int
	ServiceFactor       float64
	OrderingCost        float64
	HoldingCostRate     float64
	PlaceholderUnitCost float64

	MinSeasonalMonths int
	SeasonalHigh      float64
	SeasonalLow       float64
	TrendThresholdPct float64
	TrendAdjustment   float64

	MinConfidence            float64
	MaxConfidence            float64
	DefaultOrderIntervalDays float64

	TopProducts       int
	UnknownDepartment string

	StockoutAlertDays float64
	StockProxyFactor  float64
	OrderBufferDays   float64

	BulkUsageMin                float64
	BulkEOQFactor               float64
	BulkDiscountEstimate        float64
	SavingsHorizonMonths        float64
	VendorConsolidationMin      int
	ConsolidationMonthlySavings float64
	SubstituteUsageMin          float64
	SubstituteSavingsRate       float64

	RecentOrders            int
	SpikeFactor             float64
	DropFactor              float64
	NewProductMonths        int
	DiscontinuedAfterMonths int
}

const (
	defaultMinDataPoints       = 3
	defaultLeadTimeDays        = 7
	defaultServiceFactor       = 1.65 // 95% service level
	defaultOrderingCost        = 50.0
	defaultHoldingCostRate     = 0.25
	defaultPlaceholderUnitCost = 10.0

	defaultMinSeasonalMonths = 12
	defaultSeasonalHigh      = 1.2
	defaultSeasonalLow       = 0.8
	defaultTrendThresholdPct = 5.0
	defaultTrendAdjustment   = 0.1

	defaultMinConfidence            = 0.5
	defaultMaxConfidence            = 0.95
	defaultOrderIntervalDays        = 30.0
	defaultTopProducts              = 5
	defaultUnknownDepartment        = "Unknown"
	defaultStockoutAlertDays        = 14.0
	defaultStockProxyFactor         = 1.5
	defaultOrderBufferDays          = 7.0
	defaultBulkUsageMin             = 100.0
	defaultBulkEOQFactor            = 1.5
	defaultBulkDiscountEstimate     = 0.05
	defaultSavingsHorizonMonths     = 10.0
	defaultVendorConsolidationMin   = 5
	defaultConsolidationMonthlySave = 100.0
	defaultSubstituteUsageMin       = 50.0
	defaultSubstituteSavingsRate    = 0.1

	defaultRecentOrders            = 3
	defaultSpikeFactor             = 2.0
	defaultDropFactor              = 0.5
	defaultNewProductMonths        = 3
	defaultDiscontinuedAfterMonths = 6
)

func DefaultConfig() Config {
	return Config{
		MinDataPoints: defaultMinDataPoints,

		LeadTimeDays:        defaultLeadTimeDays,
		ServiceFactor:       defaultServiceFactor,
		OrderingCost:        defaultOrderingCost,
		HoldingCostRate:     defaultHoldingCostRate,
		PlaceholderUnitCost: defaultPlaceholderUnitCost,

		MinSeasonalMonths: defaultMinSeasonalMonths,
		SeasonalHigh:      defaultSeasonalHigh,
		SeasonalLow:       defaultSeasonalLow,
		TrendThresholdPct: defaultTrendThresholdPct,
		TrendAdjustment:   defaultTrendAdjustment,

		MinConfidence:            defaultMinConfidence,
		MaxConfidence:            defaultMaxConfidence,
		DefaultOrderIntervalDays: defaultOrderIntervalDays,

		TopProducts:       defaultTopProducts,
		UnknownDepartment: defaultUnknownDepartment,

		StockoutAlertDays: defaultStockoutAlertDays,
		StockProxyFactor:  defaultStockProxyFactor,
		OrderBufferDays:   defaultOrderBufferDays,

		BulkUsageMin:                defaultBulkUsageMin,
		BulkEOQFactor:               defaultBulkEOQFactor,
		BulkDiscountEstimate:        defaultBulkDiscountEstimate,
		SavingsHorizonMonths:        defaultSavingsHorizonMonths,
		VendorConsolidationMin:      defaultVendorConsolidationMin,
		ConsolidationMonthlySavings: defaultConsolidationMonthlySave,
		SubstituteUsageMin:          defaultSubstituteUsageMin,
		SubstituteSavingsRate:       defaultSubstituteSavingsRate,

		RecentOrders:            defaultRecentOrders,
		SpikeFactor:             defaultSpikeFactor,
		DropFactor:              defaultDropFactor,
		NewProductMonths:        defaultNewProductMonths,
		DiscontinuedAfterMonths: defaultDiscontinuedAfterMonths,
	}
}
