package domain

type Trend string

const (
	TrendIncreasing Trend = "increasing"
	TrendStable     Trend = "stable"
	TrendDecreasing Trend = "decreasing"
)

type SeasonalFactor struct {
	Month     int     `json:"month"`
	MonthName string  `json:"month_name,omitempty"`
	Factor    float64 `json:"factor"`
}

type PriceTrend struct {
	ProductID       ProductID        `json:"product_id"`
	AveragePrice    float64          `json:"average_price"`
	PriceVariance   float64          `json:"price_variance"`
	StdDev          float64          `json:"std_dev"`
	Trend           Trend            `json:"trend"`
	Volatility      float64          `json:"volatility"`
	SeasonalFactors []SeasonalFactor `json:"seasonal_factors,omitempty"`
}

type BulkDiscountTier struct {
	MinQuantity        int     `json:"min_quantity"`
	MaxQuantity        *int    `json:"max_quantity,omitempty"`
	DiscountPercentage float64 `json:"discount_percentage"`
	UnitPrice          float64 `json:"unit_price"`
}

type BulkOption struct {
	OptimalQuantity int      `json:"optimal_quantity"`
	VendorID        VendorID `json:"vendor"`
	Savings         float64  `json:"savings"`
	BreakEvenPoint  int      `json:"break_even_point"`
}

type OptimizationReason string

const (
	ReasonStandard OptimizationReason = "standard"
	ReasonEOQ      OptimizationReason = "eoq"
	ReasonBulk     OptimizationReason = "bulk"
)

type OptimizedItem struct {
	ProductID         ProductID          `json:"product_id"`
	ProductName       string             `json:"product_name"`
	VendorID          VendorID           `json:"vendor_id"`
	OriginalQuantity  int                `json:"original_quantity"`
	OptimizedQuantity int                `json:"optimized_quantity"`
	UnitPrice         float64            `json:"unit_price"`
	TotalPrice        float64            `json:"total_price"`
	Savings           float64            `json:"savings"`
	DiscountSavings   float64            `json:"discount_savings,omitempty"`
	ReasonKind        OptimizationReason `json:"reason_kind"`
	Reason            string             `json:"reason"`
}

// ShippingSuggestion flags a vendor group that is close to free shipping.
type ShippingSuggestion struct {
	VendorID         VendorID `json:"vendor_id"`
	Shortfall        float64  `json:"shortfall"`
	EstimatedSavings float64  `json:"estimated_savings"`
	Message          string   `json:"message"`
}

type OptimizedOrder struct {
	Items               []OptimizedItem      `json:"items"`
	ShippingSuggestions []ShippingSuggestion `json:"shipping_suggestions,omitempty"`
	TotalOriginalCost   float64              `json:"total_original_cost"`
	TotalOptimizedCost  float64              `json:"total_optimized_cost"`
	TotalSavings        float64              `json:"total_savings"`
	SavingsPercentage   float64              `json:"savings_percentage"`
	Recommendations     []string             `json:"recommendations"`
}

// VendorCount returns the number of distinct vendors with assigned items.
func (o OptimizedOrder) VendorCount() int {
	seen := make(map[VendorID]struct{})
	for _, it := range o.Items {
		seen[it.VendorID] = struct{}{}
	}
	return len(seen)
}
