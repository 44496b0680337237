package domain

import (
	"time"

	"github.com/google/uuid"
)

type PredictedOrder struct {
	Date       time.Time `json:"date"`
	Quantity   int       `json:"quantity"`
	Confidence float64   `json:"confidence"`
}

type UsagePattern struct {
	ProductID           ProductID        `json:"product_id"`
	AverageMonthlyUsage float64          `json:"average_monthly_usage"`
	UsageVariance       float64          `json:"usage_variance"`
	SeasonalPattern     bool             `json:"seasonal_pattern"`
	SeasonalFactors     []SeasonalFactor `json:"seasonal_factors,omitempty"`
	Trend               Trend            `json:"trend"`
	ReorderPoint        int              `json:"reorder_point"`
	SafetyStock         int              `json:"safety_stock"`
	OptimalOrderQty     int              `json:"optimal_order_quantity"`
	PredictedNextOrder  PredictedOrder   `json:"predicted_next_order"`
}

type TopProduct struct {
	ProductID                ProductID `json:"product_id"`
	ProductName              string    `json:"product_name"`
	MonthlyUsage             float64   `json:"monthly_usage"`
	PercentOfDepartmentSpend float64   `json:"percent_of_department_spend"`
}

type DepartmentUsageInsight struct {
	Department        string       `json:"department"`
	TopProducts       []TopProduct `json:"top_products"`
	TotalMonthlySpend float64      `json:"total_monthly_spend"`
	OrderFrequency    float64      `json:"order_frequency"`
	PreferredVendors  []VendorID   `json:"preferred_vendors"`
}

type CriticalItemAlert struct {
	ProductID            ProductID `json:"product_id"`
	ProductName          string    `json:"product_name"`
	EstimatedStock       float64   `json:"current_stock"`
	DaysUntilStockout    int       `json:"days_until_stockout"`
	RecommendedOrderDate time.Time `json:"recommended_order_date"`
	RecommendedQuantity  int       `json:"recommended_quantity"`
}

type SavingKind string

const (
	SavingBulkBuying          SavingKind = "bulk_buying"
	SavingVendorConsolidation SavingKind = "vendor_consolidation"
	SavingSubstituteProduct   SavingKind = "substitute_product"
)

type CostSavingOpportunity struct {
	ID               uuid.UUID   `json:"id"`
	Kind             SavingKind  `json:"type"`
	Description      string      `json:"description"`
	EstimatedSavings float64     `json:"estimated_savings"`
	Products         []ProductID `json:"products"`
}

type ActivityKind string

const (
	ActivitySpike        ActivityKind = "spike"
	ActivityDrop         ActivityKind = "drop"
	ActivityNewProduct   ActivityKind = "new_product"
	ActivityDiscontinued ActivityKind = "discontinued"
)

type UnusualActivity struct {
	ID          uuid.UUID    `json:"id"`
	ProductID   ProductID    `json:"product_id"`
	ProductName string       `json:"product_name"`
	Kind        ActivityKind `json:"type"`
	Description string       `json:"description"`
}

type UsageAnalysisReport struct {
	Patterns                []UsagePattern           `json:"patterns"`
	DepartmentInsights      []DepartmentUsageInsight `json:"department_insights"`
	CriticalItemAlerts      []CriticalItemAlert      `json:"critical_item_alerts"`
	CostSavingOpportunities []CostSavingOpportunity  `json:"cost_saving_opportunities"`
	UnusualActivity         []UnusualActivity        `json:"unusual_activity"`
}
