package domain

type RecommendedProduct struct {
	ProductID       ProductID `json:"product_id"`
	ProductName     string    `json:"product_name"`
	VendorSKU       string    `json:"vendor_sku,omitempty"`
	Quantity        int       `json:"quantity"`
	UnitPrice       float64   `json:"unit_price"`
	TotalPrice      float64   `json:"total_price"`
	IsContractPrice bool      `json:"is_contract_price"`
}

type VendorRecommendation struct {
	VendorID              VendorID             `json:"vendor_id"`
	VendorName            string               `json:"vendor_name"`
	Score                 float64              `json:"score"`
	Confidence            float64              `json:"confidence"`
	Coverage              float64              `json:"coverage"`
	Products              []RecommendedProduct `json:"products"`
	TotalCost             float64              `json:"total_cost"`
	EstimatedDeliveryDays int                  `json:"estimated_delivery_days"`
	ContractCompliance    bool                 `json:"contract_compliance"`
	Warnings              []WarningNote        `json:"warnings"`
	Benefits              []string             `json:"benefits"`
}

type WarningKind string

const (
	WarningContractExpiring WarningKind = "contract_expiring"
	WarningPartialCoverage  WarningKind = "partial_coverage"
)

type WarningNote struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
}

// HasWarning reports whether the recommendation carries a warning of kind.
func (r VendorRecommendation) HasWarning(kind WarningKind) bool {
	for _, w := range r.Warnings {
		if w.Kind == kind {
			return true
		}
	}
	return false
}

type SplitOrderRecommendation struct {
	Vendors   []VendorRecommendation `json:"vendors"`
	TotalCost float64                `json:"total_cost"`
	Reason    string                 `json:"reason"`
}

type RecommendationSet struct {
	Primary              VendorRecommendation      `json:"primary_recommendation"`
	Alternatives         []VendorRecommendation    `json:"alternatives"`
	ConsolidationSavings float64                   `json:"consolidation_savings"`
	SplitOrder           *SplitOrderRecommendation `json:"split_order_recommendation,omitempty"`
	Insights             []string                  `json:"insights"`
	RiskFactors          []string                  `json:"risk_factors"`
}
