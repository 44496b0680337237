package domain

// ScoringRequest describes a single product purchase to be scored against vendors.
type ScoringRequest struct {
	Product           Product `json:"product"`
	RequestedQuantity int     `json:"requested_quantity" validate:"gte=0"`
	Urgency           Urgency `json:"urgency" validate:"omitempty,oneof=routine urgent emergency"`
	Department        string  `json:"department,omitempty"`
}

// FactorScores holds the per-factor breakdown, each in [0,1].
type FactorScores struct {
	Price         float64 `json:"price"`
	Delivery      float64 `json:"delivery"`
	Contract      float64 `json:"contract"`
	Reliability   float64 `json:"reliability"`
	Consolidation float64 `json:"consolidation"`
}

type VendorAnalysis struct {
	VendorID   VendorID     `json:"vendor_id"`
	VendorName string       `json:"vendor_name"`
	Quote      Quote        `json:"quote"`
	Score      float64      `json:"score"`
	Factors    FactorScores `json:"factors"`
}

type OptimizationResult struct {
	ProductID         ProductID        `json:"product_id"`
	Primary           VendorAnalysis   `json:"recommended_vendor"`
	Alternatives      []VendorAnalysis `json:"alternatives"`
	Analyses          []VendorAnalysis `json:"analyses"`
	PotentialSavings  float64          `json:"potential_savings"`
	SavingsPercentage float64          `json:"savings_percentage"`
	Recommendation    string           `json:"recommendation"`
	Confidence        float64          `json:"confidence"`
	Warnings          []string         `json:"warnings"`
}
