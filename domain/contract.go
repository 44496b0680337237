package domain

import (
	"time"

	"github.com/google/uuid"
)

type TierDiscount struct {
	MinSpend           float64 `json:"min_spend" validate:"gte=0"`
	DiscountPercentage float64 `json:"discount_percentage" validate:"gte=0,lte=100"`
}

type GPOContract struct {
	ID                ContractID     `json:"id" validate:"required"`
	Name              string         `json:"name"`
	VendorID          VendorID       `json:"vendor_id" validate:"required"`
	ContractNumber    string         `json:"contract_number"`
	StartDate         time.Time      `json:"start_date" validate:"required"`
	EndDate           time.Time      `json:"end_date" validate:"required,gtfield=StartDate"`
	MinimumCommitment *float64       `json:"minimum_commitment,omitempty" validate:"omitempty,gte=0"`
	TierDiscounts     []TierDiscount `json:"tier_discounts" validate:"dive"`
	ProductCategories []string       `json:"product_categories"`
	Restrictions      []string       `json:"restrictions,omitempty"`
}

func (c GPOContract) Commitment() float64 {
	if c.MinimumCommitment == nil {
		return 0
	}
	return *c.MinimumCommitment
}

// MaxDiscount is the best tier discount percentage, 0 without tiers.
func (c GPOContract) MaxDiscount() float64 {
	best := 0.0
	for _, t := range c.TierDiscounts {
		if t.DiscountPercentage > best {
			best = t.DiscountPercentage
		}
	}
	return best
}

// NextTier returns the lowest tier whose threshold is above spend.
func (c GPOContract) NextTier(spend float64) (TierDiscount, bool) {
	var (
		next  TierDiscount
		found bool
	)
	for _, t := range c.TierDiscounts {
		if t.MinSpend <= spend {
			continue
		}
		if !found || t.MinSpend < next.MinSpend {
			next, found = t, true
		}
	}
	return next, found
}

// ProductVendorSpend is the annual spend on one product with one vendor.
type ProductVendorSpend struct {
	VendorID    VendorID `json:"vendor_id"`
	AnnualSpend float64  `json:"annual_spend"`
}

type ContractCompliance struct {
	ContractID         ContractID `json:"contract_id"`
	ContractName       string     `json:"contract_name"`
	VendorID           VendorID   `json:"vendor_id"`
	VendorName         string     `json:"vendor_name"`
	ComplianceScore    float64    `json:"compliance_score"`
	CurrentSpend       float64    `json:"current_spend"`
	MinimumCommitment  float64    `json:"minimum_commitment"`
	CommitmentProgress float64    `json:"commitment_progress"`
	DaysRemaining      int        `json:"days_remaining"`
	ProjectedEndSpend  float64    `json:"projected_end_spend"`
	AtRisk             bool       `json:"at_risk"`
	Recommendations    []string   `json:"recommendations"`
}

type OpportunityKind string

const (
	OpportunityShiftSpend  OpportunityKind = "shift_spend"
	OpportunityNewContract OpportunityKind = "new_contract"
	OpportunityRenegotiate OpportunityKind = "renegotiate"
	OpportunityConsolidate OpportunityKind = "consolidate"
)

type Effort string

const (
	EffortLow    Effort = "low"
	EffortMedium Effort = "medium"
	EffortHigh   Effort = "high"
)

type OptimizationOpportunity struct {
	ID               uuid.UUID       `json:"id"`
	Kind             OpportunityKind `json:"type"`
	Description      string          `json:"description"`
	EstimatedSavings float64         `json:"estimated_savings"`
	Effort           Effort          `json:"effort"`
	Contracts        []ContractID    `json:"contracts"`
	Products         []ProductID     `json:"products"`
}

type VendorRebalancing struct {
	FromVendor    VendorID    `json:"from_vendor"`
	ToVendor      VendorID    `json:"to_vendor"`
	Products      []ProductID `json:"products"`
	AnnualSavings float64     `json:"annual_savings"`
	Reason        string      `json:"reason"`
}

type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities high first.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	default:
		return 2
	}
}

type ContractAlert struct {
	ID         uuid.UUID  `json:"id"`
	Severity   Severity   `json:"severity"`
	ContractID ContractID `json:"contract_id"`
	Message    string     `json:"message"`
	Action     string     `json:"action"`
}

type ContractOptimizationResult struct {
	CurrentContracts          []ContractCompliance      `json:"current_contracts"`
	OptimizationOpportunities []OptimizationOpportunity `json:"optimization_opportunities"`
	VendorRebalancing         []VendorRebalancing       `json:"vendor_rebalancing"`
	ContractAlerts            []ContractAlert           `json:"contract_alerts"`
}
