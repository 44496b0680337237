package scoring

import (
	"fmt"
	"math"
	"myPurchasingAgent/domain"
)

type Weights struct {
	Price         float64
	Delivery      float64
	Contract      float64
	Reliability   float64
	Consolidation float64
}

func (w Weights) Sum() float64 {
	return w.Price + w.Delivery + w.Contract + w.Reliability + w.Consolidation
}

// DeliveryStep scores vendors delivering within MaxDays.
type DeliveryStep struct {
	MaxDays int
	Score   float64
}

// DeliveryTable is evaluated top to bottom; Fallback applies past the last step.
type DeliveryTable struct {
	Steps    []DeliveryStep
	Fallback float64
}

type Config struct {
	Weights Weights

	// delivery thresholds tighten as urgency rises
	Delivery map[domain.Urgency]DeliveryTable

	ContractPricedBase    float64
	NonContractBase       float64
	GPOContractBonus      float64
	ExpiryCriticalDays    int
	ExpiryCriticalFactor  float64
	ExpiryWarningDays     int
	ExpiryWarningFactor   float64
	ReliabilityBase       float64
	RealTimePricingBonus  float64
	BulkOrderingBonus     float64
	APIEndpointBonus      float64
	ConsolidationScore    float64
	StrongFactorThreshold float64
	MaxAlternatives       int
}

const (
	defaultWeightPrice         = 0.35
	defaultWeightDelivery      = 0.25
	defaultWeightContract      = 0.20
	defaultWeightReliability   = 0.15
	defaultWeightConsolidation = 0.05

	defaultContractPricedBase    = 0.8
	defaultNonContractBase       = 0.3
	defaultGPOContractBonus      = 0.2
	defaultExpiryCriticalDays    = 30
	defaultExpiryCriticalFactor  = 0.7
	defaultExpiryWarningDays     = 60
	defaultExpiryWarningFactor   = 0.85
	defaultReliabilityBase       = 0.5
	defaultRealTimePricingBonus  = 0.2
	defaultBulkOrderingBonus     = 0.2
	defaultAPIEndpointBonus      = 0.1
	defaultConsolidationScore    = 0.7
	defaultStrongFactorThreshold = 0.8
	defaultMaxAlternatives       = 3
)

func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Price:         defaultWeightPrice,
			Delivery:      defaultWeightDelivery,
			Contract:      defaultWeightContract,
			Reliability:   defaultWeightReliability,
			Consolidation: defaultWeightConsolidation,
		},
		Delivery: map[domain.Urgency]DeliveryTable{
			domain.UrgencyEmergency: {
				Steps:    []DeliveryStep{{1, 1.0}, {2, 0.8}, {3, 0.4}},
				Fallback: 0.1,
			},
			domain.UrgencyUrgent: {
				Steps:    []DeliveryStep{{2, 1.0}, {3, 0.9}, {5, 0.6}},
				Fallback: 0.3,
			},
			domain.UrgencyRoutine: {
				Steps:    []DeliveryStep{{3, 1.0}, {5, 0.9}, {7, 0.8}},
				Fallback: 0.5,
			},
		},

		ContractPricedBase:   defaultContractPricedBase,
		NonContractBase:      defaultNonContractBase,
		GPOContractBonus:     defaultGPOContractBonus,
		ExpiryCriticalDays:   defaultExpiryCriticalDays,
		ExpiryCriticalFactor: defaultExpiryCriticalFactor,
		ExpiryWarningDays:    defaultExpiryWarningDays,
		ExpiryWarningFactor:  defaultExpiryWarningFactor,

		ReliabilityBase:      defaultReliabilityBase,
		RealTimePricingBonus: defaultRealTimePricingBonus,
		BulkOrderingBonus:    defaultBulkOrderingBonus,
		APIEndpointBonus:     defaultAPIEndpointBonus,

		ConsolidationScore:    defaultConsolidationScore,
		StrongFactorThreshold: defaultStrongFactorThreshold,
		MaxAlternatives:       defaultMaxAlternatives,
	}
}

func (c Config) Validate() error {
	if math.Abs(c.Weights.Sum()-1) > 1e-9 {
		return fmt.Errorf("scoring weights must sum to 1, got %.4f", c.Weights.Sum())
	}
	for _, u := range []domain.Urgency{domain.UrgencyRoutine, domain.UrgencyUrgent, domain.UrgencyEmergency} {
		if _, ok := c.Delivery[u]; !ok {
			return fmt.Errorf("missing delivery table for %s urgency", u)
		}
	}
	return nil
}
