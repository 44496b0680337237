package purchasing

import (
	"myPurchasingAgent/business/contract"
	"myPurchasingAgent/business/pricing"
	"myPurchasingAgent/business/recommendation"
	"myPurchasingAgent/business/scoring"
	"myPurchasingAgent/business/usage"
	"myPurchasingAgent/pkg/config"
)

// The functions below overlay the loaded settings on each engine's defaults.

func ScoringConfig(cfg *config.Config) scoring.Config {
	c := scoring.DefaultConfig()
	c.Weights = scoring.Weights{
		Price:         cfg.Scoring.WeightPrice,
		Delivery:      cfg.Scoring.WeightDelivery,
		Contract:      cfg.Scoring.WeightContract,
		Reliability:   cfg.Scoring.WeightReliability,
		Consolidation: cfg.Scoring.WeightConsolidation,
	}
	return c
}

func PricingConfig(cfg *config.Config) pricing.Config {
	c := pricing.DefaultConfig()
	c.OrderingCost = cfg.Pricing.OrderingCost
	c.HoldingCostRate = cfg.Pricing.HoldingCostRate
	c.ShippingEstimate = cfg.Pricing.ShippingEstimate
	c.MaxBulkMultiplier = cfg.Pricing.MaxBulkMultiplier
	return c
}

func UsageConfig(cfg *config.Config) usage.Config {
	c := usage.DefaultConfig()
	c.OrderingCost = cfg.Pricing.OrderingCost
	c.HoldingCostRate = cfg.Pricing.HoldingCostRate
	c.LeadTimeDays = cfg.Usage.LeadTimeDays
	c.ServiceFactor = cfg.Usage.ServiceFactor
	c.PlaceholderUnitCost = cfg.Usage.PlaceholderUnitCost
	c.StockoutAlertDays = cfg.Usage.StockoutAlertDays
	c.DiscontinuedAfterMonths = cfg.Usage.DiscontinuedAfterMonths
	return c
}

func RecommendationConfig(cfg *config.Config) recommendation.Config {
	c := recommendation.DefaultConfig()
	c.MinCoverage = cfg.Recommendation.MinCoverage
	c.SplitCostThreshold = cfg.Recommendation.SplitCostThreshold
	c.ShippingEstimate = cfg.Pricing.ShippingEstimate
	return c
}

func ContractConfig(cfg *config.Config) contract.Config {
	c := contract.DefaultConfig()
	c.AtRiskThreshold = cfg.Contract.AtRiskThreshold
	c.TierProximity = cfg.Contract.TierProximity
	return c
}
