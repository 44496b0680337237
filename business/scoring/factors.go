package scoring

import (
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/stats"
	"time"
)

// priceScore normalizes unit price between the cheapest (1) and the most
// expensive (0) quote. Equal prices all score 1.
func priceScore(price, minPrice, maxPrice float64) float64 {
	if maxPrice <= minPrice {
		return 1
	}
	return clamp01((maxPrice - price) / (maxPrice - minPrice))
}

func (s *Service) deliveryScore(days int, urgency domain.Urgency) float64 {
	table, ok := s.cfg.Delivery[urgency.OrDefault()]
	if !ok {
		table = s.cfg.Delivery[domain.UrgencyRoutine]
	}
	for _, step := range table.Steps {
		if days <= step.MaxDays {
			return step.Score
		}
	}
	return table.Fallback
}

func (s *Service) contractScore(v domain.Vendor, q domain.Quote, now time.Time) float64 {
	score := s.cfg.NonContractBase
	if q.IsContractPricing {
		score = s.cfg.ContractPricedBase
	}
	if v.HasGPOContract() {
		score += s.cfg.GPOContractBonus
	}

	if days, ok := v.DaysUntilContractExpiry(now); ok {
		switch {
		case days < s.cfg.ExpiryCriticalDays:
			score *= s.cfg.ExpiryCriticalFactor
		case days < s.cfg.ExpiryWarningDays:
			score *= s.cfg.ExpiryWarningFactor
		}
	}
	return clamp01(score)
}

func (s *Service) reliabilityScore(v domain.Vendor) float64 {
	score := s.cfg.ReliabilityBase
	if v.SupportsRealTimePricing {
		score += s.cfg.RealTimePricingBonus
	}
	if v.SupportsBulkOrdering {
		score += s.cfg.BulkOrderingBonus
	}
	if v.APIEndpoint != "" {
		score += s.cfg.APIEndpointBonus
	}
	return clamp01(score)
}

func (s *Service) composite(f domain.FactorScores) float64 {
	w := s.cfg.Weights
	return clamp01(f.Price*w.Price +
		f.Delivery*w.Delivery +
		f.Contract*w.Contract +
		f.Reliability*w.Reliability +
		f.Consolidation*w.Consolidation)
}

const (
	highScore        = 0.8
	mediumScore      = 0.6
	highConfidence   = 0.95
	mediumConfidence = 0.80
	lowConfidence    = 0.65
)

// confidenceFor maps a composite score to a confidence tier.
func confidenceFor(score float64) float64 {
	switch {
	case score >= highScore:
		return highConfidence
	case score >= mediumScore:
		return mediumConfidence
	default:
		return lowConfidence
	}
}

func clamp01(v float64) float64 {
	return stats.Clamp(v, 0, 1)
}
