package pricing

import (
	"math"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/money"
)

// EOQ returns the unrounded economic order quantity sqrt(2DS/H) with
// D = monthlyUsage*12 and H = unitCost*holdingRate. Non-positive inputs give 0.
func EOQ(monthlyUsage, orderingCost, holdingRate, unitCost float64) float64 {
	annualDemand := monthlyUsage * 12
	holdingCost := unitCost * holdingRate
	if annualDemand <= 0 || orderingCost <= 0 || holdingCost <= 0 {
		return 0
	}
	return math.Sqrt(2 * annualDemand * orderingCost / holdingCost)
}

// CalculateEOQ rounds EOQ to whole units using the configured costs.
func (s *Service) CalculateEOQ(monthlyUsage, unitCost float64) int {
	return int(math.Round(EOQ(monthlyUsage, s.cfg.OrderingCost, s.cfg.HoldingCostRate, unitCost)))
}

// SimulateBulkTiers builds the placeholder discount ladder for a base price and quantity.
func (s *Service) SimulateBulkTiers(basePrice float64, baseQuantity int) []domain.BulkDiscountTier {
	tiers := make([]domain.BulkDiscountTier, 0, len(s.cfg.BulkTiers))
	for i, spec := range s.cfg.BulkTiers {
		tier := domain.BulkDiscountTier{
			MinQuantity:        baseQuantity * spec.Multiplier,
			DiscountPercentage: spec.DiscountPercentage,
			UnitPrice:          basePrice * (1 - spec.DiscountPercentage/100),
		}
		if i+1 < len(s.cfg.BulkTiers) {
			maxQty := baseQuantity * s.cfg.BulkTiers[i+1].Multiplier
			tier.MaxQuantity = &maxQty
		}
		tiers = append(tiers, tier)
	}
	return tiers
}

// AnalyzeBulkDiscounts finds the tier across all quotes with the largest
// savings, ignoring tiers that need more than MaxBulkMultiplier times the request.
func (s *Service) AnalyzeBulkDiscounts(quotes []domain.Quote, requestedQuantity int) (domain.BulkOption, bool) {
	if requestedQuantity <= 0 {
		return domain.BulkOption{}, false
	}

	var (
		best       domain.BulkOption
		found      bool
		maxSavings float64
	)
	limit := float64(requestedQuantity) * s.cfg.MaxBulkMultiplier
	for _, q := range quotes {
		originalCost := q.UnitPrice * float64(requestedQuantity)
		if originalCost <= 0 {
			continue
		}
		for _, tier := range s.SimulateBulkTiers(q.UnitPrice, requestedQuantity) {
			if float64(tier.MinQuantity) > limit {
				continue
			}
			qty := float64(tier.MinQuantity)
			bulkCost := tier.UnitPrice * qty
			savings := q.UnitPrice*qty - bulkCost
			if savings <= maxSavings {
				continue
			}
			maxSavings = savings
			found = true
			best = domain.BulkOption{
				OptimalQuantity: tier.MinQuantity,
				VendorID:        q.VendorID,
				Savings:         savings,
				BreakEvenPoint:  int(math.Ceil(money.Round(bulkCost/originalCost*float64(requestedQuantity), 6))),
			}
		}
	}
	return best, found
}
