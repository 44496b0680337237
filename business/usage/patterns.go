package usage

import (
	"math"
	"myPurchasingAgent/business/pricing"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/money"
	"myPurchasingAgent/pkg/stats"
	"sort"
	"time"
)

type monthKey struct {
	year  int
	month time.Month
}

type monthlyUsage struct {
	key      monthKey
	quantity float64
}

func (s *Service) calculatePatterns(
	byProduct map[domain.ProductID][]usageEntry,
	catalog domain.Catalog,
) []domain.UsagePattern {
	var patterns []domain.UsagePattern
	for _, id := range sortedProductIDs(byProduct) {
		entries := byProduct[id]
		if _, ok := catalog[id]; !ok || len(entries) < s.cfg.MinDataPoints {
			continue
		}
		patterns = append(patterns, s.patternFor(id, entries))
	}
	return patterns
}

func (s *Service) patternFor(id domain.ProductID, entries []usageEntry) domain.UsagePattern {
	monthly := aggregateMonthly(entries)
	quantities := make([]float64, len(monthly))
	for i, m := range monthly {
		quantities[i] = m.quantity
	}

	mean := stats.Mean(quantities)
	variance := stats.Variance(quantities, mean)
	seasonal, factors := s.detectSeasonality(monthly, mean)
	trend := s.classifyTrend(quantities, mean)

	lead := float64(s.cfg.LeadTimeDays)
	safetyStock := s.cfg.ServiceFactor * math.Sqrt(variance) * math.Sqrt(lead/30)
	reorderPoint := mean/30*lead + safetyStock
	eoq := pricing.EOQ(mean, s.cfg.OrderingCost, s.cfg.HoldingCostRate, s.cfg.PlaceholderUnitCost)

	return domain.UsagePattern{
		ProductID:           id,
		AverageMonthlyUsage: mean,
		UsageVariance:       variance,
		SeasonalPattern:     seasonal,
		SeasonalFactors:     factors,
		Trend:               trend,
		ReorderPoint:        int(math.Round(reorderPoint)),
		SafetyStock:         int(math.Round(safetyStock)),
		OptimalOrderQty:     int(math.Round(eoq)),
		PredictedNextOrder:  s.predictNextOrder(entries, quantities, mean, trend),
	}
}

// aggregateMonthly sums quantities per calendar month in chronological order.
func aggregateMonthly(entries []usageEntry) []monthlyUsage {
	totals := make(map[monthKey]float64)
	for _, e := range entries {
		k := monthKey{year: e.date.Year(), month: e.date.Month()}
		totals[k] += e.quantity
	}

	out := make([]monthlyUsage, 0, len(totals))
	for k, q := range totals {
		out = append(out, monthlyUsage{key: k, quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].key.year != out[j].key.year {
			return out[i].key.year < out[j].key.year
		}
		return out[i].key.month < out[j].key.month
	})
	return out
}

// detectSeasonality needs a full year of months before it reports anything.
func (s *Service) detectSeasonality(monthly []monthlyUsage, overall float64) (bool, []domain.SeasonalFactor) {
	if len(monthly) < s.cfg.MinSeasonalMonths || overall <= 0 {
		return false, nil
	}

	byMonth := make(map[time.Month][]float64)
	for _, m := range monthly {
		byMonth[m.key.month] = append(byMonth[m.key.month], m.quantity)
	}

	var factors []domain.SeasonalFactor
	hi, lo := math.Inf(-1), math.Inf(1)
	for m := time.January; m <= time.December; m++ {
		q, ok := byMonth[m]
		if !ok {
			continue
		}
		f := money.Round(stats.Mean(q)/overall, 2)
		hi, lo = math.Max(hi, f), math.Min(lo, f)
		factors = append(factors, domain.SeasonalFactor{Month: int(m), MonthName: m.String(), Factor: f})
	}

	if hi > s.cfg.SeasonalHigh || lo < s.cfg.SeasonalLow {
		return true, factors
	}
	return false, nil
}

func (s *Service) classifyTrend(quantities []float64, mean float64) domain.Trend {
	if len(quantities) < 3 || mean == 0 {
		return domain.TrendStable
	}
	pct := stats.Slope(quantities) / mean * 100
	switch {
	case pct > s.cfg.TrendThresholdPct:
		return domain.TrendIncreasing
	case pct < -s.cfg.TrendThresholdPct:
		return domain.TrendDecreasing
	default:
		return domain.TrendStable
	}
}

func (s *Service) predictNextOrder(entries []usageEntry, monthly []float64, mean float64, trend domain.Trend) domain.PredictedOrder {
	last := entries[len(entries)-1].date

	interval := s.cfg.DefaultOrderIntervalDays
	if len(entries) > 1 {
		var total float64
		for i := 1; i < len(entries); i++ {
			total += entries[i].date.Sub(entries[i-1].date).Hours() / 24
		}
		interval = total / float64(len(entries)-1)
	}

	qty := mean
	switch trend {
	case domain.TrendIncreasing:
		qty *= 1 + s.cfg.TrendAdjustment
	case domain.TrendDecreasing:
		qty *= 1 - s.cfg.TrendAdjustment
	}

	confidence := s.cfg.MinConfidence
	if cv, ok := stats.CoefficientOfVariation(monthly); ok {
		confidence = stats.Clamp(1-cv, s.cfg.MinConfidence, s.cfg.MaxConfidence)
	}

	return domain.PredictedOrder{
		Date:       last.AddDate(0, 0, int(math.Round(interval))),
		Quantity:   int(math.Round(qty)),
		Confidence: confidence,
	}
}
