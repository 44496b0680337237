package pricing

import (
	"math"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/stats"
	"sort"
	"time"
)

// AnalyzePriceTrends summarizes a price history. Fewer than MinTrendPoints
// observations are reported as stable with no variance.
func (s *Service) AnalyzePriceTrends(productID domain.ProductID, history []domain.PricePoint) domain.PriceTrend {
	sorted := append([]domain.PricePoint(nil), history...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	prices := make([]float64, len(sorted))
	for i, p := range sorted {
		prices[i] = p.Price
	}
	mean := stats.Mean(prices)

	if len(sorted) < s.cfg.MinTrendPoints {
		return domain.PriceTrend{
			ProductID:    productID,
			AveragePrice: mean,
			Trend:        domain.TrendStable,
		}
	}

	variance := stats.Variance(prices, mean)
	stdDev := math.Sqrt(variance)
	slope := stats.Slope(prices)

	trend := domain.TrendStable
	if math.Abs(slope) > stdDev*s.cfg.TrendSlopeFactor {
		if slope > 0 {
			trend = domain.TrendIncreasing
		} else {
			trend = domain.TrendDecreasing
		}
	}

	volatility := 0.0
	if mean > 0 {
		volatility = stdDev / mean
	}

	return domain.PriceTrend{
		ProductID:       productID,
		AveragePrice:    mean,
		PriceVariance:   variance,
		StdDev:          stdDev,
		Trend:           trend,
		Volatility:      volatility,
		SeasonalFactors: s.seasonalFactors(sorted, mean),
	}
}

func (s *Service) seasonalFactors(points []domain.PricePoint, mean float64) []domain.SeasonalFactor {
	if mean <= 0 {
		return nil
	}
	byMonth := make(map[time.Month][]float64)
	for _, p := range points {
		byMonth[p.Date.Month()] = append(byMonth[p.Date.Month()], p.Price)
	}
	if len(byMonth) < s.cfg.MinSeasonalMonths {
		return nil
	}

	factors := make([]domain.SeasonalFactor, 0, len(byMonth))
	for m := time.January; m <= time.December; m++ {
		prices, ok := byMonth[m]
		if !ok {
			continue
		}
		factors = append(factors, domain.SeasonalFactor{
			Month:     int(m),
			MonthName: m.String(),
			Factor:    stats.Mean(prices) / mean,
		})
	}
	return factors
}
