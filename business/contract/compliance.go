package contract

import (
	"fmt"
	"math"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/money"
	"myPurchasingAgent/pkg/stats"
	"strconv"
	"strings"
	"time"
)

// complianceScore compares commitment progress with elapsed contract time.
// Contracts that have not started yet score 100.
func complianceScore(commitmentProgress float64, daysRemaining, totalDays int) float64 {
	if totalDays <= 0 {
		return 100
	}
	timeProgress := float64(totalDays-daysRemaining) / float64(totalDays) * 100
	if timeProgress <= 0 {
		return 100
	}

	ratio := commitmentProgress / timeProgress
	var score float64
	switch {
	case ratio >= 1:
		score = math.Min(100, 80+(ratio-1)*20)
	case ratio >= 0.8:
		score = 60 + (ratio-0.8)*100
	case ratio >= 0.6:
		score = 40 + (ratio-0.6)*100
	default:
		score = ratio * 66.67
	}
	return stats.Clamp(score, 0, 100)
}

func (s *Service) assess(
	c domain.GPOContract,
	vendorName string,
	annualSpend map[domain.VendorID]float64,
	now time.Time,
) domain.ContractCompliance {
	spend := annualSpend[c.VendorID]
	commitment := c.Commitment()

	remaining := domain.DaysBetween(now, c.EndDate)
	total := domain.DaysBetween(c.StartDate, c.EndDate)
	elapsed := total - remaining

	daily := 0.0
	if elapsed > 0 {
		daily = spend / float64(elapsed)
	}
	projected := spend + daily*float64(max(0, remaining))

	progress := 100.0
	if commitment > 0 {
		progress = spend / commitment * 100
	}

	return domain.ContractCompliance{
		ContractID:         c.ID,
		ContractName:       c.Name,
		VendorID:           c.VendorID,
		VendorName:         vendorName,
		ComplianceScore:    complianceScore(progress, remaining, total),
		CurrentSpend:       spend,
		MinimumCommitment:  commitment,
		CommitmentProgress: progress,
		DaysRemaining:      remaining,
		ProjectedEndSpend:  projected,
		AtRisk:             commitment > 0 && projected < commitment*s.cfg.AtRiskThreshold,
		Recommendations:    s.complianceRecommendations(c, spend, commitment, projected, remaining),
	}
}

func (s *Service) complianceRecommendations(
	c domain.GPOContract,
	spend, commitment, projected float64,
	remaining int,
) []string {
	var out []string

	if commitment > 0 {
		if shortfall := commitment - projected; shortfall > 0 {
			daily := shortfall / float64(max(1, remaining))
			out = append(out, fmt.Sprintf("Increase spend by %s/day to meet commitment", money.USD(daily)))
			if len(c.ProductCategories) > 0 {
				out = append(out, fmt.Sprintf("Focus on %s categories for this vendor", strings.Join(c.ProductCategories, ", ")))
			}
		}

		if tier, ok := c.NextTier(spend); ok {
			if gap := tier.MinSpend - spend; gap < commitment*s.cfg.TierProximity {
				out = append(out, fmt.Sprintf("Spend %s more to reach %s%% discount tier", money.USD(gap), percent(tier.DiscountPercentage)))
			}
		}
	}

	if remaining < s.cfg.RenewalDays {
		out = append(out, "Contract expires soon - begin renewal negotiations")
	}
	return out
}

func percent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
