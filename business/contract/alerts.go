package contract

import (
	"fmt"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/money"
	"sort"
)

func newAlert(sev domain.Severity, contractID domain.ContractID, message, action string) domain.ContractAlert {
	return domain.ContractAlert{
		ID:         domain.DeterministicID("contract-alert", string(contractID), string(sev), message),
		Severity:   sev,
		ContractID: contractID,
		Message:    message,
		Action:     action,
	}
}

// alerts are ordered high, medium, low; contract order is kept within a severity.
func (s *Service) alerts(contracts []domain.GPOContract, compliance []domain.ContractCompliance) []domain.ContractAlert {
	var out []domain.ContractAlert

	for i, c := range compliance {
		if c.AtRisk && c.DaysRemaining < s.cfg.AtRiskAlertDays {
			out = append(out, newAlert(domain.SeverityHigh, c.ContractID,
				fmt.Sprintf("Contract at risk: Only %d days to meet %s shortfall",
					c.DaysRemaining, money.USD(c.MinimumCommitment-c.CurrentSpend)),
				"Immediate action required to shift spend or renegotiate terms",
			))
		}

		switch expiry := fmt.Sprintf("Contract expires in %d days", c.DaysRemaining); {
		case c.DaysRemaining < s.cfg.ExpiryHighDays:
			out = append(out, newAlert(domain.SeverityHigh, c.ContractID, expiry, "Begin renewal negotiations immediately"))
		case c.DaysRemaining < s.cfg.ExpiryMediumDays:
			out = append(out, newAlert(domain.SeverityMedium, c.ContractID, expiry, "Schedule renewal discussions"))
		}

		if c.CommitmentProgress < s.cfg.UnderusedPct && c.DaysRemaining < s.cfg.UnderusedDays {
			out = append(out, newAlert(domain.SeverityMedium, c.ContractID,
				fmt.Sprintf("Only %.0f%% of commitment met", c.CommitmentProgress),
				"Review product catalog and shift appropriate spend",
			))
		}

		if tier, ok := contracts[i].NextTier(c.CurrentSpend); ok {
			if gap := tier.MinSpend - c.CurrentSpend; gap < s.cfg.TierAlertDistance {
				out = append(out, newAlert(domain.SeverityLow, c.ContractID,
					fmt.Sprintf("Close to %s%% discount tier (need %s more)", percent(tier.DiscountPercentage), money.USD(gap)),
					"Consider consolidating purchases to reach next tier",
				))
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Severity.Rank() < out[j].Severity.Rank()
	})
	return out
}
