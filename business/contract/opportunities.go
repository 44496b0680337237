package contract

import (
	"fmt"
	"myPurchasingAgent/domain"
	"sort"
)

func newOpportunity(
	kind domain.OpportunityKind,
	description string,
	savings float64,
	effort domain.Effort,
	contracts []domain.ContractID,
	products []domain.ProductID,
) domain.OptimizationOpportunity {
	parts := []string{"contract-opportunity", string(kind)}
	for _, c := range contracts {
		parts = append(parts, string(c))
	}
	return domain.OptimizationOpportunity{
		ID:               domain.DeterministicID(parts...),
		Kind:             kind,
		Description:      description,
		EstimatedSavings: savings,
		Effort:           effort,
		Contracts:        contracts,
		Products:         products,
	}
}

func (s *Service) opportunities(
	contracts []domain.GPOContract,
	compliance []domain.ContractCompliance,
	usage map[domain.ProductID][]domain.ProductVendorSpend,
) []domain.OptimizationOpportunity {
	var out []domain.OptimizationOpportunity

	if o, ok := s.shiftSpend(compliance, usage); ok {
		out = append(out, o)
	}

	perVendor := map[domain.VendorID]int{}
	for _, c := range contracts {
		perVendor[c.VendorID]++
	}
	multi := 0
	var consolidate []domain.ContractID
	for _, c := range contracts {
		if perVendor[c.VendorID] > 1 {
			consolidate = append(consolidate, c.ID)
		}
	}
	for _, n := range perVendor {
		if n > 1 {
			multi++
		}
	}
	if multi > 0 {
		noun := "vendors"
		if multi == 1 {
			noun = "vendor"
		}
		out = append(out, newOpportunity(domain.OpportunityConsolidate,
			fmt.Sprintf("Consolidate multiple contracts with %d %s", multi, noun),
			float64(multi)*s.cfg.ConsolidationBaseSpend*s.cfg.ConsolidationRate,
			domain.EffortMedium, consolidate, nil,
		))
	}

	var (
		renegotiate []domain.ContractID
		renegSaving float64
	)
	for i, c := range compliance {
		if c.CurrentSpend > s.cfg.RenegotiateMinSpend && len(contracts[i].TierDiscounts) == 0 {
			renegotiate = append(renegotiate, c.ContractID)
			renegSaving += c.CurrentSpend * s.cfg.RenegotiateRate
		}
	}
	if len(renegotiate) > 0 {
		out = append(out, newOpportunity(domain.OpportunityRenegotiate,
			"Negotiate volume discounts for high-spend vendors without tier pricing",
			renegSaving, domain.EffortHigh, renegotiate, nil,
		))
	}

	var nonContract float64
	for _, id := range sortedProducts(usage) {
		for _, u := range usage[id] {
			if perVendor[u.VendorID] == 0 {
				nonContract += u.AnnualSpend
			}
		}
	}
	if nonContract > s.cfg.NewContractMinSpend {
		out = append(out, newOpportunity(domain.OpportunityNewContract,
			"Establish GPO contracts for high-spend non-contract vendors",
			nonContract*s.cfg.NewContractRate, domain.EffortHigh, nil, nil,
		))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EstimatedSavings > out[j].EstimatedSavings
	})
	return out
}

// shiftSpend pairs under-committed contracts with over-committed ones that
// supply the same products.
func (s *Service) shiftSpend(
	compliance []domain.ContractCompliance,
	usage map[domain.ProductID][]domain.ProductVendorSpend,
) (domain.OptimizationOpportunity, bool) {
	var under, over []domain.ContractCompliance
	underVendors := map[domain.VendorID]bool{}
	overVendors := map[domain.VendorID]bool{}
	for _, c := range compliance {
		if c.MinimumCommitment > 0 && c.CommitmentProgress < s.cfg.UnderCommittedPct {
			under = append(under, c)
			underVendors[c.VendorID] = true
		}
		if c.CommitmentProgress > s.cfg.OverCommittedPct {
			over = append(over, c)
			overVendors[c.VendorID] = true
		}
	}
	if len(under) == 0 || len(over) == 0 {
		return domain.OptimizationOpportunity{}, false
	}

	var products []domain.ProductID
	for _, id := range sortedProducts(usage) {
		var hasUnder, hasOver bool
		for _, u := range usage[id] {
			hasUnder = hasUnder || underVendors[u.VendorID]
			hasOver = hasOver || overVendors[u.VendorID]
		}
		if hasUnder && hasOver {
			products = append(products, id)
		}
	}
	if len(products) == 0 {
		return domain.OptimizationOpportunity{}, false
	}

	var (
		savings float64
		ids     []domain.ContractID
	)
	for _, c := range under {
		savings += (c.MinimumCommitment - c.CurrentSpend) * s.cfg.ShiftPenaltyRate
		ids = append(ids, c.ContractID)
	}
	for _, c := range over {
		ids = append(ids, c.ContractID)
	}

	return newOpportunity(domain.OpportunityShiftSpend,
		"Rebalance spend from over-utilized to under-utilized contracts",
		savings, domain.EffortLow, ids, products[:min(len(products), s.cfg.MaxShiftProducts)],
	), true
}

// vendorScores rates each contracted vendor by its best tier discount weighted
// by compliance. A vendor with several contracts keeps its best score.
func vendorScores(contracts []domain.GPOContract, compliance []domain.ContractCompliance) map[domain.VendorID]float64 {
	scores := make(map[domain.VendorID]float64, len(contracts))
	for i, c := range contracts {
		score := c.MaxDiscount() * compliance[i].ComplianceScore / 100
		if prev, ok := scores[c.VendorID]; !ok || score > prev {
			scores[c.VendorID] = score
		}
	}
	return scores
}

func (s *Service) rebalancing(
	contracts []domain.GPOContract,
	compliance []domain.ContractCompliance,
	usage map[domain.ProductID][]domain.ProductVendorSpend,
) []domain.VendorRebalancing {
	scores := vendorScores(contracts, compliance)

	type scored struct {
		domain.ProductVendorSpend
		score float64
	}
	type pair struct{ from, to domain.VendorID }

	var (
		out   []domain.VendorRebalancing
		index = map[pair]int{}
	)
	for _, id := range sortedProducts(usage) {
		entries := usage[id]
		if len(entries) < 2 {
			continue
		}
		ranked := make([]scored, 0, len(entries))
		for _, u := range entries {
			ranked = append(ranked, scored{u, scores[u.VendorID]})
		}
		sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })

		best, worst := ranked[0], ranked[len(ranked)-1]
		if best.score <= worst.score+s.cfg.RebalanceScoreGap {
			continue
		}
		savings := worst.AnnualSpend * (best.score - worst.score) / 100
		if savings <= s.cfg.RebalanceMinSavings {
			continue
		}

		key := pair{worst.VendorID, best.VendorID}
		if i, ok := index[key]; ok {
			out[i].Products = append(out[i].Products, id)
			out[i].AnnualSavings += savings
			continue
		}
		index[key] = len(out)
		out = append(out, domain.VendorRebalancing{
			FromVendor:    worst.VendorID,
			ToVendor:      best.VendorID,
			Products:      []domain.ProductID{id},
			AnnualSavings: savings,
			Reason:        fmt.Sprintf("Better contract terms (%.0f%% vs %.0f%%)", best.score, worst.score),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].AnnualSavings > out[j].AnnualSavings })
	return out[:min(len(out), s.cfg.MaxRebalancing)]
}
