package contract

import (
	"context"
	"fmt"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/logger"
	"myPurchasingAgent/pkg/metrics"
	"myPurchasingAgent/pkg/tracectx"
	"myPurchasingAgent/pkg/validation"
	"sort"
	"time"
)

type Service struct {
	cfg Config
	now func() time.Time
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Spend is the purchasing history the contract portfolio is measured against.
type Spend struct {
	// annual spend per vendor
	ByVendor  map[domain.VendorID]float64
	// annual spend per product, split by supplying vendor
	ByProduct map[domain.ProductID][]domain.ProductVendorSpend
}

// AnalyzeContractOptimization measures each contract's commitment progress and
// derives portfolio level opportunities, rebalancing candidates and alerts.
func (s *Service) AnalyzeContractOptimization(
	ctx context.Context,
	vendors []domain.Vendor,
	contracts []domain.GPOContract,
	spend Spend,
) (domain.ContractOptimizationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.ContractOptimizationResult{}, fmt.Errorf("context error: %w", err)
	}
	if err := validation.Slice(contracts); err != nil {
		return domain.ContractOptimizationResult{}, err
	}
	start := time.Now()
	defer metrics.ObserveSince(metrics.EngineContract, start)

	names := make(map[domain.VendorID]string, len(vendors))
	for _, v := range vendors {
		names[v.ID] = v.Name
	}

	now := s.now()
	compliance := make([]domain.ContractCompliance, 0, len(contracts))
	for _, c := range contracts {
		name, ok := names[c.VendorID]
		if !ok || name == "" {
			name = string(c.VendorID)
		}
		compliance = append(compliance, s.assess(c, name, spend.ByVendor, now))
	}

	result := domain.ContractOptimizationResult{
		CurrentContracts:          compliance,
		OptimizationOpportunities: s.opportunities(contracts, compliance, spend.ByProduct),
		VendorRebalancing:         s.rebalancing(contracts, compliance, spend.ByProduct),
		ContractAlerts:            s.alerts(contracts, compliance),
	}

	atRisk := 0
	for _, c := range compliance {
		if c.AtRisk {
			atRisk++
		}
	}
	for _, a := range result.ContractAlerts {
		metrics.RecordContractAlert(string(a.Severity))
	}
	logger.Debug("contract_optimization",
		"trace_id", tracectx.TraceIDFromContext(ctx),
		"contracts", len(contracts),
		"at_risk", atRisk,
		"opportunities", len(result.OptimizationOpportunities),
		"rebalancing", len(result.VendorRebalancing),
		"alerts", len(result.ContractAlerts),
	)
	return result, nil
}

func sortedProducts(usage map[domain.ProductID][]domain.ProductVendorSpend) []domain.ProductID {
	ids := make([]domain.ProductID, 0, len(usage))
	for id := range usage {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
