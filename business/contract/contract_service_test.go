package contract

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/pointers"
)

var fixedNow = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

func newTestService() *Service {
	return NewService(DefaultConfig()).WithClock(func() time.Time { return fixedNow })
}

func days(n int) time.Time { return fixedNow.AddDate(0, 0, n) }

func TestComplianceScore(t *testing.T) {
	tests := []struct {
		name      string
		progress  float64
		remaining int
		total     int
		want      float64
	}{
		{name: "behind schedule", progress: 50, remaining: 80, total: 400, want: 42.5},
		{name: "on track", progress: 80, remaining: 80, total: 400, want: 80},
		{name: "ahead", progress: 120, remaining: 80, total: 400, want: 90},
		{name: "far ahead is capped", progress: 160, remaining: 80, total: 400, want: 100},
		{name: "slightly behind", progress: 72, remaining: 80, total: 400, want: 70},
		{name: "at risk", progress: 24, remaining: 80, total: 400, want: 20.001},
		{name: "not started", progress: 0, remaining: 400, total: 400, want: 100},
		{name: "zero length", progress: 0, remaining: 0, total: 0, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, complianceScore(tt.progress, tt.remaining, tt.total), 1e-6)
		})
	}
}

func portfolio() ([]domain.Vendor, []domain.GPOContract, Spend) {
	vendors := []domain.Vendor{
		{ID: "v1", Name: "Glove Partners"},
		{ID: "v2", Name: "Wound Direct"},
	}
	contracts := []domain.GPOContract{
		{
			ID:                "c-gloves",
			Name:              "Gloves 2026",
			VendorID:          "v1",
			StartDate:         days(-320),
			EndDate:           days(80),
			MinimumCommitment: pointers.Float64(100000),
			TierDiscounts:     []domain.TierDiscount{{MinSpend: 55000, DiscountPercentage: 5}, {MinSpend: 120000, DiscountPercentage: 10}},
			ProductCategories: []string{"Gloves", "Wound Care"},
		},
		{
			ID:                "c-wound",
			Name:              "Wound Care",
			VendorID:          "v2",
			StartDate:         days(-100),
			EndDate:           days(265),
			MinimumCommitment: pointers.Float64(50000),
			TierDiscounts:     []domain.TierDiscount{{MinSpend: 100000, DiscountPercentage: 8}},
		},
	}
	spend := Spend{
		ByVendor: map[domain.VendorID]float64{"v1": 50000, "v2": 80000},
		ByProduct: map[domain.ProductID][]domain.ProductVendorSpend{
			"gloves": {{VendorID: "v1", AnnualSpend: 30000}, {VendorID: "v2", AnnualSpend: 20000}},
			"gauze":  {{VendorID: "v2", AnnualSpend: 5000}},
			"masks":  {{VendorID: "v9", AnnualSpend: 60000}},
		},
	}
	return vendors, contracts, spend
}

func TestAnalyzeContractOptimizationCompliance(t *testing.T) {
	vendors, contracts, spend := portfolio()

	res, err := newTestService().AnalyzeContractOptimization(context.Background(), vendors, contracts, spend)
	require.NoError(t, err)
	require.Len(t, res.CurrentContracts, 2)

	behind := res.CurrentContracts[0]
	assert.Equal(t, domain.ContractID("c-gloves"), behind.ContractID)
	assert.Equal(t, "Glove Partners", behind.VendorName)
	assert.Equal(t, 80, behind.DaysRemaining)
	assert.InDelta(t, 50.0, behind.CommitmentProgress, 1e-9)
	assert.InDelta(t, 42.5, behind.ComplianceScore, 1e-9)
	assert.InDelta(t, 62500.0, behind.ProjectedEndSpend, 1e-6)
	assert.True(t, behind.AtRisk)
	assert.Equal(t, []string{
		"Increase spend by $468.75/day to meet commitment",
		"Focus on Gloves, Wound Care categories for this vendor",
		"Spend $5000.00 more to reach 5% discount tier",
		"Contract expires soon - begin renewal negotiations",
	}, behind.Recommendations)

	ahead := res.CurrentContracts[1]
	assert.Equal(t, "Wound Direct", ahead.VendorName)
	assert.InDelta(t, 160.0, ahead.CommitmentProgress, 1e-9)
	assert.InDelta(t, 100.0, ahead.ComplianceScore, 1e-9)
	assert.InDelta(t, 292000.0, ahead.ProjectedEndSpend, 1e-6)
	assert.False(t, ahead.AtRisk)
	assert.Empty(t, ahead.Recommendations)
}

func TestAnalyzeContractOptimizationOpportunitiesAndAlerts(t *testing.T) {
	vendors, contracts, spend := portfolio()
	svc := newTestService()

	res, err := svc.AnalyzeContractOptimization(context.Background(), vendors, contracts, spend)
	require.NoError(t, err)

	require.Len(t, res.OptimizationOpportunities, 2)
	newContract := res.OptimizationOpportunities[0]
	assert.Equal(t, domain.OpportunityNewContract, newContract.Kind)
	assert.InDelta(t, 7200.0, newContract.EstimatedSavings, 1e-6)
	assert.Equal(t, domain.EffortHigh, newContract.Effort)

	shift := res.OptimizationOpportunities[1]
	assert.Equal(t, domain.OpportunityShiftSpend, shift.Kind)
	assert.InDelta(t, 1000.0, shift.EstimatedSavings, 1e-6)
	assert.Equal(t, domain.EffortLow, shift.Effort)
	assert.Equal(t, []domain.ContractID{"c-gloves", "c-wound"}, shift.Contracts)
	assert.Equal(t, []domain.ProductID{"gloves"}, shift.Products)

	assert.Empty(t, res.VendorRebalancing)

	require.Len(t, res.ContractAlerts, 3)
	assert.Equal(t, domain.SeverityHigh, res.ContractAlerts[0].Severity)
	assert.Equal(t, "Contract at risk: Only 80 days to meet $50000.00 shortfall", res.ContractAlerts[0].Message)
	assert.Equal(t, domain.SeverityMedium, res.ContractAlerts[1].Severity)
	assert.Equal(t, "Contract expires in 80 days", res.ContractAlerts[1].Message)
	assert.Equal(t, domain.SeverityLow, res.ContractAlerts[2].Severity)
	assert.Equal(t, "Close to 5% discount tier (need $5000.00 more)", res.ContractAlerts[2].Message)

	again, err := svc.AnalyzeContractOptimization(context.Background(), vendors, contracts, spend)
	require.NoError(t, err)
	assert.Equal(t, res.ContractAlerts[0].ID, again.ContractAlerts[0].ID)
	assert.Equal(t, res.OptimizationOpportunities[1].ID, again.OptimizationOpportunities[1].ID)
}

func TestAlertsSortedBySeverity(t *testing.T) {
	contracts := []domain.GPOContract{
		{
			ID: "c-low", VendorID: "vL", StartDate: days(-100), EndDate: days(265),
			TierDiscounts: []domain.TierDiscount{{MinSpend: 10000, DiscountPercentage: 3}},
		},
		{
			ID: "c-medium", VendorID: "vM", StartDate: days(-200), EndDate: days(150),
			MinimumCommitment: pointers.Float64(100000),
		},
		{ID: "c-high", VendorID: "vH", StartDate: days(-345), EndDate: days(20)},
	}
	spend := Spend{ByVendor: map[domain.VendorID]float64{"vL": 5000, "vM": 30000}}

	res, err := newTestService().AnalyzeContractOptimization(context.Background(), nil, contracts, spend)
	require.NoError(t, err)

	require.Len(t, res.ContractAlerts, 3)
	assert.Equal(t, domain.ContractID("c-high"), res.ContractAlerts[0].ContractID)
	assert.Equal(t, "Contract expires in 20 days", res.ContractAlerts[0].Message)
	assert.Equal(t, "Begin renewal negotiations immediately", res.ContractAlerts[0].Action)
	assert.Equal(t, domain.ContractID("c-medium"), res.ContractAlerts[1].ContractID)
	assert.Equal(t, "Only 30% of commitment met", res.ContractAlerts[1].Message)
	assert.Equal(t, domain.ContractID("c-low"), res.ContractAlerts[2].ContractID)
	assert.Equal(t, "Close to 3% discount tier (need $5000.00 more)", res.ContractAlerts[2].Message)

	assert.True(t, res.CurrentContracts[1].AtRisk)
	assert.Equal(t, "vH", res.CurrentContracts[2].VendorName)
}

func rebalanceContracts() []domain.GPOContract {
	return []domain.GPOContract{
		{
			ID: "c-a", VendorID: "vA", StartDate: days(-100), EndDate: days(100),
			TierDiscounts: []domain.TierDiscount{{MinSpend: 0, DiscountPercentage: 20}},
		},
		{
			ID: "c-b", VendorID: "vB", StartDate: days(-100), EndDate: days(100),
			TierDiscounts: []domain.TierDiscount{{MinSpend: 0, DiscountPercentage: 2}},
		},
	}
}

func TestVendorRebalancingMergesPairs(t *testing.T) {
	spend := Spend{
		ByProduct: map[domain.ProductID][]domain.ProductVendorSpend{
			"p1": {{VendorID: "vA", AnnualSpend: 10000}, {VendorID: "vB", AnnualSpend: 50000}},
			"p2": {{VendorID: "vB", AnnualSpend: 20000}, {VendorID: "vA", AnnualSpend: 1000}},
			"p3": {{VendorID: "vB", AnnualSpend: 5000}, {VendorID: "vA", AnnualSpend: 1}},
			"p4": {{VendorID: "vC", AnnualSpend: 100000}, {VendorID: "vA", AnnualSpend: 1}},
		},
	}

	res, err := newTestService().AnalyzeContractOptimization(context.Background(), nil, rebalanceContracts(), spend)
	require.NoError(t, err)

	require.Len(t, res.VendorRebalancing, 2)
	first := res.VendorRebalancing[0]
	assert.Equal(t, domain.VendorID("vC"), first.FromVendor)
	assert.Equal(t, domain.VendorID("vA"), first.ToVendor)
	assert.Equal(t, []domain.ProductID{"p4"}, first.Products)
	assert.InDelta(t, 20000.0, first.AnnualSavings, 1e-6)
	assert.Equal(t, "Better contract terms (20% vs 0%)", first.Reason)

	merged := res.VendorRebalancing[1]
	assert.Equal(t, domain.VendorID("vB"), merged.FromVendor)
	assert.Equal(t, []domain.ProductID{"p1", "p2"}, merged.Products)
	assert.InDelta(t, 12600.0, merged.AnnualSavings, 1e-6)
	assert.Equal(t, "Better contract terms (20% vs 2%)", merged.Reason)
}

func TestVendorRebalancingKeepsTopFive(t *testing.T) {
	usage := map[domain.ProductID][]domain.ProductVendorSpend{}
	for i := 1; i <= 7; i++ {
		usage[domain.ProductID(fmt.Sprintf("q%d", i))] = []domain.ProductVendorSpend{
			{VendorID: domain.VendorID(fmt.Sprintf("vx%d", i)), AnnualSpend: float64(i) * 10000},
			{VendorID: "vA", AnnualSpend: 1},
		}
	}

	res, err := newTestService().AnalyzeContractOptimization(context.Background(), nil, rebalanceContracts(), Spend{ByProduct: usage})
	require.NoError(t, err)

	require.Len(t, res.VendorRebalancing, 5)
	want := []float64{14000, 12000, 10000, 8000, 6000}
	for i, r := range res.VendorRebalancing {
		assert.InDelta(t, want[i], r.AnnualSavings, 1e-6)
	}
}

func TestOpportunitiesConsolidateAndRenegotiate(t *testing.T) {
	contracts := []domain.GPOContract{
		{ID: "c-a1", VendorID: "vA", StartDate: days(-100), EndDate: days(265), TierDiscounts: []domain.TierDiscount{{MinSpend: 1e6, DiscountPercentage: 5}}},
		{ID: "c-a2", VendorID: "vA", StartDate: days(-100), EndDate: days(265), TierDiscounts: []domain.TierDiscount{{MinSpend: 1e6, DiscountPercentage: 5}}},
		{ID: "c-b", VendorID: "vB", StartDate: days(-100), EndDate: days(265)},
	}
	spend := Spend{ByVendor: map[domain.VendorID]float64{"vB": 200000}}

	res, err := newTestService().AnalyzeContractOptimization(context.Background(), nil, contracts, spend)
	require.NoError(t, err)

	require.Len(t, res.OptimizationOpportunities, 2)
	reneg := res.OptimizationOpportunities[0]
	assert.Equal(t, domain.OpportunityRenegotiate, reneg.Kind)
	assert.InDelta(t, 16000.0, reneg.EstimatedSavings, 1e-6)
	assert.Equal(t, []domain.ContractID{"c-b"}, reneg.Contracts)

	consolidate := res.OptimizationOpportunities[1]
	assert.Equal(t, domain.OpportunityConsolidate, consolidate.Kind)
	assert.Equal(t, "Consolidate multiple contracts with 1 vendor", consolidate.Description)
	assert.InDelta(t, 2500.0, consolidate.EstimatedSavings, 1e-6)
	assert.Equal(t, domain.EffortMedium, consolidate.Effort)
	assert.Equal(t, []domain.ContractID{"c-a1", "c-a2"}, consolidate.Contracts)
}

func TestAnalyzeContractOptimizationInvalidInput(t *testing.T) {
	contracts := []domain.GPOContract{{ID: "c-bad", VendorID: "v1", StartDate: days(10), EndDate: days(-10)}}

	_, err := newTestService().AnalyzeContractOptimization(context.Background(), nil, contracts, Spend{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = newTestService().AnalyzeContractOptimization(ctx, nil, nil, Spend{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDefaultConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())

	cfg.AtRiskThreshold = 1.5
	assert.Error(t, cfg.Validate())
}
