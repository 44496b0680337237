package purchasing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"myPurchasingAgent/business/contract"
	"myPurchasingAgent/business/recommendation"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/config"
	"myPurchasingAgent/pkg/logger"
	"myPurchasingAgent/pkg/pointers"
	"myPurchasingAgent/pkg/tracectx"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func loadConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("PURCHASING_CONFIG_FILE", "")
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(loadConfig(t))
	require.NoError(t, err)
	return e.WithClock(func() time.Time { return fixedNow })
}

func TestConfigOverlays(t *testing.T) {
	t.Setenv("PRICING_SHIPPING_ESTIMATE", "20")
	t.Setenv("PRICING_ORDERING_COST", "80")
	t.Setenv("USAGE_LEAD_TIME_DAYS", "10")
	t.Setenv("CONTRACT_AT_RISK_THRESHOLD", "0.8")
	cfg := loadConfig(t)

	assert.Equal(t, 20.0, PricingConfig(cfg).ShippingEstimate)
	assert.Equal(t, 20.0, RecommendationConfig(cfg).ShippingEstimate)
	assert.Equal(t, 80.0, PricingConfig(cfg).OrderingCost)
	assert.Equal(t, 80.0, UsageConfig(cfg).OrderingCost)
	assert.Equal(t, 10, UsageConfig(cfg).LeadTimeDays)
	assert.Equal(t, 0.8, ContractConfig(cfg).AtRiskThreshold)
	assert.InDelta(t, 1.0, ScoringConfig(cfg).Weights.Sum(), 1e-9)
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "unbalanced weights", mutate: func(c *config.Config) { c.Scoring.WeightPrice = 0.9 }},
		{name: "at-risk threshold above one", mutate: func(c *config.Config) { c.Contract.AtRiskThreshold = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := loadConfig(t)
			tt.mutate(cfg)
			_, err := New(cfg)
			assert.Error(t, err)
		})
	}
}

func TestEngineRecommendsCheapestVendor(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger.Set(zap.New(core))
	t.Cleanup(func() { logger.Set(zap.NewNop()) })

	e := newTestEngine(t)
	snap := recommendation.Snapshot{
		Catalog: domain.NewCatalog([]domain.Product{{ID: "gloves", Name: "Nitrile gloves"}}),
		Vendors: []domain.Vendor{
			{ID: "v-cheap", Name: "Cheap Medical", AverageDeliveryDays: pointers.Int(5)},
			{ID: "v-mid", Name: "Mid Supply", AverageDeliveryDays: pointers.Int(5)},
			{ID: "v-dear", Name: "Dear Direct", AverageDeliveryDays: pointers.Int(5)},
		},
		Quotes: domain.NewQuoteBook([]domain.Quote{
			{VendorID: "v-cheap", ProductID: "gloves", UnitPrice: 90, TotalPrice: 90},
			{VendorID: "v-mid", ProductID: "gloves", UnitPrice: 100, TotalPrice: 100},
			{VendorID: "v-dear", ProductID: "gloves", UnitPrice: 120, TotalPrice: 120},
		}),
	}
	req := domain.PurchaseRequest{
		ID:    "pr-7",
		Items: []domain.PurchaseRequestItem{{ProductID: "gloves", RequestedQuantity: 1}},
	}

	ctx := tracectx.WithTraceID(context.Background(), "trace-123")
	set, err := e.GenerateRecommendations(ctx, req, snap)
	require.NoError(t, err)
	assert.Equal(t, domain.VendorID("v-cheap"), set.Primary.VendorID)

	entries := logs.FilterMessage("vendor_recommendations").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "trace-123", entries[0].ContextMap()["trace_id"])

	_, err = e.AnalyzeVendorOptions(context.Background(), domain.ScoringRequest{
		Product:           snap.Catalog["gloves"],
		RequestedQuantity: 1,
	}, snap.Vendors, snap.Quotes["gloves"], nil)
	require.NoError(t, err)

	scored := logs.FilterMessage("vendor_scoring").All()
	require.NotEmpty(t, scored)
	generated, ok := scored[len(scored)-1].ContextMap()["trace_id"].(string)
	require.True(t, ok)
	assert.Len(t, generated, 36)
}

func TestEngineContractAndUsage(t *testing.T) {
	e := newTestEngine(t)

	res, err := e.AnalyzeContractOptimization(context.Background(), nil, []domain.GPOContract{{
		ID:        "c-1",
		VendorID:  "v1",
		StartDate: fixedNow.AddDate(0, 0, -345),
		EndDate:   fixedNow.AddDate(0, 0, 20),
	}}, contract.Spend{})
	require.NoError(t, err)
	require.Len(t, res.ContractAlerts, 1)
	assert.Equal(t, domain.SeverityHigh, res.ContractAlerts[0].Severity)

	report, err := e.AnalyzeUsagePatterns(context.Background(), nil, domain.Catalog{})
	require.NoError(t, err)
	assert.Empty(t, report.Patterns)

	assert.Equal(t, 219, e.CalculateEOQ(100, 10))
}
