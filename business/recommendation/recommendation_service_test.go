package recommendation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myPurchasingAgent/business/pricing"
	"myPurchasingAgent/business/scoring"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/pointers"
)

var fixedNow = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

func newTestService() *Service {
	scorer := scoring.NewService(scoring.DefaultConfig()).WithClock(clock)
	optimizer := pricing.NewService(pricing.DefaultConfig())
	return NewService(scorer, optimizer, DefaultConfig()).WithClock(clock)
}

func request(urgency domain.Urgency, ids ...domain.ProductID) domain.PurchaseRequest {
	req := domain.PurchaseRequest{ID: "pr-1", Department: "ER", Urgency: urgency}
	for _, id := range ids {
		req.Items = append(req.Items, domain.PurchaseRequestItem{ProductID: id, RequestedQuantity: 1})
	}
	return req
}

func quote(v domain.VendorID, p domain.ProductID, price float64) domain.Quote {
	return domain.Quote{VendorID: v, ProductID: p, UnitPrice: price, TotalPrice: price}
}

func TestGenerateRecommendationsThreeVendors(t *testing.T) {
	snap := Snapshot{
		Catalog: domain.NewCatalog([]domain.Product{{ID: "gloves", Name: "Nitrile gloves"}}),
		Vendors: []domain.Vendor{
			{ID: "v-mid", Name: "Mid Supply", AverageDeliveryDays: pointers.Int(5)},
			{ID: "v-cheap", Name: "Cheap Medical", AverageDeliveryDays: pointers.Int(5)},
			{ID: "v-dear", Name: "Dear Direct", AverageDeliveryDays: pointers.Int(5)},
		},
		Quotes: domain.NewQuoteBook([]domain.Quote{
			quote("v-mid", "gloves", 100),
			quote("v-cheap", "gloves", 90),
			quote("v-dear", "gloves", 120),
		}),
		Mappings: []domain.ProductMapping{
			{VendorID: "v-cheap", ProductID: "gloves", VendorSKU: "CM-100"},
		},
	}

	set, err := newTestService().GenerateRecommendations(context.Background(), request(domain.UrgencyRoutine, "gloves"), snap)
	require.NoError(t, err)

	assert.Equal(t, domain.VendorID("v-cheap"), set.Primary.VendorID)
	assert.InDelta(t, 0.80, set.Primary.Score, 1e-9)
	assert.InDelta(t, 0.80, set.Primary.Confidence, 1e-9)
	assert.Equal(t, 90.0, set.Primary.TotalCost)
	require.Len(t, set.Primary.Products, 1)
	assert.Equal(t, "CM-100", set.Primary.Products[0].VendorSKU)

	require.Len(t, set.Alternatives, 2)
	assert.Equal(t, domain.VendorID("v-mid"), set.Alternatives[0].VendorID)
	assert.Equal(t, domain.VendorID("v-dear"), set.Alternatives[1].VendorID)
	assert.InDelta(t, 0.65, set.Alternatives[1].Score, 1e-9)

	assert.Nil(t, set.SplitOrder)
	assert.InDelta(t, 15.0, set.ConsolidationSavings, 1e-9)
	assert.Equal(t, []string{"Significant price variance detected: up to 33% difference between vendors"}, set.Insights)
	assert.Empty(t, set.RiskFactors)
}

func TestGenerateRecommendationsOffersCheaperSplit(t *testing.T) {
	snap := Snapshot{
		Catalog: domain.NewCatalog([]domain.Product{{ID: "p1", Name: "Syringes"}, {ID: "p2", Name: "Gauze"}}),
		Vendors: []domain.Vendor{
			{
				ID: "v-a", Name: "Contract Co", AverageDeliveryDays: pointers.Int(2), GPOContractNumber: "GPO-1",
				SupportsRealTimePricing: true, SupportsBulkOrdering: true, APIEndpoint: "https://a.example",
			},
			{ID: "v-b", Name: "Budget Co", AverageDeliveryDays: pointers.Int(10)},
		},
		Quotes: domain.NewQuoteBook([]domain.Quote{
			{VendorID: "v-a", ProductID: "p1", UnitPrice: 120, TotalPrice: 120, IsContractPricing: true},
			{VendorID: "v-a", ProductID: "p2", UnitPrice: 120, TotalPrice: 120, IsContractPricing: true},
			quote("v-b", "p1", 100),
			quote("v-b", "p2", 100),
			quote("v-offlist", "p1", 90),
			quote("v-offlist", "p2", 90),
		}),
	}

	set, err := newTestService().GenerateRecommendations(context.Background(), request(domain.UrgencyRoutine, "p1", "p2"), snap)
	require.NoError(t, err)

	assert.Equal(t, domain.VendorID("v-a"), set.Primary.VendorID)
	assert.Equal(t, 240.0, set.Primary.TotalCost)
	assert.True(t, set.Primary.ContractCompliance)
	assert.ElementsMatch(t, []string{
		"GPO contract pricing available",
		"Real-time pricing ensures accuracy",
	}, set.Primary.Benefits)

	require.Len(t, set.Alternatives, 1)
	assert.InDelta(t, 0.65, set.Alternatives[0].Score, 1e-9)

	require.NotNil(t, set.SplitOrder)
	assert.Equal(t, 200.0, set.SplitOrder.TotalCost)
	require.Len(t, set.SplitOrder.Vendors, 1)
	group := set.SplitOrder.Vendors[0]
	assert.Equal(t, domain.VendorID("v-b"), group.VendorID)
	assert.Equal(t, 0.8, group.Score)
	assert.Len(t, group.Products, 2)
	assert.False(t, group.ContractCompliance)
	assert.Equal(t, "Prioritizing 1 vendors with active GPO contracts", set.SplitOrder.Reason)

	assert.Equal(t, 0.0, set.ConsolidationSavings)
	assert.Equal(t, []string{
		"1 vendor offers GPO contract pricing",
		"Splitting order across 1 vendor saves $40.00",
	}, set.Insights)
}

func TestGenerateRecommendationsPartialCoverage(t *testing.T) {
	snap := Snapshot{
		Catalog: domain.NewCatalog([]domain.Product{{ID: "p1", Name: "Syringes"}, {ID: "p2", Name: "Gauze"}}),
		Vendors: []domain.Vendor{
			{ID: "v-full", Name: "Full Line"},
			{ID: "v-p1", Name: "Syringe Shop"},
			{ID: "v-p2", Name: "Gauze Shop"},
		},
		Quotes: domain.NewQuoteBook([]domain.Quote{
			quote("v-full", "p1", 50),
			quote("v-full", "p2", 50),
			quote("v-p1", "p1", 45),
			quote("v-p2", "p2", 45),
		}),
	}

	set, err := newTestService().GenerateRecommendations(context.Background(), request(domain.UrgencyRoutine, "p1", "p2"), snap)
	require.NoError(t, err)

	assert.Equal(t, domain.VendorID("v-full"), set.Primary.VendorID)
	assert.InDelta(t, 0.65, set.Primary.Score, 1e-9)
	assert.Empty(t, set.Primary.Warnings)

	require.Len(t, set.Alternatives, 2)
	partial := set.Alternatives[0]
	assert.Equal(t, domain.VendorID("v-p1"), partial.VendorID)
	assert.InDelta(t, 0.5, partial.Coverage, 1e-9)
	assert.InDelta(t, 0.4, partial.Score, 1e-9)
	assert.True(t, partial.HasWarning(domain.WarningPartialCoverage))
	assert.Equal(t, "Can only fulfill 50% of requested items", partial.Warnings[0].Message)

	assert.Nil(t, set.SplitOrder)
	assert.InDelta(t, 20.0, set.ConsolidationSavings, 1e-9)
	assert.GreaterOrEqual(t, set.ConsolidationSavings, 0.0)
}

func TestGenerateRecommendationsRisks(t *testing.T) {
	snap := Snapshot{
		Catalog: domain.NewCatalog([]domain.Product{{ID: "epi", Name: "Epinephrine", IsCritical: true}}),
		Vendors: []domain.Vendor{{
			ID:                    "v-a",
			Name:                  "Acute Supply",
			AverageDeliveryDays:   pointers.Int(5),
			ContractExpiryDate:    pointers.Time(fixedNow.AddDate(0, 0, 10)),
			FreeShippingThreshold: pointers.Float64(50),
		}},
		Quotes: domain.NewQuoteBook([]domain.Quote{quote("v-a", "epi", 100)}),
	}

	set, err := newTestService().GenerateRecommendations(context.Background(), request(domain.UrgencyUrgent, "epi"), snap)
	require.NoError(t, err)

	assert.True(t, set.Primary.HasWarning(domain.WarningContractExpiring))
	assert.Equal(t, "Contract expires in 10 days", set.Primary.Warnings[0].Message)
	assert.Contains(t, set.Primary.Benefits, "Qualifies for free shipping")
	assert.Empty(t, set.Alternatives)
	assert.Nil(t, set.SplitOrder)

	assert.Equal(t, []string{
		"Order contains 1 critical item",
		"Delivery time may not meet urgency requirements",
		"Vendor contract expiring soon - prices may increase",
	}, set.RiskFactors)
	assert.Equal(t, []string{
		"Fastest delivery is 5 days - consider expedited shipping for urgent needs",
		"Free shipping applies for 1 vendor on this order",
	}, set.Insights)
}

func TestGenerateRecommendationsNoVendorMeetsCoverage(t *testing.T) {
	snap := Snapshot{
		Catalog: domain.NewCatalog([]domain.Product{{ID: "p1"}, {ID: "p2"}, {ID: "p3"}}),
		Vendors: []domain.Vendor{{ID: "v-a"}, {ID: "v-b"}},
		Quotes: domain.NewQuoteBook([]domain.Quote{
			quote("v-a", "p1", 10),
			quote("v-b", "p2", 10),
		}),
	}

	_, err := newTestService().GenerateRecommendations(context.Background(), request(domain.UrgencyRoutine, "p1", "p2", "p3"), snap)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNoVendorsAvailable)
	assert.Contains(t, err.Error(), "pr-1")
}

func TestGenerateRecommendationsRejectsEmptyRequest(t *testing.T) {
	_, err := newTestService().GenerateRecommendations(context.Background(), domain.PurchaseRequest{ID: "pr-2"}, Snapshot{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGenerateRecommendationsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestService().GenerateRecommendations(ctx, request(domain.UrgencyRoutine, "p1"), Snapshot{})
	assert.ErrorIs(t, err, context.Canceled)
}

type failingOptimizer struct{}

func (failingOptimizer) OptimizeOrderSplitting(
	context.Context, []domain.PurchaseRequestItem, domain.Catalog, domain.QuoteBook, []domain.Vendor,
) (domain.OptimizedOrder, error) {
	return domain.OptimizedOrder{}, errors.New("optimizer down")
}

func TestGenerateRecommendationsOptimizerFailure(t *testing.T) {
	scorer := scoring.NewService(scoring.DefaultConfig()).WithClock(clock)
	svc := NewService(scorer, failingOptimizer{}, DefaultConfig()).WithClock(clock)
	snap := Snapshot{
		Catalog: domain.NewCatalog([]domain.Product{{ID: "p1"}}),
		Vendors: []domain.Vendor{{ID: "v-a"}, {ID: "v-b"}},
		Quotes:  domain.NewQuoteBook([]domain.Quote{quote("v-a", "p1", 10), quote("v-b", "p1", 12)}),
	}

	_, err := svc.GenerateRecommendations(context.Background(), request(domain.UrgencyRoutine, "p1"), snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "optimize split order")
}

func TestGenerateRecommendationsUsesBookKeyForProduct(t *testing.T) {
	tests := []struct {
		name      string
		productID domain.ProductID
	}{
		{name: "quotes without product id", productID: ""},
		{name: "quotes filed under another product id", productID: "legacy-gloves"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot{
				Catalog: domain.NewCatalog([]domain.Product{{ID: "gloves", Name: "Nitrile gloves"}}),
				Vendors: []domain.Vendor{
					{ID: "v-cheap", AverageDeliveryDays: pointers.Int(5)},
					{ID: "v-dear", AverageDeliveryDays: pointers.Int(5)},
				},
				Quotes: domain.QuoteBook{"gloves": {
					{VendorID: "v-cheap", ProductID: tt.productID, UnitPrice: 90, TotalPrice: 90},
					{VendorID: "v-dear", ProductID: tt.productID, UnitPrice: 120, TotalPrice: 120},
				}},
			}

			set, err := newTestService().GenerateRecommendations(context.Background(), request(domain.UrgencyRoutine, "gloves"), snap)
			require.NoError(t, err)

			assert.Equal(t, domain.VendorID("v-cheap"), set.Primary.VendorID)
			assert.InDelta(t, 0.80, set.Primary.Confidence, 1e-9)
			assert.InDelta(t, 0.80, set.Primary.Score, 1e-9)
			require.Len(t, set.Alternatives, 1)
			assert.Greater(t, set.Alternatives[0].Score, 0.0)
		})
	}
}

type unscoredScorer struct{}

func (unscoredScorer) AnalyzeVendorOptions(
	context.Context, domain.ScoringRequest, []domain.Vendor, []domain.Quote, []domain.ProductMapping,
) (domain.OptimizationResult, error) {
	return domain.OptimizationResult{}, domain.ErrNoVendorsAvailable
}

func TestGenerateRecommendationsSkipsVendorsWithoutScores(t *testing.T) {
	svc := NewService(unscoredScorer{}, pricing.NewService(pricing.DefaultConfig()), DefaultConfig()).WithClock(clock)
	snap := Snapshot{
		Catalog: domain.NewCatalog([]domain.Product{{ID: "p1"}}),
		Vendors: []domain.Vendor{{ID: "v-a"}, {ID: "v-b"}},
		Quotes:  domain.NewQuoteBook([]domain.Quote{quote("v-a", "p1", 10), quote("v-b", "p1", 12)}),
	}

	_, err := svc.GenerateRecommendations(context.Background(), request(domain.UrgencyRoutine, "p1"), snap)
	assert.ErrorIs(t, err, domain.ErrNoVendorsAvailable)
}

func TestGenerateRecommendationsCoverageCountsDistinctProducts(t *testing.T) {
	tests := []struct {
		name  string
		items []domain.ProductID
	}{
		{name: "distinct items", items: []domain.ProductID{"p1", "p2"}},
		{name: "repeated line", items: []domain.ProductID{"p1", "p1", "p2"}},
		{name: "repeated line three times", items: []domain.ProductID{"p1", "p1", "p1", "p2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Snapshot{
				Catalog: domain.NewCatalog([]domain.Product{{ID: "p1", Name: "Syringes"}, {ID: "p2", Name: "Gauze"}}),
				Vendors: []domain.Vendor{
					{ID: "v-full", Name: "Full Line"},
					{ID: "v-p1", Name: "Syringe Shop"},
				},
				Quotes: domain.NewQuoteBook([]domain.Quote{
					quote("v-full", "p1", 50),
					quote("v-full", "p2", 50),
					quote("v-p1", "p1", 45),
				}),
			}

			set, err := newTestService().GenerateRecommendations(context.Background(), request(domain.UrgencyRoutine, tt.items...), snap)
			require.NoError(t, err)

			assert.Equal(t, domain.VendorID("v-full"), set.Primary.VendorID)
			assert.InDelta(t, 1.0, set.Primary.Coverage, 1e-9)
			assert.False(t, set.Primary.HasWarning(domain.WarningPartialCoverage))

			require.Len(t, set.Alternatives, 1)
			assert.InDelta(t, 0.5, set.Alternatives[0].Coverage, 1e-9)
			assert.Equal(t, "Can only fulfill 50% of requested items", set.Alternatives[0].Warnings[0].Message)
		})
	}
}
