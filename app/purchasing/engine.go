package purchasing

import (
	"context"
	"fmt"
	"myPurchasingAgent/business/contract"
	"myPurchasingAgent/business/pricing"
	"myPurchasingAgent/business/recommendation"
	"myPurchasingAgent/business/scoring"
	"myPurchasingAgent/business/usage"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/config"
	"myPurchasingAgent/pkg/logger"
	"myPurchasingAgent/pkg/metrics"
	"myPurchasingAgent/pkg/tracectx"
	"time"

	"github.com/google/uuid"
)

// Engine bundles the five purchasing services behind one facade.
type Engine struct {
	scoring        *scoring.Service
	pricing        *pricing.Service
	usage          *usage.Service
	recommendation *recommendation.Service
	contract       *contract.Service
}

// NewFromEnv loads configuration, initialises logging and metrics and builds
// the engine.
func NewFromEnv() (*Engine, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.App.Environment); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	metrics.Init()

	e, err := New(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("Purchasing engine ready", "app", cfg.App.Name, "version", cfg.App.Version, "env", cfg.App.Environment)
	return e, nil
}

func New(cfg *config.Config) (*Engine, error) {
	scoringCfg := ScoringConfig(cfg)
	if err := scoringCfg.Validate(); err != nil {
		return nil, err
	}
	contractCfg := ContractConfig(cfg)
	if err := contractCfg.Validate(); err != nil {
		return nil, err
	}

	scorer := scoring.NewService(scoringCfg)
	optimizer := pricing.NewService(PricingConfig(cfg))
	return &Engine{
		scoring:        scorer,
		pricing:        optimizer,
		usage:          usage.NewService(UsageConfig(cfg)),
		recommendation: recommendation.NewService(scorer, optimizer, RecommendationConfig(cfg)),
		contract:       contract.NewService(contractCfg),
	}, nil
}

// WithClock pins every time based rule to now.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.scoring.WithClock(now)
	e.usage.WithClock(now)
	e.recommendation.WithClock(now)
	e.contract.WithClock(now)
	return e
}

// withTrace tags ctx with a fresh trace id unless the caller already set one.
func withTrace(ctx context.Context) context.Context {
	return tracectx.Ensure(ctx, uuid.NewString)
}

func (e *Engine) AnalyzeVendorOptions(
	ctx context.Context,
	req domain.ScoringRequest,
	vendors []domain.Vendor,
	quotes []domain.Quote,
	mappings []domain.ProductMapping,
) (domain.OptimizationResult, error) {
	return e.scoring.AnalyzeVendorOptions(withTrace(ctx), req, vendors, quotes, mappings)
}

func (e *Engine) OptimizeOrderSplitting(
	ctx context.Context,
	items []domain.PurchaseRequestItem,
	catalog domain.Catalog,
	quotes domain.QuoteBook,
	vendors []domain.Vendor,
) (domain.OptimizedOrder, error) {
	return e.pricing.OptimizeOrderSplitting(withTrace(ctx), items, catalog, quotes, vendors)
}

func (e *Engine) AnalyzeBulkDiscounts(quotes []domain.Quote, requestedQuantity int) (domain.BulkOption, bool) {
	return e.pricing.AnalyzeBulkDiscounts(quotes, requestedQuantity)
}

func (e *Engine) CalculateEOQ(monthlyUsage, unitCost float64) int {
	return e.pricing.CalculateEOQ(monthlyUsage, unitCost)
}

func (e *Engine) AnalyzePriceTrends(productID domain.ProductID, history []domain.PricePoint) domain.PriceTrend {
	return e.pricing.AnalyzePriceTrends(productID, history)
}

func (e *Engine) AnalyzeUsagePatterns(
	ctx context.Context,
	history []domain.HistoricalOrder,
	catalog domain.Catalog,
) (domain.UsageAnalysisReport, error) {
	return e.usage.AnalyzeUsagePatterns(withTrace(ctx), history, catalog)
}

func (e *Engine) GenerateRecommendations(
	ctx context.Context,
	req domain.PurchaseRequest,
	snap recommendation.Snapshot,
) (domain.RecommendationSet, error) {
	return e.recommendation.GenerateRecommendations(withTrace(ctx), req, snap)
}

func (e *Engine) AnalyzeContractOptimization(
	ctx context.Context,
	vendors []domain.Vendor,
	contracts []domain.GPOContract,
	spend contract.Spend,
) (domain.ContractOptimizationResult, error) {
	return e.contract.AnalyzeContractOptimization(withTrace(ctx), vendors, contracts, spend)
}
