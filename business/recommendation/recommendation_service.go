package recommendation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/logger"
	"myPurchasingAgent/pkg/metrics"
	"myPurchasingAgent/pkg/stats"
	"myPurchasingAgent/pkg/tracectx"
	"myPurchasingAgent/pkg/validation"
	"sort"
	"strings"
	"time"
)

const (
	benefitContractPricing = "GPO contract pricing available"
	benefitFreeShipping    = "Qualifies for free shipping"
	benefitRealTimePricing = "Real-time pricing ensures accuracy"
)

// ---- collaborators ----

type VendorScorer interface {
	AnalyzeVendorOptions(
		ctx context.Context,
		req domain.ScoringRequest,
		vendors []domain.Vendor,
		quotes []domain.Quote,
		mappings []domain.ProductMapping,
	) (domain.OptimizationResult, error)
}

type OrderOptimizer interface {
	OptimizeOrderSplitting(
		ctx context.Context,
		items []domain.PurchaseRequestItem,
		catalog domain.Catalog,
		quotes domain.QuoteBook,
		vendors []domain.Vendor,
	) (domain.OptimizedOrder, error)
}

// ---- service ----

type Service struct {
	scorer    VendorScorer
	optimizer OrderOptimizer
	cfg       Config
	now       func() time.Time
}

func NewService(scorer VendorScorer, optimizer OrderOptimizer, cfg Config) *Service {
	return &Service{
		scorer:    scorer,
		optimizer: optimizer,
		cfg:       cfg,
		now:       time.Now,
	}
}

func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Snapshot is the reference data a recommendation is computed over.
type Snapshot struct {
	Catalog  domain.Catalog
	Vendors  []domain.Vendor
	Quotes   domain.QuoteBook
	Mappings []domain.ProductMapping
}

func (sn Snapshot) sku(vendorID domain.VendorID, productID domain.ProductID) string {
	for _, m := range sn.Mappings {
		if m.VendorID == vendorID && m.ProductID == productID {
			return m.VendorSKU
		}
	}
	return ""
}

// GenerateRecommendations ranks vendors able to cover at least MinCoverage of
// the request and evaluates a split order alongside them.
func (s *Service) GenerateRecommendations(
	ctx context.Context,
	req domain.PurchaseRequest,
	snap Snapshot,
) (domain.RecommendationSet, error) {
	if err := ctx.Err(); err != nil {
		return domain.RecommendationSet{}, fmt.Errorf("context error: %w", err)
	}
	if err := validation.Struct(req); err != nil {
		return domain.RecommendationSet{}, err
	}
	start := time.Now()
	defer metrics.ObserveSince(metrics.EngineRecommendation, start)

	now := s.now()
	var recs []domain.VendorRecommendation
	for _, v := range snap.Vendors {
		coverage := coverageOf(v.ID, req.Items, snap.Quotes)
		if coverage < s.cfg.MinCoverage {
			continue
		}

		rec, ok, err := s.vendorRecommendation(ctx, v, coverage, req, snap, now)
		if err != nil {
			return domain.RecommendationSet{}, err
		}
		if ok {
			recs = append(recs, rec)
		}
	}
	if len(recs) == 0 {
		return domain.RecommendationSet{}, fmt.Errorf("purchase request %q: %w", req.ID, domain.ErrNoVendorsAvailable)
	}

	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].TotalCost < recs[j].TotalCost
	})

	split, err := s.splitOrder(ctx, req, snap, recs)
	if err != nil {
		return domain.RecommendationSet{}, err
	}

	primary := recs[0]
	end := min(len(recs), 1+s.cfg.MaxAlternatives)
	set := domain.RecommendationSet{
		Primary:              primary,
		Alternatives:         append([]domain.VendorRecommendation(nil), recs[1:end]...),
		ConsolidationSavings: s.consolidationSavings(primary, req.Items, snap.Quotes),
		SplitOrder:           split,
		Insights:             s.insights(recs, split, req),
		RiskFactors:          s.riskFactors(primary, req, snap.Catalog),
	}

	metrics.RecordRecommendationSet(split != nil)
	logger.Debug("vendor_recommendations",
		"trace_id", tracectx.TraceIDFromContext(ctx),
		"request_id", req.ID,
		"items", len(req.Items),
		"candidates", len(recs),
		"primary_vendor", primary.VendorID,
		"split_offered", split != nil,
	)
	return set, nil
}

func (s *Service) vendorRecommendation(
	ctx context.Context,
	v domain.Vendor,
	coverage float64,
	req domain.PurchaseRequest,
	snap Snapshot,
	now time.Time,
) (domain.VendorRecommendation, bool, error) {
	rec := domain.VendorRecommendation{
		VendorID:              v.ID,
		VendorName:            v.Name,
		Coverage:              coverage,
		EstimatedDeliveryDays: v.DeliveryDays(),
	}

	var confidences []float64
	for _, item := range req.Items {
		product, ok := snap.Catalog[item.ProductID]
		if !ok {
			continue
		}
		q, ok := snap.Quotes.For(product.ID, v.ID)
		if !ok {
			continue
		}

		rec.Products = append(rec.Products, domain.RecommendedProduct{
			ProductID:       product.ID,
			ProductName:     product.Name,
			VendorSKU:       snap.sku(v.ID, product.ID),
			Quantity:        item.RequestedQuantity,
			UnitPrice:       q.UnitPrice,
			TotalPrice:      q.TotalPrice,
			IsContractPrice: q.IsContractPricing,
		})
		rec.TotalCost += q.TotalPrice
		rec.ContractCompliance = rec.ContractCompliance || q.IsContractPricing

		urgency := item.Urgency
		if urgency == "" {
			urgency = req.Urgency
		}
		res, err := s.scorer.AnalyzeVendorOptions(ctx, domain.ScoringRequest{
			Product:           product,
			RequestedQuantity: item.RequestedQuantity,
			Urgency:           urgency.OrDefault(),
			Department:        req.Department,
		}, []domain.Vendor{v}, snap.Quotes.ForProduct(product.ID), snap.Mappings)
		switch {
		case errors.Is(err, domain.ErrNoVendorsAvailable):
			continue
		case err != nil:
			return domain.VendorRecommendation{}, false, fmt.Errorf("score %s for %s: %w", v.ID, product.ID, err)
		}
		confidences = append(confidences, res.Confidence)
	}
	if len(rec.Products) == 0 || len(confidences) == 0 {
		return domain.VendorRecommendation{}, false, nil
	}

	mean := stats.Mean(confidences)
	rec.Confidence = mean
	rec.Score = mean * coverage

	if days, ok := v.DaysUntilContractExpiry(now); ok && days < s.cfg.ContractExpiryDays {
		rec.Warnings = append(rec.Warnings, domain.WarningNote{
			Kind:    domain.WarningContractExpiring,
			Message: fmt.Sprintf("Contract expires in %d days", days),
		})
	}
	if coverage < 1 {
		rec.Warnings = append(rec.Warnings, domain.WarningNote{
			Kind:    domain.WarningPartialCoverage,
			Message: fmt.Sprintf("Can only fulfill %d%% of requested items", int(math.Round(coverage*100))),
		})
	}

	if rec.ContractCompliance {
		rec.Benefits = append(rec.Benefits, benefitContractPricing)
	}
	if v.QualifiesForFreeShipping(rec.TotalCost) {
		rec.Benefits = append(rec.Benefits, benefitFreeShipping)
	}
	if v.SupportsRealTimePricing {
		rec.Benefits = append(rec.Benefits, benefitRealTimePricing)
	}
	return rec, true, nil
}

// coverageOf is the share of distinct requested products the vendor quotes.
func coverageOf(vendorID domain.VendorID, items []domain.PurchaseRequestItem, quotes domain.QuoteBook) float64 {
	requested := make(map[domain.ProductID]bool, len(items))
	for _, item := range items {
		_, ok := quotes.For(item.ProductID, vendorID)
		requested[item.ProductID] = requested[item.ProductID] || ok
	}
	if len(requested) == 0 {
		return 0
	}
	fulfilled := 0
	for _, ok := range requested {
		if ok {
			fulfilled++
		}
	}
	return float64(fulfilled) / float64(len(requested))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func joinReasons(reasons []string) string {
	return strings.Join(reasons, "; ")
}
