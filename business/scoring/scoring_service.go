package scoring

import (
	"context"
	"fmt"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/logger"
	"myPurchasingAgent/pkg/metrics"
	"myPurchasingAgent/pkg/tracectx"
	"myPurchasingAgent/pkg/validation"
	"sort"
	"strings"
	"time"
)

type Service struct {
	cfg Config
	now func() time.Time
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg, now: time.Now}
}

// WithClock pins the reference time used for contract expiry checks.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// AnalyzeVendorOptions scores every vendor that quoted req.Product and ranks
// them. Quotes for other products are ignored.
func (s *Service) AnalyzeVendorOptions(
	ctx context.Context,
	req domain.ScoringRequest,
	vendors []domain.Vendor,
	quotes []domain.Quote,
	mappings []domain.ProductMapping,
) (domain.OptimizationResult, error) {
	if err := ctx.Err(); err != nil {
		return domain.OptimizationResult{}, fmt.Errorf("context error: %w", err)
	}
	if err := validation.Struct(req); err != nil {
		return domain.OptimizationResult{}, err
	}
	start := time.Now()
	defer metrics.ObserveSince(metrics.EngineScoring, start)

	productID := req.Product.ID
	productQuotes := make([]domain.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.ProductID == productID {
			productQuotes = append(productQuotes, q)
		}
	}
	if len(productQuotes) == 0 {
		metrics.RecordVendorAnalysis("no_vendors")
		return domain.OptimizationResult{}, fmt.Errorf("product %s: %w", productID, domain.ErrNoVendorsAvailable)
	}

	byID := make(map[domain.VendorID]domain.Vendor, len(vendors))
	for _, v := range vendors {
		byID[v.ID] = v
	}
	mapped := make(map[domain.VendorID]bool, len(mappings))
	for _, m := range mappings {
		if m.ProductID == productID {
			mapped[m.VendorID] = true
		}
	}

	minUnit, maxUnit := productQuotes[0].UnitPrice, productQuotes[0].UnitPrice
	minTotal, maxTotal := productQuotes[0].TotalPrice, productQuotes[0].TotalPrice
	for _, q := range productQuotes[1:] {
		minUnit = min(minUnit, q.UnitPrice)
		maxUnit = max(maxUnit, q.UnitPrice)
		minTotal = min(minTotal, q.TotalPrice)
		maxTotal = max(maxTotal, q.TotalPrice)
	}

	now := s.now()
	var warnings []string
	analyses := make([]domain.VendorAnalysis, 0, len(productQuotes))
	for _, q := range productQuotes {
		v, ok := byID[q.VendorID]
		if !ok {
			continue
		}
		if len(mappings) > 0 && !mapped[v.ID] {
			warnings = append(warnings, fmt.Sprintf("%s has no catalog mapping for this product", vendorLabel(v)))
		}
		if days, ok := v.DaysUntilContractExpiry(now); ok && days < s.cfg.ExpiryCriticalDays {
			warnings = append(warnings, fmt.Sprintf("%s contract expires in %d days", vendorLabel(v), days))
		}

		factors := domain.FactorScores{
			Price:         priceScore(q.UnitPrice, minUnit, maxUnit),
			Delivery:      s.deliveryScore(v.DeliveryDays(), req.Urgency),
			Contract:      s.contractScore(v, q, now),
			Reliability:   s.reliabilityScore(v),
			Consolidation: clamp01(s.cfg.ConsolidationScore),
		}
		analyses = append(analyses, domain.VendorAnalysis{
			VendorID:   v.ID,
			VendorName: v.Name,
			Quote:      q,
			Score:      s.composite(factors),
			Factors:    factors,
		})
	}
	if len(analyses) == 0 {
		metrics.RecordVendorAnalysis("no_vendors")
		return domain.OptimizationResult{}, fmt.Errorf("product %s: no quoting vendor is configured: %w", productID, domain.ErrNoVendorsAvailable)
	}
	if len(productQuotes) == 1 {
		warnings = append(warnings, "Only one vendor quote available; price comparison is limited")
	}
	if skipped := len(productQuotes) - len(analyses); skipped > 0 {
		warnings = append(warnings, fmt.Sprintf("%d quote(s) from unknown vendors were skipped", skipped))
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].Score > analyses[j].Score
	})

	primary := analyses[0]
	end := min(len(analyses), 1+s.cfg.MaxAlternatives)

	savings := maxTotal - minTotal
	savingsPct := 0.0
	if maxTotal > 0 {
		savingsPct = savings / maxTotal * 100
	}

	result := domain.OptimizationResult{
		ProductID:         productID,
		Primary:           primary,
		Alternatives:      append([]domain.VendorAnalysis(nil), analyses[1:end]...),
		Analyses:          analyses,
		PotentialSavings:  savings,
		SavingsPercentage: savingsPct,
		Recommendation:    s.recommendationText(primary),
		Confidence:        confidenceFor(primary.Score),
		Warnings:          warnings,
	}

	metrics.RecordVendorAnalysis("ok")
	logger.Debug("vendor_scoring",
		"trace_id", tracectx.TraceIDFromContext(ctx),
		"product_id", productID,
		"urgency", req.Urgency.OrDefault(),
		"vendors", len(analyses),
		"primary_vendor", primary.VendorID,
		"score", primary.Score,
		"confidence", result.Confidence,
	)
	return result, nil
}

type namedFactor struct {
	label string
	score float64
}

// recommendationText cites the two strongest factors that clear the threshold.
func (s *Service) recommendationText(a domain.VendorAnalysis) string {
	factors := []namedFactor{
		{"competitive pricing", a.Factors.Price},
		{"fast delivery", a.Factors.Delivery},
		{"contract pricing", a.Factors.Contract},
		{"reliable ordering integration", a.Factors.Reliability},
		{"order consolidation", a.Factors.Consolidation},
	}
	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].score > factors[j].score
	})

	var strong []string
	for _, f := range factors {
		if len(strong) == 2 {
			break
		}
		if f.score >= s.cfg.StrongFactorThreshold {
			strong = append(strong, f.label)
		}
	}

	name := vendorLabel(domain.Vendor{ID: a.VendorID, Name: a.VendorName})
	if len(strong) == 0 {
		return fmt.Sprintf("%s is a balanced option with no single standout factor", name)
	}
	return fmt.Sprintf("%s recommended for %s", name, strings.Join(strong, " and "))
}

func vendorLabel(v domain.Vendor) string {
	if v.Name != "" {
		return v.Name
	}
	return string(v.ID)
}
