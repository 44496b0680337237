package usage

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

// WithClock pins "now" for forecasts, alerts and recency checks.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// usageEntry is one product line of one historical order.
type usageEntry struct {
	date       time.Time
	quantity   float64
	department string
}

// AnalyzeUsagePatterns turns order history into demand statistics, alerts,
// savings opportunities and anomalies. Lines for products missing from the
// catalog are skipped.
func (s *Service) AnalyzeUsagePatterns(
	ctx context.Context,
	history []domain.HistoricalOrder,
	catalog domain.Catalog,
) (domain.UsageAnalysisReport, error) {
	if err := ctx.Err(); err != nil {
		return domain.UsageAnalysisReport{}, fmt.Errorf("context error: %w", err)
	}
	if err := validation.Slice(history); err != nil {
		return domain.UsageAnalysisReport{}, err
	}
	start := time.Now()
	defer metrics.ObserveSince(metrics.EngineUsage, start)

	now := s.now()
	byProduct := aggregateProductUsage(history)

	patterns := s.calculatePatterns(byProduct, catalog)
	departments := s.analyzeDepartments(history, catalog)
	report := domain.UsageAnalysisReport{
		Patterns:                patterns,
		DepartmentInsights:      departments,
		CriticalItemAlerts:      s.criticalItemAlerts(patterns, catalog, now),
		CostSavingOpportunities: s.costSavings(patterns, departments, catalog),
		UnusualActivity:         s.unusualActivity(byProduct, catalog, now),
	}

	for range report.CriticalItemAlerts {
		metrics.RecordUsageSignal("critical_alert")
	}
	for _, o := range report.CostSavingOpportunities {
		metrics.RecordUsageSignal(string(o.Kind))
	}
	for _, a := range report.UnusualActivity {
		metrics.RecordUsageSignal(string(a.Kind))
	}

	logger.Debug("usage_analysis",
		"trace_id", tracectx.TraceIDFromContext(ctx),
		"orders", len(history),
		"patterns", len(report.Patterns),
		"departments", len(report.DepartmentInsights),
		"critical_alerts", len(report.CriticalItemAlerts),
		"opportunities", len(report.CostSavingOpportunities),
		"anomalies", len(report.UnusualActivity),
	)
	return report, nil
}

// aggregateProductUsage groups order lines by product, each list sorted by date.
func aggregateProductUsage(history []domain.HistoricalOrder) map[domain.ProductID][]usageEntry {
	usage := make(map[domain.ProductID][]usageEntry)
	for _, order := range history {
		for _, line := range order.Items {
			if line.ProductID == "" {
				continue
			}
			usage[line.ProductID] = append(usage[line.ProductID], usageEntry{
				date:       order.Date,
				quantity:   line.Quantity,
				department: order.Department,
			})
		}
	}
	for id := range usage {
		entries := usage[id]
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].date.Before(entries[j].date)
		})
	}
	return usage
}

func sortedProductIDs[V any](m map[domain.ProductID]V) []domain.ProductID {
	ids := make([]domain.ProductID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func productName(catalog domain.Catalog, id domain.ProductID) string {
	if p, ok := catalog[id]; ok && p.Name != "" {
		return p.Name
	}
	return string(id)
}
