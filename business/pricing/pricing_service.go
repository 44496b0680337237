package pricing

import (
	"context"
	"fmt"
	"math"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/logger"
	"myPurchasingAgent/pkg/metrics"
	"myPurchasingAgent/pkg/money"
	"myPurchasingAgent/pkg/tracectx"
	"myPurchasingAgent/pkg/validation"
	"time"
)

type Service struct {
	cfg Config
}

func NewService(cfg Config) *Service {
	return &Service{cfg: cfg}
}

func (s *Service) Config() Config {
	return s.cfg
}

type vendorGroup struct {
	vendorID domain.VendorID
	items    []domain.PurchaseRequestItem
}

// OptimizeOrderSplitting assigns the request to the cheapest vendor able to
// supply every item, or item by item to the cheapest quote when none can, and
// then re-optimizes each line with EOQ and bulk tiers.
func (s *Service) OptimizeOrderSplitting(
	ctx context.Context,
	items []domain.PurchaseRequestItem,
	catalog domain.Catalog,
	quotes domain.QuoteBook,
	vendors []domain.Vendor,
) (domain.OptimizedOrder, error) {
	if err := ctx.Err(); err != nil {
		return domain.OptimizedOrder{}, fmt.Errorf("context error: %w", err)
	}
	if err := validation.Slice(items); err != nil {
		return domain.OptimizedOrder{}, err
	}
	start := time.Now()
	defer metrics.ObserveSince(metrics.EnginePricing, start)

	byID := make(map[domain.VendorID]domain.Vendor, len(vendors))
	for _, v := range vendors {
		byID[v.ID] = v
	}

	var (
		order          domain.OptimizedOrder
		totalOriginal  float64
		totalOptimized float64
	)
	for _, group := range s.groupItemsByVendor(items, quotes, vendors) {
		vendor, ok := byID[group.vendorID]
		if !ok {
			continue
		}

		var groupTotal float64
		for _, item := range group.items {
			if q, ok := quotes.For(item.ProductID, vendor.ID); ok {
				groupTotal += q.TotalPrice
			}
		}

		for _, item := range group.items {
			product, ok := catalog[item.ProductID]
			if !ok {
				continue
			}
			vq, ok := quotes.For(product.ID, vendor.ID)
			if !ok {
				continue
			}
			cheapest, _ := quotes.Cheapest(product.ID)
			originalCost := cheapest.UnitPrice * float64(item.RequestedQuantity)
			totalOriginal += originalCost

			line := s.optimizeLine(product, item, vendor.ID, vq, quotes[product.ID])
			line.Savings = originalCost - line.TotalPrice
			totalOptimized += line.TotalPrice
			order.Items = append(order.Items, line)
		}

		if shortfall, ok := vendor.FreeShippingShortfall(groupTotal); ok && shortfall > 0 &&
			shortfall < *vendor.FreeShippingThreshold*s.cfg.ShippingProximity {
			order.ShippingSuggestions = append(order.ShippingSuggestions, domain.ShippingSuggestion{
				VendorID:         vendor.ID,
				Shortfall:        shortfall,
				EstimatedSavings: s.cfg.ShippingEstimate,
				Message: fmt.Sprintf("Add %s more to qualify for free shipping (save ~%s)",
					money.USD(shortfall), money.USD(s.cfg.ShippingEstimate)),
			})
		}
	}

	order.TotalOriginalCost = totalOriginal
	order.TotalOptimizedCost = totalOptimized
	order.TotalSavings = totalOriginal - totalOptimized
	if totalOriginal > 0 {
		order.SavingsPercentage = order.TotalSavings / totalOriginal * 100
	}
	order.Recommendations = s.splitRecommendations(order, vendors)

	logger.Debug("order_splitting",
		"trace_id", tracectx.TraceIDFromContext(ctx),
		"items", len(items),
		"optimized_items", len(order.Items),
		"vendors", order.VendorCount(),
		"total_savings", order.TotalSavings,
	)
	return order, nil
}

// groupItemsByVendor returns the assignment in a stable order.
func (s *Service) groupItemsByVendor(
	items []domain.PurchaseRequestItem,
	quotes domain.QuoteBook,
	vendors []domain.Vendor,
) []vendorGroup {
	var (
		bestVendor domain.VendorID
		bestTotal  = math.Inf(1)
	)
	for _, v := range vendors {
		total, coversAll := 0.0, true
		for _, item := range items {
			q, ok := quotes.For(item.ProductID, v.ID)
			if !ok {
				coversAll = false
				break
			}
			total += q.TotalPrice
		}
		if !coversAll {
			continue
		}
		if shortfall, ok := v.FreeShippingShortfall(total); ok && shortfall > 0 {
			total += s.cfg.ShippingEstimate
		}
		if total < bestTotal {
			bestTotal, bestVendor = total, v.ID
		}
	}
	if bestVendor != "" {
		return []vendorGroup{{vendorID: bestVendor, items: items}}
	}

	var groups []vendorGroup
	index := make(map[domain.VendorID]int)
	for _, item := range items {
		cheapest, ok := quotes.Cheapest(item.ProductID)
		if !ok {
			continue
		}
		i, seen := index[cheapest.VendorID]
		if !seen {
			i = len(groups)
			index[cheapest.VendorID] = i
			groups = append(groups, vendorGroup{vendorID: cheapest.VendorID})
		}
		groups[i].items = append(groups[i].items, item)
	}
	return groups
}

func (s *Service) optimizeLine(
	product domain.Product,
	item domain.PurchaseRequestItem,
	vendorID domain.VendorID,
	vq domain.Quote,
	productQuotes []domain.Quote,
) domain.OptimizedItem {
	qty := item.RequestedQuantity
	kind := domain.ReasonStandard
	reason := "Standard order"
	discount := 0.0

	if usage := product.MonthlyUsage(); usage > 0 {
		eoq := s.CalculateEOQ(usage, vq.UnitPrice)
		if eoq > qty && float64(eoq) < float64(qty)*s.cfg.EOQUpperMultiplier {
			qty = eoq
			kind = domain.ReasonEOQ
			reason = fmt.Sprintf("EOQ optimization: order %d units for optimal cost efficiency", eoq)
		}
	}

	if bulk, ok := s.AnalyzeBulkDiscounts(productQuotes, qty); ok && bulk.Savings > vq.UnitPrice*s.cfg.BulkAdoptionUnits {
		qty = bulk.OptimalQuantity
		discount = bulk.Savings
		kind = domain.ReasonBulk
		reason = fmt.Sprintf("Bulk discount: save %s by ordering %d units", money.USD(bulk.Savings), bulk.OptimalQuantity)
	}

	return domain.OptimizedItem{
		ProductID:         product.ID,
		ProductName:       product.Name,
		VendorID:          vendorID,
		OriginalQuantity:  item.RequestedQuantity,
		OptimizedQuantity: qty,
		UnitPrice:         vq.UnitPrice,
		TotalPrice:        vq.UnitPrice * float64(qty),
		DiscountSavings:   discount,
		ReasonKind:        kind,
		Reason:            reason,
	}
}

func (s *Service) splitRecommendations(order domain.OptimizedOrder, vendors []domain.Vendor) []string {
	var recs []string

	if n := order.VendorCount(); n > 1 {
		recs = append(recs, fmt.Sprintf("Order split across %d vendors for optimal pricing", n))
	}

	var eoqItems int
	var bulkSavings []float64
	for _, it := range order.Items {
		switch it.ReasonKind {
		case domain.ReasonEOQ:
			eoqItems++
		case domain.ReasonBulk:
			bulkSavings = append(bulkSavings, it.DiscountSavings)
		}
	}
	if eoqItems > 0 {
		recs = append(recs, fmt.Sprintf("%d items optimized using Economic Order Quantity analysis", eoqItems))
	}
	if len(bulkSavings) > 0 {
		recs = append(recs, fmt.Sprintf("Bulk ordering opportunities identified: save %s", money.USD(money.Sum(bulkSavings...))))
	}

	var gpo int
	for _, v := range vendors {
		if v.HasGPOContract() {
			gpo++
		}
	}
	if gpo > 0 {
		recs = append(recs, fmt.Sprintf("Prioritizing %d vendors with active GPO contracts", gpo))
	}
	return recs
}
