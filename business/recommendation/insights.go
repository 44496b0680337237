package recommendation

import (
	"context"
	"fmt"
	"math"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/money"
)

// splitOrder asks the optimizer for a multi-vendor plan and keeps it only when
// it undercuts the primary vendor by the configured margin.
func (s *Service) splitOrder(
	ctx context.Context,
	req domain.PurchaseRequest,
	snap Snapshot,
	recs []domain.VendorRecommendation,
) (*domain.SplitOrderRecommendation, error) {
	if len(recs) < 2 {
		return nil, nil
	}

	order, err := s.optimizer.OptimizeOrderSplitting(ctx, req.Items, snap.Catalog, snap.Quotes, snap.Vendors)
	if err != nil {
		return nil, fmt.Errorf("optimize split order: %w", err)
	}
	if len(order.Items) == 0 || order.TotalOptimizedCost >= recs[0].TotalCost*s.cfg.SplitCostThreshold {
		return nil, nil
	}

	vendorByID := make(map[domain.VendorID]domain.Vendor, len(snap.Vendors))
	for _, v := range snap.Vendors {
		vendorByID[v.ID] = v
	}

	var (
		groups []domain.VendorRecommendation
		index  = map[domain.VendorID]int{}
	)
	for _, item := range order.Items {
		i, seen := index[item.VendorID]
		if !seen {
			v := vendorByID[item.VendorID]
			groups = append(groups, domain.VendorRecommendation{
				VendorID:              item.VendorID,
				VendorName:            v.Name,
				Score:                 s.cfg.SplitVendorScore,
				Confidence:            s.cfg.SplitVendorScore,
				Coverage:              1,
				EstimatedDeliveryDays: v.DeliveryDays(),
			})
			i = len(groups) - 1
			index[item.VendorID] = i
		}

		q, _ := snap.Quotes.For(item.ProductID, item.VendorID)
		g := &groups[i]
		g.Products = append(g.Products, domain.RecommendedProduct{
			ProductID:       item.ProductID,
			ProductName:     item.ProductName,
			VendorSKU:       snap.sku(item.VendorID, item.ProductID),
			Quantity:        item.OptimizedQuantity,
			UnitPrice:       item.UnitPrice,
			TotalPrice:      item.TotalPrice,
			IsContractPrice: q.IsContractPricing,
		})
		g.TotalCost += item.TotalPrice
		g.ContractCompliance = g.ContractCompliance || q.IsContractPricing
	}

	return &domain.SplitOrderRecommendation{
		Vendors:   groups,
		TotalCost: order.TotalOptimizedCost,
		Reason:    joinReasons(order.Recommendations),
	}, nil
}

// consolidationSavings compares buying every item from its cheapest vendor,
// paying shipping once per vendor, against the primary recommendation.
func (s *Service) consolidationSavings(
	primary domain.VendorRecommendation,
	items []domain.PurchaseRequestItem,
	quotes domain.QuoteBook,
) float64 {
	var (
		individual float64
		vendors    = map[domain.VendorID]struct{}{}
	)
	for _, item := range items {
		q, ok := quotes.Cheapest(item.ProductID)
		if !ok {
			continue
		}
		individual += q.TotalPrice
		vendors[q.VendorID] = struct{}{}
	}
	individual += float64(len(vendors)) * s.cfg.ShippingEstimate
	return math.Max(0, individual-primary.TotalCost)
}

func (s *Service) insights(
	recs []domain.VendorRecommendation,
	split *domain.SplitOrderRecommendation,
	req domain.PurchaseRequest,
) []string {
	var out []string

	if len(recs) > 1 {
		first, last := recs[0].TotalCost, recs[len(recs)-1].TotalCost
		if first > 0 {
			if variance := (last - first) / first; variance > s.cfg.PriceVarianceInsight {
				out = append(out, fmt.Sprintf(
					"Significant price variance detected: up to %d%% difference between vendors",
					int(math.Round(variance*100)),
				))
			}
		}
	}

	contractVendors, freeShipping := 0, 0
	fastest := math.MaxInt
	for _, r := range recs {
		if r.ContractCompliance {
			contractVendors++
		}
		for _, b := range r.Benefits {
			if b == benefitFreeShipping {
				freeShipping++
			}
		}
		fastest = min(fastest, r.EstimatedDeliveryDays)
	}
	if contractVendors > 0 {
		verb := "offer"
		if contractVendors == 1 {
			verb = "offers"
		}
		out = append(out, fmt.Sprintf("%s %s GPO contract pricing", plural(contractVendors, "vendor"), verb))
	}

	if req.Urgency.IsTimeSensitive() && fastest > s.cfg.FastDeliveryDays {
		out = append(out, fmt.Sprintf(
			"Fastest delivery is %d days - consider expedited shipping for urgent needs", fastest,
		))
	}

	if split != nil {
		out = append(out, fmt.Sprintf(
			"Splitting order across %s saves %s",
			plural(len(split.Vendors), "vendor"),
			money.USD(recs[0].TotalCost-split.TotalCost),
		))
	}

	if freeShipping > 0 {
		out = append(out, fmt.Sprintf("Free shipping applies for %s on this order", plural(freeShipping, "vendor")))
	}
	return out
}

func (s *Service) riskFactors(
	primary domain.VendorRecommendation,
	req domain.PurchaseRequest,
	catalog domain.Catalog,
) []string {
	var out []string

	if len(primary.Products) > s.cfg.ConcentrationProducts {
		out = append(out, "Large order with single vendor creates supply chain risk")
	}

	critical := 0
	for _, item := range req.Items {
		if p, ok := catalog[item.ProductID]; ok && p.IsCritical {
			critical++
		}
	}
	if critical > 0 {
		out = append(out, fmt.Sprintf("Order contains %s", plural(critical, "critical item")))
	}

	if req.Urgency.IsTimeSensitive() && primary.EstimatedDeliveryDays > s.cfg.UrgentDeliveryRiskDays {
		out = append(out, "Delivery time may not meet urgency requirements")
	}
	if primary.HasWarning(domain.WarningContractExpiring) {
		out = append(out, "Vendor contract expiring soon - prices may increase")
	}
	if primary.HasWarning(domain.WarningPartialCoverage) {
		out = append(out, "Vendor cannot fulfill entire order - additional vendors needed")
	}
	return out
}
