package usage

import (
	"fmt"
	"math"
	"myPurchasingAgent/domain"
	"myPurchasingAgent/pkg/stats"
	"sort"
	"time"
)

type productSpend struct {
	quantity float64
	cost     float64
}

type departmentData struct {
	products map[domain.ProductID]*productSpend
	orders   int
	vendors  map[domain.VendorID]struct{}
}

func (s *Service) analyzeDepartments(history []domain.HistoricalOrder, catalog domain.Catalog) []domain.DepartmentUsageInsight {
	depts := make(map[string]*departmentData)
	for _, order := range history {
		name := order.Department
		if name == "" {
			name = s.cfg.UnknownDepartment
		}
		d, ok := depts[name]
		if !ok {
			d = &departmentData{
				products: make(map[domain.ProductID]*productSpend),
				vendors:  make(map[domain.VendorID]struct{}),
			}
			depts[name] = d
		}
		d.orders++

		for _, line := range order.Items {
			if _, ok := catalog[line.ProductID]; !ok {
				continue
			}
			ps, ok := d.products[line.ProductID]
			if !ok {
				ps = &productSpend{}
				d.products[line.ProductID] = ps
			}
			ps.quantity += line.Quantity
			ps.cost += line.TotalPrice
			if line.VendorID != "" {
				d.vendors[line.VendorID] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(depts))
	for name := range depts {
		names = append(names, name)
	}
	sort.Strings(names)

	months := float64(monthSpan(history))
	insights := make([]domain.DepartmentUsageInsight, 0, len(names))
	for _, name := range names {
		d := depts[name]

		var totalSpend float64
		for _, ps := range d.products {
			totalSpend += ps.cost
		}

		top := make([]domain.TopProduct, 0, len(d.products))
		for _, id := range sortedProductIDs(d.products) {
			ps := d.products[id]
			share := 0.0
			if totalSpend > 0 {
				share = ps.cost / totalSpend * 100
			}
			top = append(top, domain.TopProduct{
				ProductID:                id,
				ProductName:              productName(catalog, id),
				MonthlyUsage:             ps.quantity / months,
				PercentOfDepartmentSpend: share,
			})
		}
		sort.SliceStable(top, func(i, j int) bool {
			return top[i].PercentOfDepartmentSpend > top[j].PercentOfDepartmentSpend
		})
		if len(top) > s.cfg.TopProducts {
			top = top[:s.cfg.TopProducts]
		}

		vendors := make([]domain.VendorID, 0, len(d.vendors))
		for v := range d.vendors {
			vendors = append(vendors, v)
		}
		sort.Slice(vendors, func(i, j int) bool { return vendors[i] < vendors[j] })

		insights = append(insights, domain.DepartmentUsageInsight{
			Department:        name,
			TopProducts:       top,
			TotalMonthlySpend: totalSpend / months,
			OrderFrequency:    float64(d.orders) / months,
			PreferredVendors:  vendors,
		})
	}
	return insights
}

// monthSpan counts calendar months between the first and last order, inclusive, minimum 1.
func monthSpan(history []domain.HistoricalOrder) int {
	if len(history) == 0 {
		return 1
	}
	first, last := history[0].Date, history[0].Date
	for _, o := range history[1:] {
		if o.Date.Before(first) {
			first = o.Date
		}
		if o.Date.After(last) {
			last = o.Date
		}
	}
	months := (last.Year()-first.Year())*12 + int(last.Month()-first.Month()) + 1
	return max(1, months)
}

func (s *Service) criticalItemAlerts(patterns []domain.UsagePattern, catalog domain.Catalog, now time.Time) []domain.CriticalItemAlert {
	var alerts []domain.CriticalItemAlert
	for _, p := range patterns {
		product, ok := catalog[p.ProductID]
		if !ok || !product.IsCritical {
			continue
		}
		daily := p.AverageMonthlyUsage / 30
		if daily <= 0 {
			continue
		}

		// no live inventory feed, so stock is approximated from the reorder point
		stock := float64(p.ReorderPoint) * s.cfg.StockProxyFactor
		days := stock / daily
		if days >= s.cfg.StockoutAlertDays {
			continue
		}

		lead := math.Floor(math.Max(0, days-s.cfg.OrderBufferDays))
		alerts = append(alerts, domain.CriticalItemAlert{
			ProductID:            product.ID,
			ProductName:          productName(catalog, product.ID),
			EstimatedStock:       stock,
			DaysUntilStockout:    int(math.Round(days)),
			RecommendedOrderDate: now.AddDate(0, 0, int(lead)),
			RecommendedQuantity:  p.OptimalOrderQty,
		})
	}
	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].DaysUntilStockout < alerts[j].DaysUntilStockout
	})
	return alerts
}

func (s *Service) costSavings(
	patterns []domain.UsagePattern,
	departments []domain.DepartmentUsageInsight,
	catalog domain.Catalog,
) []domain.CostSavingOpportunity {
	var out []domain.CostSavingOpportunity
	byProduct := make(map[domain.ProductID]domain.UsagePattern, len(patterns))

	for _, p := range patterns {
		byProduct[p.ProductID] = p
		if p.AverageMonthlyUsage > s.cfg.BulkUsageMin && float64(p.OptimalOrderQty) > p.AverageMonthlyUsage*s.cfg.BulkEOQFactor {
			out = append(out, newOpportunity(domain.SavingBulkBuying,
				fmt.Sprintf("Order %s in bulk (%d units)", productName(catalog, p.ProductID), p.OptimalOrderQty),
				p.AverageMonthlyUsage*s.cfg.BulkDiscountEstimate*s.cfg.SavingsHorizonMonths,
				[]domain.ProductID{p.ProductID},
			))
		}
	}

	vendors := make(map[domain.VendorID]struct{})
	for _, d := range departments {
		for _, v := range d.PreferredVendors {
			vendors[v] = struct{}{}
		}
	}
	if len(vendors) > s.cfg.VendorConsolidationMin {
		out = append(out, newOpportunity(domain.SavingVendorConsolidation,
			fmt.Sprintf("Consolidate from %d vendors to 3-4 preferred vendors", len(vendors)),
			float64(len(departments))*s.cfg.ConsolidationMonthlySavings*12,
			nil,
		))
	}

	for _, id := range sortedProductIDs(catalog) {
		product := catalog[id]
		if len(product.SubstituteProductIDs) == 0 {
			continue
		}
		p, ok := byProduct[id]
		if !ok || p.AverageMonthlyUsage <= s.cfg.SubstituteUsageMin {
			continue
		}
		products := append([]domain.ProductID{id}, product.SubstituteProductIDs...)
		out = append(out, newOpportunity(domain.SavingSubstituteProduct,
			fmt.Sprintf("Consider substitutes for %s", productName(catalog, id)),
			p.AverageMonthlyUsage*s.cfg.SubstituteSavingsRate*s.cfg.SavingsHorizonMonths,
			products,
		))
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EstimatedSavings > out[j].EstimatedSavings
	})
	return out
}

func newOpportunity(kind domain.SavingKind, desc string, savings float64, products []domain.ProductID) domain.CostSavingOpportunity {
	parts := []string{"saving", string(kind)}
	for _, p := range products {
		parts = append(parts, string(p))
	}
	return domain.CostSavingOpportunity{
		ID:               domain.DeterministicID(parts...),
		Kind:             kind,
		Description:      desc,
		EstimatedSavings: savings,
		Products:         products,
	}
}

func (s *Service) unusualActivity(
	byProduct map[domain.ProductID][]usageEntry,
	catalog domain.Catalog,
	now time.Time,
) []domain.UnusualActivity {
	newSince := now.AddDate(0, -s.cfg.NewProductMonths, 0)
	staleBefore := now.AddDate(0, -s.cfg.DiscontinuedAfterMonths, 0)

	var out []domain.UnusualActivity
	add := func(id domain.ProductID, kind domain.ActivityKind, desc string) {
		out = append(out, domain.UnusualActivity{
			ID:          domain.DeterministicID("activity", string(kind), string(id)),
			ProductID:   id,
			ProductName: productName(catalog, id),
			Kind:        kind,
			Description: desc,
		})
	}

	for _, id := range sortedProductIDs(byProduct) {
		if _, ok := catalog[id]; !ok {
			continue
		}
		entries := byProduct[id]

		if n := s.cfg.RecentOrders; len(entries) >= n {
			recentAvg := meanQuantity(entries[len(entries)-n:])
			olderAvg := recentAvg
			if len(entries) > n {
				olderAvg = meanQuantity(entries[:len(entries)-n])
			}
			if olderAvg > 0 {
				switch {
				case recentAvg > olderAvg*s.cfg.SpikeFactor:
					add(id, domain.ActivitySpike, describeChange("increased", recentAvg/olderAvg-1))
				case recentAvg < olderAvg*s.cfg.DropFactor:
					add(id, domain.ActivityDrop, describeChange("decreased", 1-recentAvg/olderAvg))
				}
			}
		}

		if entries[0].date.After(newSince) {
			add(id, domain.ActivityNewProduct, "Recently added to purchasing catalog")
		}
		if entries[len(entries)-1].date.Before(staleBefore) {
			add(id, domain.ActivityDiscontinued,
				fmt.Sprintf("No orders in the last %d months", s.cfg.DiscontinuedAfterMonths))
		}
	}
	return out
}

func meanQuantity(entries []usageEntry) float64 {
	q := make([]float64, len(entries))
	for i, e := range entries {
		q[i] = e.quantity
	}
	return stats.Mean(q)
}

func describeChange(verb string, ratio float64) string {
	return fmt.Sprintf("Usage %s %d%% recently", verb, int(math.Round(ratio*100)))
}
