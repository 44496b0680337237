package domain

// Product is catalog reference data. AverageMonthlyUsage is nil when the
// product has no usage history on record.
type Product struct {
	ID                   ProductID   `json:"id" validate:"required"`
	Name                 string      `json:"name"`
	Category             string      `json:"category"`
	IsCritical           bool        `json:"is_critical"`
	AverageMonthlyUsage  *float64    `json:"average_monthly_usage,omitempty" validate:"omitempty,gte=0"`
	SubstituteProductIDs []ProductID `json:"substitute_product_ids"`
}

// MonthlyUsage returns the average monthly usage or zero when unknown.
func (p Product) MonthlyUsage() float64 {
	if p.AverageMonthlyUsage == nil {
		return 0
	}
	return *p.AverageMonthlyUsage
}

// Catalog indexes products by id.
type Catalog map[ProductID]Product

func NewCatalog(products []Product) Catalog {
	c := make(Catalog, len(products))
	for _, p := range products {
		c[p.ID] = p
	}
	return c
}
