package domain

import "time"

// HistoricalOrder is one past order as recorded by the ordering system.
type HistoricalOrder struct {
	ID         string      `json:"id"`
	Date       time.Time   `json:"date" validate:"required"`
	Department string      `json:"department,omitempty"`
	Items      []OrderLine `json:"items" validate:"dive"`
}

type OrderLine struct {
	ProductID  ProductID `json:"standardized_product_id"`
	Quantity   float64   `json:"quantity" validate:"gte=0"`
	UnitPrice  float64   `json:"unit_price" validate:"gte=0"`
	TotalPrice float64   `json:"total_price" validate:"gte=0"`
	VendorID   VendorID  `json:"vendor_id,omitempty"`
}

// PricePoint is one observed price for a product.
type PricePoint struct {
	Date     time.Time `json:"date"`
	Price    float64   `json:"price"`
	VendorID VendorID  `json:"vendor"`
}
