package domain

type Quote struct {
	VendorID          VendorID  `json:"vendor_id" validate:"required"`
	ProductID         ProductID `json:"product_id" validate:"required"`
	UnitPrice         float64   `json:"unit_price" validate:"gte=0"`
	TotalPrice        float64   `json:"total_price" validate:"gte=0"`
	IsContractPricing bool      `json:"is_contract_pricing"`
}

// ProductMapping links a vendor catalog entry to a standardized product.
type ProductMapping struct {
	VendorID       VendorID  `json:"vendor_id"`
	ProductID      ProductID `json:"standardized_product_id"`
	VendorSKU      string    `json:"vendor_sku,omitempty"`
	IsContractItem bool      `json:"is_contract_item"`
}

// QuoteBook indexes quotes by product.
type QuoteBook map[ProductID][]Quote

// For returns the quote vendorID gave for productID.
func (b QuoteBook) For(productID ProductID, vendorID VendorID) (Quote, bool) {
	for _, q := range b[productID] {
		if q.VendorID == vendorID {
			return q, true
		}
	}
	return Quote{}, false
}

// ForProduct returns a copy of the quotes filed under productID, each stamped
// with that product id.
func (b QuoteBook) ForProduct(productID ProductID) []Quote {
	quotes := make([]Quote, len(b[productID]))
	for i, q := range b[productID] {
		q.ProductID = productID
		quotes[i] = q
	}
	return quotes
}

// Cheapest returns the quote with the lowest total price for productID.
func (b QuoteBook) Cheapest(productID ProductID) (Quote, bool) {
	quotes := b[productID]
	if len(quotes) == 0 {
		return Quote{}, false
	}
	best := quotes[0]
	for _, q := range quotes[1:] {
		if q.TotalPrice < best.TotalPrice {
			best = q
		}
	}
	return best, true
}

// NewQuoteBook groups a flat quote list by product.
func NewQuoteBook(quotes []Quote) QuoteBook {
	book := make(QuoteBook)
	for _, q := range quotes {
		book[q.ProductID] = append(book[q.ProductID], q)
	}
	return book
}
