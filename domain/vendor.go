package domain

import (
	"math"
	"time"
)

const defaultDeliveryDays = 5

type Vendor struct {
	ID                      VendorID   `json:"id" validate:"required"`
	Name                    string     `json:"vendor_name"`
	AverageDeliveryDays     *int       `json:"average_delivery_days,omitempty" validate:"omitempty,gte=0"`
	GPOContractNumber       string     `json:"gpo_contract_number,omitempty"`
	ContractExpiryDate      *time.Time `json:"contract_expiry_date,omitempty"`
	MinimumOrderAmount      *float64   `json:"minimum_order_amount,omitempty" validate:"omitempty,gte=0"`
	FreeShippingThreshold   *float64   `json:"free_shipping_threshold,omitempty" validate:"omitempty,gte=0"`
	SupportsRealTimePricing bool       `json:"supports_real_time_pricing"`
	SupportsBulkOrdering    bool       `json:"supports_bulk_ordering"`
	APIEndpoint             string     `json:"api_endpoint,omitempty"`
}

// DeliveryDays falls back to five days when the vendor has no delivery history.
func (v Vendor) DeliveryDays() int {
	if v.AverageDeliveryDays == nil {
		return defaultDeliveryDays
	}
	return *v.AverageDeliveryDays
}

func (v Vendor) HasGPOContract() bool {
	return v.GPOContractNumber != ""
}

// DaysUntilContractExpiry rounds up partial days. ok is false when the vendor
// has no expiry on record.
func (v Vendor) DaysUntilContractExpiry(now time.Time) (days int, ok bool) {
	if v.ContractExpiryDate == nil {
		return 0, false
	}
	return DaysBetween(now, *v.ContractExpiryDate), true
}

// FreeShippingShortfall reports how far total is below the vendor's free
// shipping threshold. ok is false when no threshold is configured.
func (v Vendor) FreeShippingShortfall(total float64) (shortfall float64, ok bool) {
	if v.FreeShippingThreshold == nil || *v.FreeShippingThreshold <= 0 {
		return 0, false
	}
	return math.Max(0, *v.FreeShippingThreshold-total), true
}

// QualifiesForFreeShipping is true only when a threshold exists and is met.
func (v Vendor) QualifiesForFreeShipping(total float64) bool {
	shortfall, ok := v.FreeShippingShortfall(total)
	return ok && shortfall == 0
}

// DaysBetween returns the whole days from -> to, rounding partial days up.
func DaysBetween(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}
