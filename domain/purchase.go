package domain

type Urgency string

const (
	UrgencyRoutine   Urgency = "routine"
	UrgencyUrgent    Urgency = "urgent"
	UrgencyEmergency Urgency = "emergency"
)

// OrDefault treats an empty urgency as routine.
func (u Urgency) OrDefault() Urgency {
	if u == "" {
		return UrgencyRoutine
	}
	return u
}

// IsTimeSensitive reports whether delivery speed should be checked against the request.
func (u Urgency) IsTimeSensitive() bool {
	return u == UrgencyUrgent || u == UrgencyEmergency
}

type PurchaseRequestItem struct {
	ProductID         ProductID `json:"standardized_product_id" validate:"required"`
	RequestedQuantity int       `json:"requested_quantity" validate:"gte=0"`
	Urgency           Urgency   `json:"urgency,omitempty" validate:"omitempty,oneof=routine urgent emergency"`
}

type PurchaseRequest struct {
	ID         string                `json:"id"`
	Department string                `json:"department"`
	Urgency    Urgency               `json:"urgency,omitempty" validate:"omitempty,oneof=routine urgent emergency"`
	Items      []PurchaseRequestItem `json:"items" validate:"required,min=1,dive"`
}
