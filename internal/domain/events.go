package domain

import "time"

// Event types
const (
	EventTypeParcelCreated    = "parcel.created"
	EventTypeRiderAssigned    = "parcel.rider_assigned"
	EventTypeParcelDelivered  = "parcel.delivered"
	EventTypeCashoutCompleted = "cashout.completed"
)

// Aggregate types
const (
	AggregateTypeParcel  = "parcel"
	AggregateTypeCashout = "cashout"
)

// OutboxEvent represents an event to be published
type OutboxEvent struct {
	ID            string
	AggregateID   string
	AggregateType string
	EventType     string
	Payload       map[string]any
	CreatedAt     time.Time
	PublishedAt   *time.Time
	Published     bool
}

// ParcelDeliveredEvent payload
type ParcelDeliveredEvent struct {
	ParcelID string `json:"parcel_id"`
	RiderID  string `json:"rider_id"`
	Status   string `json:"status"`
	Earning  string `json:"earning"`
}

// CashoutCompletedEvent payload
type CashoutCompletedEvent struct {
	RiderID string              `json:"rider_id"`
	Total   string              `json:"total"`
	Parcels []CashoutEventEntry `json:"parcels"`
}

// CashoutEventEntry is one parcel's share of a completed cash-out.
type CashoutEventEntry struct {
	ParcelID string `json:"parcel_id"`
	Amount   string `json:"amount"`
}
