package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeliveryStatus represents where a parcel is in its delivery lifecycle.
type DeliveryStatus string

const (
	DeliveryStatusPending         DeliveryStatus = "pending"
	DeliveryStatusRiderAssigned   DeliveryStatus = "rider-assigned"
	DeliveryStatusInTransit       DeliveryStatus = "in-transit"
	DeliveryStatusDelivered       DeliveryStatus = "delivered"
	DeliveryStatusServiceCenter   DeliveryStatus = "service-center-delivered"
)

// Commission rates. Inter-regional deliveries pay double the local rate.
var (
	localCommissionRate       = decimal.NewFromFloat(0.10)
	interRegionCommissionRate = decimal.NewFromFloat(0.20)
)

// IsTerminal reports whether no further rider-facing delivery action occurs.
func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusDelivered || s == DeliveryStatusServiceCenter
}

// IsValid checks if the status is a known delivery status.
func (s DeliveryStatus) IsValid() bool {
	switch s {
	case DeliveryStatusPending, DeliveryStatusRiderAssigned,
		DeliveryStatusInTransit, DeliveryStatusDelivered, DeliveryStatusServiceCenter:
		return true
	}
	return false
}

// CanTransitionTo enforces the delivery state machine:
// pending -> rider-assigned -> in-transit -> delivered | service-center-delivered.
func (s DeliveryStatus) CanTransitionTo(next DeliveryStatus) bool {
	switch s {
	case DeliveryStatusPending:
		return next == DeliveryStatusRiderAssigned
	case DeliveryStatusRiderAssigned:
		return next == DeliveryStatusInTransit
	case DeliveryStatusInTransit:
		return next == DeliveryStatusDelivered || next == DeliveryStatusServiceCenter
	default:
		return false
	}
}

// Parcel represents a delivery parcel. This service owns only the
// earnings-related fields; the rest belongs to the logistics subsystem.
type Parcel struct {
	ID             string
	SenderRegion   string
	ReceiverRegion string
	Cost           decimal.Decimal
	DeliveryStatus DeliveryStatus
	AssignedRider  string
	Earning        decimal.Decimal
	PaidAmount     decimal.Decimal
	EarningPaid    bool
	AssignedAt     *time.Time
	DeliveredAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Commission computes the rider commission for a delivery: 10% of cost for
// same-region deliveries, 20% for inter-regional. Deterministic; always
// recomputed from cost and regions, never read back from a stale field.
func Commission(cost decimal.Decimal, senderRegion, receiverRegion string) decimal.Decimal {
	if senderRegion == receiverRegion {
		return cost.Mul(localCommissionRate)
	}
	return cost.Mul(interRegionCommissionRate)
}

// Commission recomputes this parcel's commission from its own cost and regions.
func (p *Parcel) Commission() decimal.Decimal {
	return Commission(p.Cost, p.SenderRegion, p.ReceiverRegion)
}

// Outstanding returns the commission amount not yet paid out.
func (p *Parcel) Outstanding() decimal.Decimal {
	return p.Earning.Sub(p.PaidAmount)
}

// IsDeliveryComplete reports whether the parcel reached a terminal status.
func (p *Parcel) IsDeliveryComplete() bool {
	return p.DeliveryStatus.IsTerminal()
}

// ValidatePayout checks that paying amount keeps 0 <= paid_amount <= earning.
func (p *Parcel) ValidatePayout(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if amount.GreaterThan(p.Outstanding()) {
		return ErrInsufficientEarnings
	}
	return nil
}

// ApplyPayout returns the paid amount and settled flag after paying amount.
func (p *Parcel) ApplyPayout(amount decimal.Decimal) (decimal.Decimal, bool) {
	newPaid := p.PaidAmount.Add(amount)
	return newPaid, newPaid.GreaterThanOrEqual(p.Earning)
}
