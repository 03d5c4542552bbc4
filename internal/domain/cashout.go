package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashoutStatus is the state of a cash-out ledger entry. Entries written by
// the settlement engine are always completed; the type exists for the ledger
// aggregate queries.
type CashoutStatus string

const (
	CashoutStatusCompleted CashoutStatus = "completed"
)

// CashoutEntry is an immutable record of one amount paid to one rider
// against one parcel. Entries are appended once, never mutated.
type CashoutEntry struct {
	ID        string
	RiderID   string
	ParcelID  string
	Amount    decimal.Decimal
	Status    CashoutStatus
	CreatedAt time.Time
}

// Allocation is one step of a settlement plan: pay Amount against Parcel.
type Allocation struct {
	Parcel *Parcel
	Amount decimal.Decimal
}

// SettlementPlan is the ordered set of allocations that exactly exhausts one
// cash-out request.
type SettlementPlan struct {
	RiderID     string
	Allocations []Allocation
	Total       decimal.Decimal
}

// BuildSettlementPlan allocates requested across the eligible parcels, oldest
// outstanding commission first, paying each parcel up to its outstanding
// balance. The plan exactly exhausts requested or the call fails:
// ErrNoEarningsAvailable when nothing is eligible, ErrInsufficientEarnings
// when requested exceeds the rider's total outstanding balance.
func BuildSettlementPlan(riderID string, requested decimal.Decimal, eligible []*Parcel) (*SettlementPlan, error) {
	if requested.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	if len(eligible) == 0 {
		return nil, ErrNoEarningsAvailable
	}

	totalAvailable := decimal.Zero
	for _, p := range eligible {
		totalAvailable = totalAvailable.Add(p.Outstanding())
	}

	if requested.GreaterThan(totalAvailable) {
		return nil, ErrInsufficientEarnings
	}

	plan := &SettlementPlan{RiderID: riderID, Total: requested}

	remaining := requested
	for _, p := range eligible {
		if remaining.IsZero() {
			break
		}

		available := p.Outstanding()
		if available.LessThanOrEqual(decimal.Zero) {
			continue
		}

		pay := decimal.Min(remaining, available)
		plan.Allocations = append(plan.Allocations, Allocation{Parcel: p, Amount: pay})
		remaining = remaining.Sub(pay)
	}

	return plan, nil
}
