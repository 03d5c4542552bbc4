package domain

import "errors"

var (
	// Parcel errors
	ErrParcelNotFound          = errors.New("parcel not found")
	ErrRiderNotAssigned        = errors.New("parcel has no assigned rider")
	ErrRiderAlreadyAssigned    = errors.New("parcel already has an assigned rider")
	ErrParcelNotDelivered      = errors.New("parcel delivery is not complete")
	ErrInvalidStatusTransition = errors.New("invalid delivery status transition")

	// Cash-out errors
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrBelowMinimum         = errors.New("requested amount is below the cash-out minimum")
	ErrNoEarningsAvailable  = errors.New("no unsettled earnings available")
	ErrInsufficientEarnings = errors.New("requested amount exceeds outstanding earnings")
	ErrSettlementConflict   = errors.New("parcel was modified by a concurrent settlement")

	// Storage errors
	ErrStoreUnavailable = errors.New("store unavailable")
)
