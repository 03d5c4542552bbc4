package usecase

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/domain"
)

// EarningsUseCase serves read queries over parcels and the cash-out ledger.
type EarningsUseCase struct {
	parcelRepo  ParcelRepository
	cashoutRepo CashoutRepository
	cache       Cache
}

// NewEarningsUseCase creates a new EarningsUseCase.
func NewEarningsUseCase(parcelRepo ParcelRepository, cashoutRepo CashoutRepository, cache Cache) *EarningsUseCase {
	return &EarningsUseCase{
		parcelRepo:  parcelRepo,
		cashoutRepo: cashoutRepo,
		cache:       cache,
	}
}

// EarningsSummary is a rider's earnings position.
type EarningsSummary struct {
	RiderID     string          `json:"rider_id"`
	TotalEarned decimal.Decimal `json:"total_earned"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Available   decimal.Decimal `json:"available"`
}

// GetEarningsSummary returns the rider's total earned commission, total
// completed payouts, and available balance. Cached briefly; the settlement
// path invalidates the key on every successful cash-out.
func (uc *EarningsUseCase) GetEarningsSummary(ctx context.Context, riderID string) (*EarningsSummary, error) {
	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, earningsCacheKey(riderID)); err == nil && data != nil {
			var summary EarningsSummary
			if err := json.Unmarshal(data, &summary); err == nil {
				return &summary, nil
			}
		}
	}

	earned, err := uc.parcelRepo.SumEarnedByRider(ctx, riderID)
	if err != nil {
		return nil, err
	}

	paid, err := uc.cashoutRepo.SumByRiderAndStatus(ctx, riderID, domain.CashoutStatusCompleted)
	if err != nil {
		return nil, err
	}

	available, err := uc.parcelRepo.SumOutstandingByRider(ctx, riderID)
	if err != nil {
		return nil, err
	}

	summary := &EarningsSummary{
		RiderID:     riderID,
		TotalEarned: earned,
		TotalPaid:   paid,
		Available:   available,
	}

	if uc.cache != nil {
		if data, err := json.Marshal(summary); err == nil {
			_ = uc.cache.Set(ctx, earningsCacheKey(riderID), data, EarningsSummaryTTL)
		}
	}

	return summary, nil
}

// ListCashoutsInput represents input for listing cash-out history.
type ListCashoutsInput struct {
	RiderID string
	Limit   int
	Offset  int
}

// ListCashouts returns a rider's cash-out ledger entries, newest first.
func (uc *EarningsUseCase) ListCashouts(ctx context.Context, input ListCashoutsInput) ([]*domain.CashoutEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.cashoutRepo.ListByRider(ctx, input.RiderID, limit, offset)
}
