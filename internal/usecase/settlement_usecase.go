package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/infrastructure/metrics"
)

// SettlementUseCase pays down riders' outstanding commissions in response to
// cash-out requests.
type SettlementUseCase struct {
	txManager   TransactionManager
	parcelRepo  ParcelRepository
	cashoutRepo CashoutRepository
	outboxRepo  OutboxRepository
	auditRepo   AuditRepository
	idGen       IDGenerator
	cache       Cache
	metrics     *metrics.Metrics
	retrier     Retrier
	minimum     decimal.Decimal
	maxRetries  int
}

// WithRetrier wraps each settlement attempt with a retrier for transient
// store errors. Settlement conflicts are not transient: they always
// propagate so the caller re-selects eligibility.
func (uc *SettlementUseCase) WithRetrier(r Retrier) *SettlementUseCase {
	uc.retrier = r
	return uc
}

// NewSettlementUseCase creates a new SettlementUseCase. minimum is the policy
// floor for a cash-out request; maxRetries bounds internal retries on
// settlement conflicts.
func NewSettlementUseCase(
	txManager TransactionManager,
	parcelRepo ParcelRepository,
	cashoutRepo CashoutRepository,
	outboxRepo OutboxRepository,
	auditRepo AuditRepository,
	idGen IDGenerator,
	cache Cache,
	metrics *metrics.Metrics,
	minimum decimal.Decimal,
	maxRetries int,
) *SettlementUseCase {
	if maxRetries <= 0 {
		maxRetries = DefaultMaxSettlementRetries
	}

	return &SettlementUseCase{
		txManager:   txManager,
		parcelRepo:  parcelRepo,
		cashoutRepo: cashoutRepo,
		outboxRepo:  outboxRepo,
		auditRepo:   auditRepo,
		idGen:       idGen,
		cache:       cache,
		metrics:     metrics,
		minimum:     minimum,
		maxRetries:  maxRetries,
	}
}

// RequestCashoutInput represents one cash-out request. ParcelID restricts
// eligibility to a single named parcel when set.
type RequestCashoutInput struct {
	RiderID  string
	Amount   decimal.Decimal
	ParcelID string
}

// CashoutResult is the outcome of a successful settlement.
type CashoutResult struct {
	RiderID string
	Total   decimal.Decimal
	Entries []*domain.CashoutEntry
}

// RequestCashout validates the request, selects the rider's eligible parcels,
// builds a settlement plan and applies it. Conflicting concurrent settlements
// are retried from eligibility selection a bounded number of times; stale
// reads are never reused.
func (uc *SettlementUseCase) RequestCashout(ctx context.Context, input RequestCashoutInput) (*CashoutResult, error) {
	// Policy checks come before any store lookup.
	if err := domain.ValidateCashoutAmount(input.Amount); err != nil {
		return nil, err
	}

	if input.Amount.LessThan(uc.minimum) {
		return nil, fmt.Errorf("%w: minimum is %s", domain.ErrBelowMinimum, uc.minimum)
	}

	var (
		result *CashoutResult
		err    error
	)

	for attempt := 0; attempt <= uc.maxRetries; attempt++ {
		result, err = uc.settleOnce(ctx, input)
		if !errors.Is(err, domain.ErrSettlementConflict) {
			break
		}

		if uc.metrics != nil {
			uc.metrics.SettlementConflicts.Inc()
		}
	}

	uc.recordOutcome(ctx, input, result, err)

	return result, err
}

// settleOnce runs one settlement attempt, retrying transient store errors
// when a retrier is configured.
func (uc *SettlementUseCase) settleOnce(ctx context.Context, input RequestCashoutInput) (*CashoutResult, error) {
	if uc.retrier == nil {
		return uc.settle(ctx, input)
	}

	var result *CashoutResult
	err := uc.retrier.Retry(ctx, func() error {
		var settleErr error
		result, settleErr = uc.settle(ctx, input)
		return settleErr
	})

	return result, err
}

// settle runs one settlement attempt: fresh eligibility, a fresh plan, and
// conditional per-parcel updates inside a single transaction.
func (uc *SettlementUseCase) settle(ctx context.Context, input RequestCashoutInput) (*CashoutResult, error) {
	eligible, err := uc.eligibleParcels(ctx, input)
	if err != nil {
		return nil, err
	}

	plan, err := domain.BuildSettlementPlan(input.RiderID, input.Amount, eligible)
	if err != nil {
		return nil, err
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	now := time.Now().UTC()

	entries := make([]*domain.CashoutEntry, 0, len(plan.Allocations))
	eventParcels := make([]domain.CashoutEventEntry, 0, len(plan.Allocations))

	for _, alloc := range plan.Allocations {
		newPaid, settled := alloc.Parcel.ApplyPayout(alloc.Amount)

		// Conditioned on the paid_amount observed during eligibility
		// selection; a concurrent settlement fails the whole attempt.
		err = uc.parcelRepo.SettlePayout(txCtx, tx, alloc.Parcel.ID, newPaid, alloc.Parcel.Earning, settled, alloc.Parcel.PaidAmount, now)
		if err != nil {
			return nil, err
		}

		entry := &domain.CashoutEntry{
			ID:        uc.idGen.Generate(),
			RiderID:   input.RiderID,
			ParcelID:  alloc.Parcel.ID,
			Amount:    alloc.Amount,
			Status:    domain.CashoutStatusCompleted,
			CreatedAt: now,
		}

		if err := uc.cashoutRepo.Create(txCtx, tx, entry); err != nil {
			return nil, err
		}

		entries = append(entries, entry)
		eventParcels = append(eventParcels, domain.CashoutEventEntry{
			ParcelID: alloc.Parcel.ID,
			Amount:   alloc.Amount.String(),
		})
	}

	if uc.outboxRepo != nil {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   input.RiderID,
			AggregateType: domain.AggregateTypeCashout,
			EventType:     domain.EventTypeCashoutCompleted,
			Payload: map[string]any{
				"rider_id": input.RiderID,
				"total":    plan.Total.String(),
				"parcels":  eventParcels,
			},
			CreatedAt: now,
			Published: false,
		}
		if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, earningsCacheKey(input.RiderID))
	}

	if uc.metrics != nil {
		uc.metrics.CashoutsCreated.Inc()
		amount, _ := plan.Total.Float64()
		uc.metrics.CashoutAmount.Observe(amount)
	}

	return &CashoutResult{
		RiderID: input.RiderID,
		Total:   plan.Total,
		Entries: entries,
	}, nil
}

// eligibleParcels selects the parcels a settlement may draw from. Commissions
// are recomputed from cost and regions rather than trusted from the stored
// earning field.
func (uc *SettlementUseCase) eligibleParcels(ctx context.Context, input RequestCashoutInput) ([]*domain.Parcel, error) {
	if input.ParcelID != "" {
		parcel, err := uc.parcelRepo.GetByID(ctx, input.ParcelID)
		if err != nil {
			return nil, err
		}

		// A parcel assigned to another rider is not visible to this caller.
		if parcel.AssignedRider != input.RiderID {
			return nil, domain.ErrParcelNotFound
		}

		if !parcel.IsDeliveryComplete() {
			return nil, domain.ErrParcelNotDelivered
		}

		if parcel.EarningPaid {
			return nil, domain.ErrNoEarningsAvailable
		}

		return uc.recompute([]*domain.Parcel{parcel}), nil
	}

	parcels, err := uc.parcelRepo.ListUnsettledByRider(ctx, input.RiderID)
	if err != nil {
		return nil, err
	}

	return uc.recompute(parcels), nil
}

func (uc *SettlementUseCase) recompute(parcels []*domain.Parcel) []*domain.Parcel {
	eligible := make([]*domain.Parcel, 0, len(parcels))
	for _, p := range parcels {
		p.Earning = p.Commission()
		if p.Outstanding().LessThanOrEqual(decimal.Zero) {
			continue
		}
		eligible = append(eligible, p)
	}

	return eligible
}

func (uc *SettlementUseCase) recordOutcome(ctx context.Context, input RequestCashoutInput, result *CashoutResult, err error) {
	if uc.metrics != nil && err != nil {
		uc.metrics.CashoutErrors.WithLabelValues(errorLabel(err)).Inc()
	}

	if uc.auditRepo == nil {
		return
	}

	userID := "system"
	if user, ok := domain.UserFromContext(ctx); ok {
		userID = user.ID
	}

	auditLog := &domain.AuditLog{
		UserID:       userID,
		Action:       string(domain.AuditActionCashoutCreate),
		ResourceType: "cashout",
		ResourceID:   input.RiderID,
		Status:       string(domain.AuditStatusSuccess),
		AfterState:   domain.MarshalState(result),
		CreatedAt:    time.Now().UTC(),
	}

	if err != nil {
		auditLog.Status = string(domain.AuditStatusFailure)
		auditLog.ErrorMessage = err.Error()
		auditLog.AfterState = nil
	}

	_ = uc.auditRepo.Create(ctx, auditLog)
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrBelowMinimum):
		return "below_minimum"
	case errors.Is(err, domain.ErrNoEarningsAvailable):
		return "no_earnings"
	case errors.Is(err, domain.ErrInsufficientEarnings):
		return "insufficient_earnings"
	case errors.Is(err, domain.ErrParcelNotFound):
		return "parcel_not_found"
	case errors.Is(err, domain.ErrSettlementConflict):
		return "settlement_conflict"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	default:
		return "internal"
	}
}

func earningsCacheKey(riderID string) string {
	return "earnings:" + riderID
}
