package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/infrastructure/metrics"
)

// ParcelUseCase handles the parcel delivery lifecycle that gates settlement.
type ParcelUseCase struct {
	txManager  TransactionManager
	parcelRepo ParcelRepository
	outboxRepo OutboxRepository
	auditRepo  AuditRepository
	idGen      IDGenerator
	metrics    *metrics.Metrics
}

// WithAudit records an audit log entry for every assignment and status change.
func (uc *ParcelUseCase) WithAudit(auditRepo AuditRepository) *ParcelUseCase {
	uc.auditRepo = auditRepo
	return uc
}

// NewParcelUseCase creates a new ParcelUseCase.
func NewParcelUseCase(
	txManager TransactionManager,
	parcelRepo ParcelRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	metrics *metrics.Metrics,
) *ParcelUseCase {
	return &ParcelUseCase{
		txManager:  txManager,
		parcelRepo: parcelRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
		metrics:    metrics,
	}
}

// CreateParcelInput represents input for creating a parcel.
type CreateParcelInput struct {
	SenderRegion   string
	ReceiverRegion string
	Cost           decimal.Decimal
}

// CreateParcel creates a parcel in pending status with zeroed earnings fields.
func (uc *ParcelUseCase) CreateParcel(ctx context.Context, input CreateParcelInput) (*domain.Parcel, error) {
	if err := domain.ValidateRegion(input.SenderRegion); err != nil {
		return nil, err
	}

	if err := domain.ValidateRegion(input.ReceiverRegion); err != nil {
		return nil, err
	}

	if err := domain.ValidateCost(input.Cost); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	parcel := &domain.Parcel{
		ID:             uc.idGen.Generate(),
		SenderRegion:   input.SenderRegion,
		ReceiverRegion: input.ReceiverRegion,
		Cost:           input.Cost,
		DeliveryStatus: domain.DeliveryStatusPending,
		Earning:        decimal.Zero,
		PaidAmount:     decimal.Zero,
		EarningPaid:    false,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.parcelRepo.Create(ctx, parcel); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.ParcelsCreated.Inc()
	}

	return parcel, nil
}

// GetParcel retrieves a parcel by ID.
func (uc *ParcelUseCase) GetParcel(ctx context.Context, id string) (*domain.Parcel, error) {
	return uc.parcelRepo.GetByID(ctx, id)
}

// ListParcelsByRiderInput represents input for listing a rider's parcels.
type ListParcelsByRiderInput struct {
	RiderID string
	Limit   int
	Offset  int
}

// ListParcelsByRider lists parcels assigned to a rider.
func (uc *ParcelUseCase) ListParcelsByRider(ctx context.Context, input ListParcelsByRiderInput) ([]*domain.Parcel, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.parcelRepo.ListByRider(ctx, input.RiderID, limit, offset)
}

// AssignRider credits riderID for the parcel's delivery and moves the parcel
// to rider-assigned.
func (uc *ParcelUseCase) AssignRider(ctx context.Context, parcelID, riderID string) (*domain.Parcel, error) {
	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	parcel, err := uc.parcelRepo.GetByID(txCtx, parcelID)
	if err != nil {
		return nil, err
	}

	if parcel.AssignedRider != "" {
		return nil, domain.ErrRiderAlreadyAssigned
	}

	if !parcel.DeliveryStatus.CanTransitionTo(domain.DeliveryStatusRiderAssigned) {
		return nil, domain.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()
	if err := uc.parcelRepo.AssignRider(txCtx, tx, parcelID, riderID, now); err != nil {
		return nil, err
	}

	if uc.outboxRepo != nil {
		event := &domain.OutboxEvent{
			ID:            uc.idGen.Generate(),
			AggregateID:   parcelID,
			AggregateType: domain.AggregateTypeParcel,
			EventType:     domain.EventTypeRiderAssigned,
			Payload: map[string]any{
				"parcel_id": parcelID,
				"rider_id":  riderID,
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

	parcel.AssignedRider = riderID
	parcel.DeliveryStatus = domain.DeliveryStatusRiderAssigned
	parcel.AssignedAt = &now
	parcel.UpdatedAt = now

	uc.recordAudit(ctx, domain.AuditActionParcelAssignRider, parcel)

	return parcel, nil
}

// UpdateDeliveryStatus moves a parcel along the delivery state machine. On a
// terminal transition the commission is computed from cost and regions and
// stored; zero-commission parcels are settled immediately so they never enter
// eligibility.
func (uc *ParcelUseCase) UpdateDeliveryStatus(ctx context.Context, parcelID string, next domain.DeliveryStatus) (*domain.Parcel, error) {
	if !next.IsValid() {
		return nil, domain.ErrInvalidStatusTransition
	}

	txCtx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(txCtx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(txCtx) }()

	parcel, err := uc.parcelRepo.GetByID(txCtx, parcelID)
	if err != nil {
		return nil, err
	}

	if !parcel.DeliveryStatus.CanTransitionTo(next) {
		return nil, domain.ErrInvalidStatusTransition
	}

	now := time.Now().UTC()

	if next.IsTerminal() {
		if parcel.AssignedRider == "" {
			return nil, domain.ErrRiderNotAssigned
		}

		earning := parcel.Commission()
		earningPaid := earning.IsZero()

		if err := uc.parcelRepo.MarkDelivered(txCtx, tx, parcelID, next, earning, earningPaid, now); err != nil {
			return nil, err
		}

		if uc.outboxRepo != nil {
			event := &domain.OutboxEvent{
				ID:            uc.idGen.Generate(),
				AggregateID:   parcelID,
				AggregateType: domain.AggregateTypeParcel,
				EventType:     domain.EventTypeParcelDelivered,
				Payload: map[string]any{
					"parcel_id": parcelID,
					"rider_id":  parcel.AssignedRider,
					"status":    string(next),
					"earning":   earning.String(),
				},
				CreatedAt: now,
				Published: false,
			}
			if err := uc.outboxRepo.Create(txCtx, tx, event); err != nil {
				return nil, err
			}
		}

		parcel.Earning = earning
		parcel.EarningPaid = earningPaid
		parcel.DeliveredAt = &now
	} else {
		if err := uc.parcelRepo.UpdateStatus(txCtx, tx, parcelID, next, now); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(txCtx); err != nil {
		return nil, err
	}

	if uc.metrics != nil && next.IsTerminal() {
		uc.metrics.ParcelsDelivered.Inc()
	}

	parcel.DeliveryStatus = next
	parcel.UpdatedAt = now

	uc.recordAudit(ctx, domain.AuditActionParcelStatusUpdate, parcel)

	return parcel, nil
}

func (uc *ParcelUseCase) recordAudit(ctx context.Context, action domain.AuditAction, parcel *domain.Parcel) {
	if uc.auditRepo == nil {
		return
	}

	userID := "system"
	if user, ok := domain.UserFromContext(ctx); ok {
		userID = user.ID
	}

	_ = uc.auditRepo.Create(ctx, &domain.AuditLog{
		UserID:       userID,
		Action:       string(action),
		ResourceType: "parcel",
		ResourceID:   parcel.ID,
		Status:       string(domain.AuditStatusSuccess),
		AfterState:   domain.MarshalState(parcel),
		CreatedAt:    time.Now().UTC(),
	})
}
