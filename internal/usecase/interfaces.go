package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/domain"
)

// ParcelRepository defines data access for parcels. Settlement only ever
// touches the earnings-related fields.
type ParcelRepository interface {
	Create(ctx context.Context, parcel *domain.Parcel) error
	GetByID(ctx context.Context, id string) (*domain.Parcel, error)
	// ListUnsettledByRider returns the rider's parcels with a terminal
	// delivery status and an unsettled commission, oldest delivery first.
	ListUnsettledByRider(ctx context.Context, riderID string) ([]*domain.Parcel, error)
	ListByRider(ctx context.Context, riderID string, limit, offset int) ([]*domain.Parcel, error)
	AssignRider(ctx context.Context, tx Transaction, id, riderID string, assignedAt time.Time) error
	UpdateStatus(ctx context.Context, tx Transaction, id string, status domain.DeliveryStatus, updatedAt time.Time) error
	// MarkDelivered records the terminal status together with the computed
	// earning and the settled flag for zero-commission parcels.
	MarkDelivered(ctx context.Context, tx Transaction, id string, status domain.DeliveryStatus, earning decimal.Decimal, earningPaid bool, deliveredAt time.Time) error
	// SettlePayout conditionally moves paid_amount from expectedPaid to
	// newPaid and rewrites earning with the freshly computed commission, so
	// a stale stored earning can never exceed what settlement paid against.
	// Returns domain.ErrSettlementConflict when the parcel's paid_amount no
	// longer matches the value observed at eligibility time.
	SettlePayout(ctx context.Context, tx Transaction, id string, newPaid, earning decimal.Decimal, earningPaid bool, expectedPaid decimal.Decimal, updatedAt time.Time) error
	SumOutstandingByRider(ctx context.Context, riderID string) (decimal.Decimal, error)
	SumEarnedByRider(ctx context.Context, riderID string) (decimal.Decimal, error)
}

// CashoutRepository defines data access for the append-only cash-out ledger.
type CashoutRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.CashoutEntry) error
	ListByRider(ctx context.Context, riderID string, limit, offset int) ([]*domain.CashoutEntry, error)
	SumByRiderAndStatus(ctx context.Context, riderID string, status domain.CashoutStatus) (decimal.Decimal, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error)
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient store errors. Implementations
// decide which errors qualify; everything else returns immediately.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
