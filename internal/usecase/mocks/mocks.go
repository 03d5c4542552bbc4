package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
)

// MockParcelRepository is a mock implementation of ParcelRepository.
type MockParcelRepository struct {
	mu      sync.RWMutex
	parcels map[string]*domain.Parcel

	CreateFunc                func(ctx context.Context, parcel *domain.Parcel) error
	GetByIDFunc               func(ctx context.Context, id string) (*domain.Parcel, error)
	ListUnsettledByRiderFunc  func(ctx context.Context, riderID string) ([]*domain.Parcel, error)
	ListByRiderFunc           func(ctx context.Context, riderID string, limit, offset int) ([]*domain.Parcel, error)
	AssignRiderFunc           func(ctx context.Context, tx usecase.Transaction, id, riderID string, assignedAt time.Time) error
	UpdateStatusFunc          func(ctx context.Context, tx usecase.Transaction, id string, status domain.DeliveryStatus, updatedAt time.Time) error
	MarkDeliveredFunc         func(ctx context.Context, tx usecase.Transaction, id string, status domain.DeliveryStatus, earning decimal.Decimal, earningPaid bool, deliveredAt time.Time) error
	SettlePayoutFunc          func(ctx context.Context, tx usecase.Transaction, id string, newPaid, earning decimal.Decimal, earningPaid bool, expectedPaid decimal.Decimal, updatedAt time.Time) error
	SumOutstandingByRiderFunc func(ctx context.Context, riderID string) (decimal.Decimal, error)
	SumEarnedByRiderFunc      func(ctx context.Context, riderID string) (decimal.Decimal, error)
}

// NewMockParcelRepository creates a new mock parcel repository.
func NewMockParcelRepository() *MockParcelRepository {
	return &MockParcelRepository{parcels: make(map[string]*domain.Parcel)}
}

func (m *MockParcelRepository) Create(ctx context.Context, parcel *domain.Parcel) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, parcel)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.parcels[parcel.ID] = parcel
	return nil
}

func (m *MockParcelRepository) GetByID(ctx context.Context, id string) (*domain.Parcel, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	parcel, ok := m.parcels[id]
	if !ok {
		return nil, domain.ErrParcelNotFound
	}
	copied := *parcel
	return &copied, nil
}

func (m *MockParcelRepository) ListUnsettledByRider(ctx context.Context, riderID string) ([]*domain.Parcel, error) {
	if m.ListUnsettledByRiderFunc != nil {
		return m.ListUnsettledByRiderFunc(ctx, riderID)
	}
	return nil, nil
}

func (m *MockParcelRepository) ListByRider(ctx context.Context, riderID string, limit, offset int) ([]*domain.Parcel, error) {
	if m.ListByRiderFunc != nil {
		return m.ListByRiderFunc(ctx, riderID, limit, offset)
	}
	return nil, nil
}

func (m *MockParcelRepository) AssignRider(ctx context.Context, tx usecase.Transaction, id, riderID string, assignedAt time.Time) error {
	if m.AssignRiderFunc != nil {
		return m.AssignRiderFunc(ctx, tx, id, riderID, assignedAt)
	}
	return nil
}

func (m *MockParcelRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.DeliveryStatus, updatedAt time.Time) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, tx, id, status, updatedAt)
	}
	return nil
}

func (m *MockParcelRepository) MarkDelivered(ctx context.Context, tx usecase.Transaction, id string, status domain.DeliveryStatus, earning decimal.Decimal, earningPaid bool, deliveredAt time.Time) error {
	if m.MarkDeliveredFunc != nil {
		return m.MarkDeliveredFunc(ctx, tx, id, status, earning, earningPaid, deliveredAt)
	}
	return nil
}

func (m *MockParcelRepository) SettlePayout(ctx context.Context, tx usecase.Transaction, id string, newPaid, earning decimal.Decimal, earningPaid bool, expectedPaid decimal.Decimal, updatedAt time.Time) error {
	if m.SettlePayoutFunc != nil {
		return m.SettlePayoutFunc(ctx, tx, id, newPaid, earning, earningPaid, expectedPaid, updatedAt)
	}
	return nil
}

func (m *MockParcelRepository) SumOutstandingByRider(ctx context.Context, riderID string) (decimal.Decimal, error) {
	if m.SumOutstandingByRiderFunc != nil {
		return m.SumOutstandingByRiderFunc(ctx, riderID)
	}
	return decimal.Zero, nil
}

func (m *MockParcelRepository) SumEarnedByRider(ctx context.Context, riderID string) (decimal.Decimal, error) {
	if m.SumEarnedByRiderFunc != nil {
		return m.SumEarnedByRiderFunc(ctx, riderID)
	}
	return decimal.Zero, nil
}

// MockCashoutRepository is a mock implementation of CashoutRepository.
type MockCashoutRepository struct {
	mu      sync.Mutex
	Entries []*domain.CashoutEntry

	CreateFunc              func(ctx context.Context, tx usecase.Transaction, entry *domain.CashoutEntry) error
	ListByRiderFunc         func(ctx context.Context, riderID string, limit, offset int) ([]*domain.CashoutEntry, error)
	SumByRiderAndStatusFunc func(ctx context.Context, riderID string, status domain.CashoutStatus) (decimal.Decimal, error)
}

// NewMockCashoutRepository creates a new mock cash-out repository.
func NewMockCashoutRepository() *MockCashoutRepository {
	return &MockCashoutRepository{}
}

func (m *MockCashoutRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.CashoutEntry) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, entry)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Entries = append(m.Entries, entry)
	return nil
}

func (m *MockCashoutRepository) ListByRider(ctx context.Context, riderID string, limit, offset int) ([]*domain.CashoutEntry, error) {
	if m.ListByRiderFunc != nil {
		return m.ListByRiderFunc(ctx, riderID, limit, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var entries []*domain.CashoutEntry
	for _, e := range m.Entries {
		if e.RiderID == riderID {
			entries = append(entries, e)
		}
	}
	return entries, nil
}

func (m *MockCashoutRepository) SumByRiderAndStatus(ctx context.Context, riderID string, status domain.CashoutStatus) (decimal.Decimal, error) {
	if m.SumByRiderAndStatusFunc != nil {
		return m.SumByRiderAndStatusFunc(ctx, riderID, status)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	total := decimal.Zero
	for _, e := range m.Entries {
		if e.RiderID == riderID && e.Status == status {
			total = total.Add(e.Amount)
		}
	}
	return total, nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User

	CreateFunc     func(ctx context.Context, user *domain.User) error
	GetByIDFunc    func(ctx context.Context, id string) (*domain.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.User, error)
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *user
	m.users[user.ID] = &copied
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	copied := *user
	return &copied, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, user := range m.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, domain.ErrUnauthorized
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.Mutex
	Events []*domain.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

// NewMockOutboxRepository creates a new mock outbox repository.
func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Transaction, event *domain.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Events = append(m.Events, event)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var events []*domain.OutboxEvent
	for _, e := range m.Events {
		if !e.Published {
			events = append(events, e)
		}
		if len(events) == limit {
			break
		}
	}
	return events, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.Events {
		if e.ID == id {
			e.Published = true
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	return nil
}

// MockAuditRepository is a mock implementation of AuditRepository.
type MockAuditRepository struct {
	mu   sync.Mutex
	Logs []*domain.AuditLog

	CreateFunc func(ctx context.Context, log *domain.AuditLog) error
}

// NewMockAuditRepository creates a new mock audit repository.
func NewMockAuditRepository() *MockAuditRepository {
	return &MockAuditRepository{}
}

func (m *MockAuditRepository) Create(ctx context.Context, log *domain.AuditLog) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, log)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, log)
	return nil
}

func (m *MockAuditRepository) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]*domain.AuditLog(nil), m.Logs...), nil
}

func (m *MockAuditRepository) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var logs []*domain.AuditLog
	for _, l := range m.Logs {
		if l.ResourceType == resourceType && l.ResourceID == resourceID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

// MockTransaction is a mock implementation of Transaction.
type MockTransaction struct {
	Committed  bool
	RolledBack bool

	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error
}

func (m *MockTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTransaction) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	m.RolledBack = true
	return nil
}

// MockTransactionManager is a mock implementation of TransactionManager.
type MockTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)

	Transactions []*MockTransaction
}

// NewMockTransactionManager creates a new mock transaction manager.
func NewMockTransactionManager() *MockTransactionManager {
	return &MockTransactionManager{}
}

func (m *MockTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	tx := &MockTransaction{}
	m.Transactions = append(m.Transactions, tx)
	return tx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	mu      sync.Mutex
	counter int

	GenerateFunc func() string
}

// NewMockIDGenerator creates a new mock ID generator.
func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return fmt.Sprintf("id-%d", m.counter)
}

// MockCache is a mock implementation of Cache.
type MockCache struct {
	mu   sync.Mutex
	data map[string][]byte

	GetFunc    func(ctx context.Context, key string) ([]byte, error)
	SetFunc    func(ctx context.Context, key string, value []byte, ttl time.Duration) error
	DeleteFunc func(ctx context.Context, key string) error

	Deleted []string
}

// NewMockCache creates a new mock cache.
func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string][]byte)}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key], nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if m.SetFunc != nil {
		return m.SetFunc(ctx, key, value, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	m.Deleted = append(m.Deleted, key)
	return nil
}
