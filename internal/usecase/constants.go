package usecase

import "time"

const (
	// DefaultTransactionTimeout is the maximum duration for a database transaction
	// This prevents long-running transactions from blocking tables
	DefaultTransactionTimeout = 10 * time.Second

	// DefaultCashoutMinimum is the policy minimum for a cash-out request (in decimal string)
	DefaultCashoutMinimum = "200"

	// DefaultMaxSettlementRetries bounds internal retries on settlement conflicts
	DefaultMaxSettlementRetries = 3

	// IdempotencyKeyTTL is how long idempotency keys are cached
	IdempotencyKeyTTL = 24 * time.Hour

	// EarningsSummaryTTL is how long a rider's earnings summary stays cached
	EarningsSummaryTTL = 30 * time.Second
)
