package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
)

// CashoutRepository implements usecase.CashoutRepository. The cashouts table
// is append-only; entries are written inside the settlement transaction so
// the ledger and the parcel rows move together.
type CashoutRepository struct {
	pool *pgxpool.Pool
}

// NewCashoutRepository creates a new CashoutRepository.
func NewCashoutRepository(pool *pgxpool.Pool) *CashoutRepository {
	return &CashoutRepository{pool: pool}
}

// Create inserts a cash-out ledger entry within a transaction.
func (r *CashoutRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.CashoutEntry) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		INSERT INTO cashouts (id, rider_id, parcel_id, amount, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := pgxTx.Exec(ctx, query,
		entry.ID,
		entry.RiderID,
		entry.ParcelID,
		decimalToNumeric(entry.Amount),
		string(entry.Status),
		timeToPgTimestamptz(entry.CreatedAt),
	)

	return err
}

// ListByRider retrieves a rider's cash-out history, newest first.
func (r *CashoutRepository) ListByRider(ctx context.Context, riderID string, limit, offset int) ([]*domain.CashoutEntry, error) {
	query := `
		SELECT id, rider_id, parcel_id, amount, status, created_at
		FROM cashouts
		WHERE rider_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, riderID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.CashoutEntry
	for rows.Next() {
		var (
			entry     domain.CashoutEntry
			status    string
			amount    pgtype.Numeric
			createdAt pgtype.Timestamptz
		)

		err := rows.Scan(
			&entry.ID,
			&entry.RiderID,
			&entry.ParcelID,
			&amount,
			&status,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		entry.Amount = numericToDecimal(amount)
		entry.Status = domain.CashoutStatus(status)
		entry.CreatedAt = createdAt.Time

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// SumByRiderAndStatus returns the total amount paid out to a rider across
// entries with the given status.
func (r *CashoutRepository) SumByRiderAndStatus(ctx context.Context, riderID string, status domain.CashoutStatus) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM cashouts
		WHERE rider_id = $1 AND status = $2
	`

	var sum pgtype.Numeric
	if err := r.pool.QueryRow(ctx, query, riderID, string(status)).Scan(&sum); err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}
