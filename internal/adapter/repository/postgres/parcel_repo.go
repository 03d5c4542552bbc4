package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
)

const parcelColumns = `id, sender_region, receiver_region, cost, delivery_status,
	assigned_rider, earning, paid_amount, earning_paid,
	assigned_at, delivered_at, created_at, updated_at`

// ParcelRepository implements usecase.ParcelRepository.
type ParcelRepository struct {
	pool *pgxpool.Pool
}

// NewParcelRepository creates a new ParcelRepository.
func NewParcelRepository(pool *pgxpool.Pool) *ParcelRepository {
	return &ParcelRepository{pool: pool}
}

// Create inserts a new parcel.
func (r *ParcelRepository) Create(ctx context.Context, parcel *domain.Parcel) error {
	query := `
		INSERT INTO parcels (` + parcelColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		parcel.ID,
		parcel.SenderRegion,
		parcel.ReceiverRegion,
		decimalToNumeric(parcel.Cost),
		string(parcel.DeliveryStatus),
		parcel.AssignedRider,
		decimalToNumeric(parcel.Earning),
		decimalToNumeric(parcel.PaidAmount),
		parcel.EarningPaid,
		timePtrToPgTimestamptz(parcel.AssignedAt),
		timePtrToPgTimestamptz(parcel.DeliveredAt),
		timeToPgTimestamptz(parcel.CreatedAt),
		timeToPgTimestamptz(parcel.UpdatedAt),
	)

	return err
}

// GetByID retrieves a parcel by ID.
func (r *ParcelRepository) GetByID(ctx context.Context, id string) (*domain.Parcel, error) {
	query := `SELECT ` + parcelColumns + ` FROM parcels WHERE id = $1`

	parcel, err := scanParcel(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrParcelNotFound
		}

		return nil, err
	}

	return parcel, nil
}

// ListUnsettledByRider returns the rider's delivered parcels that still have
// an unsettled commission, oldest delivery first. The id tiebreak keeps the
// order deterministic for parcels delivered in the same instant.
func (r *ParcelRepository) ListUnsettledByRider(ctx context.Context, riderID string) ([]*domain.Parcel, error) {
	query := `
		SELECT ` + parcelColumns + `
		FROM parcels
		WHERE assigned_rider = $1
		  AND delivery_status IN ($2, $3)
		  AND earning_paid = FALSE
		ORDER BY delivered_at ASC, created_at ASC, id ASC
	`

	rows, err := r.pool.Query(ctx, query, riderID,
		string(domain.DeliveryStatusDelivered),
		string(domain.DeliveryStatusServiceCenter),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanParcels(rows)
}

// ListByRider retrieves a rider's parcels with pagination.
func (r *ParcelRepository) ListByRider(ctx context.Context, riderID string, limit, offset int) ([]*domain.Parcel, error) {
	query := `
		SELECT ` + parcelColumns + `
		FROM parcels
		WHERE assigned_rider = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.pool.Query(ctx, query, riderID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanParcels(rows)
}

// AssignRider records the rider assignment within a transaction.
func (r *ParcelRepository) AssignRider(ctx context.Context, tx usecase.Transaction, id, riderID string, assignedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE parcels
		SET assigned_rider = $2, delivery_status = $3, assigned_at = $4, updated_at = $4
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, riderID,
		string(domain.DeliveryStatusRiderAssigned), timeToPgTimestamptz(assignedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrParcelNotFound
	}

	return nil
}

// UpdateStatus records a non-terminal delivery status within a transaction.
func (r *ParcelRepository) UpdateStatus(ctx context.Context, tx usecase.Transaction, id string, status domain.DeliveryStatus, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE parcels
		SET delivery_status = $2, updated_at = $3
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, string(status), timeToPgTimestamptz(updatedAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrParcelNotFound
	}

	return nil
}

// MarkDelivered records the terminal status together with the computed
// earning. earningPaid arrives true only for zero-commission deliveries,
// which settle at delivery time.
func (r *ParcelRepository) MarkDelivered(ctx context.Context, tx usecase.Transaction, id string, status domain.DeliveryStatus, earning decimal.Decimal, earningPaid bool, deliveredAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE parcels
		SET delivery_status = $2, earning = $3, earning_paid = $4,
		    delivered_at = $5, updated_at = $5
		WHERE id = $1
	`

	tag, err := pgxTx.Exec(ctx, query, id, string(status),
		decimalToNumeric(earning), earningPaid, timeToPgTimestamptz(deliveredAt))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrParcelNotFound
	}

	return nil
}

// SettlePayout moves paid_amount to newPaid, conditioned on the row still
// holding the paid_amount the caller observed when planning the settlement.
// The earning column is rewritten alongside so the stored value always
// matches the commission the payout was computed from. Zero rows updated
// means a concurrent cash-out won the race.
func (r *ParcelRepository) SettlePayout(ctx context.Context, tx usecase.Transaction, id string, newPaid, earning decimal.Decimal, earningPaid bool, expectedPaid decimal.Decimal, updatedAt time.Time) error {
	pgxTx := tx.(*Tx).PgxTx()

	query := `
		UPDATE parcels
		SET paid_amount = $2, earning = $3, earning_paid = $4, updated_at = $5
		WHERE id = $1 AND paid_amount = $6 AND earning_paid = FALSE
	`

	tag, err := pgxTx.Exec(ctx, query, id,
		decimalToNumeric(newPaid), decimalToNumeric(earning), earningPaid,
		timeToPgTimestamptz(updatedAt), decimalToNumeric(expectedPaid))
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrSettlementConflict
	}

	return nil
}

// SumOutstandingByRider returns the rider's total unsettled commission.
func (r *ParcelRepository) SumOutstandingByRider(ctx context.Context, riderID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(earning - paid_amount), 0)
		FROM parcels
		WHERE assigned_rider = $1
		  AND delivery_status IN ($2, $3)
		  AND earning_paid = FALSE
	`

	return r.sumByRider(ctx, query, riderID)
}

// SumEarnedByRider returns the rider's lifetime commission across all
// delivered parcels, settled or not.
func (r *ParcelRepository) SumEarnedByRider(ctx context.Context, riderID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(earning), 0)
		FROM parcels
		WHERE assigned_rider = $1
		  AND delivery_status IN ($2, $3)
	`

	return r.sumByRider(ctx, query, riderID)
}

func (r *ParcelRepository) sumByRider(ctx context.Context, query, riderID string) (decimal.Decimal, error) {
	var sum pgtype.Numeric
	err := r.pool.QueryRow(ctx, query, riderID,
		string(domain.DeliveryStatusDelivered),
		string(domain.DeliveryStatusServiceCenter),
	).Scan(&sum)
	if err != nil {
		return decimal.Zero, err
	}

	return numericToDecimal(sum), nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanParcel(row rowScanner) (*domain.Parcel, error) {
	var (
		parcel                domain.Parcel
		status                string
		cost, earning, paid   pgtype.Numeric
		assignedAt, delivered pgtype.Timestamptz
		createdAt, updatedAt  pgtype.Timestamptz
	)

	err := row.Scan(
		&parcel.ID,
		&parcel.SenderRegion,
		&parcel.ReceiverRegion,
		&cost,
		&status,
		&parcel.AssignedRider,
		&earning,
		&paid,
		&parcel.EarningPaid,
		&assignedAt,
		&delivered,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	parcel.Cost = numericToDecimal(cost)
	parcel.DeliveryStatus = domain.DeliveryStatus(status)
	parcel.Earning = numericToDecimal(earning)
	parcel.PaidAmount = numericToDecimal(paid)
	parcel.AssignedAt = pgTimestamptzToTimePtr(assignedAt)
	parcel.DeliveredAt = pgTimestamptzToTimePtr(delivered)
	parcel.CreatedAt = createdAt.Time
	parcel.UpdatedAt = updatedAt.Time

	return &parcel, nil
}

func scanParcels(rows pgx.Rows) ([]*domain.Parcel, error) {
	var parcels []*domain.Parcel
	for rows.Next() {
		parcel, err := scanParcel(rows)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, parcel)
	}

	return parcels, rows.Err()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func pgTimestamptzToTimePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}

	t := ts.Time

	return &t
}
