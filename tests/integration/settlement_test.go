package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/adapter/repository/postgres"
	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
	"github.com/tanvir/courierpay/tests/testutil"
)

// newSettlementUseCase wires real postgres repositories around the given
// outbox; tests that don't assert on events pass a NullOutboxRepository to
// keep the outbox table out of the picture.
func newSettlementUseCase(testDB *testutil.TestDB, outboxRepo usecase.OutboxRepository, minimum decimal.Decimal) *usecase.SettlementUseCase {
	pool := testDB.Pool

	return usecase.NewSettlementUseCase(
		postgres.NewTxManager(pool),
		postgres.NewParcelRepository(pool),
		postgres.NewCashoutRepository(pool),
		outboxRepo,
		postgres.NewAuditRepository(pool),
		postgres.NewULIDGenerator(),
		nil,
		nil,
		minimum,
		3,
	).WithRetrier(postgres.NewRetrier())
}

func TestSettlement(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	parcelRepo := postgres.NewParcelRepository(testDB.Pool)
	cashoutRepo := postgres.NewCashoutRepository(testDB.Pool)
	settlementUC := newSettlementUseCase(testDB, postgres.NewNullOutboxRepository(), decimal.NewFromInt(200))

	t.Run("settles oldest parcels first and splits the last one", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		rider := testutil.GenerateID()
		base := time.Now().UTC().Add(-3 * time.Hour)

		// 100 + 400 + 200 commission, oldest first.
		first := testDB.CreateDeliveredParcel(ctx, rider, "dhaka", "dhaka", decimal.NewFromInt(1000), base)
		second := testDB.CreateDeliveredParcel(ctx, rider, "dhaka", "sylhet", decimal.NewFromInt(2000), base.Add(time.Hour))
		third := testDB.CreateDeliveredParcel(ctx, rider, "dhaka", "khulna", decimal.NewFromInt(1000), base.Add(2*time.Hour))

		result, err := settlementUC.RequestCashout(ctx, usecase.RequestCashoutInput{
			RiderID: rider,
			Amount:  decimal.NewFromInt(300),
		})
		if err != nil {
			t.Fatalf("cash-out failed: %v", err)
		}

		if !result.Total.Equal(decimal.NewFromInt(300)) {
			t.Errorf("expected total 300, got %s", result.Total)
		}

		if len(result.Entries) != 2 {
			t.Fatalf("expected 2 settlement entries, got %d", len(result.Entries))
		}

		if result.Entries[0].ParcelID != first.ID || !result.Entries[0].Amount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("first entry should fully settle the oldest parcel, got %s for %s", result.Entries[0].Amount, result.Entries[0].ParcelID)
		}

		if result.Entries[1].ParcelID != second.ID || !result.Entries[1].Amount.Equal(decimal.NewFromInt(200)) {
			t.Errorf("second entry should draw 200 from the next parcel, got %s for %s", result.Entries[1].Amount, result.Entries[1].ParcelID)
		}

		settled, err := parcelRepo.GetByID(ctx, first.ID)
		if err != nil {
			t.Fatalf("failed to reload parcel: %v", err)
		}
		if !settled.EarningPaid || !settled.PaidAmount.Equal(decimal.NewFromInt(100)) {
			t.Errorf("oldest parcel should be fully settled, got paid=%s settled=%v", settled.PaidAmount, settled.EarningPaid)
		}

		partial, err := parcelRepo.GetByID(ctx, second.ID)
		if err != nil {
			t.Fatalf("failed to reload parcel: %v", err)
		}
		if partial.EarningPaid || !partial.PaidAmount.Equal(decimal.NewFromInt(200)) {
			t.Errorf("second parcel should carry a partial payout, got paid=%s settled=%v", partial.PaidAmount, partial.EarningPaid)
		}

		untouched, err := parcelRepo.GetByID(ctx, third.ID)
		if err != nil {
			t.Fatalf("failed to reload parcel: %v", err)
		}
		if !untouched.PaidAmount.IsZero() {
			t.Errorf("third parcel should be untouched, got paid=%s", untouched.PaidAmount)
		}

		outstanding, err := parcelRepo.SumOutstandingByRider(ctx, rider)
		if err != nil {
			t.Fatalf("failed to sum outstanding: %v", err)
		}
		if !outstanding.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected 400 outstanding after settlement, got %s", outstanding)
		}
	})

	t.Run("rejects amounts below the minimum", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		_, err := settlementUC.RequestCashout(ctx, usecase.RequestCashoutInput{
			RiderID: testutil.GenerateID(),
			Amount:  decimal.NewFromInt(50),
		})
		if !errors.Is(err, domain.ErrBelowMinimum) {
			t.Fatalf("expected ErrBelowMinimum, got %v", err)
		}
	})

	t.Run("rejects riders with no unsettled deliveries", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		_, err := settlementUC.RequestCashout(ctx, usecase.RequestCashoutInput{
			RiderID: testutil.GenerateID(),
			Amount:  decimal.NewFromInt(200),
		})
		if !errors.Is(err, domain.ErrNoEarningsAvailable) {
			t.Fatalf("expected ErrNoEarningsAvailable, got %v", err)
		}
	})

	t.Run("rejects requests above the available balance", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		rider := testutil.GenerateID()
		testDB.CreateDeliveredParcel(ctx, rider, "dhaka", "sylhet", decimal.NewFromInt(1500), time.Now().UTC())

		_, err := settlementUC.RequestCashout(ctx, usecase.RequestCashoutInput{
			RiderID: rider,
			Amount:  decimal.NewFromInt(500),
		})
		if !errors.Is(err, domain.ErrInsufficientEarnings) {
			t.Fatalf("expected ErrInsufficientEarnings, got %v", err)
		}
	})

	t.Run("named parcel restricts eligibility", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		rider := testutil.GenerateID()
		base := time.Now().UTC().Add(-2 * time.Hour)

		older := testDB.CreateDeliveredParcel(ctx, rider, "dhaka", "dhaka", decimal.NewFromInt(5000), base)
		named := testDB.CreateDeliveredParcel(ctx, rider, "dhaka", "sylhet", decimal.NewFromInt(2000), base.Add(time.Hour))

		result, err := settlementUC.RequestCashout(ctx, usecase.RequestCashoutInput{
			RiderID:  rider,
			Amount:   decimal.NewFromInt(400),
			ParcelID: named.ID,
		})
		if err != nil {
			t.Fatalf("named cash-out failed: %v", err)
		}

		if len(result.Entries) != 1 || result.Entries[0].ParcelID != named.ID {
			t.Fatalf("expected the named parcel to be the sole source, got %+v", result.Entries)
		}

		reloaded, err := parcelRepo.GetByID(ctx, older.ID)
		if err != nil {
			t.Fatalf("failed to reload parcel: %v", err)
		}
		if !reloaded.PaidAmount.IsZero() {
			t.Errorf("older parcel should not be drawn from, got paid=%s", reloaded.PaidAmount)
		}
	})

	t.Run("named parcel of another rider is not found", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		other := testDB.CreateDeliveredParcel(ctx, testutil.GenerateID(), "dhaka", "sylhet", decimal.NewFromInt(2000), time.Now().UTC())

		_, err := settlementUC.RequestCashout(ctx, usecase.RequestCashoutInput{
			RiderID:  testutil.GenerateID(),
			Amount:   decimal.NewFromInt(200),
			ParcelID: other.ID,
		})
		if !errors.Is(err, domain.ErrParcelNotFound) {
			t.Fatalf("expected ErrParcelNotFound, got %v", err)
		}
	})

	t.Run("settlement rewrites a drifted stored earning", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		rider := testutil.GenerateID()
		p := testDB.CreateDeliveredParcel(ctx, rider, "dhaka", "dhaka", decimal.NewFromInt(2000), time.Now().UTC())

		// Inflate the stored earning behind the formula's back.
		if _, err := testDB.Pool.Exec(ctx, "UPDATE parcels SET earning = 999 WHERE id = $1", p.ID); err != nil {
			t.Fatalf("failed to drift earning: %v", err)
		}

		// cost=2000 same region -> commission 200
		if _, err := settlementUC.RequestCashout(ctx, usecase.RequestCashoutInput{
			RiderID: rider,
			Amount:  decimal.NewFromInt(200),
		}); err != nil {
			t.Fatalf("cash-out failed: %v", err)
		}

		reloaded, err := parcelRepo.GetByID(ctx, p.ID)
		if err != nil {
			t.Fatalf("failed to reload parcel: %v", err)
		}
		if !reloaded.Earning.Equal(decimal.NewFromInt(200)) {
			t.Errorf("expected stored earning rewritten to 200, got %s", reloaded.Earning)
		}
		if !reloaded.EarningPaid || reloaded.PaidAmount.GreaterThan(reloaded.Earning) {
			t.Errorf("expected fully settled within the recomputed earning, got paid=%s earning=%s settled=%v",
				reloaded.PaidAmount, reloaded.Earning, reloaded.EarningPaid)
		}
	})

	t.Run("cashout ledger records every allocation", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		rider := testutil.GenerateID()
		base := time.Now().UTC().Add(-time.Hour)
		testDB.CreateDeliveredParcel(ctx, rider, "dhaka", "dhaka", decimal.NewFromInt(2000), base)
		testDB.CreateDeliveredParcel(ctx, rider, "dhaka", "sylhet", decimal.NewFromInt(1000), base.Add(time.Minute))

		if _, err := settlementUC.RequestCashout(ctx, usecase.RequestCashoutInput{
			RiderID: rider,
			Amount:  decimal.NewFromInt(400),
		}); err != nil {
			t.Fatalf("cash-out failed: %v", err)
		}

		total, err := cashoutRepo.SumByRiderAndStatus(ctx, rider, domain.CashoutStatusCompleted)
		if err != nil {
			t.Fatalf("failed to sum cashouts: %v", err)
		}
		if !total.Equal(decimal.NewFromInt(400)) {
			t.Errorf("expected 400 in the cashout ledger, got %s", total)
		}

		entries, err := cashoutRepo.ListByRider(ctx, rider, 10, 0)
		if err != nil {
			t.Fatalf("failed to list cashouts: %v", err)
		}
		if len(entries) != 2 {
			t.Errorf("expected 2 ledger entries, got %d", len(entries))
		}
	})
}
