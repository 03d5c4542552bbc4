package domain_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tanvir/courierpay/internal/domain"
)

func deliveredParcel(id string, earning, paid int64) *domain.Parcel {
	now := time.Now().UTC()
	return &domain.Parcel{
		ID:             id,
		DeliveryStatus: domain.DeliveryStatusDelivered,
		AssignedRider:  "rider-1",
		Earning:        decimal.NewFromInt(earning),
		PaidAmount:     decimal.NewFromInt(paid),
		DeliveredAt:    &now,
	}
}

func TestBuildSettlementPlan_SingleParcelExact(t *testing.T) {
	// cost=1000, same region -> earning 100, full cash-out
	eligible := []*domain.Parcel{deliveredParcel("p-1", 100, 0)}

	plan, err := domain.BuildSettlementPlan("rider-1", decimal.NewFromInt(100), eligible)
	require.NoError(t, err)

	require.Len(t, plan.Allocations, 1)
	assert.Equal(t, "p-1", plan.Allocations[0].Parcel.ID)
	assert.True(t, plan.Allocations[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.True(t, plan.Total.Equal(decimal.NewFromInt(100)))
}

func TestBuildSettlementPlan_PartialPayout(t *testing.T) {
	// cost=1000, different regions -> earning 200, rider takes 50
	eligible := []*domain.Parcel{deliveredParcel("p-1", 200, 0)}

	plan, err := domain.BuildSettlementPlan("rider-1", decimal.NewFromInt(50), eligible)
	require.NoError(t, err)

	require.Len(t, plan.Allocations, 1)
	assert.True(t, plan.Allocations[0].Amount.Equal(decimal.NewFromInt(50)))
}

func TestBuildSettlementPlan_SpansParcelsOldestFirst(t *testing.T) {
	older := deliveredParcel("p-older", 30, 0)
	newer := deliveredParcel("p-newer", 40, 0)

	plan, err := domain.BuildSettlementPlan("rider-1", decimal.NewFromInt(50), []*domain.Parcel{older, newer})
	require.NoError(t, err)

	require.Len(t, plan.Allocations, 2)
	assert.Equal(t, "p-older", plan.Allocations[0].Parcel.ID)
	assert.True(t, plan.Allocations[0].Amount.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, "p-newer", plan.Allocations[1].Parcel.ID)
	assert.True(t, plan.Allocations[1].Amount.Equal(decimal.NewFromInt(20)))
}

func TestBuildSettlementPlan_InsufficientEarnings(t *testing.T) {
	eligible := []*domain.Parcel{
		deliveredParcel("p-1", 30, 0),
		deliveredParcel("p-2", 40, 0),
	}

	_, err := domain.BuildSettlementPlan("rider-1", decimal.NewFromInt(80), eligible)
	assert.ErrorIs(t, err, domain.ErrInsufficientEarnings)
}

func TestBuildSettlementPlan_EmptyEligibleSet(t *testing.T) {
	_, err := domain.BuildSettlementPlan("rider-1", decimal.NewFromInt(50), nil)
	assert.ErrorIs(t, err, domain.ErrNoEarningsAvailable)
}

func TestBuildSettlementPlan_NonPositiveAmount(t *testing.T) {
	eligible := []*domain.Parcel{deliveredParcel("p-1", 100, 0)}

	_, err := domain.BuildSettlementPlan("rider-1", decimal.Zero, eligible)
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestBuildSettlementPlan_SkipsFullyPaidParcels(t *testing.T) {
	paid := deliveredParcel("p-paid", 50, 50)
	open := deliveredParcel("p-open", 60, 10)

	plan, err := domain.BuildSettlementPlan("rider-1", decimal.NewFromInt(50), []*domain.Parcel{paid, open})
	require.NoError(t, err)

	require.Len(t, plan.Allocations, 1)
	assert.Equal(t, "p-open", plan.Allocations[0].Parcel.ID)
}

func TestBuildSettlementPlan_ExhaustsRequestedExactly(t *testing.T) {
	eligible := []*domain.Parcel{
		deliveredParcel("p-1", 120, 35),
		deliveredParcel("p-2", 90, 0),
		deliveredParcel("p-3", 44, 2),
	}
	requested := decimal.NewFromInt(150)

	plan, err := domain.BuildSettlementPlan("rider-1", requested, eligible)
	require.NoError(t, err)

	total := decimal.Zero
	for _, a := range plan.Allocations {
		total = total.Add(a.Amount)
		assert.True(t, a.Amount.LessThanOrEqual(a.Parcel.Outstanding()),
			"allocation for %s exceeds outstanding balance", a.Parcel.ID)
	}
	assert.True(t, total.Equal(requested))
}

func TestBuildSettlementPlan_Deterministic(t *testing.T) {
	build := func() *domain.SettlementPlan {
		eligible := []*domain.Parcel{
			deliveredParcel("p-1", 80, 10),
			deliveredParcel("p-2", 40, 0),
		}
		plan, err := domain.BuildSettlementPlan("rider-1", decimal.NewFromInt(95), eligible)
		require.NoError(t, err)
		return plan
	}

	first := build()
	second := build()

	require.Equal(t, len(first.Allocations), len(second.Allocations))
	for i := range first.Allocations {
		assert.Equal(t, first.Allocations[i].Parcel.ID, second.Allocations[i].Parcel.ID)
		assert.True(t, first.Allocations[i].Amount.Equal(second.Allocations[i].Amount))
	}
}
