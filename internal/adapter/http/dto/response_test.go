package dto

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
)

func TestParcelFromDomain(t *testing.T) {
	delivered := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	parcel := &domain.Parcel{
		ID:             "p1",
		SenderRegion:   "dhaka",
		ReceiverRegion: "sylhet",
		Cost:           decimal.NewFromInt(1000),
		DeliveryStatus: domain.DeliveryStatusDelivered,
		AssignedRider:  "rider-1",
		Earning:        decimal.NewFromInt(200),
		PaidAmount:     decimal.NewFromInt(50),
		DeliveredAt:    &delivered,
	}

	resp := ParcelFromDomain(parcel)

	if resp.ID != "p1" || resp.DeliveryStatus != "delivered" || resp.AssignedRider != "rider-1" {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if !resp.Earning.Equal(decimal.NewFromInt(200)) || !resp.PaidAmount.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("unexpected earnings fields: %+v", resp)
	}
	if resp.DeliveredAt == nil || !resp.DeliveredAt.Equal(delivered) {
		t.Fatalf("expected delivered timestamp to carry over")
	}
}

func TestCashoutResultFromUseCase(t *testing.T) {
	result := &usecase.CashoutResult{
		RiderID: "rider-1",
		Total:   decimal.NewFromInt(150),
		Entries: []*domain.CashoutEntry{
			{ID: "co-1", ParcelID: "p1", Amount: decimal.NewFromInt(100), Status: domain.CashoutStatusCompleted},
			{ID: "co-2", ParcelID: "p2", Amount: decimal.NewFromInt(50), Status: domain.CashoutStatusCompleted},
		},
	}

	resp := CashoutResultFromUseCase(result)

	if resp.RiderID != "rider-1" || !resp.Total.Equal(decimal.NewFromInt(150)) {
		t.Fatalf("unexpected result: %+v", resp)
	}
	if len(resp.Entries) != 2 || resp.Entries[1].Status != "completed" {
		t.Fatalf("unexpected entries: %+v", resp.Entries)
	}
}

func TestEarningsSummaryFromUseCase(t *testing.T) {
	summary := &usecase.EarningsSummary{
		RiderID:     "rider-1",
		TotalEarned: decimal.NewFromInt(300),
		TotalPaid:   decimal.NewFromInt(120),
		Available:   decimal.NewFromInt(180),
	}

	resp := EarningsSummaryFromUseCase(summary)

	if !resp.Available.Equal(decimal.NewFromInt(180)) || resp.RiderID != "rider-1" {
		t.Fatalf("unexpected summary: %+v", resp)
	}
}
