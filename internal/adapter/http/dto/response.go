package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
)

// ParcelResponse represents a parcel in API responses.
type ParcelResponse struct {
	ID             string          `json:"id"`
	SenderRegion   string          `json:"sender_region"`
	ReceiverRegion string          `json:"receiver_region"`
	Cost           decimal.Decimal `json:"cost"`
	DeliveryStatus string          `json:"delivery_status"`
	AssignedRider  string          `json:"assigned_rider,omitempty"`
	Earning        decimal.Decimal `json:"earning"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	EarningPaid    bool            `json:"earning_paid"`
	AssignedAt     *time.Time      `json:"assigned_at,omitempty"`
	DeliveredAt    *time.Time      `json:"delivered_at,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ParcelFromDomain converts a domain parcel to a response.
func ParcelFromDomain(p *domain.Parcel) *ParcelResponse {
	return &ParcelResponse{
		ID:             p.ID,
		SenderRegion:   p.SenderRegion,
		ReceiverRegion: p.ReceiverRegion,
		Cost:           p.Cost,
		DeliveryStatus: string(p.DeliveryStatus),
		AssignedRider:  p.AssignedRider,
		Earning:        p.Earning,
		PaidAmount:     p.PaidAmount,
		EarningPaid:    p.EarningPaid,
		AssignedAt:     p.AssignedAt,
		DeliveredAt:    p.DeliveredAt,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ParcelsFromDomain converts domain parcels to responses.
func ParcelsFromDomain(parcels []*domain.Parcel) []*ParcelResponse {
	result := make([]*ParcelResponse, len(parcels))
	for i, p := range parcels {
		result[i] = ParcelFromDomain(p)
	}
	return result
}

// CashoutEntryResponse represents one cash-out ledger entry.
type CashoutEntryResponse struct {
	ID        string          `json:"id"`
	RiderID   string          `json:"rider_id"`
	ParcelID  string          `json:"parcel_id"`
	Amount    decimal.Decimal `json:"amount"`
	Status    string          `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// CashoutEntryFromDomain converts a domain cash-out entry to a response.
func CashoutEntryFromDomain(e *domain.CashoutEntry) *CashoutEntryResponse {
	return &CashoutEntryResponse{
		ID:        e.ID,
		RiderID:   e.RiderID,
		ParcelID:  e.ParcelID,
		Amount:    e.Amount,
		Status:    string(e.Status),
		CreatedAt: e.CreatedAt,
	}
}

// CashoutEntriesFromDomain converts domain cash-out entries to responses.
func CashoutEntriesFromDomain(entries []*domain.CashoutEntry) []*CashoutEntryResponse {
	result := make([]*CashoutEntryResponse, len(entries))
	for i, e := range entries {
		result[i] = CashoutEntryFromDomain(e)
	}
	return result
}

// CashoutResultResponse represents a completed settlement.
type CashoutResultResponse struct {
	RiderID string                  `json:"rider_id"`
	Total   decimal.Decimal         `json:"total"`
	Entries []*CashoutEntryResponse `json:"entries"`
}

// CashoutResultFromUseCase converts a settlement result to a response.
func CashoutResultFromUseCase(res *usecase.CashoutResult) *CashoutResultResponse {
	return &CashoutResultResponse{
		RiderID: res.RiderID,
		Total:   res.Total,
		Entries: CashoutEntriesFromDomain(res.Entries),
	}
}

// EarningsSummaryResponse represents a rider's earnings summary.
type EarningsSummaryResponse struct {
	RiderID     string          `json:"rider_id"`
	TotalEarned decimal.Decimal `json:"total_earned"`
	TotalPaid   decimal.Decimal `json:"total_paid"`
	Available   decimal.Decimal `json:"available"`
}

// EarningsSummaryFromUseCase converts an earnings summary to a response.
func EarningsSummaryFromUseCase(s *usecase.EarningsSummary) *EarningsSummaryResponse {
	return &EarningsSummaryResponse{
		RiderID:     s.RiderID,
		TotalEarned: s.TotalEarned,
		TotalPaid:   s.TotalPaid,
		Available:   s.Available,
	}
}

// AuditLogResponse represents one audit trail entry.
type AuditLogResponse struct {
	ID           string      `json:"id"`
	UserID       string      `json:"user_id"`
	Action       string      `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id"`
	Status       string      `json:"status"`
	ErrorMessage string      `json:"error_message,omitempty"`
	AfterState   domain.JSON `json:"after_state,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
}

// AuditLogsFromDomain converts audit logs to responses.
func AuditLogsFromDomain(logs []*domain.AuditLog) []*AuditLogResponse {
	result := make([]*AuditLogResponse, len(logs))
	for i, l := range logs {
		result[i] = &AuditLogResponse{
			ID:           l.ID,
			UserID:       l.UserID,
			Action:       l.Action,
			ResourceType: l.ResourceType,
			ResourceID:   l.ResourceID,
			Status:       l.Status,
			ErrorMessage: l.ErrorMessage,
			AfterState:   l.AfterState,
			CreatedAt:    l.CreatedAt,
		}
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
