package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanvir/courierpay/internal/adapter/http/dto"
	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
)

// EarningsService is the slice of the earnings use case the handler needs.
type EarningsService interface {
	GetEarningsSummary(ctx context.Context, riderID string) (*usecase.EarningsSummary, error)
	ListCashouts(ctx context.Context, input usecase.ListCashoutsInput) ([]*domain.CashoutEntry, error)
}

// EarningsHandler serves rider earnings summaries and cash-out history.
type EarningsHandler struct {
	earningsUC EarningsService
}

// NewEarningsHandler creates a new EarningsHandler.
func NewEarningsHandler(earningsUC EarningsService) *EarningsHandler {
	return &EarningsHandler{earningsUC: earningsUC}
}

// GetSummary returns a rider's earnings summary.
func (h *EarningsHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	riderID := chi.URLParam(r, "id")
	if riderID == "" {
		writeError(w, http.StatusBadRequest, "missing rider ID", "")
		return
	}

	summary, err := h.earningsUC.GetEarningsSummary(r.Context(), riderID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get earnings", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EarningsSummaryFromUseCase(summary))
}

// ListCashouts returns a rider's cash-out history.
func (h *EarningsHandler) ListCashouts(w http.ResponseWriter, r *http.Request) {
	riderID := chi.URLParam(r, "id")
	if riderID == "" {
		writeError(w, http.StatusBadRequest, "missing rider ID", "")
		return
	}

	entries, err := h.earningsUC.ListCashouts(r.Context(), usecase.ListCashoutsInput{
		RiderID: riderID,
		Limit:   parseIntQuery(r, "limit", 20),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cash-outs", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CashoutEntriesFromDomain(entries))
}
