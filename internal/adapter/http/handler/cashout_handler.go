package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tanvir/courierpay/internal/adapter/http/dto"
	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
)

// SettlementService is the slice of the settlement use case the handler needs.
type SettlementService interface {
	RequestCashout(ctx context.Context, input usecase.RequestCashoutInput) (*usecase.CashoutResult, error)
}

// CashoutHandler handles cash-out HTTP requests.
type CashoutHandler struct {
	settlementUC SettlementService
}

// NewCashoutHandler creates a new CashoutHandler.
func NewCashoutHandler(settlementUC SettlementService) *CashoutHandler {
	return &CashoutHandler{settlementUC: settlementUC}
}

// Create settles a cash-out request. Riders always cash out against their
// own earnings; admin and dispatcher callers name the rider in the body.
func (h *CashoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCashoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	riderID := req.RiderID
	if user, ok := domain.UserFromContext(r.Context()); ok && user.Role == domain.RoleRider {
		riderID = user.ID
	}

	if riderID == "" {
		writeError(w, http.StatusBadRequest, "missing rider ID", "")
		return
	}

	result, err := h.settlementUC.RequestCashout(r.Context(), req.ToUseCaseInput(riderID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to cash out", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CashoutResultFromUseCase(result))
}
