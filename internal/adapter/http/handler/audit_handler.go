package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanvir/courierpay/internal/adapter/http/dto"
	"github.com/tanvir/courierpay/internal/domain"
)

// AuditTrail is the read side of the audit log a handler needs.
type AuditTrail interface {
	GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

// AuditHandler serves audit trails for operators.
type AuditHandler struct {
	trail AuditTrail
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(trail AuditTrail) *AuditHandler {
	return &AuditHandler{trail: trail}
}

// ParcelTrail returns the audit trail of a single parcel.
func (h *AuditHandler) ParcelTrail(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	logs, err := h.trail.GetByResourceID(r.Context(), "parcel", id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load audit trail", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AuditLogsFromDomain(logs))
}
