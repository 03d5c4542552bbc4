package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tanvir/courierpay/internal/adapter/http/dto"
	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
)

// ParcelService is the slice of the parcel use case the handler needs.
type ParcelService interface {
	CreateParcel(ctx context.Context, input usecase.CreateParcelInput) (*domain.Parcel, error)
	GetParcel(ctx context.Context, id string) (*domain.Parcel, error)
	AssignRider(ctx context.Context, parcelID, riderID string) (*domain.Parcel, error)
	UpdateDeliveryStatus(ctx context.Context, parcelID string, next domain.DeliveryStatus) (*domain.Parcel, error)
	ListParcelsByRider(ctx context.Context, input usecase.ListParcelsByRiderInput) ([]*domain.Parcel, error)
}

// ParcelHandler handles parcel-related HTTP requests.
type ParcelHandler struct {
	parcelUC ParcelService
}

// NewParcelHandler creates a new ParcelHandler.
func NewParcelHandler(parcelUC ParcelService) *ParcelHandler {
	return &ParcelHandler{parcelUC: parcelUC}
}

// Create creates a new parcel.
func (h *ParcelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateParcelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	parcel, err := h.parcelUC.CreateParcel(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create parcel", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ParcelFromDomain(parcel))
}

// Get retrieves a parcel by ID.
func (h *ParcelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing parcel ID", "")
		return
	}

	parcel, err := h.parcelUC.GetParcel(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get parcel", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParcelFromDomain(parcel))
}

// AssignRider assigns a rider to a parcel.
func (h *ParcelHandler) AssignRider(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing parcel ID", "")
		return
	}

	var req dto.AssignRiderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.RiderID == "" {
		writeError(w, http.StatusBadRequest, "missing rider ID", "")
		return
	}

	parcel, err := h.parcelUC.AssignRider(r.Context(), id, req.RiderID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to assign rider", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParcelFromDomain(parcel))
}

// UpdateStatus advances a parcel's delivery status.
func (h *ParcelHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing parcel ID", "")
		return
	}

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	parcel, err := h.parcelUC.UpdateDeliveryStatus(r.Context(), id, req.ToDeliveryStatus())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParcelFromDomain(parcel))
}

// ListByRider lists a rider's parcels.
func (h *ParcelHandler) ListByRider(w http.ResponseWriter, r *http.Request) {
	riderID := chi.URLParam(r, "id")
	if riderID == "" {
		writeError(w, http.StatusBadRequest, "missing rider ID", "")
		return
	}

	parcels, err := h.parcelUC.ListParcelsByRider(r.Context(), usecase.ListParcelsByRiderInput{
		RiderID: riderID,
		Limit:   parseIntQuery(r, "limit", 20),
		Offset:  parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list parcels", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ParcelsFromDomain(parcels))
}
