package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tanvir/courierpay/internal/adapter/http/dto"
	"github.com/tanvir/courierpay/internal/domain"
)

type auditTrailStub struct {
	getFn func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error)
}

func (s *auditTrailStub) GetByResourceID(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
	return s.getFn(ctx, resourceType, resourceID)
}

func TestParcelTrail(t *testing.T) {
	trail := &auditTrailStub{
		getFn: func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
			if resourceType != "parcel" || resourceID != "p-1" {
				t.Errorf("unexpected lookup %s/%s", resourceType, resourceID)
			}
			return []*domain.AuditLog{
				{
					ID:           "a-1",
					UserID:       "u-1",
					Action:       string(domain.AuditActionParcelStatusUpdate),
					ResourceType: "parcel",
					ResourceID:   "p-1",
					Status:       string(domain.AuditStatusSuccess),
					CreatedAt:    time.Now().UTC(),
				},
			}, nil
		},
	}
	h := NewAuditHandler(trail)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/parcels/p-1/audit", nil), "id", "p-1")
	rr := httptest.NewRecorder()

	h.ParcelTrail(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var logs []*dto.AuditLogResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &logs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != string(domain.AuditActionParcelStatusUpdate) {
		t.Errorf("unexpected trail: %+v", logs)
	}
}

func TestParcelTrail_StoreError(t *testing.T) {
	trail := &auditTrailStub{
		getFn: func(ctx context.Context, resourceType, resourceID string) ([]*domain.AuditLog, error) {
			return nil, errors.New("connection refused")
		},
	}
	h := NewAuditHandler(trail)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/parcels/p-1/audit", nil), "id", "p-1")
	rr := httptest.NewRecorder()

	h.ParcelTrail(rr, req)

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}
