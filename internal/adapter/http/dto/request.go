package dto

import (
	"github.com/shopspring/decimal"

	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
)

// CreateParcelRequest represents a request to create a parcel.
type CreateParcelRequest struct {
	SenderRegion   string          `json:"sender_region"`
	ReceiverRegion string          `json:"receiver_region"`
	Cost           decimal.Decimal `json:"cost"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateParcelRequest) ToUseCaseInput() usecase.CreateParcelInput {
	return usecase.CreateParcelInput{
		SenderRegion:   r.SenderRegion,
		ReceiverRegion: r.ReceiverRegion,
		Cost:           r.Cost,
	}
}

// AssignRiderRequest represents a request to assign a rider to a parcel.
type AssignRiderRequest struct {
	RiderID string `json:"rider_id"`
}

// UpdateStatusRequest represents a delivery status update.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ToDeliveryStatus converts the raw status string.
func (r *UpdateStatusRequest) ToDeliveryStatus() domain.DeliveryStatus {
	return domain.DeliveryStatus(r.Status)
}

// CreateCashoutRequest represents a cash-out request. ParcelID is optional;
// when set, settlement draws from that parcel only. RiderID is honored only
// for admin and dispatcher callers; riders always cash out for themselves.
type CreateCashoutRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	ParcelID string          `json:"parcel_id,omitempty"`
	RiderID  string          `json:"rider_id,omitempty"`
}

// ToUseCaseInput converts to use case input for the given rider.
func (r *CreateCashoutRequest) ToUseCaseInput(riderID string) usecase.RequestCashoutInput {
	return usecase.RequestCashoutInput{
		RiderID:  riderID,
		Amount:   r.Amount,
		ParcelID: r.ParcelID,
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterUserRequest represents an admin request to create a user.
type RegisterUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// ToUseCaseInput converts to use case input.
func (r *RegisterUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Role:     domain.Role(r.Role),
	}
}
