package domain

import (
	"context"
	"errors"
	"time"
)

// User represents an authenticated caller of the API.
type User struct {
	ID             string
	Email          string
	Name           string
	HashedPassword string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Active         bool
}

// Role represents a user's access level
type Role string

const (
	// RoleAdmin has full access to all operations
	RoleAdmin Role = "admin"

	// RoleDispatcher manages parcels and delivery status, but cannot cash out
	RoleDispatcher Role = "dispatcher"

	// RoleRider can request cash-outs and view their own earnings
	RoleRider Role = "rider"
)

var validRoles = map[Role]bool{
	RoleAdmin:      true,
	RoleDispatcher: true,
	RoleRider:      true,
}

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return validRoles[r]
}

// CanManageParcels checks if the role can create parcels and move delivery status
func (r Role) CanManageParcels() bool {
	return r == RoleAdmin || r == RoleDispatcher
}

// CanCashout checks if the role can request a cash-out
func (r Role) CanCashout() bool {
	return r == RoleRider
}

// Authentication errors
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrInvalidToken     = errors.New("invalid token")
	ErrExpiredToken     = errors.New("token has expired")
	ErrInsufficientRole = errors.New("insufficient role for this operation")
)

type userContextKey struct{}

// ContextWithUser attaches the authenticated user to ctx.
func ContextWithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext extracts the authenticated user from ctx.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*User)
	return user, ok
}
