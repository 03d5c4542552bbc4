package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tanvir/courierpay/internal/domain"
	"github.com/tanvir/courierpay/internal/usecase"
	"github.com/tanvir/courierpay/internal/usecase/mocks"
)

func TestCreateUser(t *testing.T) {
	tests := []struct {
		name        string
		input       usecase.CreateUserInput
		expectError bool
	}{
		{
			name: "valid rider",
			input: usecase.CreateUserInput{
				Email:    "rider@courierpay.io",
				Name:     "Test Rider",
				Password: "Sup3rSecret",
				Role:     domain.RoleRider,
			},
		},
		{
			name: "invalid email",
			input: usecase.CreateUserInput{
				Email:    "not-an-email",
				Password: "Sup3rSecret",
				Role:     domain.RoleRider,
			},
			expectError: true,
		},
		{
			name: "weak password",
			input: usecase.CreateUserInput{
				Email:    "rider@courierpay.io",
				Password: "short",
				Role:     domain.RoleRider,
			},
			expectError: true,
		},
		{
			name: "invalid role",
			input: usecase.CreateUserInput{
				Email:    "rider@courierpay.io",
				Password: "Sup3rSecret",
				Role:     domain.Role("customer"),
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := usecase.NewUserUseCase(mocks.NewMockUserRepository(), mocks.NewMockIDGenerator())

			user, err := uc.CreateUser(context.Background(), tt.input)

			if tt.expectError {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if user.HashedPassword != "" {
				t.Error("hashed password must not be returned")
			}
			if !user.Active {
				t.Error("new users must be active")
			}
		})
	}
}

func TestAuthenticate(t *testing.T) {
	userRepo := mocks.NewMockUserRepository()
	uc := usecase.NewUserUseCase(userRepo, mocks.NewMockIDGenerator())

	_, err := uc.CreateUser(context.Background(), usecase.CreateUserInput{
		Email:    "rider@courierpay.io",
		Name:     "Test Rider",
		Password: "Sup3rSecret",
		Role:     domain.RoleRider,
	})
	if err != nil {
		t.Fatal(err)
	}

	t.Run("correct credentials", func(t *testing.T) {
		user, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "rider@courierpay.io",
			Password: "Sup3rSecret",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if user.Role != domain.RoleRider {
			t.Errorf("expected rider role, got %s", user.Role)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "rider@courierpay.io",
			Password: "WrongPassword1",
		})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := uc.Authenticate(context.Background(), usecase.AuthenticateInput{
			Email:    "ghost@courierpay.io",
			Password: "Sup3rSecret",
		})
		if !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}
