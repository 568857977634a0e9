package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister            = "user registered successfully"
	MessageSuccessLogin               = "login successful"
	MessageSuccessGetMe               = "user profile retrieved successfully"
	MessageSuccessCreateBeneficiary   = "beneficiary profile created successfully"
	MessageSuccessCreateEstablishment = "establishment profile created successfully"

	MessageFailedRegister            = "failed to register user"
	MessageFailedLogin               = "failed to login"
	MessageFailedGetMe               = "failed to retrieve user profile"
	MessageFailedCreateBeneficiary   = "failed to create beneficiary profile"
	MessageFailedCreateEstablishment = "failed to create establishment profile"

	ErrUserNotFound          = errors.New("user not found")
	ErrEmailAlreadyExists    = errors.New("email already registered")
	ErrCredentialsInvalid    = errors.New("invalid email or password")
	ErrBeneficiaryNotFound   = errors.New("beneficiary profile not found")
	ErrEstablishmentNotFound = errors.New("establishment profile not found")
	ErrProfileAlreadyExists  = errors.New("profile already exists for this user")
	ErrRoleMismatch          = errors.New("user role does not allow this profile")
)

type (
	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
		Name     string `json:"name" validate:"required"`
		Role     string `json:"role" validate:"required,oneof=BENEFICIARY ESTABLISHMENT"`
	}

	RegisterResponse struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
		Role  string `json:"role"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
		Role  string `json:"role"`
	}

	CreateBeneficiaryRequest struct {
		Phone   string `json:"phone" validate:"required"`
		Address string `json:"address" validate:"required"`
	}

	CreateEstablishmentRequest struct {
		Name        string  `json:"name" validate:"required"`
		Description string  `json:"description" validate:"omitempty"`
		Address     string  `json:"address" validate:"required"`
		Phone       string  `json:"phone" validate:"required"`
		Latitude    float64 `json:"latitude" validate:"omitempty"`
		Longitude   float64 `json:"longitude" validate:"omitempty"`
	}

	UserResponse struct {
		ID            string                `json:"id"`
		Email         string                `json:"email"`
		Name          string                `json:"name"`
		Role          string                `json:"role"`
		Beneficiary   *BeneficiaryProfile   `json:"beneficiary,omitempty"`
		Establishment *EstablishmentProfile `json:"establishment,omitempty"`
		CreatedAt     time.Time             `json:"created_at"`
	}

	BeneficiaryProfile struct {
		ID      string `json:"id"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	}

	EstablishmentProfile struct {
		ID          string  `json:"id"`
		Name        string  `json:"name"`
		Description string  `json:"description,omitempty"`
		Address     string  `json:"address"`
		Phone       string  `json:"phone"`
		Latitude    float64 `json:"latitude,omitempty"`
		Longitude   float64 `json:"longitude,omitempty"`
	}
)
