package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessAddFood       = "food item added successfully"
	MessageSuccessUpdateFood    = "food item updated successfully"
	MessageSuccessDeleteFood    = "food item deleted successfully"
	MessageSuccessGetFoods      = "food items retrieved successfully"
	MessageSuccessGetFoodDetail = "food item retrieved successfully"
	MessageSuccessUploadImage   = "food image uploaded successfully"

	MessageFailedAddFood     = "failed to add food item"
	MessageFailedUpdateFood  = "failed to update food item"
	MessageFailedDeleteFood  = "failed to delete food item"
	MessageFailedGetFoods    = "failed to retrieve food items"
	MessageFailedUploadImage = "failed to upload food image"

	ErrFoodNotFound           = errors.New("food item not found")
	ErrUnauthorizedFoodAccess = errors.New("unauthorized access to food item")
	ErrInvalidQuantity        = errors.New("quantity must be positive")
	ErrInvalidExpiresAt       = errors.New("invalid expiry date")
	ErrFoodHasActivePickups   = errors.New("food item has active pickups")
)

type (
	AddFoodRequest struct {
		Name        string  `json:"name" validate:"required"`
		Description string  `json:"description" validate:"omitempty"`
		Quantity    float64 `json:"quantity" validate:"required,gt=0"`
		UnitMeasure string  `json:"unit_measure" validate:"required"`
		ExpiresAt   string  `json:"expires_at" validate:"required"`
	}

	UpdateFoodRequest struct {
		Name        string  `json:"name" validate:"omitempty"`
		Description string  `json:"description" validate:"omitempty"`
		Quantity    float64 `json:"quantity" validate:"omitempty,gt=0"`
		UnitMeasure string  `json:"unit_measure" validate:"omitempty"`
		ExpiresAt   string  `json:"expires_at" validate:"omitempty"`
		Status      string  `json:"status" validate:"omitempty,oneof=AVAILABLE RESERVED DELIVERED EXPIRED"`
	}

	UploadFoodImageRequest struct {
		FoodID string                `json:"food_id" form:"food_id" validate:"required,uuid"`
		Image  *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	FoodResponse struct {
		ID                string    `json:"id"`
		EstablishmentID   string    `json:"establishment_id"`
		EstablishmentName string    `json:"establishment_name,omitempty"`
		Name              string    `json:"name"`
		Description       string    `json:"description,omitempty"`
		Quantity          float64   `json:"quantity"`
		UnitMeasure       string    `json:"unit_measure"`
		Status            string    `json:"status"`
		ExpiresAt         time.Time `json:"expires_at"`
		ImageURL          string    `json:"image_url,omitempty"`
		CreatedAt         time.Time `json:"created_at"`
	}

	FoodSummary struct {
		ID          string    `json:"id"`
		Name        string    `json:"name"`
		Quantity    float64   `json:"quantity"`
		UnitMeasure string    `json:"unit_measure"`
		Status      string    `json:"status"`
		ExpiresAt   time.Time `json:"expires_at"`
		ImageURL    string    `json:"image_url,omitempty"`
	}
)
