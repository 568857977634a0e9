package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	FoodStatusAvailable = "AVAILABLE"
	FoodStatusReserved  = "RESERVED"
	FoodStatusDelivered = "DELIVERED"
	FoodStatusExpired   = "EXPIRED"
)

type Food struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	EstablishmentID uuid.UUID `json:"establishment_id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Quantity        float64   `json:"quantity"`
	UnitMeasure     string    `json:"unit_measure"`
	Status          string    `json:"status"` // AVAILABLE, RESERVED, DELIVERED, EXPIRED
	ExpiresAt       time.Time `json:"expires_at"`
	ImageURL        string    `json:"image_url,omitempty"`

	Establishment *Establishment `gorm:"foreignKey:EstablishmentID"`
	Pickups       []*Pickup      `gorm:"foreignKey:FoodID"`
	Timestamp
}
