package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Password string    `json:"-"`
	Name     string    `json:"name"`
	Role     string    `json:"role"` // BENEFICIARY, ESTABLISHMENT
	PhotoURL string    `json:"photo_url,omitempty"`

	Beneficiary   *Beneficiary   `gorm:"foreignKey:UserID"`
	Establishment *Establishment `gorm:"foreignKey:UserID"`
	DeviceTokens  []*DeviceToken `gorm:"foreignKey:UserID"`
	Timestamp
}

type Beneficiary struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID  uuid.UUID `gorm:"uniqueIndex" json:"user_id"`
	Phone   string    `json:"phone"`
	Address string    `json:"address"`

	User    *User     `gorm:"foreignKey:UserID"`
	Pickups []*Pickup `gorm:"foreignKey:BeneficiaryID"`
	Timestamp
}

type Establishment struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID      uuid.UUID `gorm:"uniqueIndex" json:"user_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Latitude    float64   `json:"latitude,omitempty"`
	Longitude   float64   `json:"longitude,omitempty"`

	User    *User     `gorm:"foreignKey:UserID"`
	Foods   []*Food   `gorm:"foreignKey:EstablishmentID"`
	Pickups []*Pickup `gorm:"foreignKey:EstablishmentID"`
	Timestamp
}
