package entities

import (
	"github.com/google/uuid"
)

type Notification struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID  `json:"user_id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Data      string     `gorm:"type:text" json:"data,omitempty"`
	PickupID  *uuid.UUID `json:"pickup_id,omitempty"`
	IsRead    bool       `json:"is_read"`
	IsDeleted bool       `json:"is_deleted"`

	User   *User   `gorm:"foreignKey:UserID"`
	Pickup *Pickup `gorm:"foreignKey:PickupID"`
	Timestamp
}

type DeviceToken struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID   uuid.UUID `json:"user_id"`
	Token    string    `gorm:"uniqueIndex" json:"token"`
	Platform string    `json:"platform"` // ios, android

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
