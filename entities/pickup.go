package entities

import (
	"time"

	"github.com/google/uuid"
)

const (
	PickupStatusPending    = "PENDING"
	PickupStatusConfirmed  = "CONFIRMED"
	PickupStatusInProgress = "IN_PROGRESS"
	PickupStatusCompleted  = "COMPLETED"
	PickupStatusRejected   = "REJECTED"
	PickupStatusCancelled  = "CANCELLED"
)

// IsTerminalPickupStatus reports whether no further transition is allowed.
func IsTerminalPickupStatus(status string) bool {
	return status == PickupStatusCompleted ||
		status == PickupStatusRejected ||
		status == PickupStatusCancelled
}

type Pickup struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	BeneficiaryID      uuid.UUID  `json:"beneficiary_id"`
	EstablishmentID    uuid.UUID  `json:"establishment_id"`
	FoodID             uuid.UUID  `json:"food_id"`
	RequestedQuantity  float64    `json:"requested_quantity"`
	DeliveredQuantity  *float64   `json:"delivered_quantity,omitempty"`
	ScheduledDate      time.Time  `json:"scheduled_date"`
	Status             string     `json:"status"` // PENDING, CONFIRMED, IN_PROGRESS, COMPLETED, REJECTED, CANCELLED
	ConfirmedAt        *time.Time `json:"confirmed_at,omitempty"`
	VisitConfirmedAt   *time.Time `json:"visit_confirmed_at,omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`
	BeneficiaryNotes   string     `json:"beneficiary_notes,omitempty"`
	EstablishmentNotes string     `json:"establishment_notes,omitempty"`
	CancellationReason string     `json:"cancellation_reason,omitempty"`

	Beneficiary   *Beneficiary   `gorm:"foreignKey:BeneficiaryID"`
	Establishment *Establishment `gorm:"foreignKey:EstablishmentID"`
	Food          *Food          `gorm:"foreignKey:FoodID"`
	Timestamp
}
