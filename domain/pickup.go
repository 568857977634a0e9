package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessCreatePickup    = "pickup requested successfully"
	MessageSuccessConfirmPickup   = "pickup confirmed successfully"
	MessageSuccessRejectPickup    = "pickup rejected successfully"
	MessageSuccessConfirmVisit    = "pickup visit confirmed successfully"
	MessageSuccessCompletePickup  = "pickup completed successfully"
	MessageSuccessCancelPickup    = "pickup cancelled successfully"
	MessageSuccessUpdatePickup    = "pickup updated successfully"
	MessageSuccessGetPickups      = "pickups retrieved successfully"
	MessageSuccessGetPickupDetail = "pickup detail retrieved successfully"
	MessageSuccessGetPickupStats  = "pickup statistics retrieved successfully"

	MessageFailedCreatePickup   = "failed to request pickup"
	MessageFailedConfirmPickup  = "failed to confirm pickup"
	MessageFailedConfirmVisit   = "failed to confirm pickup visit"
	MessageFailedCompletePickup = "failed to complete pickup"
	MessageFailedCancelPickup   = "failed to cancel pickup"
	MessageFailedUpdatePickup   = "failed to update pickup"
	MessageFailedGetPickups     = "failed to retrieve pickups"
	MessageFailedGetPickupStats = "failed to retrieve pickup statistics"

	ErrPickupNotFound             = errors.New("pickup not found")
	ErrUnauthorizedPickupAccess   = errors.New("unauthorized access to pickup")
	ErrInvalidPickupStatus        = errors.New("pickup is not in a valid status for this operation")
	ErrPickupConflict             = errors.New("pickup was modified concurrently, please retry")
	ErrFoodNotAvailable           = errors.New("food item is not available")
	ErrQuantityExceedsAvailable   = errors.New("requested quantity exceeds available quantity")
	ErrDeliveredExceedsRequested  = errors.New("delivered quantity exceeds requested quantity")
	ErrScheduledDateInPast        = errors.New("scheduled date must be in the future")
	ErrBeneficiaryProfileRequired = errors.New("beneficiary profile is required to request pickups")
	ErrInvalidScheduledDate       = errors.New("invalid scheduled date format")
)

const (
	NotificationPickupRequested  = "PICKUP_REQUESTED"
	NotificationPickupConfirmed  = "PICKUP_CONFIRMED"
	NotificationPickupRejected   = "PICKUP_REJECTED"
	NotificationPickupInProgress = "PICKUP_IN_PROGRESS"
	NotificationPickupCompleted  = "PICKUP_COMPLETED"
	NotificationPickupCancelled  = "PICKUP_CANCELLED"
	NotificationPickupUpdated    = "PICKUP_UPDATED"
)

type (
	CreatePickupRequest struct {
		FoodID            string  `json:"food_id" validate:"required,uuid"`
		RequestedQuantity float64 `json:"requested_quantity" validate:"required,gt=0"`
		ScheduledDate     string  `json:"scheduled_date" validate:"required"`
		Notes             string  `json:"notes" validate:"omitempty"`
	}

	ConfirmPickupRequest struct {
		Confirmed     *bool  `json:"confirmed" validate:"required"`
		ScheduledDate string `json:"scheduled_date" validate:"omitempty"`
		Notes         string `json:"notes" validate:"omitempty"`
	}

	CompletePickupRequest struct {
		DeliveredQuantity float64 `json:"delivered_quantity" validate:"required,gt=0"`
		Notes             string  `json:"notes" validate:"omitempty"`
	}

	CancelPickupRequest struct {
		Reason string `json:"reason" validate:"required"`
	}

	UpdatePickupRequest struct {
		ScheduledDate string `json:"scheduled_date" validate:"omitempty"`
		Notes         string `json:"notes" validate:"omitempty"`
	}

	PickupFilter struct {
		Status          string    `json:"status,omitempty"`
		BeneficiaryID   string    `json:"beneficiary_id,omitempty"`
		EstablishmentID string    `json:"establishment_id,omitempty"`
		StartDate       time.Time `json:"start_date,omitempty"`
		EndDate         time.Time `json:"end_date,omitempty"`
		Page            int       `json:"page"`
		Limit           int       `json:"limit"`
	}

	Pickup struct {
		ID                 string       `json:"id"`
		BeneficiaryID      string       `json:"beneficiary_id"`
		BeneficiaryName    string       `json:"beneficiary_name,omitempty"`
		EstablishmentID    string       `json:"establishment_id"`
		EstablishmentName  string       `json:"establishment_name,omitempty"`
		FoodID             string       `json:"food_id"`
		Food               *FoodSummary `json:"food,omitempty"`
		RequestedQuantity  float64      `json:"requested_quantity"`
		DeliveredQuantity  *float64     `json:"delivered_quantity,omitempty"`
		ScheduledDate      time.Time    `json:"scheduled_date"`
		Status             string       `json:"status"`
		ConfirmedAt        *time.Time   `json:"confirmed_at,omitempty"`
		VisitConfirmedAt   *time.Time   `json:"visit_confirmed_at,omitempty"`
		CompletedAt        *time.Time   `json:"completed_at,omitempty"`
		CancelledAt        *time.Time   `json:"cancelled_at,omitempty"`
		BeneficiaryNotes   string       `json:"beneficiary_notes,omitempty"`
		EstablishmentNotes string       `json:"establishment_notes,omitempty"`
		CancellationReason string       `json:"cancellation_reason,omitempty"`
		CreatedAt          time.Time    `json:"created_at"`
		UpdatedAt          time.Time    `json:"updated_at"`
	}

	PickupList struct {
		Data       []*Pickup `json:"data"`
		Total      int64     `json:"total"`
		Page       int       `json:"page"`
		Limit      int       `json:"limit"`
		TotalPages int64     `json:"total_pages"`
	}

	PickupStatistics struct {
		Total            int64   `json:"total"`
		Pending          int64   `json:"pending"`
		Confirmed        int64   `json:"confirmed"`
		InProgress       int64   `json:"in_progress"`
		Completed        int64   `json:"completed"`
		Cancelled        int64   `json:"cancelled"`
		Rejected         int64   `json:"rejected"`
		TotalRequested   float64 `json:"total_requested"`
		TotalDelivered   float64 `json:"total_delivered"`
		FulfillmentRate  float64 `json:"fulfillment_rate"`
		CancellationRate float64 `json:"cancellation_rate"`
	}
)

// StatsScope narrows statistics queries to one party. The zero value means
// no scoping. Resolve the caller's role once at the boundary and pass the
// resulting scope down instead of re-branching on role strings.
type StatsScope struct {
	beneficiaryID   string
	establishmentID string
}

func ScopeAll() StatsScope {
	return StatsScope{}
}

func ScopeBeneficiary(id string) StatsScope {
	return StatsScope{beneficiaryID: id}
}

func ScopeEstablishment(id string) StatsScope {
	return StatsScope{establishmentID: id}
}

func (s StatsScope) Beneficiary() (string, bool) {
	return s.beneficiaryID, s.beneficiaryID != ""
}

func (s StatsScope) Establishment() (string, bool) {
	return s.establishmentID, s.establishmentID != ""
}
