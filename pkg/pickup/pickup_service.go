package pickup

import (
	"ComiYA-Backend/domain"
	"ComiYA-Backend/entities"
	"ComiYA-Backend/pkg/food"
	"ComiYA-Backend/pkg/notification"
	"ComiYA-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	PickupService interface {
		CreatePickup(ctx context.Context, req domain.CreatePickupRequest, userID string) (*domain.Pickup, error)
		ConfirmPickup(ctx context.Context, id string, req domain.ConfirmPickupRequest, userID string) (*domain.Pickup, error)
		ConfirmVisit(ctx context.Context, id string, userID string) (*domain.Pickup, error)
		CompletePickup(ctx context.Context, id string, req domain.CompletePickupRequest, userID string) (*domain.Pickup, error)
		CancelPickup(ctx context.Context, id string, req domain.CancelPickupRequest, userID string) (*domain.Pickup, error)
		UpdatePickup(ctx context.Context, id string, req domain.UpdatePickupRequest, userID string, role string) (*domain.Pickup, error)

		GetPickupByID(ctx context.Context, id string, userID string) (*domain.Pickup, error)
		GetPickups(ctx context.Context, filter domain.PickupFilter) (domain.PickupList, error)
		GetPickupsByBeneficiary(ctx context.Context, userID string, filter domain.PickupFilter) (domain.PickupList, error)
		GetPickupsByEstablishment(ctx context.Context, userID string, filter domain.PickupFilter) (domain.PickupList, error)
		GetStatistics(ctx context.Context, scope domain.StatsScope) (domain.PickupStatistics, error)
		ResolveScope(ctx context.Context, userID string, role string) (domain.StatsScope, error)
	}

	pickupService struct {
		pickupRepository    PickupRepository
		foodRepository      food.FoodRepository
		userRepository      user.UserRepository
		notificationService notification.NotificationService
	}
)

func NewPickupService(
	pickupRepository PickupRepository,
	foodRepository food.FoodRepository,
	userRepository user.UserRepository,
	notificationService notification.NotificationService,
) PickupService {
	return &pickupService{
		pickupRepository:    pickupRepository,
		foodRepository:      foodRepository,
		userRepository:      userRepository,
		notificationService: notificationService,
	}
}

func toPickupResponse(pickup *entities.Pickup) *domain.Pickup {
	response := &domain.Pickup{
		ID:                 pickup.ID.String(),
		BeneficiaryID:      pickup.BeneficiaryID.String(),
		EstablishmentID:    pickup.EstablishmentID.String(),
		FoodID:             pickup.FoodID.String(),
		RequestedQuantity:  pickup.RequestedQuantity,
		DeliveredQuantity:  pickup.DeliveredQuantity,
		ScheduledDate:      pickup.ScheduledDate,
		Status:             pickup.Status,
		ConfirmedAt:        pickup.ConfirmedAt,
		VisitConfirmedAt:   pickup.VisitConfirmedAt,
		CompletedAt:        pickup.CompletedAt,
		CancelledAt:        pickup.CancelledAt,
		BeneficiaryNotes:   pickup.BeneficiaryNotes,
		EstablishmentNotes: pickup.EstablishmentNotes,
		CancellationReason: pickup.CancellationReason,
		CreatedAt:          pickup.CreatedAt,
		UpdatedAt:          pickup.UpdatedAt,
	}

	if pickup.Beneficiary != nil && pickup.Beneficiary.User != nil {
		response.BeneficiaryName = pickup.Beneficiary.User.Name
	}
	if pickup.Establishment != nil {
		response.EstablishmentName = pickup.Establishment.Name
	}
	if pickup.Food != nil {
		response.Food = &domain.FoodSummary{
			ID:          pickup.Food.ID.String(),
			Name:        pickup.Food.Name,
			Quantity:    pickup.Food.Quantity,
			UnitMeasure: pickup.Food.UnitMeasure,
			Status:      pickup.Food.Status,
			ExpiresAt:   pickup.Food.ExpiresAt,
			ImageURL:    pickup.Food.ImageURL,
		}
	}

	return response
}

func (s *pickupService) getPickup(ctx context.Context, id string) (*entities.Pickup, error) {
	pickup, err := s.pickupRepository.GetPickupByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPickupNotFound
		}
		return nil, err
	}
	return pickup, nil
}

func (s *pickupService) isEstablishmentOwner(pickup *entities.Pickup, userID string) bool {
	return pickup.Establishment != nil && pickup.Establishment.UserID.String() == userID
}

func (s *pickupService) isBeneficiaryOwner(pickup *entities.Pickup, userID string) bool {
	return pickup.Beneficiary != nil && pickup.Beneficiary.UserID.String() == userID
}

// notify dispatches to the counterparty after the transition committed.
// Delivery is best-effort: failures are logged and never change the outcome
// the caller already got.
func (s *pickupService) notify(event domain.PickupEvent) {
	if s.notificationService == nil {
		return
	}
	go func() {
		if err := s.notificationService.Dispatch(context.Background(), event); err != nil {
			log.Warnf("pickup notification dispatch failed: %v", err)
		}
	}()
}

func pickupEvent(pickup *entities.Pickup, recipientUserID string, eventType, title, body string) domain.PickupEvent {
	return domain.PickupEvent{
		RecipientUserID: recipientUserID,
		Type:            eventType,
		Title:           title,
		Body:            body,
		PickupID:        pickup.ID.String(),
		Screen:          "PickupDetail",
		Data: map[string]string{
			"status": pickup.Status,
		},
	}
}

func parseScheduledDate(raw string) (time.Time, error) {
	scheduledDate, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.ErrInvalidScheduledDate
	}
	if !scheduledDate.After(time.Now()) {
		return time.Time{}, domain.ErrScheduledDateInPast
	}
	return scheduledDate, nil
}

func (s *pickupService) CreatePickup(ctx context.Context, req domain.CreatePickupRequest, userID string) (*domain.Pickup, error) {
	beneficiary, err := s.userRepository.GetBeneficiaryByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBeneficiaryProfileRequired
		}
		return nil, err
	}

	scheduledDate, err := parseScheduledDate(req.ScheduledDate)
	if err != nil {
		return nil, err
	}

	foodItem, err := s.foodRepository.GetFoodByID(ctx, req.FoodID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, err
	}

	if foodItem.Status != entities.FoodStatusAvailable {
		return nil, domain.ErrFoodNotAvailable
	}
	if req.RequestedQuantity > foodItem.Quantity {
		return nil, domain.ErrQuantityExceedsAvailable
	}

	foodUUID, err := uuid.Parse(req.FoodID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	pickup := &entities.Pickup{
		ID:                uuid.New(),
		BeneficiaryID:     beneficiary.ID,
		EstablishmentID:   foodItem.EstablishmentID,
		FoodID:            foodUUID,
		RequestedQuantity: req.RequestedQuantity,
		ScheduledDate:     scheduledDate,
		Status:            entities.PickupStatusPending,
		BeneficiaryNotes:  req.Notes,
	}

	if err := s.pickupRepository.CreatePickup(ctx, pickup); err != nil {
		return nil, err
	}

	created, err := s.getPickup(ctx, pickup.ID.String())
	if err != nil {
		return nil, err
	}

	if foodItem.Establishment != nil {
		beneficiaryName := ""
		if beneficiary.User != nil {
			beneficiaryName = beneficiary.User.Name
		}
		s.notify(pickupEvent(
			created,
			foodItem.Establishment.UserID.String(),
			domain.NotificationPickupRequested,
			"New pickup request",
			fmt.Sprintf("%s requested %.2f %s of %s.",
				beneficiaryName, pickup.RequestedQuantity, foodItem.UnitMeasure, foodItem.Name),
		))
	}

	return toPickupResponse(created), nil
}

func (s *pickupService) ConfirmPickup(ctx context.Context, id string, req domain.ConfirmPickupRequest, userID string) (*domain.Pickup, error) {
	pickup, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.isEstablishmentOwner(pickup, userID) {
		return nil, domain.ErrUnauthorizedPickupAccess
	}
	if pickup.Status != entities.PickupStatusPending {
		return nil, domain.ErrInvalidPickupStatus
	}

	now := time.Now()
	confirmed := req.Confirmed != nil && *req.Confirmed

	updates := map[string]interface{}{}
	if req.Notes != "" {
		updates["establishment_notes"] = req.Notes
	}

	if confirmed {
		updates["status"] = entities.PickupStatusConfirmed
		updates["confirmed_at"] = now
		if req.ScheduledDate != "" {
			scheduledDate, err := parseScheduledDate(req.ScheduledDate)
			if err != nil {
				return nil, err
			}
			updates["scheduled_date"] = scheduledDate
		}
	} else {
		updates["status"] = entities.PickupStatusRejected
		updates["cancelled_at"] = now
	}

	applied, err := s.pickupRepository.TransitionPickup(ctx, id, []string{entities.PickupStatusPending}, updates)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.ErrPickupConflict
	}

	updated, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.Beneficiary != nil {
		foodName := ""
		if updated.Food != nil {
			foodName = updated.Food.Name
		}
		if confirmed {
			s.notify(pickupEvent(
				updated,
				updated.Beneficiary.UserID.String(),
				domain.NotificationPickupConfirmed,
				"Pickup confirmed",
				fmt.Sprintf("%s confirmed your pickup of %s for %s.",
					updated.Establishment.Name, foodName, updated.ScheduledDate.Format("Jan 2 15:04")),
			))
		} else {
			body := fmt.Sprintf("%s rejected your pickup request for %s.", updated.Establishment.Name, foodName)
			if req.Notes != "" {
				body = fmt.Sprintf("%s Reason: %s", body, req.Notes)
			}
			s.notify(pickupEvent(
				updated,
				updated.Beneficiary.UserID.String(),
				domain.NotificationPickupRejected,
				"Pickup rejected",
				body,
			))
		}
	}

	return toPickupResponse(updated), nil
}

func (s *pickupService) ConfirmVisit(ctx context.Context, id string, userID string) (*domain.Pickup, error) {
	pickup, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.isBeneficiaryOwner(pickup, userID) {
		return nil, domain.ErrUnauthorizedPickupAccess
	}
	if pickup.Status != entities.PickupStatusConfirmed {
		return nil, domain.ErrInvalidPickupStatus
	}

	applied, err := s.pickupRepository.TransitionPickup(ctx, id,
		[]string{entities.PickupStatusConfirmed},
		map[string]interface{}{
			"status":             entities.PickupStatusInProgress,
			"visit_confirmed_at": time.Now(),
		})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.ErrPickupConflict
	}

	updated, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.Establishment != nil {
		beneficiaryName := ""
		if updated.Beneficiary != nil && updated.Beneficiary.User != nil {
			beneficiaryName = updated.Beneficiary.User.Name
		}
		foodName := ""
		if updated.Food != nil {
			foodName = updated.Food.Name
		}
		s.notify(pickupEvent(
			updated,
			updated.Establishment.UserID.String(),
			domain.NotificationPickupInProgress,
			"Beneficiary on the way",
			fmt.Sprintf("%s is coming to pick up %s.", beneficiaryName, foodName),
		))
	}

	return toPickupResponse(updated), nil
}

func (s *pickupService) CompletePickup(ctx context.Context, id string, req domain.CompletePickupRequest, userID string) (*domain.Pickup, error) {
	pickup, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.isEstablishmentOwner(pickup, userID) {
		return nil, domain.ErrUnauthorizedPickupAccess
	}
	if pickup.Status != entities.PickupStatusInProgress {
		return nil, domain.ErrInvalidPickupStatus
	}
	if req.DeliveredQuantity > pickup.RequestedQuantity {
		return nil, domain.ErrDeliveredExceedsRequested
	}

	notes := pickup.EstablishmentNotes
	if req.Notes != "" {
		if notes != "" {
			notes = notes + "\n" + req.Notes
		} else {
			notes = req.Notes
		}
	}

	updates := map[string]interface{}{
		"status":              entities.PickupStatusCompleted,
		"delivered_quantity":  req.DeliveredQuantity,
		"completed_at":        time.Now(),
		"establishment_notes": notes,
	}

	if _, err := s.pickupRepository.CompletePickup(ctx, id, pickup.FoodID.String(), req.DeliveredQuantity, updates); err != nil {
		return nil, err
	}

	updated, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.Beneficiary != nil {
		foodName := ""
		unit := ""
		if updated.Food != nil {
			foodName = updated.Food.Name
			unit = updated.Food.UnitMeasure
		}
		s.notify(pickupEvent(
			updated,
			updated.Beneficiary.UserID.String(),
			domain.NotificationPickupCompleted,
			"Pickup completed",
			fmt.Sprintf("You received %.2f %s of %s from %s. Thank you!",
				req.DeliveredQuantity, unit, foodName, updated.Establishment.Name),
		))
	}

	return toPickupResponse(updated), nil
}

func (s *pickupService) CancelPickup(ctx context.Context, id string, req domain.CancelPickupRequest, userID string) (*domain.Pickup, error) {
	pickup, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.isBeneficiaryOwner(pickup, userID) {
		return nil, domain.ErrUnauthorizedPickupAccess
	}
	if pickup.Status != entities.PickupStatusPending && pickup.Status != entities.PickupStatusConfirmed {
		return nil, domain.ErrInvalidPickupStatus
	}

	applied, err := s.pickupRepository.TransitionPickup(ctx, id,
		[]string{entities.PickupStatusPending, entities.PickupStatusConfirmed},
		map[string]interface{}{
			"status":              entities.PickupStatusCancelled,
			"cancelled_at":        time.Now(),
			"cancellation_reason": req.Reason,
		})
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.ErrPickupConflict
	}

	updated, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	if updated.Establishment != nil {
		beneficiaryName := ""
		if updated.Beneficiary != nil && updated.Beneficiary.User != nil {
			beneficiaryName = updated.Beneficiary.User.Name
		}
		foodName := ""
		if updated.Food != nil {
			foodName = updated.Food.Name
		}
		s.notify(pickupEvent(
			updated,
			updated.Establishment.UserID.String(),
			domain.NotificationPickupCancelled,
			"Pickup cancelled",
			fmt.Sprintf("%s cancelled the pickup of %s. Reason: %s", beneficiaryName, foodName, req.Reason),
		))
	}

	return toPickupResponse(updated), nil
}

func (s *pickupService) UpdatePickup(ctx context.Context, id string, req domain.UpdatePickupRequest, userID string, role string) (*domain.Pickup, error) {
	pickup, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	var recipientUserID string
	updates := map[string]interface{}{}

	switch role {
	case domain.RoleBeneficiary:
		if !s.isBeneficiaryOwner(pickup, userID) {
			return nil, domain.ErrUnauthorizedPickupAccess
		}
		if req.Notes != "" {
			updates["beneficiary_notes"] = req.Notes
		}
		if req.ScheduledDate != "" {
			scheduledDate, err := parseScheduledDate(req.ScheduledDate)
			if err != nil {
				return nil, err
			}
			updates["scheduled_date"] = scheduledDate
		}
		if pickup.Establishment != nil {
			recipientUserID = pickup.Establishment.UserID.String()
		}
	case domain.RoleEstablishment:
		if !s.isEstablishmentOwner(pickup, userID) {
			return nil, domain.ErrUnauthorizedPickupAccess
		}
		if req.Notes != "" {
			updates["establishment_notes"] = req.Notes
		}
		if pickup.Beneficiary != nil {
			recipientUserID = pickup.Beneficiary.UserID.String()
		}
	default:
		return nil, domain.ErrUserNotAllowed
	}

	if pickup.Status != entities.PickupStatusPending && pickup.Status != entities.PickupStatusConfirmed {
		return nil, domain.ErrInvalidPickupStatus
	}

	if len(updates) == 0 {
		return toPickupResponse(pickup), nil
	}

	applied, err := s.pickupRepository.TransitionPickup(ctx, id,
		[]string{entities.PickupStatusPending, entities.PickupStatusConfirmed},
		updates)
	if err != nil {
		return nil, err
	}
	if !applied {
		return nil, domain.ErrPickupConflict
	}

	updated, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	if recipientUserID != "" {
		foodName := ""
		if updated.Food != nil {
			foodName = updated.Food.Name
		}
		s.notify(pickupEvent(
			updated,
			recipientUserID,
			domain.NotificationPickupUpdated,
			"Pickup updated",
			fmt.Sprintf("The pickup for %s was updated.", foodName),
		))
	}

	return toPickupResponse(updated), nil
}

func (s *pickupService) GetPickupByID(ctx context.Context, id string, userID string) (*domain.Pickup, error) {
	pickup, err := s.getPickup(ctx, id)
	if err != nil {
		return nil, err
	}

	if !s.isBeneficiaryOwner(pickup, userID) && !s.isEstablishmentOwner(pickup, userID) {
		return nil, domain.ErrUnauthorizedPickupAccess
	}

	return toPickupResponse(pickup), nil
}

func normalizeFilter(filter *domain.PickupFilter) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
}

func (s *pickupService) listPickups(ctx context.Context, filter domain.PickupFilter) (domain.PickupList, error) {
	normalizeFilter(&filter)

	pickups, count, err := s.pickupRepository.GetPickups(ctx, filter)
	if err != nil {
		return domain.PickupList{}, err
	}

	data := make([]*domain.Pickup, 0, len(pickups))
	for _, pickup := range pickups {
		data = append(data, toPickupResponse(pickup))
	}

	pagination := domain.NewPagination(filter.Page, filter.Limit, count)
	return domain.PickupList{
		Data:       data,
		Total:      pagination.Total,
		Page:       pagination.Page,
		Limit:      pagination.Limit,
		TotalPages: pagination.TotalPages,
	}, nil
}

func (s *pickupService) GetPickups(ctx context.Context, filter domain.PickupFilter) (domain.PickupList, error) {
	return s.listPickups(ctx, filter)
}

func (s *pickupService) GetPickupsByBeneficiary(ctx context.Context, userID string, filter domain.PickupFilter) (domain.PickupList, error) {
	beneficiary, err := s.userRepository.GetBeneficiaryByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PickupList{}, domain.ErrBeneficiaryNotFound
		}
		return domain.PickupList{}, err
	}

	filter.BeneficiaryID = beneficiary.ID.String()
	return s.listPickups(ctx, filter)
}

func (s *pickupService) GetPickupsByEstablishment(ctx context.Context, userID string, filter domain.PickupFilter) (domain.PickupList, error) {
	establishment, err := s.userRepository.GetEstablishmentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.PickupList{}, domain.ErrEstablishmentNotFound
		}
		return domain.PickupList{}, err
	}

	filter.EstablishmentID = establishment.ID.String()
	return s.listPickups(ctx, filter)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

func (s *pickupService) GetStatistics(ctx context.Context, scope domain.StatsScope) (domain.PickupStatistics, error) {
	stats, err := s.pickupRepository.GetPickupStatistics(ctx, scope)
	if err != nil {
		return domain.PickupStatistics{}, err
	}

	result := domain.PickupStatistics{
		Total:          stats["total"].(int64),
		Pending:        stats["pending"].(int64),
		Confirmed:      stats["confirmed"].(int64),
		InProgress:     stats["in_progress"].(int64),
		Completed:      stats["completed"].(int64),
		Cancelled:      stats["cancelled"].(int64),
		Rejected:       stats["rejected"].(int64),
		TotalRequested: stats["total_requested"].(float64),
		TotalDelivered: stats["total_delivered"].(float64),
	}

	if result.TotalRequested > 0 {
		result.FulfillmentRate = round2(result.TotalDelivered / result.TotalRequested * 100)
	}
	if result.Total > 0 {
		result.CancellationRate = round2(float64(result.Cancelled+result.Rejected) / float64(result.Total) * 100)
	}

	return result, nil
}

// ResolveScope maps the authenticated caller onto a statistics scope once, at
// the boundary, instead of branching on the role string in every query.
func (s *pickupService) ResolveScope(ctx context.Context, userID string, role string) (domain.StatsScope, error) {
	switch role {
	case domain.RoleBeneficiary:
		beneficiary, err := s.userRepository.GetBeneficiaryByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.StatsScope{}, domain.ErrBeneficiaryNotFound
			}
			return domain.StatsScope{}, err
		}
		return domain.ScopeBeneficiary(beneficiary.ID.String()), nil
	case domain.RoleEstablishment:
		establishment, err := s.userRepository.GetEstablishmentByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.StatsScope{}, domain.ErrEstablishmentNotFound
			}
			return domain.StatsScope{}, err
		}
		return domain.ScopeEstablishment(establishment.ID.String()), nil
	default:
		return domain.ScopeAll(), nil
	}
}
