package pickup

import (
	"ComiYA-Backend/domain"
	"ComiYA-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	PickupRepository interface {
		CreatePickup(ctx context.Context, pickup *entities.Pickup) error
		GetPickupByID(ctx context.Context, id string) (*entities.Pickup, error)

		// TransitionPickup applies updates only while the row is still in one
		// of fromStatuses. It reports whether the write was applied, so a
		// concurrent transition surfaces as a conflict instead of a silent
		// overwrite.
		TransitionPickup(ctx context.Context, id string, fromStatuses []string, updates map[string]interface{}) (bool, error)

		// CompletePickup runs the pickup completion and the food decrement in
		// one transaction. The stored food quantity is floored at zero and the
		// food flips to DELIVERED when it runs out.
		CompletePickup(ctx context.Context, pickupID string, foodID string, delivered float64, updates map[string]interface{}) (*entities.Food, error)

		GetPickups(ctx context.Context, filter domain.PickupFilter) ([]*entities.Pickup, int64, error)
		GetPickupStatistics(ctx context.Context, scope domain.StatsScope) (map[string]interface{}, error)
	}

	pickupRepository struct {
		db *gorm.DB
	}
)

func NewPickupRepository(db *gorm.DB) PickupRepository {
	return &pickupRepository{db: db}
}

func (r *pickupRepository) CreatePickup(ctx context.Context, pickup *entities.Pickup) error {
	return r.db.WithContext(ctx).Create(pickup).Error
}

func (r *pickupRepository) GetPickupByID(ctx context.Context, id string) (*entities.Pickup, error) {
	var pickup entities.Pickup
	if err := r.db.WithContext(ctx).
		Preload("Beneficiary").
		Preload("Beneficiary.User").
		Preload("Establishment").
		Preload("Establishment.User").
		Preload("Food").
		Where("id = ?", id).
		First(&pickup).Error; err != nil {
		return nil, err
	}
	return &pickup, nil
}

func (r *pickupRepository) TransitionPickup(ctx context.Context, id string, fromStatuses []string, updates map[string]interface{}) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Pickup{}).
		Where("id = ? AND status IN ?", id, fromStatuses).
		Updates(updates)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *pickupRepository) CompletePickup(ctx context.Context, pickupID string, foodID string, delivered float64, updates map[string]interface{}) (*entities.Food, error) {
	var food entities.Food

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&entities.Pickup{}).
			Where("id = ? AND status = ?", pickupID, entities.PickupStatusInProgress).
			Updates(updates)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrPickupConflict
		}

		if err := tx.Where("id = ?", foodID).First(&food).Error; err != nil {
			return err
		}

		food.Quantity -= delivered
		if food.Quantity <= 0 {
			food.Quantity = 0
			food.Status = entities.FoodStatusDelivered
		}

		return tx.Save(&food).Error
	})
	if err != nil {
		return nil, err
	}

	return &food, nil
}

func (r *pickupRepository) scopedFilter(ctx context.Context, filter domain.PickupFilter) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Pickup{})

	if filter.Status != "" && filter.Status != "all" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.BeneficiaryID != "" {
		query = query.Where("beneficiary_id = ?", filter.BeneficiaryID)
	}
	if filter.EstablishmentID != "" {
		query = query.Where("establishment_id = ?", filter.EstablishmentID)
	}
	if !filter.StartDate.IsZero() {
		query = query.Where("scheduled_date >= ?", filter.StartDate)
	}
	if !filter.EndDate.IsZero() {
		query = query.Where("scheduled_date <= ?", filter.EndDate)
	}

	return query
}

func (r *pickupRepository) GetPickups(ctx context.Context, filter domain.PickupFilter) ([]*entities.Pickup, int64, error) {
	var pickups []*entities.Pickup
	var count int64

	if err := r.scopedFilter(ctx, filter).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit

	if err := r.scopedFilter(ctx, filter).
		Preload("Beneficiary").
		Preload("Beneficiary.User").
		Preload("Establishment").
		Preload("Food").
		Order("created_at DESC").
		Offset(offset).
		Limit(filter.Limit).
		Find(&pickups).Error; err != nil {
		return nil, 0, err
	}

	return pickups, count, nil
}

func (r *pickupRepository) scopedStats(ctx context.Context, scope domain.StatsScope) *gorm.DB {
	query := r.db.WithContext(ctx).Model(&entities.Pickup{})
	if id, ok := scope.Beneficiary(); ok {
		query = query.Where("beneficiary_id = ?", id)
	}
	if id, ok := scope.Establishment(); ok {
		query = query.Where("establishment_id = ?", id)
	}
	return query
}

func (r *pickupRepository) GetPickupStatistics(ctx context.Context, scope domain.StatsScope) (map[string]interface{}, error) {
	var total int64
	if err := r.scopedStats(ctx, scope).Count(&total).Error; err != nil {
		return nil, err
	}

	statuses := []string{
		entities.PickupStatusPending,
		entities.PickupStatusConfirmed,
		entities.PickupStatusInProgress,
		entities.PickupStatusCompleted,
		entities.PickupStatusCancelled,
		entities.PickupStatusRejected,
	}

	counts := make(map[string]int64, len(statuses))
	for _, status := range statuses {
		var count int64
		if err := r.scopedStats(ctx, scope).Where("status = ?", status).Count(&count).Error; err != nil {
			return nil, err
		}
		counts[status] = count
	}

	var sums struct {
		TotalRequested float64
		TotalDelivered float64
	}
	if err := r.scopedStats(ctx, scope).
		Select("COALESCE(SUM(requested_quantity), 0) as total_requested, COALESCE(SUM(delivered_quantity), 0) as total_delivered").
		Scan(&sums).Error; err != nil {
		return nil, err
	}

	stats := map[string]interface{}{
		"total":           total,
		"pending":         counts[entities.PickupStatusPending],
		"confirmed":       counts[entities.PickupStatusConfirmed],
		"in_progress":     counts[entities.PickupStatusInProgress],
		"completed":       counts[entities.PickupStatusCompleted],
		"cancelled":       counts[entities.PickupStatusCancelled],
		"rejected":        counts[entities.PickupStatusRejected],
		"total_requested": sums.TotalRequested,
		"total_delivered": sums.TotalDelivered,
	}

	return stats, nil
}
