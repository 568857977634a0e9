package food

import (
	"ComiYA-Backend/entities"
	"context"
	"time"

	"gorm.io/gorm"
)

type (
	FoodRepository interface {
		AddFood(ctx context.Context, food *entities.Food) error
		GetFoodByID(ctx context.Context, id string) (*entities.Food, error)
		UpdateFood(ctx context.Context, food *entities.Food) error
		DeleteFood(ctx context.Context, id string) error
		GetFoodsByEstablishment(ctx context.Context, establishmentID string, status string, page, limit int) ([]*entities.Food, int64, error)
		GetAvailableFoods(ctx context.Context, page, limit int) ([]*entities.Food, int64, error)
		MarkExpiredFoods(ctx context.Context) (int64, error)
		CountActivePickups(ctx context.Context, foodID string) (int64, error)
	}

	foodRepository struct {
		db *gorm.DB
	}
)

func NewFoodRepository(db *gorm.DB) FoodRepository {
	return &foodRepository{db: db}
}

func (r *foodRepository) AddFood(ctx context.Context, food *entities.Food) error {
	return r.db.WithContext(ctx).Create(food).Error
}

func (r *foodRepository) GetFoodByID(ctx context.Context, id string) (*entities.Food, error) {
	var food entities.Food
	if err := r.db.WithContext(ctx).
		Preload("Establishment").
		Preload("Establishment.User").
		Where("id = ?", id).
		First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *foodRepository) UpdateFood(ctx context.Context, food *entities.Food) error {
	return r.db.WithContext(ctx).Save(food).Error
}

func (r *foodRepository) DeleteFood(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Food{}).Error
}

func (r *foodRepository) GetFoodsByEstablishment(ctx context.Context, establishmentID string, status string, page, limit int) ([]*entities.Food, int64, error) {
	var foods []*entities.Food
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).Where("establishment_id = ?", establishmentID)

	if status != "all" && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Model(&entities.Food{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.Offset(offset).Limit(limit).Order("expires_at asc").Find(&foods).Error; err != nil {
		return nil, 0, err
	}

	return foods, count, nil
}

func (r *foodRepository) GetAvailableFoods(ctx context.Context, page, limit int) ([]*entities.Food, int64, error) {
	var foods []*entities.Food
	var count int64

	offset := (page - 1) * limit

	query := r.db.WithContext(ctx).
		Where("status = ? AND quantity > 0 AND expires_at > ?", entities.FoodStatusAvailable, time.Now())

	if err := query.Model(&entities.Food{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := query.
		Preload("Establishment").
		Offset(offset).
		Limit(limit).
		Order("expires_at asc").
		Find(&foods).Error; err != nil {
		return nil, 0, err
	}

	return foods, count, nil
}

func (r *foodRepository) MarkExpiredFoods(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entities.Food{}).
		Where("status = ? AND expires_at <= ?", entities.FoodStatusAvailable, time.Now()).
		Updates(map[string]interface{}{"status": entities.FoodStatusExpired})
	return result.RowsAffected, result.Error
}

func (r *foodRepository) CountActivePickups(ctx context.Context, foodID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entities.Pickup{}).
		Where("food_id = ? AND status IN ?", foodID, []string{
			entities.PickupStatusPending,
			entities.PickupStatusConfirmed,
			entities.PickupStatusInProgress,
		}).
		Count(&count).Error
	return count, err
}
