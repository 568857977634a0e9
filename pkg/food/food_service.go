package food

import (
	"ComiYA-Backend/domain"
	"ComiYA-Backend/entities"
	"ComiYA-Backend/internal/utils/storage"
	"ComiYA-Backend/pkg/user"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FoodService interface {
		AddFood(ctx context.Context, req domain.AddFoodRequest, userID string) (domain.FoodResponse, error)
		UpdateFood(ctx context.Context, id string, req domain.UpdateFoodRequest, userID string) (domain.FoodResponse, error)
		DeleteFood(ctx context.Context, id string, userID string) error
		GetFoodByID(ctx context.Context, id string) (domain.FoodResponse, error)
		GetMyFoods(ctx context.Context, userID string, status string, page, limit int) ([]domain.FoodResponse, int64, error)
		BrowseAvailableFoods(ctx context.Context, page, limit int) ([]domain.FoodResponse, int64, error)
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (domain.FoodResponse, error)
	}

	foodService struct {
		foodRepository FoodRepository
		userRepository user.UserRepository
		s3             storage.AwsS3
	}
)

func NewFoodService(foodRepository FoodRepository, userRepository user.UserRepository, s3 storage.AwsS3) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		userRepository: userRepository,
		s3:             s3,
	}
}

func toFoodResponse(food *entities.Food) domain.FoodResponse {
	response := domain.FoodResponse{
		ID:              food.ID.String(),
		EstablishmentID: food.EstablishmentID.String(),
		Name:            food.Name,
		Description:     food.Description,
		Quantity:        food.Quantity,
		UnitMeasure:     food.UnitMeasure,
		Status:          food.Status,
		ExpiresAt:       food.ExpiresAt,
		ImageURL:        food.ImageURL,
		CreatedAt:       food.CreatedAt,
	}
	if food.Establishment != nil {
		response.EstablishmentName = food.Establishment.Name
	}
	return response
}

func (s *foodService) ownedFood(ctx context.Context, id string, userID string) (*entities.Food, error) {
	food, err := s.foodRepository.GetFoodByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFoodNotFound
		}
		return nil, err
	}

	if food.Establishment == nil || food.Establishment.UserID.String() != userID {
		return nil, domain.ErrUnauthorizedFoodAccess
	}

	return food, nil
}

func (s *foodService) AddFood(ctx context.Context, req domain.AddFoodRequest, userID string) (domain.FoodResponse, error) {
	establishment, err := s.userRepository.GetEstablishmentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodResponse{}, domain.ErrEstablishmentNotFound
		}
		return domain.FoodResponse{}, err
	}

	expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
	if err != nil {
		return domain.FoodResponse{}, domain.ErrInvalidExpiresAt
	}

	if req.Quantity <= 0 {
		return domain.FoodResponse{}, domain.ErrInvalidQuantity
	}

	food := &entities.Food{
		ID:              uuid.New(),
		EstablishmentID: establishment.ID,
		Name:            req.Name,
		Description:     req.Description,
		Quantity:        req.Quantity,
		UnitMeasure:     req.UnitMeasure,
		Status:          entities.FoodStatusAvailable,
		ExpiresAt:       expiresAt,
	}

	if err := s.foodRepository.AddFood(ctx, food); err != nil {
		return domain.FoodResponse{}, err
	}

	food.Establishment = establishment
	return toFoodResponse(food), nil
}

func (s *foodService) UpdateFood(ctx context.Context, id string, req domain.UpdateFoodRequest, userID string) (domain.FoodResponse, error) {
	food, err := s.ownedFood(ctx, id, userID)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	if req.Name != "" {
		food.Name = req.Name
	}
	if req.Description != "" {
		food.Description = req.Description
	}
	if req.Quantity > 0 {
		food.Quantity = req.Quantity
	}
	if req.UnitMeasure != "" {
		food.UnitMeasure = req.UnitMeasure
	}
	if req.Status != "" {
		food.Status = req.Status
	}
	if req.ExpiresAt != "" {
		expiresAt, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			return domain.FoodResponse{}, domain.ErrInvalidExpiresAt
		}
		food.ExpiresAt = expiresAt
	}

	if err := s.foodRepository.UpdateFood(ctx, food); err != nil {
		return domain.FoodResponse{}, err
	}

	return toFoodResponse(food), nil
}

func (s *foodService) DeleteFood(ctx context.Context, id string, userID string) error {
	food, err := s.ownedFood(ctx, id, userID)
	if err != nil {
		return err
	}

	active, err := s.foodRepository.CountActivePickups(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.ErrFoodHasActivePickups
	}

	if food.ImageURL != "" {
		objectKey := s.s3.GetObjectKeyFromLink(food.ImageURL)
		if objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	return s.foodRepository.DeleteFood(ctx, id)
}

func (s *foodService) GetFoodByID(ctx context.Context, id string) (domain.FoodResponse, error) {
	food, err := s.foodRepository.GetFoodByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FoodResponse{}, domain.ErrFoodNotFound
		}
		return domain.FoodResponse{}, err
	}

	return toFoodResponse(food), nil
}

func (s *foodService) GetMyFoods(ctx context.Context, userID string, status string, page, limit int) ([]domain.FoodResponse, int64, error) {
	establishment, err := s.userRepository.GetEstablishmentByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrEstablishmentNotFound
		}
		return nil, 0, err
	}

	if swept, err := s.foodRepository.MarkExpiredFoods(ctx); err != nil {
		log.Warnf("expiry sweep failed: %v", err)
	} else if swept > 0 {
		log.Infof("marked %d foods as expired", swept)
	}

	foods, count, err := s.foodRepository.GetFoodsByEstablishment(ctx, establishment.ID.String(), status, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.FoodResponse, 0, len(foods))
	for _, food := range foods {
		response = append(response, toFoodResponse(food))
	}

	return response, count, nil
}

func (s *foodService) BrowseAvailableFoods(ctx context.Context, page, limit int) ([]domain.FoodResponse, int64, error) {
	if _, err := s.foodRepository.MarkExpiredFoods(ctx); err != nil {
		log.Warnf("expiry sweep failed: %v", err)
	}

	foods, count, err := s.foodRepository.GetAvailableFoods(ctx, page, limit)
	if err != nil {
		return nil, 0, err
	}

	response := make([]domain.FoodResponse, 0, len(foods))
	for _, food := range foods {
		response = append(response, toFoodResponse(food))
	}

	return response, count, nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest, userID string) (domain.FoodResponse, error) {
	food, err := s.ownedFood(ctx, req.FoodID, userID)
	if err != nil {
		return domain.FoodResponse{}, err
	}

	fileName := fmt.Sprintf("food-%s", food.ID.String())
	var objectKey string
	var uploadErr error

	if food.ImageURL != "" {
		existingKey := s.s3.GetObjectKeyFromLink(food.ImageURL)
		if existingKey != "" {
			objectKey, uploadErr = s.s3.UpdateFile(existingKey, req.Image, storage.AllowImage...)
		} else {
			objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "foods", storage.AllowImage...)
		}
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, req.Image, "foods", storage.AllowImage...)
	}

	if uploadErr != nil {
		return domain.FoodResponse{}, uploadErr
	}

	food.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.foodRepository.UpdateFood(ctx, food); err != nil {
		return domain.FoodResponse{}, err
	}

	return toFoodResponse(food), nil
}
