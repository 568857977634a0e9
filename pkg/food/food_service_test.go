package food

import (
	"ComiYA-Backend/domain"
	"ComiYA-Backend/entities"
	"context"
	"mime/multipart"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeFoodRepository struct {
	foods         map[string]*entities.Food
	activePickups map[string]int64
	sweptExpired  int64
	sweepCalls    int
}

func newFakeFoodRepository() *fakeFoodRepository {
	return &fakeFoodRepository{
		foods:         make(map[string]*entities.Food),
		activePickups: make(map[string]int64),
	}
}

func (r *fakeFoodRepository) AddFood(_ context.Context, food *entities.Food) error {
	r.foods[food.ID.String()] = food
	return nil
}

func (r *fakeFoodRepository) GetFoodByID(_ context.Context, id string) (*entities.Food, error) {
	food, ok := r.foods[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return food, nil
}

func (r *fakeFoodRepository) UpdateFood(_ context.Context, food *entities.Food) error {
	r.foods[food.ID.String()] = food
	return nil
}

func (r *fakeFoodRepository) DeleteFood(_ context.Context, id string) error {
	delete(r.foods, id)
	return nil
}

func (r *fakeFoodRepository) GetFoodsByEstablishment(_ context.Context, establishmentID string, status string, _, _ int) ([]*entities.Food, int64, error) {
	var result []*entities.Food
	for _, food := range r.foods {
		if food.EstablishmentID.String() != establishmentID {
			continue
		}
		if status != "" && status != "all" && food.Status != status {
			continue
		}
		result = append(result, food)
	}
	return result, int64(len(result)), nil
}

func (r *fakeFoodRepository) GetAvailableFoods(_ context.Context, _, _ int) ([]*entities.Food, int64, error) {
	var result []*entities.Food
	now := time.Now()
	for _, food := range r.foods {
		if food.Status == entities.FoodStatusAvailable && food.Quantity > 0 && food.ExpiresAt.After(now) {
			result = append(result, food)
		}
	}
	return result, int64(len(result)), nil
}

func (r *fakeFoodRepository) MarkExpiredFoods(_ context.Context) (int64, error) {
	r.sweepCalls++
	var swept int64
	now := time.Now()
	for _, food := range r.foods {
		if food.Status == entities.FoodStatusAvailable && food.ExpiresAt.Before(now) {
			food.Status = entities.FoodStatusExpired
			swept++
		}
	}
	r.sweptExpired += swept
	return swept, nil
}

func (r *fakeFoodRepository) CountActivePickups(_ context.Context, foodID string) (int64, error) {
	return r.activePickups[foodID], nil
}

type fakeUserRepository struct {
	establishments map[string]*entities.Establishment
}

func (r *fakeUserRepository) CreateUser(_ context.Context, _ *entities.User) error { return nil }

func (r *fakeUserRepository) GetUserByEmail(_ context.Context, _ string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) GetUserByID(_ context.Context, _ string) (*entities.User, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) CreateBeneficiary(_ context.Context, _ *entities.Beneficiary) error {
	return nil
}

func (r *fakeUserRepository) GetBeneficiaryByUserID(_ context.Context, _ string) (*entities.Beneficiary, error) {
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepository) CreateEstablishment(_ context.Context, _ *entities.Establishment) error {
	return nil
}

func (r *fakeUserRepository) GetEstablishmentByUserID(_ context.Context, userID string) (*entities.Establishment, error) {
	establishment, ok := r.establishments[userID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return establishment, nil
}

func (r *fakeUserRepository) GetEstablishmentByID(_ context.Context, _ string) (*entities.Establishment, error) {
	return nil, gorm.ErrRecordNotFound
}

type fakeS3 struct {
	uploaded []string
	deleted  []string
}

func (s *fakeS3) UploadFile(fileName string, _ *multipart.FileHeader, folder string, _ ...string) (string, error) {
	key := folder + "/" + fileName + ".jpg"
	s.uploaded = append(s.uploaded, key)
	return key, nil
}

func (s *fakeS3) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	s.uploaded = append(s.uploaded, objectKey)
	return objectKey, nil
}

func (s *fakeS3) DeleteFile(objectKey string) error {
	s.deleted = append(s.deleted, objectKey)
	return nil
}

func (s *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.region.amazonaws.com/" + objectKey
}

func (s *fakeS3) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.s3.region.amazonaws.com/")
}

type foodFixture struct {
	service       FoodService
	foodRepo      *fakeFoodRepository
	s3            *fakeS3
	userID        string
	establishment *entities.Establishment
}

func newFoodFixture(t *testing.T) *foodFixture {
	t.Helper()

	establishmentUser := &entities.User{ID: uuid.New(), Role: domain.RoleEstablishment}
	establishment := &entities.Establishment{
		ID:     uuid.New(),
		UserID: establishmentUser.ID,
		Name:   "Mercado Central",
		User:   establishmentUser,
	}

	foodRepo := newFakeFoodRepository()
	userRepo := &fakeUserRepository{
		establishments: map[string]*entities.Establishment{establishmentUser.ID.String(): establishment},
	}
	s3 := &fakeS3{}

	return &foodFixture{
		service:       NewFoodService(foodRepo, userRepo, s3),
		foodRepo:      foodRepo,
		s3:            s3,
		userID:        establishmentUser.ID.String(),
		establishment: establishment,
	}
}

func (f *foodFixture) seedFood(status string, expiresAt time.Time) *entities.Food {
	food := &entities.Food{
		ID:              uuid.New(),
		EstablishmentID: f.establishment.ID,
		Name:            "Vegetable box",
		Quantity:        8,
		UnitMeasure:     "units",
		Status:          status,
		ExpiresAt:       expiresAt,
		Establishment:   f.establishment,
	}
	f.foodRepo.foods[food.ID.String()] = food
	return food
}

func TestAddFood(t *testing.T) {
	f := newFoodFixture(t)

	result, err := f.service.AddFood(context.Background(), domain.AddFoodRequest{
		Name:        "Day-old bread",
		Description: "Still perfectly good",
		Quantity:    12,
		UnitMeasure: "kg",
		ExpiresAt:   time.Now().Add(24 * time.Hour).Format(time.RFC3339),
	}, f.userID)

	require.NoError(t, err)
	assert.Equal(t, "Day-old bread", result.Name)
	assert.Equal(t, entities.FoodStatusAvailable, result.Status)
	assert.Equal(t, "Mercado Central", result.EstablishmentName)
	assert.Len(t, f.foodRepo.foods, 1)
}

func TestAddFoodGuards(t *testing.T) {
	f := newFoodFixture(t)

	t.Run("requires establishment profile", func(t *testing.T) {
		_, err := f.service.AddFood(context.Background(), domain.AddFoodRequest{
			Name:        "Bread",
			Quantity:    1,
			UnitMeasure: "kg",
			ExpiresAt:   time.Now().Add(time.Hour).Format(time.RFC3339),
		}, uuid.NewString())
		assert.ErrorIs(t, err, domain.ErrEstablishmentNotFound)
	})

	t.Run("rejects malformed expiry", func(t *testing.T) {
		_, err := f.service.AddFood(context.Background(), domain.AddFoodRequest{
			Name:        "Bread",
			Quantity:    1,
			UnitMeasure: "kg",
			ExpiresAt:   "tomorrow",
		}, f.userID)
		assert.ErrorIs(t, err, domain.ErrInvalidExpiresAt)
	})
}

func TestUpdateFood(t *testing.T) {
	f := newFoodFixture(t)
	seeded := f.seedFood(entities.FoodStatusAvailable, time.Now().Add(24*time.Hour))

	result, err := f.service.UpdateFood(context.Background(), seeded.ID.String(), domain.UpdateFoodRequest{
		Quantity: 3,
		Status:   entities.FoodStatusReserved,
	}, f.userID)

	require.NoError(t, err)
	assert.Equal(t, 3.0, result.Quantity)
	assert.Equal(t, entities.FoodStatusReserved, result.Status)
	// untouched fields keep their values
	assert.Equal(t, "Vegetable box", result.Name)
}

func TestUpdateFoodOwnership(t *testing.T) {
	f := newFoodFixture(t)
	seeded := f.seedFood(entities.FoodStatusAvailable, time.Now().Add(24*time.Hour))

	_, err := f.service.UpdateFood(context.Background(), seeded.ID.String(),
		domain.UpdateFoodRequest{Quantity: 3}, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUnauthorizedFoodAccess)

	_, err = f.service.UpdateFood(context.Background(), uuid.NewString(),
		domain.UpdateFoodRequest{Quantity: 3}, f.userID)
	assert.ErrorIs(t, err, domain.ErrFoodNotFound)
}

func TestDeleteFood(t *testing.T) {
	f := newFoodFixture(t)
	seeded := f.seedFood(entities.FoodStatusAvailable, time.Now().Add(24*time.Hour))
	seeded.ImageURL = "https://bucket.s3.region.amazonaws.com/foods/food-1.jpg"

	require.NoError(t, f.service.DeleteFood(context.Background(), seeded.ID.String(), f.userID))

	assert.Empty(t, f.foodRepo.foods)
	assert.Equal(t, []string{"foods/food-1.jpg"}, f.s3.deleted)
}

func TestDeleteFoodWithActivePickups(t *testing.T) {
	f := newFoodFixture(t)
	seeded := f.seedFood(entities.FoodStatusAvailable, time.Now().Add(24*time.Hour))
	f.foodRepo.activePickups[seeded.ID.String()] = 2

	err := f.service.DeleteFood(context.Background(), seeded.ID.String(), f.userID)
	assert.ErrorIs(t, err, domain.ErrFoodHasActivePickups)
	assert.Len(t, f.foodRepo.foods, 1)
}

func TestBrowseAvailableFoodsSweepsExpired(t *testing.T) {
	f := newFoodFixture(t)
	fresh := f.seedFood(entities.FoodStatusAvailable, time.Now().Add(24*time.Hour))
	stale := f.seedFood(entities.FoodStatusAvailable, time.Now().Add(-time.Hour))

	foods, count, err := f.service.BrowseAvailableFoods(context.Background(), 1, 20)

	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	require.Len(t, foods, 1)
	assert.Equal(t, fresh.ID.String(), foods[0].ID)

	assert.Equal(t, entities.FoodStatusExpired, stale.Status)
	assert.Equal(t, 1, f.foodRepo.sweepCalls)
}

func TestGetMyFoodsFiltersByStatus(t *testing.T) {
	f := newFoodFixture(t)
	f.seedFood(entities.FoodStatusAvailable, time.Now().Add(24*time.Hour))
	f.seedFood(entities.FoodStatusDelivered, time.Now().Add(24*time.Hour))

	all, count, err := f.service.GetMyFoods(context.Background(), f.userID, "all", 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.Len(t, all, 2)

	delivered, count, err := f.service.GetMyFoods(context.Background(), f.userID, entities.FoodStatusDelivered, 1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
	assert.Len(t, delivered, 1)

	_, _, err = f.service.GetMyFoods(context.Background(), uuid.NewString(), "all", 1, 20)
	assert.ErrorIs(t, err, domain.ErrEstablishmentNotFound)
}

func TestUploadFoodImage(t *testing.T) {
	f := newFoodFixture(t)
	seeded := f.seedFood(entities.FoodStatusAvailable, time.Now().Add(24*time.Hour))

	file := &multipart.FileHeader{Filename: "photo.jpg"}

	result, err := f.service.UploadFoodImage(context.Background(), domain.UploadFoodImageRequest{
		FoodID: seeded.ID.String(),
		Image:  file,
	}, f.userID)

	require.NoError(t, err)
	assert.Contains(t, result.ImageURL, "foods/food-"+seeded.ID.String())
	require.Len(t, f.s3.uploaded, 1)

	// a second upload replaces the existing object instead of growing the bucket
	_, err = f.service.UploadFoodImage(context.Background(), domain.UploadFoodImageRequest{
		FoodID: seeded.ID.String(),
		Image:  file,
	}, f.userID)
	require.NoError(t, err)
	require.Len(t, f.s3.uploaded, 2)
	assert.Equal(t, f.s3.uploaded[0], f.s3.uploaded[1])
}
