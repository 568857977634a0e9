package user

import (
	"ComiYA-Backend/entities"
	"context"

	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)

		CreateBeneficiary(ctx context.Context, beneficiary *entities.Beneficiary) error
		GetBeneficiaryByUserID(ctx context.Context, userID string) (*entities.Beneficiary, error)

		CreateEstablishment(ctx context.Context, establishment *entities.Establishment) error
		GetEstablishmentByUserID(ctx context.Context, userID string) (*entities.Establishment, error)
		GetEstablishmentByID(ctx context.Context, id string) (*entities.Establishment, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Preload("Beneficiary").
		Preload("Establishment").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) CreateBeneficiary(ctx context.Context, beneficiary *entities.Beneficiary) error {
	return r.db.WithContext(ctx).Create(beneficiary).Error
}

func (r *userRepository) GetBeneficiaryByUserID(ctx context.Context, userID string) (*entities.Beneficiary, error) {
	var beneficiary entities.Beneficiary
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&beneficiary).Error; err != nil {
		return nil, err
	}
	return &beneficiary, nil
}

func (r *userRepository) CreateEstablishment(ctx context.Context, establishment *entities.Establishment) error {
	return r.db.WithContext(ctx).Create(establishment).Error
}

func (r *userRepository) GetEstablishmentByUserID(ctx context.Context, userID string) (*entities.Establishment, error) {
	var establishment entities.Establishment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("user_id = ?", userID).
		First(&establishment).Error; err != nil {
		return nil, err
	}
	return &establishment, nil
}

func (r *userRepository) GetEstablishmentByID(ctx context.Context, id string) (*entities.Establishment, error) {
	var establishment entities.Establishment
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&establishment).Error; err != nil {
		return nil, err
	}
	return &establishment, nil
}
