package user

import (
	"ComiYA-Backend/domain"
	"ComiYA-Backend/entities"
	"ComiYA-Backend/pkg/jwt"
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (domain.UserResponse, error)
		CreateBeneficiary(ctx context.Context, req domain.CreateBeneficiaryRequest, userID string) (*domain.BeneficiaryProfile, error)
		CreateEstablishment(ctx context.Context, req domain.CreateEstablishmentRequest, userID string) (*domain.EstablishmentProfile, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.RegisterResponse, error) {
	if _, err := s.userRepository.GetUserByEmail(ctx, req.Email); err == nil {
		return domain.RegisterResponse{}, domain.ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.RegisterResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Email:    req.Email,
		Password: string(hashed),
		Name:     req.Name,
		Role:     req.Role,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.RegisterResponse{}, err
	}

	return domain.RegisterResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Name:  user.Name,
		Role:  user.Role,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrCredentialsInvalid
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrCredentialsInvalid
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)

	return domain.LoginResponse{
		Token: token,
		Role:  user.Role,
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	response := domain.UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}

	if user.Beneficiary != nil {
		response.Beneficiary = &domain.BeneficiaryProfile{
			ID:      user.Beneficiary.ID.String(),
			Phone:   user.Beneficiary.Phone,
			Address: user.Beneficiary.Address,
		}
	}

	if user.Establishment != nil {
		response.Establishment = &domain.EstablishmentProfile{
			ID:          user.Establishment.ID.String(),
			Name:        user.Establishment.Name,
			Description: user.Establishment.Description,
			Address:     user.Establishment.Address,
			Phone:       user.Establishment.Phone,
			Latitude:    user.Establishment.Latitude,
			Longitude:   user.Establishment.Longitude,
		}
	}

	return response, nil
}

func (s *userService) CreateBeneficiary(ctx context.Context, req domain.CreateBeneficiaryRequest, userID string) (*domain.BeneficiaryProfile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.Role != domain.RoleBeneficiary {
		return nil, domain.ErrRoleMismatch
	}

	if user.Beneficiary != nil {
		return nil, domain.ErrProfileAlreadyExists
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	beneficiary := &entities.Beneficiary{
		ID:      uuid.New(),
		UserID:  userUUID,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if err := s.userRepository.CreateBeneficiary(ctx, beneficiary); err != nil {
		return nil, err
	}

	return &domain.BeneficiaryProfile{
		ID:      beneficiary.ID.String(),
		Phone:   beneficiary.Phone,
		Address: beneficiary.Address,
	}, nil
}

func (s *userService) CreateEstablishment(ctx context.Context, req domain.CreateEstablishmentRequest, userID string) (*domain.EstablishmentProfile, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if user.Role != domain.RoleEstablishment {
		return nil, domain.ErrRoleMismatch
	}

	if user.Establishment != nil {
		return nil, domain.ErrProfileAlreadyExists
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	establishment := &entities.Establishment{
		ID:          uuid.New(),
		UserID:      userUUID,
		Name:        req.Name,
		Description: req.Description,
		Address:     req.Address,
		Phone:       req.Phone,
		Latitude:    req.Latitude,
		Longitude:   req.Longitude,
	}

	if err := s.userRepository.CreateEstablishment(ctx, establishment); err != nil {
		return nil, err
	}

	return &domain.EstablishmentProfile{
		ID:          establishment.ID.String(),
		Name:        establishment.Name,
		Description: establishment.Description,
		Address:     establishment.Address,
		Phone:       establishment.Phone,
		Latitude:    establishment.Latitude,
		Longitude:   establishment.Longitude,
	}, nil
}
