package service

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/sahajm/Civet/config"
	"github.com/sahajm/Civet/internal/apperr"
	"github.com/sahajm/Civet/internal/dto"
	"github.com/sahajm/Civet/internal/model"
	"github.com/sahajm/Civet/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService interface {
	CreateUser(fullName, email, phone, password, role string) (*dto.UserResponseDTO, error)
	GetUserByID(id uint) (*dto.UserResponseDTO, error)
	InitializeAdmin(cfg *config.Config) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) CreateUser(fullName, email, phone, password, role string) (*dto.UserResponseDTO, error) {
	if role != model.RoleStudent && role != model.RoleAdmin {
		return nil, apperr.Errorf("%w: unknown role %q", apperr.ErrValidation, role)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("CreateUser: hashing failed")
		return nil, apperr.Errorf("%w: failed to create user", apperr.ErrUpstream)
	}

	user := model.User{
		FullName:     fullName,
		Email:        email,
		Phone:        phone,
		PasswordHash: string(hash),
		Role:         role,
	}
	if role == model.RoleStudent {
		studentType := model.StudentTypeFresh
		user.Type = &studentType
	}

	if err := s.userRepo.Create(&user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Errorf("%w: user already exists", apperr.ErrValidation)
		}
		log.Error().Err(err).Str("email", email).Msg("CreateUser: insert failed")
		return nil, apperr.Errorf("%w: failed to create user", apperr.ErrUpstream)
	}
	resp := dto.ProjectUser(&user)
	return &resp, nil
}

func (s *userService) GetUserByID(id uint) (*dto.UserResponseDTO, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Errorf("%w: user not found", apperr.ErrNotFound)
		}
		return nil, apperr.Errorf("%w: failed to load user", apperr.ErrUpstream)
	}
	resp := dto.ProjectUser(user)
	return &resp, nil
}

// InitializeAdmin is the idempotent startup reconciliation: it creates the
// configured admin account iff no admin exists yet. Safe to re-run.
func (s *userService) InitializeAdmin(cfg *config.Config) error {
	count, err := s.userRepo.CountByRole(model.RoleAdmin)
	if err != nil {
		log.Error().Err(err).Msg("InitializeAdmin: admin count failed")
		return err
	}
	if count > 0 {
		log.Info().Int64("admins", count).Msg("InitializeAdmin: admin already present, nothing to do")
		return nil
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Warn().Msg("InitializeAdmin: no admin credentials configured, skipping bootstrap")
		return nil
	}

	if _, err := s.CreateUser(cfg.Admin.FullName, cfg.Admin.Email, "", cfg.Admin.Password, model.RoleAdmin); err != nil {
		// A concurrent boot may have created it between check and insert.
		if errors.Is(err, apperr.ErrValidation) {
			log.Info().Msg("InitializeAdmin: admin was created concurrently")
			return nil
		}
		return err
	}
	log.Info().Str("email", cfg.Admin.Email).Msg("InitializeAdmin: admin user created")
	return nil
}
