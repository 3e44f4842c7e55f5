package service

import (
	"errors"
	"strings"

	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/internal/app/repository"
	"github.com/pesabot/pesabot-backend/pkg/logger"
	"github.com/pesabot/pesabot-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrMissingFields      = errors.New("name, email and password are required")
	ErrEmailAlreadyExists = errors.New("admin with this email already exists")
)

type CreateStaffInput struct {
	Name     string
	Email    string
	Password string
	Role     model.AdminRole
}

type StaffService interface {
	CreateStaff(input CreateStaffInput) (*model.Admin, error)
}

type staffService struct {
	adminRepo repository.AdminRepository
}

func NewStaffService(adminRepo repository.AdminRepository) StaffService {
	return &staffService{adminRepo: adminRepo}
}

func (s *staffService) CreateStaff(input CreateStaffInput) (*model.Admin, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" {
		return nil, ErrMissingFields
	}

	email := strings.ToLower(input.Email)

	logger.Info("Creating staff account", map[string]interface{}{
		"email": email,
		"role":  input.Role,
	})

	existing, err := s.adminRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing admin", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}
	if existing != nil {
		logger.Warn("Staff creation failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, ErrEmailAlreadyExists
	}

	hash, err := util.HashPassword(input.Password)
	if err != nil {
		logger.Error("Failed to hash staff password", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	role := input.Role
	if role == "" {
		role = model.RoleAdmin
	}

	admin := &model.Admin{
		Name:         input.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.adminRepo.Create(admin); err != nil {
		logger.Error("Failed to create staff account", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	logger.Info("Staff account created", map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
		"role":     admin.Role,
	})
	return admin, nil
}
