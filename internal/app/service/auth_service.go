package service

import (
	"errors"
	"strings"
	"time"

	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/internal/app/repository"
	"github.com/pesabot/pesabot-backend/pkg/logger"
	"github.com/pesabot/pesabot-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("admin account inactive")
)

// LoginResult is returned to a successfully authenticated admin.
type LoginResult struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Admin     model.Profile `json:"admin"`
}

type AuthService interface {
	Login(email, password string) (*LoginResult, error)
	VerifyToken(token string) (*model.Admin, error)
}

type authService struct {
	adminRepo   repository.AdminRepository
	tokenExpiry time.Duration
}

func NewAuthService(adminRepo repository.AdminRepository, tokenExpiry time.Duration) AuthService {
	return &authService{
		adminRepo:   adminRepo,
		tokenExpiry: tokenExpiry,
	}
}

func (s *authService) Login(email, password string) (*LoginResult, error) {
	email = strings.ToLower(email)

	logger.Info("Admin login attempt", map[string]interface{}{
		"email": email,
	})

	admin, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: admin not found", map[string]interface{}{
				"email": email,
			})
			return nil, ErrInvalidCredentials
		}
		logger.Error("Failed to find admin for login", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	if !util.VerifyPassword(admin.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":    email,
			"admin_id": admin.ID,
		})
		return nil, ErrInvalidCredentials
	}

	if !admin.IsActive {
		logger.Warn("Login failed: account inactive", map[string]interface{}{
			"email":    email,
			"admin_id": admin.ID,
		})
		return nil, ErrAccountInactive
	}

	token, err := util.GenerateToken()
	if err != nil {
		logger.Error("Failed to generate login token", err, map[string]interface{}{
			"admin_id": admin.ID,
		})
		return nil, err
	}

	now := time.Now()
	expiry := now.Add(s.tokenExpiry)
	admin.Token = &token
	admin.TokenExpiry = &expiry
	admin.LastLoginAt = &now

	if err := s.adminRepo.Update(admin); err != nil {
		logger.Error("Failed to store login token", err, map[string]interface{}{
			"admin_id": admin.ID,
		})
		return nil, err
	}

	logger.Info("Admin logged in successfully", map[string]interface{}{
		"admin_id":   admin.ID,
		"email":      admin.Email,
		"expires_at": expiry,
	})

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiry,
		Admin:     admin.Profile(),
	}, nil
}

// VerifyToken resolves a bearer token to its admin. A missing, unknown, or
// expired token yields (nil, nil) rather than an error: callers treat the
// nil admin as the unauthenticated state.
func (s *authService) VerifyToken(token string) (*model.Admin, error) {
	if token == "" {
		return nil, nil
	}

	admin, err := s.adminRepo.FindByToken(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error("Failed to look up login token", err, nil)
		return nil, err
	}

	if admin.TokenExpiry == nil || admin.TokenExpiry.Before(time.Now()) {
		logger.Debug("Rejected expired login token", map[string]interface{}{
			"admin_id": admin.ID,
		})
		return nil, nil
	}

	return admin, nil
}
