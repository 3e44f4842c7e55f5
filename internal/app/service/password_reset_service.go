package service

import (
	"context"
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
	ErrInvalidOTP      = errors.New("invalid otp")
	ErrOTPExpired      = errors.New("otp expired")
	ErrOTPNotVerified  = errors.New("otp not verified")
	ErrAdminNotFound   = errors.New("admin not found")
	ErrTooManyRequests = errors.New("too many reset requests")
)

// ResetRequestMessage is returned for every reset request, whether or not
// the email belongs to an admin, so responses cannot be used to enumerate
// accounts.
const ResetRequestMessage = "If this email exists, an OTP has been sent"

// Mailer delivers one-time codes. Send failures are logged, never surfaced:
// the reset flow treats email as fire-and-forget.
type Mailer interface {
	SendOTPEmail(ctx context.Context, toEmail, toName, code string) error
}

// ResetRateLimiter caps how often a single email can request a code.
// A nil limiter disables the cap.
type ResetRateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) (string, error)
	VerifyOTP(email, code string) error
	CompleteReset(email, code, newPassword string) error
}

type passwordResetService struct {
	otpRepo   repository.OTPRepository
	adminRepo repository.AdminRepository
	mailer    Mailer
	limiter   ResetRateLimiter
	otpExpiry time.Duration
}

func NewPasswordResetService(
	otpRepo repository.OTPRepository,
	adminRepo repository.AdminRepository,
	mailer Mailer,
	limiter ResetRateLimiter,
	otpExpiry time.Duration,
) PasswordResetService {
	return &passwordResetService{
		otpRepo:   otpRepo,
		adminRepo: adminRepo,
		mailer:    mailer,
		limiter:   limiter,
		otpExpiry: otpExpiry,
	}
}

// RequestReset always records a fresh OTP for the email; the mail goes out
// only when the email belongs to an admin. The returned message is identical
// in both cases.
func (s *passwordResetService) RequestReset(ctx context.Context, email string) (string, error) {
	email = strings.ToLower(email)

	logger.Info("Processing password reset request", map[string]interface{}{
		"email": email,
	})

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, email)
		if err != nil {
			// The limiter is best-effort; a broken limiter must not take
			// the reset flow down with it.
			logger.Warn("Reset rate limiter unavailable, continuing", map[string]interface{}{
				"email": email,
				"error": err.Error(),
			})
		} else if !allowed {
			logger.Warn("Password reset request rate limited", map[string]interface{}{
				"email": email,
			})
			return "", ErrTooManyRequests
		}
	}

	admin, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find admin for password reset", err, map[string]interface{}{
				"email": email,
			})
			return "", err
		}
		// Unknown email: still generate and store a code below so timing
		// and responses stay uniform.
		admin = nil
		logger.Warn("Password reset requested for non-existent email", map[string]interface{}{
			"email": email,
		})
	}

	code, err := util.GenerateOTP()
	if err != nil {
		logger.Error("Failed to generate OTP", err, map[string]interface{}{
			"email": email,
		})
		return "", err
	}

	otp := &model.OTP{
		Email:     email,
		Code:      code,
		Purpose:   model.PurposeAdminPasswordReset,
		ExpiresAt: time.Now().Add(s.otpExpiry),
	}
	if err := s.otpRepo.Create(otp); err != nil {
		logger.Error("Failed to store OTP", err, map[string]interface{}{
			"email": email,
		})
		return "", err
	}

	if admin != nil {
		name := admin.Name
		if name == "" {
			name = "Admin"
		}
		if err := s.mailer.SendOTPEmail(ctx, email, name, code); err != nil {
			logger.Error("Failed to send OTP email", err, map[string]interface{}{
				"email": email,
			})
		}
	}

	return ResetRequestMessage, nil
}

// VerifyOTP consumes an unused, unexpired code. Consumption is atomic, so a
// code verifies at most once even under concurrent requests.
func (s *passwordResetService) VerifyOTP(email, code string) error {
	email = strings.ToLower(email)

	otp, err := s.otpRepo.FindUnused(email, code, model.PurposeAdminPasswordReset)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("OTP verification failed: no matching code", map[string]interface{}{
				"email": email,
			})
			return ErrInvalidOTP
		}
		logger.Error("Failed to look up OTP", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	if otp.IsExpired() {
		logger.Warn("OTP verification failed: code expired", map[string]interface{}{
			"email":      email,
			"expires_at": otp.ExpiresAt,
		})
		return ErrOTPExpired
	}

	consumed, err := s.otpRepo.ConsumeIfUnused(otp.ID)
	if err != nil {
		logger.Error("Failed to consume OTP", err, map[string]interface{}{
			"otp_id": otp.ID,
		})
		return err
	}
	if !consumed {
		// Another request consumed the code between our read and write.
		logger.Warn("OTP verification lost consumption race", map[string]interface{}{
			"otp_id": otp.ID,
		})
		return ErrInvalidOTP
	}

	logger.Info("OTP verified", map[string]interface{}{
		"email":  email,
		"otp_id": otp.ID,
	})
	return nil
}

// CompleteReset sets a new password. It requires the code to have been
// verified first: only a used record matching the same triple qualifies.
func (s *passwordResetService) CompleteReset(email, code, newPassword string) error {
	email = strings.ToLower(email)

	if _, err := s.otpRepo.FindUsed(email, code, model.PurposeAdminPasswordReset); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset completion without prior verification", map[string]interface{}{
				"email": email,
			})
			return ErrOTPNotVerified
		}
		logger.Error("Failed to look up verified OTP", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	admin, err := s.adminRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Password reset completion for missing admin", map[string]interface{}{
				"email": email,
			})
			return ErrAdminNotFound
		}
		logger.Error("Failed to find admin for password reset", err, map[string]interface{}{
			"email": email,
		})
		return err
	}

	hash, err := util.HashPassword(newPassword)
	if err != nil {
		logger.Error("Failed to hash new password", err, map[string]interface{}{
			"admin_id": admin.ID,
		})
		return err
	}

	admin.PasswordHash = hash
	if err := s.adminRepo.Update(admin); err != nil {
		logger.Error("Failed to update admin password", err, map[string]interface{}{
			"admin_id": admin.ID,
		})
		return err
	}

	logger.Info("Admin password reset successful", map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})
	return nil
}
