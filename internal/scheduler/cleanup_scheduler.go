package scheduler

import (
	"github.com/pesabot/pesabot-backend/internal/app/repository"
	"github.com/pesabot/pesabot-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// CleanupScheduler sweeps expired OTP rows and stale login tokens.
type CleanupScheduler struct {
	cron      *cron.Cron
	otpRepo   repository.OTPRepository
	adminRepo repository.AdminRepository
}

func NewCleanupScheduler(otpRepo repository.OTPRepository, adminRepo repository.AdminRepository) *CleanupScheduler {
	return &CleanupScheduler{
		cron:      cron.New(),
		otpRepo:   otpRepo,
		adminRepo: adminRepo,
	}
}

// Start schedules the daily sweep at 03:00 server time.
func (s *CleanupScheduler) Start() error {
	_, err := s.cron.AddFunc("0 3 * * *", s.Sweep)
	if err != nil {
		logger.Error("Failed to add cron job for cleanup", err)
		return err
	}

	s.cron.Start()
	logger.Info("Cleanup scheduler started (daily at 3:00 AM)", nil)

	return nil
}

// Sweep runs one cleanup pass.
func (s *CleanupScheduler) Sweep() {
	logger.Info("Starting scheduled cleanup", nil)

	otps, err := s.otpRepo.DeleteExpired()
	if err != nil {
		logger.Error("Failed to delete expired OTPs", err)
	}

	tokens, err := s.adminRepo.ClearExpiredTokens()
	if err != nil {
		logger.Error("Failed to clear expired admin tokens", err)
	}

	logger.Info("Scheduled cleanup finished", map[string]interface{}{
		"otps_deleted":   otps,
		"tokens_cleared": tokens,
	})
}

// Stop stops the scheduler.
func (s *CleanupScheduler) Stop() {
	logger.Info("Stopping cleanup scheduler...", nil)
	s.cron.Stop()
	logger.Info("Cleanup scheduler stopped", nil)
}
