package db

import (
	"os"
	"strings"

	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/pkg/logger"
	"github.com/pesabot/pesabot-backend/pkg/util"
)

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	models := []interface{}{
		&model.Admin{},
		&model.OTP{},
		&model.Customer{},
		&model.Transaction{},
	}

	if err := DB.AutoMigrate(models...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully", map[string]interface{}{
		"models_count": len(models),
	})
	return nil
}

// SeedInitialAdmin creates the bootstrap admin account when the admins table
// is empty. Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD; nothing is
// created when they are unset.
func SeedInitialAdmin() error {
	var count int64
	if err := DB.Model(&model.Admin{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.Debug("Admins already present, skipping initial seed", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	email := strings.ToLower(os.Getenv("ADMIN_EMAIL"))
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		logger.Warn("ADMIN_EMAIL / ADMIN_PASSWORD not set, no initial admin created")
		return nil
	}

	hash, err := util.HashPassword(password)
	if err != nil {
		return err
	}

	admin := &model.Admin{
		Name:         "Administrator",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := DB.Create(admin).Error; err != nil {
		return err
	}

	logger.Info("Initial admin account created", map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})
	return nil
}
