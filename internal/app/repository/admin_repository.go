package repository

import (
	"time"

	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/pkg/logger"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(admin *model.Admin) error
	FindByID(id uint) (*model.Admin, error)
	FindByEmail(email string) (*model.Admin, error)
	FindByToken(token string) (*model.Admin, error)
	Update(admin *model.Admin) error
	ClearExpiredTokens() (int64, error)
}

type adminRepository struct {
	db *gorm.DB
}

func NewAdminRepository(db *gorm.DB) AdminRepository {
	return &adminRepository{db: db}
}

func (r *adminRepository) Create(admin *model.Admin) error {
	logger.Debug("Creating admin in database", map[string]interface{}{
		"email": admin.Email,
	})

	if err := r.db.Create(admin).Error; err != nil {
		logger.Error("Failed to create admin in database", err, map[string]interface{}{
			"email": admin.Email,
		})
		return err
	}

	logger.Debug("Admin created in database", map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})
	return nil
}

func (r *adminRepository) FindByID(id uint) (*model.Admin, error) {
	logger.Debug("Finding admin by ID in database", map[string]interface{}{
		"admin_id": id,
	})

	var admin model.Admin
	if err := r.db.First(&admin, id).Error; err != nil {
		logger.Error("Failed to find admin by ID in database", err, map[string]interface{}{
			"admin_id": id,
		})
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepository) FindByEmail(email string) (*model.Admin, error) {
	logger.Debug("Finding admin by email in database", map[string]interface{}{
		"email": email,
	})

	var admin model.Admin
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		logger.Error("Failed to find admin by email in database", err, map[string]interface{}{
			"email": email,
		})
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepository) FindByToken(token string) (*model.Admin, error) {
	logger.Debug("Finding admin by token in database", nil)

	var admin model.Admin
	if err := r.db.Where("token = ?", token).First(&admin).Error; err != nil {
		// Not logged as an error: unknown tokens are an expected outcome
		// of every request carrying a stale credential.
		return nil, err
	}

	return &admin, nil
}

func (r *adminRepository) Update(admin *model.Admin) error {
	logger.Debug("Updating admin in database", map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})

	if err := r.db.Save(admin).Error; err != nil {
		logger.Error("Failed to update admin in database", err, map[string]interface{}{
			"admin_id": admin.ID,
			"email":    admin.Email,
		})
		return err
	}

	return nil
}

// ClearExpiredTokens nulls out token and token_expiry on every admin whose
// token has passed its expiry. Both columns are cleared together.
func (r *adminRepository) ClearExpiredTokens() (int64, error) {
	logger.Debug("Clearing expired admin tokens in database")

	result := r.db.Model(&model.Admin{}).
		Where("token IS NOT NULL AND token_expiry < ?", time.Now()).
		Updates(map[string]interface{}{"token": nil, "token_expiry": nil})
	if result.Error != nil {
		logger.Error("Failed to clear expired admin tokens", result.Error, nil)
		return 0, result.Error
	}

	logger.Debug("Expired admin tokens cleared", map[string]interface{}{
		"count": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
