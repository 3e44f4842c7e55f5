package repository

import (
	"time"

	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/pkg/logger"
	"gorm.io/gorm"
)

type OTPRepository interface {
	Create(otp *model.OTP) error
	FindUnused(email, code string, purpose model.OTPPurpose) (*model.OTP, error)
	FindUsed(email, code string, purpose model.OTPPurpose) (*model.OTP, error)
	ConsumeIfUnused(id uint) (bool, error)
	DeleteExpired() (int64, error)
}

type otpRepository struct {
	db *gorm.DB
}

func NewOTPRepository(db *gorm.DB) OTPRepository {
	return &otpRepository{db: db}
}

func (r *otpRepository) Create(otp *model.OTP) error {
	logger.Debug("Creating OTP in database", map[string]interface{}{
		"email":   otp.Email,
		"purpose": otp.Purpose,
	})

	if err := r.db.Create(otp).Error; err != nil {
		logger.Error("Failed to create OTP in database", err, map[string]interface{}{
			"email":   otp.Email,
			"purpose": otp.Purpose,
		})
		return err
	}

	logger.Debug("OTP created in database", map[string]interface{}{
		"otp_id": otp.ID,
		"email":  otp.Email,
	})
	return nil
}

func (r *otpRepository) FindUnused(email, code string, purpose model.OTPPurpose) (*model.OTP, error) {
	return r.findByState(email, code, purpose, false)
}

func (r *otpRepository) FindUsed(email, code string, purpose model.OTPPurpose) (*model.OTP, error) {
	return r.findByState(email, code, purpose, true)
}

func (r *otpRepository) findByState(email, code string, purpose model.OTPPurpose, used bool) (*model.OTP, error) {
	logger.Debug("Finding OTP in database", map[string]interface{}{
		"email":   email,
		"purpose": purpose,
		"used":    used,
	})

	var otp model.OTP
	err := r.db.
		Where("email = ? AND code = ? AND purpose = ? AND is_used = ?", email, code, purpose, used).
		Order("created_at DESC").
		First(&otp).Error
	if err != nil {
		// Misses are expected when users mistype codes; not an error condition.
		return nil, err
	}

	return &otp, nil
}

// ConsumeIfUnused flips is_used to true only when it is still false, so two
// concurrent verifications of the same code cannot both succeed. Returns
// whether this call won the transition.
func (r *otpRepository) ConsumeIfUnused(id uint) (bool, error) {
	logger.Debug("Consuming OTP in database", map[string]interface{}{
		"otp_id": id,
	})

	result := r.db.Model(&model.OTP{}).
		Where("id = ? AND is_used = ?", id, false).
		Updates(map[string]interface{}{"is_used": true, "used_at": time.Now()})
	if result.Error != nil {
		logger.Error("Failed to consume OTP in database", result.Error, map[string]interface{}{
			"otp_id": id,
		})
		return false, result.Error
	}

	return result.RowsAffected == 1, nil
}

func (r *otpRepository) DeleteExpired() (int64, error) {
	logger.Debug("Deleting expired OTPs from database")

	result := r.db.Where("expires_at < ?", time.Now()).Delete(&model.OTP{})
	if result.Error != nil {
		logger.Error("Failed to delete expired OTPs from database", result.Error, nil)
		return 0, result.Error
	}

	logger.Debug("Expired OTPs deleted from database", map[string]interface{}{
		"count": result.RowsAffected,
	})
	return result.RowsAffected, nil
}
