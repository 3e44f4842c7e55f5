package repository

import (
	"testing"
	"time"

	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupOTPRepositoryTest(t *testing.T) (OTPRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	return NewOTPRepository(testDB), testDB
}

func createTestOTP(t *testing.T, otpRepo OTPRepository, email, code string) *model.OTP {
	t.Helper()

	otp := &model.OTP{
		Email:     email,
		Code:      code,
		Purpose:   model.PurposeAdminPasswordReset,
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}
	require.NoError(t, otpRepo.Create(otp))
	return otp
}

func TestOTPRepository_FindUnused(t *testing.T) {
	otpRepo, _ := setupOTPRepositoryTest(t)

	created := createTestOTP(t, otpRepo, "admin@example.com", "123456")

	found, err := otpRepo.FindUnused("admin@example.com", "123456", model.PurposeAdminPasswordReset)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.False(t, found.IsUsed)

	_, err = otpRepo.FindUnused("admin@example.com", "654321", model.PurposeAdminPasswordReset)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = otpRepo.FindUnused("other@example.com", "123456", model.PurposeAdminPasswordReset)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestOTPRepository_ConsumeIfUnused(t *testing.T) {
	otpRepo, _ := setupOTPRepositoryTest(t)

	otp := createTestOTP(t, otpRepo, "admin@example.com", "123456")

	consumed, err := otpRepo.ConsumeIfUnused(otp.ID)
	require.NoError(t, err)
	assert.True(t, consumed)

	// A second consumption of the same code loses.
	consumed, err = otpRepo.ConsumeIfUnused(otp.ID)
	require.NoError(t, err)
	assert.False(t, consumed)

	// The code moved from the unused to the used state.
	_, err = otpRepo.FindUnused("admin@example.com", "123456", model.PurposeAdminPasswordReset)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	used, err := otpRepo.FindUsed("admin@example.com", "123456", model.PurposeAdminPasswordReset)
	require.NoError(t, err)
	assert.True(t, used.IsUsed)
	assert.NotNil(t, used.UsedAt)
}

func TestOTPRepository_FindReturnsNewestMatch(t *testing.T) {
	otpRepo, testDB := setupOTPRepositoryTest(t)

	first := createTestOTP(t, otpRepo, "admin@example.com", "123456")
	err := testDB.Model(first).Update("created_at", time.Now().Add(-time.Hour)).Error
	require.NoError(t, err)

	second := createTestOTP(t, otpRepo, "admin@example.com", "123456")

	found, err := otpRepo.FindUnused("admin@example.com", "123456", model.PurposeAdminPasswordReset)
	require.NoError(t, err)
	assert.Equal(t, second.ID, found.ID)
}

func TestOTPRepository_DeleteExpired(t *testing.T) {
	otpRepo, testDB := setupOTPRepositoryTest(t)

	expired := createTestOTP(t, otpRepo, "old@example.com", "111111")
	err := testDB.Model(expired).Update("expires_at", time.Now().Add(-time.Minute)).Error
	require.NoError(t, err)

	createTestOTP(t, otpRepo, "fresh@example.com", "222222")

	deleted, err := otpRepo.DeleteExpired()
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	require.NoError(t, testDB.Model(&model.OTP{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
