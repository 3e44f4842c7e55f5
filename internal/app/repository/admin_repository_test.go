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

func setupAdminRepositoryTest(t *testing.T) (AdminRepository, *gorm.DB) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	return NewAdminRepository(testDB), testDB
}

func TestAdminRepository_CreateAndFind(t *testing.T) {
	adminRepo, _ := setupAdminRepositoryTest(t)

	admin := &model.Admin{
		Name:         "Test Admin",
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}
	require.NoError(t, adminRepo.Create(admin))
	require.NotZero(t, admin.ID)

	byID, err := adminRepo.FindByID(admin.ID)
	require.NoError(t, err)
	assert.Equal(t, admin.Email, byID.Email)

	byEmail, err := adminRepo.FindByEmail("admin@example.com")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, byEmail.ID)

	_, err = adminRepo.FindByEmail("nobody@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAdminRepository_FindByToken(t *testing.T) {
	adminRepo, _ := setupAdminRepositoryTest(t)

	token := "test-token"
	expiry := time.Now().Add(time.Hour)
	admin := &model.Admin{
		Name:         "Test Admin",
		Email:        "admin@example.com",
		PasswordHash: "hash",
		Token:        &token,
		TokenExpiry:  &expiry,
	}
	require.NoError(t, adminRepo.Create(admin))

	found, err := adminRepo.FindByToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, found.ID)

	_, err = adminRepo.FindByToken("unknown-token")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestAdminRepository_ClearExpiredTokens(t *testing.T) {
	adminRepo, _ := setupAdminRepositoryTest(t)

	expiredToken := "expired-token"
	expiredAt := time.Now().Add(-time.Hour)
	expired := &model.Admin{
		Name:         "Expired",
		Email:        "expired@example.com",
		PasswordHash: "hash",
		Token:        &expiredToken,
		TokenExpiry:  &expiredAt,
	}
	require.NoError(t, adminRepo.Create(expired))

	liveToken := "live-token"
	liveAt := time.Now().Add(time.Hour)
	live := &model.Admin{
		Name:         "Live",
		Email:        "live@example.com",
		PasswordHash: "hash",
		Token:        &liveToken,
		TokenExpiry:  &liveAt,
	}
	require.NoError(t, adminRepo.Create(live))

	cleared, err := adminRepo.ClearExpiredTokens()
	require.NoError(t, err)
	assert.Equal(t, int64(1), cleared)

	// The expired admin lost both token columns.
	stored, err := adminRepo.FindByID(expired.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.Token)
	assert.Nil(t, stored.TokenExpiry)

	// The live token still resolves.
	found, err := adminRepo.FindByToken(liveToken)
	require.NoError(t, err)
	assert.Equal(t, live.ID, found.ID)
}
