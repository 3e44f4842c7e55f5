package service

import (
	"testing"
	"time"

	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/internal/app/repository"
	"github.com/pesabot/pesabot-backend/internal/db"
	"github.com/pesabot/pesabot-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthServiceTest(t *testing.T) (AuthService, repository.AdminRepository) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	adminRepo := repository.NewAdminRepository(testDB)
	authService := NewAuthService(adminRepo, time.Hour)

	return authService, adminRepo
}

func createTestAdmin(t *testing.T, adminRepo repository.AdminRepository, email, password string, active bool) *model.Admin {
	t.Helper()

	hash, err := util.HashPassword(password)
	require.NoError(t, err)

	admin := &model.Admin{
		Name:         "Test Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		IsActive:     active,
	}
	require.NoError(t, adminRepo.Create(admin))
	return admin
}

func TestAuthService_Login(t *testing.T) {
	authService, adminRepo := setupAuthServiceTest(t)

	email := "admin@example.com"
	password := "password123"
	createTestAdmin(t, adminRepo, email, password, true)
	createTestAdmin(t, adminRepo, "inactive@example.com", password, false)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{
			name:     "Valid login",
			email:    email,
			password: password,
			wantErr:  nil,
		},
		{
			name:     "Email is case-insensitive",
			email:    "Admin@Example.COM",
			password: password,
			wantErr:  nil,
		},
		{
			name:     "Wrong password",
			email:    email,
			password: "wrongpassword",
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Non-existing admin",
			email:    "notfound@example.com",
			password: password,
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "Inactive account",
			email:    "inactive@example.com",
			password: password,
			wantErr:  ErrAccountInactive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := authService.Login(tt.email, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				require.NoError(t, err)
				require.NotNil(t, result)
				assert.NotEmpty(t, result.Token)
				assert.Len(t, result.Token, 64) // 32 random bytes, hex encoded
				assert.Equal(t, email, result.Admin.Email)
				assert.WithinDuration(t, time.Now().Add(time.Hour), result.ExpiresAt, 5*time.Second)
			}
		})
	}
}

func TestAuthService_Login_IssuesFreshToken(t *testing.T) {
	authService, adminRepo := setupAuthServiceTest(t)

	email := "admin@example.com"
	createTestAdmin(t, adminRepo, email, "password123", true)

	first, err := authService.Login(email, "password123")
	require.NoError(t, err)
	second, err := authService.Login(email, "password123")
	require.NoError(t, err)

	assert.NotEqual(t, first.Token, second.Token)

	// The old token was overwritten and no longer authenticates.
	admin, err := authService.VerifyToken(first.Token)
	require.NoError(t, err)
	assert.Nil(t, admin)

	admin, err = authService.VerifyToken(second.Token)
	require.NoError(t, err)
	require.NotNil(t, admin)
	assert.Equal(t, email, admin.Email)
}

func TestAuthService_VerifyToken(t *testing.T) {
	authService, adminRepo := setupAuthServiceTest(t)

	email := "admin@example.com"
	created := createTestAdmin(t, adminRepo, email, "password123", true)

	result, err := authService.Login(email, "password123")
	require.NoError(t, err)

	t.Run("Valid token resolves to admin", func(t *testing.T) {
		admin, err := authService.VerifyToken(result.Token)
		require.NoError(t, err)
		require.NotNil(t, admin)
		assert.Equal(t, created.ID, admin.ID)
	})

	t.Run("Empty token yields nil", func(t *testing.T) {
		admin, err := authService.VerifyToken("")
		require.NoError(t, err)
		assert.Nil(t, admin)
	})

	t.Run("Unknown token yields nil", func(t *testing.T) {
		admin, err := authService.VerifyToken("deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")
		require.NoError(t, err)
		assert.Nil(t, admin)
	})

	t.Run("Expired token yields nil", func(t *testing.T) {
		stored, err := adminRepo.FindByEmail(email)
		require.NoError(t, err)
		past := time.Now().Add(-time.Minute)
		stored.TokenExpiry = &past
		require.NoError(t, adminRepo.Update(stored))

		admin, err := authService.VerifyToken(result.Token)
		require.NoError(t, err)
		assert.Nil(t, admin)
	})
}
