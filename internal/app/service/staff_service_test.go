package service

import (
	"testing"

	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/internal/app/repository"
	"github.com/pesabot/pesabot-backend/internal/db"
	"github.com/pesabot/pesabot-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStaffServiceTest(t *testing.T) (StaffService, repository.AdminRepository) {
	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	adminRepo := repository.NewAdminRepository(testDB)
	return NewStaffService(adminRepo), adminRepo
}

func TestStaffService_CreateStaff(t *testing.T) {
	staffService, _ := setupStaffServiceTest(t)

	tests := []struct {
		name    string
		input   CreateStaffInput
		wantErr error
	}{
		{
			name: "Valid staff account",
			input: CreateStaffInput{
				Name:     "Jane Staff",
				Email:    "jane@example.com",
				Password: "password123",
				Role:     model.RoleSupport,
			},
			wantErr: nil,
		},
		{
			name: "Duplicate email",
			input: CreateStaffInput{
				Name:     "Jane Again",
				Email:    "jane@example.com",
				Password: "password456",
			},
			wantErr: ErrEmailAlreadyExists,
		},
		{
			name: "Duplicate email with different case",
			input: CreateStaffInput{
				Name:     "Jane Again",
				Email:    "Jane@Example.COM",
				Password: "password456",
			},
			wantErr: ErrEmailAlreadyExists,
		},
		{
			name: "Missing name",
			input: CreateStaffInput{
				Email:    "noname@example.com",
				Password: "password123",
			},
			wantErr: ErrMissingFields,
		},
		{
			name: "Missing password",
			input: CreateStaffInput{
				Name:  "No Password",
				Email: "nopass@example.com",
			},
			wantErr: ErrMissingFields,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			admin, err := staffService.CreateStaff(tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, admin)
			} else {
				require.NoError(t, err)
				require.NotNil(t, admin)
				assert.Equal(t, "jane@example.com", admin.Email)
				assert.Equal(t, tt.input.Role, admin.Role)
				assert.True(t, admin.IsActive)
				assert.True(t, util.VerifyPassword(admin.PasswordHash, tt.input.Password))
			}
		})
	}
}

func TestStaffService_CreateStaff_DefaultRole(t *testing.T) {
	staffService, adminRepo := setupStaffServiceTest(t)

	admin, err := staffService.CreateStaff(CreateStaffInput{
		Name:     "Default Role",
		Email:    "default@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	stored, err := adminRepo.FindByEmail("default@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, stored.Role)
}
