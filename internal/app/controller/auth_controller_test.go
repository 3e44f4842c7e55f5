package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/internal/app/repository"
	"github.com/pesabot/pesabot-backend/internal/app/service"
	"github.com/pesabot/pesabot-backend/internal/db"
	"github.com/pesabot/pesabot-backend/internal/middleware"
	"github.com/pesabot/pesabot-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingMailer struct {
	sent int
}

func (m *recordingMailer) SendOTPEmail(_ context.Context, _, _, _ string) error {
	m.sent++
	return nil
}

type authControllerFixture struct {
	router    *gin.Engine
	adminRepo repository.AdminRepository
	testDB    *gorm.DB
	mailer    *recordingMailer
}

func setupAuthControllerTest(t *testing.T) *authControllerFixture {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	adminRepo := repository.NewAdminRepository(testDB)
	otpRepo := repository.NewOTPRepository(testDB)
	mailer := &recordingMailer{}

	authService := service.NewAuthService(adminRepo, time.Hour)
	passwordResetService := service.NewPasswordResetService(otpRepo, adminRepo, mailer, nil, 10*time.Minute)

	ctrl := NewAuthController(authService, passwordResetService)
	authMiddleware := middleware.NewAuthMiddleware(authService)

	router := gin.New()
	router.POST("/login", ctrl.Login)
	router.POST("/forgot-password", ctrl.ForgotPassword)
	router.POST("/verify-otp", ctrl.VerifyOTP)
	router.POST("/reset-password", ctrl.ResetPassword)
	router.GET("/me", authMiddleware.Authenticate(), ctrl.GetMe)

	return &authControllerFixture{
		router:    router,
		adminRepo: adminRepo,
		testDB:    testDB,
		mailer:    mailer,
	}
}

func (f *authControllerFixture) createAdmin(t *testing.T, email, password string, active bool) *model.Admin {
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
	require.NoError(t, f.adminRepo.Create(admin))
	return admin
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthController_Login_Success(t *testing.T) {
	f := setupAuthControllerTest(t)
	f.createAdmin(t, "admin@example.com", "password123", true)

	w := postJSON(t, f.router, "/login", LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response["token"])
	assert.NotEmpty(t, response["expires_at"])
	admin := response["admin"].(map[string]interface{})
	assert.Equal(t, "admin@example.com", admin["email"])
}

func TestAuthController_Login_InvalidCredentials(t *testing.T) {
	f := setupAuthControllerTest(t)
	f.createAdmin(t, "admin@example.com", "password123", true)

	w := postJSON(t, f.router, "/login", LoginRequest{
		Email:    "admin@example.com",
		Password: "wrongpassword",
	})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")
}

func TestAuthController_Login_InactiveAccount(t *testing.T) {
	f := setupAuthControllerTest(t)
	f.createAdmin(t, "admin@example.com", "password123", false)

	w := postJSON(t, f.router, "/login", LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthController_Login_MissingFields(t *testing.T) {
	f := setupAuthControllerTest(t)

	w := postJSON(t, f.router, "/login", map[string]string{"email": "admin@example.com"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthController_ForgotPassword_GenericResponse(t *testing.T) {
	f := setupAuthControllerTest(t)
	f.createAdmin(t, "admin@example.com", "password123", true)

	// Known and unknown emails get the same 200 and the same message.
	for _, email := range []string{"admin@example.com", "nobody@example.com"} {
		w := postJSON(t, f.router, "/forgot-password", ForgotPasswordRequest{Email: email})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), service.ResetRequestMessage)
	}

	// Only the known email got a mail.
	assert.Equal(t, 1, f.mailer.sent)
}

func TestAuthController_VerifyOTP_Invalid(t *testing.T) {
	f := setupAuthControllerTest(t)
	f.createAdmin(t, "admin@example.com", "password123", true)

	w := postJSON(t, f.router, "/verify-otp", VerifyOTPRequest{
		Email: "admin@example.com",
		OTP:   "000000",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "OTP_INVALID")
}

func TestAuthController_PasswordResetFlow(t *testing.T) {
	f := setupAuthControllerTest(t)
	f.createAdmin(t, "admin@example.com", "oldpassword", true)

	w := postJSON(t, f.router, "/forgot-password", ForgotPasswordRequest{Email: "admin@example.com"})
	require.Equal(t, http.StatusOK, w.Code)

	var otp model.OTP
	err := f.testDB.Where("email = ?", "admin@example.com").Order("created_at DESC").First(&otp).Error
	require.NoError(t, err)

	// Completing before verifying is rejected.
	w = postJSON(t, f.router, "/reset-password", ResetPasswordRequest{
		Email:       "admin@example.com",
		OTP:         otp.Code,
		NewPassword: "newpassword",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "OTP_NOT_VERIFIED")

	w = postJSON(t, f.router, "/verify-otp", VerifyOTPRequest{
		Email: "admin@example.com",
		OTP:   otp.Code,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = postJSON(t, f.router, "/reset-password", ResetPasswordRequest{
		Email:       "admin@example.com",
		OTP:         otp.Code,
		NewPassword: "newpassword",
	})
	require.Equal(t, http.StatusOK, w.Code)

	// The old password no longer works, the new one does.
	w = postJSON(t, f.router, "/login", LoginRequest{
		Email:    "admin@example.com",
		Password: "oldpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postJSON(t, f.router, "/login", LoginRequest{
		Email:    "admin@example.com",
		Password: "newpassword",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthController_GetMe(t *testing.T) {
	f := setupAuthControllerTest(t)
	f.createAdmin(t, "admin@example.com", "password123", true)

	w := postJSON(t, f.router, "/login", LoginRequest{
		Email:    "admin@example.com",
		Password: "password123",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var loginResponse map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResponse))
	token := loginResponse["token"].(string)

	t.Run("With valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin@example.com")
	})

	t.Run("Without token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("With bogus token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/me", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		w := httptest.NewRecorder()
		f.router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
