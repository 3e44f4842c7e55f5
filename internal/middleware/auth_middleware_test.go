package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/internal/app/repository"
	"github.com/pesabot/pesabot-backend/internal/app/service"
	"github.com/pesabot/pesabot-backend/internal/db"
	"github.com/pesabot/pesabot-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAuthMiddlewareTest(t *testing.T) (*gin.Engine, service.AuthService) {
	gin.SetMode(gin.TestMode)

	testDB, err := db.SetupTestDB(t)
	require.NoError(t, err)

	adminRepo := repository.NewAdminRepository(testDB)
	authService := service.NewAuthService(adminRepo, time.Hour)

	hash, err := util.HashPassword("password123")
	require.NoError(t, err)
	admin := &model.Admin{
		Name:         "Test Admin",
		Email:        "admin@example.com",
		PasswordHash: hash,
		IsActive:     true,
	}
	require.NoError(t, adminRepo.Create(admin))

	authMiddleware := NewAuthMiddleware(authService)

	router := gin.New()
	router.GET("/protected", authMiddleware.Authenticate(), func(c *gin.Context) {
		current, ok := GetAdmin(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"email": current.Email})
	})

	return router, authService
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	router, authService := setupAuthMiddlewareTest(t)

	result, err := authService.Login("admin@example.com", "password123")
	require.NoError(t, err)

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
	}{
		{
			name:       "Valid bearer token",
			authHeader: "Bearer " + result.Token,
			wantStatus: http.StatusOK,
		},
		{
			name:       "Missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Malformed header",
			authHeader: result.Token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Wrong scheme",
			authHeader: "Basic " + result.Token,
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "Unknown token",
			authHeader: "Bearer deadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/protected", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Contains(t, w.Body.String(), "admin@example.com")
			}
		})
	}
}
