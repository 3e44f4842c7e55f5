package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesabot/pesabot-backend/internal/app/model"
	"github.com/pesabot/pesabot-backend/internal/app/service"
	apperrors "github.com/pesabot/pesabot-backend/internal/errors"
	"github.com/pesabot/pesabot-backend/internal/middleware"
)

type StaffController struct {
	staffService service.StaffService
}

func NewStaffController(staffService service.StaffService) *StaffController {
	return &StaffController{staffService: staffService}
}

type CreateStaffRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

// CreateStaff provisions a new staff account
// POST /api/v1/admin/staff
func (ctrl *StaffController) CreateStaff(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	var req CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("Invalid create-staff request", map[string]interface{}{
			"error": err.Error(),
		})
		apperrors.BadRequest(c, apperrors.ValidationRequired, "Name, email and password are required")
		return
	}

	admin, err := ctrl.staffService.CreateStaff(service.CreateStaffInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.AdminRole(req.Role),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			apperrors.BadRequest(c, apperrors.ValidationRequired, "Name, email and password are required")
		case errors.Is(err, service.ErrEmailAlreadyExists):
			log.Warn("Staff creation failed: email exists", map[string]interface{}{
				"email": req.Email,
			})
			apperrors.Conflict(c, apperrors.AuthEmailAlreadyExists, "Admin with this email already exists")
		default:
			log.Error("Failed to create staff account", err, map[string]interface{}{
				"email": req.Email,
			})
			apperrors.ParseAndRespond(c, http.StatusInternalServerError, err, "create staff")
		}
		return
	}

	log.Info("Staff account created", map[string]interface{}{
		"admin_id": admin.ID,
		"email":    admin.Email,
	})

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"admin":   admin.Profile(),
	})
}
