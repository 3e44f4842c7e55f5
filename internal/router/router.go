package router

import (
	"github.com/gin-gonic/gin"
	"github.com/pesabot/pesabot-backend/config"
	"github.com/pesabot/pesabot-backend/internal/app/controller"
	"github.com/pesabot/pesabot-backend/internal/middleware"
)

type Router struct {
	authController  *controller.AuthController
	staffController *controller.StaffController
	tableController *controller.TableController
	authMiddleware  *middleware.AuthMiddleware
	config          *config.Config
}

func NewRouter(
	authController *controller.AuthController,
	staffController *controller.StaffController,
	tableController *controller.TableController,
	authMiddleware *middleware.AuthMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		authController:  authController,
		staffController: staffController,
		tableController: tableController,
		authMiddleware:  authMiddleware,
		config:          cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"message": "PesaBot API is running",
		})
	})

	// Landing page shown after a payment provider redirects the customer back
	router.Static("/callback", "./web/callback")

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/login", r.authController.Login)
			auth.POST("/forgot-password", r.authController.ForgotPassword)
			auth.POST("/verify-otp", r.authController.VerifyOTP)
			auth.POST("/reset-password", r.authController.ResetPassword)
			auth.GET("/me", r.authMiddleware.Authenticate(), r.authController.GetMe)
		}

		admin := v1.Group("/admin")
		admin.Use(r.authMiddleware.Authenticate())
		{
			admin.POST("/staff", r.staffController.CreateStaff)

			admin.GET("/tables", r.tableController.ListTables)
			admin.GET("/tables/:table", r.tableController.ListRecords)
			admin.GET("/tables/:table/export", r.tableController.ExportRecords)
			admin.POST("/tables/:table", r.tableController.CreateRecord)
			admin.PUT("/tables/:table/:id", r.tableController.UpdateRecord)
			admin.DELETE("/tables/:table/:id", r.tableController.DeleteRecord)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
