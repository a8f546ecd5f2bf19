package admin_routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Technizer/ModeFilter-Pro/controllers/adminapi/settings_controller"
	"github.com/Technizer/ModeFilter-Pro/middleware"
)

// SetupSettingsRoutes registers the admin settings endpoints.
func SetupSettingsRoutes(router *gin.RouterGroup, h *settings_controller.Handler) {
	admin := router.Group("/admin")
	admin.Use(middleware.AdminAuth())
	{
		admin.GET("/settings", middleware.RateLimiter(60, time.Minute), h.GetSettings)
		admin.PUT("/settings", middleware.RateLimiter(30, time.Minute), h.UpdateSettings)
	}
}
