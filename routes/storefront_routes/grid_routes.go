package storefront_routes

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Technizer/ModeFilter-Pro/controllers/storefront/grid_controller"
	"github.com/Technizer/ModeFilter-Pro/middleware"
)

// SetupGridRoutes registers the storefront grid endpoints. The shell
// endpoint is public and mints the widget token; the fetch endpoint
// requires that token back.
func SetupGridRoutes(router *gin.RouterGroup, h *grid_controller.Handler) {
	store := router.Group("/store")

	grid := store.Group("/grid")
	{
		grid.GET("/shell", middleware.RateLimiter(60, time.Minute), h.RenderShell)

		grid.POST("", middleware.RateLimiter(120, time.Minute), middleware.WidgetAuth(), h.FetchGrid)
	}
}
