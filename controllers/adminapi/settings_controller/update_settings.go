package settings_controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	settings_cache "github.com/Technizer/ModeFilter-Pro/cache"
	"github.com/Technizer/ModeFilter-Pro/models"
)

// UpdateSettings godoc
// @Summary Update store settings
// @Description Apply a partial update to the global mode and catalog display settings. Omitted fields are left unchanged.
// @Tags Admin - Settings
// @Accept json
// @Produce json
// @Param request body models.UpdateSettingsRequest true "Fields to update"
// @Success 200 {object} models.ApiResponse "Settings updated successfully"
// @Failure 400 {object} models.ApiResponse "Malformed request"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/settings [put]
func (h *Handler) UpdateSettings(c *gin.Context) {
	var req models.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	settings, err := h.Store.UpdateSettings(c, req)
	if err != nil {
		log.Printf("❌ Settings update failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to update settings"))
		return
	}

	// Storefront requests read settings through the TTL cache; drop it so
	// the new mode takes effect on the next fetch, not in five minutes.
	settings_cache.Invalidate()

	log.Printf("✅ Store settings updated (global mode: %s)", settings.GlobalMode)
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Settings updated successfully", settings))
}
