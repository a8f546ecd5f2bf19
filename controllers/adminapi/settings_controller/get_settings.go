package settings_controller

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Technizer/ModeFilter-Pro/models"
)

// SettingsStore is the settings slice of the store adapter.
type SettingsStore interface {
	Settings(ctx context.Context) (models.StoreSettings, error)
	UpdateSettings(ctx context.Context, req models.UpdateSettingsRequest) (models.StoreSettings, error)
}

// Handler owns the admin settings endpoints.
type Handler struct {
	Store SettingsStore
}

func NewHandler(store SettingsStore) *Handler {
	return &Handler{Store: store}
}

// GetSettings godoc
// @Summary Get store settings
// @Description Retrieve the global mode and catalog display settings.
// @Tags Admin - Settings
// @Produce json
// @Success 200 {object} models.ApiResponse "Settings fetched successfully"
// @Failure 500 {object} models.ApiResponse "Internal server error"
// @Router /admin/settings [get]
func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.Store.Settings(c)
	if err != nil {
		log.Printf("❌ Settings read failed: %v", err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch settings"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Settings fetched successfully", settings))
}
