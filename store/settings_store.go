package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Technizer/ModeFilter-Pro/models"
)

// Settings returns the single store settings row. A missing row yields the
// defaults rather than an error so a fresh install renders a sellable store.
func (s *Store) Settings(ctx context.Context) (models.StoreSettings, error) {
	var settings models.StoreSettings
	err := s.DB.WithContext(ctx).First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.DefaultSettings(), nil
		}
		return models.StoreSettings{}, fmt.Errorf("settings query: %w", err)
	}
	return settings, nil
}

// UpdateSettings applies a partial update and returns the persisted row.
// The row is created on first write.
func (s *Store) UpdateSettings(ctx context.Context, req models.UpdateSettingsRequest) (models.StoreSettings, error) {
	var settings models.StoreSettings
	err := s.DB.WithContext(ctx).First(&settings).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return models.StoreSettings{}, fmt.Errorf("settings query: %w", err)
		}
		settings = models.DefaultSettings()
	}

	if req.GlobalMode != nil {
		settings.GlobalMode = *req.GlobalMode
	}
	if req.HidePrices != nil {
		settings.HidePrices = *req.HidePrices
	}
	if req.ReplaceButton != nil {
		settings.ReplaceButton = *req.ReplaceButton
	}
	if req.ButtonLabel != nil {
		settings.ButtonLabel = *req.ButtonLabel
	}
	if req.ButtonURL != nil {
		settings.ButtonURL = *req.ButtonURL
	}

	if err := s.DB.WithContext(ctx).Save(&settings).Error; err != nil {
		return models.StoreSettings{}, fmt.Errorf("settings save: %w", err)
	}
	return settings, nil
}
