package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Global mode values. Hybrid only changes which overrides the admin UI
// exposes; at resolution time it behaves like sell.
const (
	GlobalModeSell    = "sell"
	GlobalModeCatalog = "catalog"
	GlobalModeHybrid  = "hybrid"
)

// StoreSettings is the single externally-persisted settings record. It is
// read once per request and treated as an immutable input to mode
// resolution; writes belong to the admin subsystem.
type StoreSettings struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	GlobalMode    string    `json:"global_mode" gorm:"not null;default:'sell';check:global_mode IN ('sell', 'catalog', 'hybrid')"`
	HidePrices    bool      `json:"hide_prices" gorm:"default:true"`
	ReplaceButton bool      `json:"replace_button" gorm:"default:true"`
	ButtonLabel   string    `json:"button_label" gorm:"default:'Enquire'"`
	ButtonURL     string    `json:"button_url"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (s *StoreSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (StoreSettings) TableName() string {
	return "store_settings"
}

// DefaultSettings mirrors the defaults applied when no settings row exists.
func DefaultSettings() StoreSettings {
	return StoreSettings{
		GlobalMode:    GlobalModeSell,
		HidePrices:    true,
		ReplaceButton: true,
		ButtonLabel:   "Enquire",
	}
}

// UpdateSettingsRequest is the admin write payload. Nil fields are left
// unchanged.
type UpdateSettingsRequest struct {
	GlobalMode    *string `json:"global_mode" binding:"omitempty,oneof=sell catalog hybrid"`
	HidePrices    *bool   `json:"hide_prices"`
	ReplaceButton *bool   `json:"replace_button"`
	ButtonLabel   *string `json:"button_label"`
	ButtonURL     *string `json:"button_url"`
}
