package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Stock status values stored on entries. The storefront sort keys
// in_stock/preorder/out_of_stock constrain against these.
const (
	StockInStock    = "in_stock"
	StockPreorder   = "preorder"
	StockOutOfStock = "out_of_stock"
)

// Entry visibility. Only published entries ever reach the storefront.
const (
	EntryPublished = "Published"
	EntryHidden    = "Hidden"
)

// ═══════════════════════════════════════════════════════════
// Main Entry Model (GORM)
// ═══════════════════════════════════════════════════════════

// Entry is one catalog item. The Meta column is the entry-scoped attribute
// store; the per-entry mode override lives there under a well-known key and
// is only ever read through the store adapter's typed accessor.
type Entry struct {
	ID            uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Name          string            `json:"name" gorm:"not null;index"`
	Description   string            `json:"description" gorm:"not null"`
	Price         float64           `json:"price" gorm:"type:numeric(12,2);not null;check:price >= 0"`
	Image         string            `json:"image"`
	RatingAverage float64           `json:"rating_average" gorm:"type:numeric(3,2);default:0"`
	RatingCount   int               `json:"rating_count" gorm:"default:0"`
	StockStatus   string            `json:"stock_status" gorm:"not null;default:'in_stock';check:stock_status IN ('in_stock', 'preorder', 'out_of_stock')"`
	Status        string            `json:"status" gorm:"not null;check:status IN ('Published', 'Hidden');index"`
	Meta          datatypes.JSONMap `json:"meta" gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt     time.Time         `json:"created_at" gorm:"autoCreateTime;index:idx_entries_created,sort:desc"`
	UpdatedAt     time.Time         `json:"updated_at" gorm:"autoUpdateTime"`

	Terms []*Term `json:"terms,omitempty" gorm:"many2many:entry_terms"`
}

// BeforeCreate hook - auto-generate UUID v7
func (e *Entry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Entry) TableName() string {
	return "entries"
}

// EntryTerm is the membership join row between entries and classification
// groups. UUIDv7 term ids keep membership order stable within an axis.
type EntryTerm struct {
	EntryID uuid.UUID `json:"entry_id" gorm:"type:uuid;primaryKey"`
	TermID  uuid.UUID `json:"term_id" gorm:"type:uuid;primaryKey;index"`
}

func (EntryTerm) TableName() string {
	return "entry_terms"
}

// ═══════════════════════════════════════════════════════════
// Response Models
// ═══════════════════════════════════════════════════════════

// EntryCard is the thin per-card payload rendered into the grid.
type EntryCard struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
	Mode  string  `json:"mode"`
}
