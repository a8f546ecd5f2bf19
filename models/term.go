package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Classification axes. The order category → tag → brand is significant for
// mode resolution and is fixed everywhere.
const (
	AxisCategory = "category"
	AxisTag      = "tag"
	AxisBrand    = "brand"
)

// Axes returns the three classification axes in resolution order.
func Axes() []string {
	return []string{AxisCategory, AxisTag, AxisBrand}
}

// Term is one classification group on a single axis. The Meta column is the
// group-scoped attribute store holding the group-level mode default.
type Term struct {
	ID        uuid.UUID         `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string            `json:"name" gorm:"not null"`
	Slug      string            `json:"slug" gorm:"not null;uniqueIndex:idx_terms_axis_slug,priority:2"`
	Taxonomy  string            `json:"taxonomy" gorm:"not null;check:taxonomy IN ('category', 'tag', 'brand');uniqueIndex:idx_terms_axis_slug,priority:1"`
	Count     int               `json:"count" gorm:"default:0"`
	Meta      datatypes.JSONMap `json:"meta" gorm:"type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time         `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time         `json:"updated_at" gorm:"autoUpdateTime"`
}

func (t *Term) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

func (Term) TableName() string {
	return "terms"
}

// TermCount is a term intersected with a candidate pool, with the number of
// pool entries carrying it. Used for facet detection and chip building.
type TermCount struct {
	ID    uuid.UUID `json:"id" gorm:"column:id"`
	Name  string    `json:"name" gorm:"column:name"`
	Slug  string    `json:"slug" gorm:"column:slug"`
	Count int       `json:"count" gorm:"column:count"`
}
