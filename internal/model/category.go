package model

import (
	"time"

	"github.com/google/uuid"
)

// MajorCategory is the top level of the asset classification tree.
// Deleting one cascades to its minor categories and their assets.
type MajorCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MinorCategory refines a major category (e.g. ICT -> Laptops). Names are
// unique within a major category, not globally.
type MinorCategory struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string        `gorm:"type:varchar(255);uniqueIndex:idx_minor_category_major_name;not null" json:"name"`
	MajorCategoryID uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:idx_minor_category_major_name;index" json:"major_category_id"`
	MajorCategory   MajorCategory `gorm:"foreignKey:MajorCategoryID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"major_category"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// EconomicLifeFor maps a major category name to its depreciation life in
// years. Unmapped categories fall back to the five year default.
func EconomicLifeFor(majorCategoryName string) int {
	switch majorCategoryName {
	case "Furniture":
		return 8
	case "ICT":
		return 3
	default:
		return 5
	}
}
