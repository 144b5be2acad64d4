package model

import (
	"time"

	"github.com/google/uuid"
)

// Location represents a physical site where assets are placed
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	Latitude  *float64  `gorm:"type:decimal(9,6)" json:"latitude"`
	Longitude *float64  `gorm:"type:decimal(9,6)" json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
