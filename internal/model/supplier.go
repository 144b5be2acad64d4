package model

import (
	"time"

	"github.com/google/uuid"
)

// Supplier represents a vendor assets are procured from.
// Suppliers with assets on record cannot be deleted.
type Supplier struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	SupplierCode  string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"supplier_code"`
	ContactPerson string    `gorm:"type:varchar(255)" json:"contact_person"`
	PhoneNumber   string    `gorm:"type:varchar(50)" json:"phone_number"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Address       string    `gorm:"type:text" json:"address"`
	Website       string    `gorm:"type:varchar(255)" json:"website"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
