package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AssetType enum constants
const (
	AssetTypeMovable   = "MOVABLE"
	AssetTypeImmovable = "IMMOVABLE"
)

// AssetCondition enum constants
const (
	ConditionNew      = "NEW"
	ConditionVeryGood = "VERY_GOOD"
	ConditionGood     = "GOOD"
	ConditionFair     = "FAIR"
	ConditionFaulty   = "FAULTY"
	ConditionBroken   = "BROKEN"
	ConditionObsolete = "OBSOLETE"
)

// AssetStatus enum constants
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

// DepreciationMethod enum constants
const (
	DepreciationStraightLine     = "STRAIGHT_LINE"
	DepreciationDecliningBalance = "DECLINING_BALANCE"
)

// Asset represents a tracked organizational asset. The asset_code is assigned
// once at creation and never changes; net book value and accumulated
// depreciation are derived at read time, not stored.
type Asset struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AssetCode     string    `gorm:"type:varchar(10);uniqueIndex;not null" json:"asset_code"`
	Barcode       string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"barcode"`
	RFID          *string   `gorm:"type:varchar(255)" json:"rfid"`
	Description   string    `gorm:"type:text;not null" json:"description"`
	SerialNumber  *string   `gorm:"type:varchar(100)" json:"serial_number"`
	ModelNumber   *string   `gorm:"type:varchar(100)" json:"model_number"`
	AssetType     string    `gorm:"type:varchar(50);not null" json:"asset_type"` // MOVABLE, IMMOVABLE

	MajorCategoryID uuid.UUID     `gorm:"type:uuid;not null;index" json:"major_category_id"`
	MajorCategory   MajorCategory `gorm:"foreignKey:MajorCategoryID;constraint:OnDelete:CASCADE" json:"major_category"`
	MinorCategoryID uuid.UUID     `gorm:"type:uuid;not null;index" json:"minor_category_id"`
	MinorCategory   MinorCategory `gorm:"foreignKey:MinorCategoryID;constraint:OnDelete:CASCADE" json:"minor_category"`
	LocationID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"location_id"`
	Location        Location      `gorm:"foreignKey:LocationID;constraint:OnDelete:RESTRICT" json:"location"`
	DepartmentID    uuid.UUID     `gorm:"type:uuid;not null;index" json:"department_id"`
	Department      Department    `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"department"`
	SupplierID      uuid.UUID     `gorm:"type:uuid;not null;index" json:"supplier_id"`
	Supplier        Supplier      `gorm:"foreignKey:SupplierID;constraint:OnDelete:RESTRICT" json:"supplier"`
	EmployeeID      *uuid.UUID    `gorm:"type:uuid;index" json:"employee_id"`
	Employee        *Employee     `gorm:"foreignKey:EmployeeID;constraint:OnDelete:SET NULL" json:"employee,omitempty"`

	EconomicLife       int             `gorm:"type:int;not null;default:5" json:"economic_life"` // Years, derived from major category
	PurchasePrice      decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"purchase_price"`
	PriceIsPerUnit     bool            `gorm:"default:false" json:"price_is_per_unit"`
	Units              int             `gorm:"type:int;not null;default:0" json:"units"`
	RevaluedAmount     *decimal.Decimal `gorm:"type:decimal(10,2)" json:"revalued_amount"`
	DateOfPurchase     time.Time       `gorm:"type:date;not null" json:"date_of_purchase"`
	DatePlacedInService time.Time      `gorm:"type:date;not null" json:"date_placed_in_service"`
	Condition          string          `gorm:"type:varchar(50);not null" json:"condition"` // NEW, VERY_GOOD, GOOD, FAIR, FAULTY, BROKEN, OBSOLETE
	Status             string          `gorm:"type:varchar(50);not null;default:'ACTIVE';index" json:"status"`
	DepreciationMethod string          `gorm:"type:varchar(50);not null;default:'STRAIGHT_LINE'" json:"depreciation_method"` // STRAIGHT_LINE, DECLINING_BALANCE

	IsDisposed   bool       `gorm:"default:false;index" json:"is_disposed"`
	DisposedAt   *time.Time `json:"disposed_at"`
	DisposedBy   *uuid.UUID `gorm:"type:uuid" json:"disposed_by"`
	UndisposedAt *time.Time `json:"undisposed_at"`
	UndisposedBy *uuid.UUID `gorm:"type:uuid" json:"undisposed_by"`

	CreatedByID *uuid.UUID `gorm:"type:uuid" json:"created_by_id"`
	CreatedBy   *User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:SET NULL" json:"created_by,omitempty"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by_id"`
	UpdatedBy   *User      `gorm:"foreignKey:UpdatedByID;constraint:OnDelete:SET NULL" json:"updated_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
