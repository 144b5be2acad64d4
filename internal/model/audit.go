package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateAsset    = "CREATE_ASSET"
	ActionUpdateAsset    = "UPDATE_ASSET"
	ActionDeleteAsset    = "DELETE_ASSET"
	ActionDisposeAsset   = "DISPOSE_ASSET"
	ActionUndisposeAsset = "UNDISPOSE_ASSET"
	ActionImportAssets   = "IMPORT_ASSETS"

	ActionCreateMajorCategory = "CREATE_MAJOR_CATEGORY"
	ActionUpdateMajorCategory = "UPDATE_MAJOR_CATEGORY"
	ActionDeleteMajorCategory = "DELETE_MAJOR_CATEGORY"
	ActionCreateMinorCategory = "CREATE_MINOR_CATEGORY"
	ActionUpdateMinorCategory = "UPDATE_MINOR_CATEGORY"
	ActionDeleteMinorCategory = "DELETE_MINOR_CATEGORY"

	ActionCreateDepartment = "CREATE_DEPARTMENT"
	ActionUpdateDepartment = "UPDATE_DEPARTMENT"
	ActionDeleteDepartment = "DELETE_DEPARTMENT"
	ActionCreateEmployee   = "CREATE_EMPLOYEE"
	ActionUpdateEmployee   = "UPDATE_EMPLOYEE"
	ActionDeleteEmployee   = "DELETE_EMPLOYEE"
	ActionCreateLocation   = "CREATE_LOCATION"
	ActionUpdateLocation   = "UPDATE_LOCATION"
	ActionDeleteLocation   = "DELETE_LOCATION"
	ActionCreateSupplier   = "CREATE_SUPPLIER"
	ActionUpdateSupplier   = "UPDATE_SUPPLIER"
	ActionDeleteSupplier   = "DELETE_SUPPLIER"

	ActionCreateUser     = "CREATE_USER"
	ActionUpdateUser     = "UPDATE_USER"
	ActionDeleteUser     = "DELETE_USER"
	ActionChangePassword = "CHANGE_PASSWORD"
)

// EntityType values recorded on audit entries
const (
	EntityAsset         = "ASSET"
	EntityMajorCategory = "MAJOR_CATEGORY"
	EntityMinorCategory = "MINOR_CATEGORY"
	EntityDepartment    = "DEPARTMENT"
	EntityEmployee      = "EMPLOYEE"
	EntityLocation      = "LOCATION"
	EntitySupplier      = "SUPPLIER"
	EntityUser          = "USER"
)

// AuditEntry tracks Who, What, and When for every mutating operation. The
// actor's name and email are copied in at write time and ActorID carries no
// foreign key, so entries stay intact after the account is deleted. Entries
// are append-only.
type AuditEntry struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ActorID     *uuid.UUID `gorm:"type:uuid;index" json:"actor_id"` // Nullable for system-initiated changes
	ActorName   string     `gorm:"type:varchar(255)" json:"actor_name"`
	ActorEmail  string     `gorm:"type:varchar(255)" json:"actor_email"`
	Action      string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityType  string     `gorm:"type:varchar(50);not null;index" json:"entity_type"`
	EntityID    string     `gorm:"type:varchar(50);index" json:"entity_id"`         // Reference string (uuid/code)
	EntityLabel string     `gorm:"type:varchar(255)" json:"entity_label,omitempty"` // Human readable name
	Changes     string     `gorm:"type:jsonb" json:"changes"`                       // Serialized field-level diff or snapshot
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
}
