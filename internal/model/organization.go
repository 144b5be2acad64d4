package model

import (
	"time"

	"github.com/google/uuid"
)

// Department represents an organizational unit that owns assets
type Department struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name           string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"name"`
	DepartmentCode string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"department_code"`
	Description    string     `gorm:"type:text" json:"description"`
	ManagerID      *uuid.UUID `gorm:"type:uuid" json:"manager_id"`
	Manager        *Employee  `gorm:"foreignKey:ManagerID;constraint:OnDelete:SET NULL" json:"manager,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// Employee represents a staff member an asset can be assigned to.
// Departments with employees cannot be deleted.
type Employee struct {
	ID             uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FirstName      string     `gorm:"type:varchar(100);not null" json:"first_name"`
	MiddleName     *string    `gorm:"type:varchar(100)" json:"middle_name"`
	LastName       string     `gorm:"type:varchar(100);not null" json:"last_name"`
	EmployeeNumber string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"employee_number"`
	Email          string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	MobileNumber   string     `gorm:"type:varchar(50)" json:"mobile_number"`
	JobTitle       string     `gorm:"type:varchar(255)" json:"job_title"`
	DateOfBirth    *time.Time `gorm:"type:date" json:"date_of_birth"`
	DateHired      *time.Time `gorm:"type:date" json:"date_hired"`
	Address        string     `gorm:"type:text" json:"address"`
	DepartmentID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"department_id"`
	Department     Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"department"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// FullName joins the employee's name parts, skipping an absent middle name
func (e Employee) FullName() string {
	if e.MiddleName != nil && *e.MiddleName != "" {
		return e.FirstName + " " + *e.MiddleName + " " + e.LastName
	}
	return e.FirstName + " " + e.LastName
}
