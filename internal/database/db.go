package database

import (
	"log"

	"github.com/Kakazablone/AssetDome/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	// TranslateError surfaces unique violations as gorm.ErrDuplicatedKey, which
	// the asset creation retry loop depends on.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models. Reference entities go first so asset foreign
	// keys find their targets.
	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.MajorCategory{},
		&model.MinorCategory{},
		&model.Location{},
		&model.Supplier{},
		&model.Department{},
		&model.Employee{},
		&model.Asset{},
		&model.CodeSequence{},
		&model.AuditEntry{},
		&model.ReportJob{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
