package repository

import (
	"context"
	"errors"

	"github.com/Kakazablone/AssetDome/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SequenceRepository hands out monotonically increasing values from named
// counters. Next must run inside a transaction: the counter row is read under
// FOR UPDATE so concurrent callers serialize and each sees a distinct value.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

type sequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) SequenceRepository {
	return &sequenceRepository{db: db}
}

func (r *sequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	db := GetDB(ctx, r.db)

	var seq model.CodeSequence
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("name = ?", name).First(&seq).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// First use of this counter. A concurrent first use loses the insert
		// race on the primary key and surfaces as a retryable conflict.
		seq = model.CodeSequence{Name: name, Value: 1}
		if err := db.Create(&seq).Error; err != nil {
			return 0, err
		}
		return seq.Value, nil
	}
	if err != nil {
		return 0, err
	}

	seq.Value++
	if err := db.Save(&seq).Error; err != nil {
		return 0, err
	}
	return seq.Value, nil
}
