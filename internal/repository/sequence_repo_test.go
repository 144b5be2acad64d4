package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Kakazablone/AssetDome/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockDB wraps a sqlmock connection in gorm so repository SQL can be
// asserted without a live database.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func TestSequenceNextIncrementsUnderRowLock(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSequenceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "code_sequences" WHERE name = \$1.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "value", "updated_at"}).
			AddRow(model.SequenceAssetCode, int64(41), time.Now()))
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "code_sequences" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	value, err := repo.Next(context.Background(), model.SequenceAssetCode)
	require.NoError(t, err)
	assert.Equal(t, int64(42), value)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceNextCreatesCounterOnFirstUse(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSequenceRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "code_sequences" WHERE name = \$1.*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"name", "value", "updated_at"}))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "code_sequences"`).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	value, err := repo.Next(context.Background(), model.SequenceAssetCode)
	require.NoError(t, err)
	assert.Equal(t, int64(1), value, "a fresh counter starts at 1")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSequenceNextPropagatesQueryErrors(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSequenceRepository(db)

	dbErr := errors.New("connection refused")
	mock.ExpectQuery(`SELECT \* FROM "code_sequences"`).WillReturnError(dbErr)

	_, err := repo.Next(context.Background(), model.SequenceAssetCode)
	assert.ErrorIs(t, err, dbErr)
}
