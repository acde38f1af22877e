package repository

import (
	"context"
	"errors"
	"testing"

	"postpilot/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupMockDB creates a GORM *gorm.DB backed by sqlmock for unit tests.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, mock
}

func TestScheduleRepository_DBFailurePropagatesVerbatim(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewScheduleRepository(gormDB)

	dbErr := errors.New("pq: connection reset by peer")
	mock.ExpectQuery(`SELECT \* FROM "schedules"`).WillReturnError(dbErr)

	_, err := repo.GetByUserID(context.Background(), 42)
	require.Error(t, err)

	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INTERNAL_ERROR", appErr.Code)
	assert.ErrorIs(t, err, dbErr, "the driver error must survive wrapping untouched")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DBFailureIsNotMaskedAsNotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := NewUserRepository(gormDB)

	dbErr := errors.New("pq: deadlock detected")
	mock.ExpectQuery(`SELECT \* FROM "users"`).WillReturnError(dbErr)

	_, err := repo.GetByOrgID(context.Background(), 77)
	require.Error(t, err)
	assert.False(t, models.IsNotFound(err))
	assert.ErrorIs(t, err, dbErr)
	require.NoError(t, mock.ExpectationsWereMet())
}
