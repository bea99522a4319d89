package repositories

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"bloodlink/internal/core/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// newMockBloodUnitRepository creates a repository backed by a mocked SQL connection
func newMockBloodUnitRepository(t *testing.T) (BloodUnitRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := mysql.New(mysql.Config{
		Conn:                      mockDB,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewBloodUnitRepository(gormDB), mock, mockDB
}

func TestBloodUnitRepositoryCountAvailableByType(t *testing.T) {
	repo, mock, mockDB := newMockBloodUnitRepository(t)
	defer mockDB.Close()

	rows := sqlmock.NewRows([]string{"blood_type", "count"}).
		AddRow("O+", 12).
		AddRow("A-", 3)

	mock.ExpectQuery("SELECT blood_type, COUNT\\(\\*\\) as count FROM `blood_units`").
		WithArgs(string(domain.UnitAvailable)).
		WillReturnRows(rows)

	summary, err := repo.CountAvailableByType(context.Background())
	require.NoError(t, err)

	// Every blood type is present, zero-filled where stock is empty
	require.Len(t, summary, 8)
	assert.Equal(t, int64(12), summary[domain.BloodOPos])
	assert.Equal(t, int64(3), summary[domain.BloodANeg])
	assert.Equal(t, int64(0), summary[domain.BloodABNeg])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBloodUnitRepositoryFindAvailable(t *testing.T) {
	repo, mock, mockDB := newMockBloodUnitRepository(t)
	defer mockDB.Close()

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "serial_number", "blood_type", "status", "expiry_date"}).
		AddRow(1, "BU-AAAA1111", "O-", "available", now.AddDate(0, 0, 5)).
		AddRow(2, "BU-BBBB2222", "O-", "available", now.AddDate(0, 0, 9))

	mock.ExpectQuery("SELECT \\* FROM `blood_units` WHERE blood_type = \\? AND status = \\?.*ORDER BY expiry_date ASC").
		WithArgs(string(domain.BloodONeg), string(domain.UnitAvailable)).
		WillReturnRows(rows)

	units, err := repo.FindAvailable(context.Background(), domain.BloodONeg, 2)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "BU-AAAA1111", units[0].SerialNumber)
	assert.Equal(t, domain.UnitAvailable, units[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBloodUnitRepositoryGetByIDNotFound(t *testing.T) {
	repo, mock, mockDB := newMockBloodUnitRepository(t)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT \\* FROM `blood_units`").
		WillReturnError(gorm.ErrRecordNotFound)

	unit, err := repo.GetByID(context.Background(), 404)
	assert.Nil(t, unit)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
