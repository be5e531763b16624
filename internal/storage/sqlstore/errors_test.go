package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	mysqldrv "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hotel_api/internal/domain"
)

func TestClassify(t *testing.T) {
	boom := errors.New("boom")
	cases := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"record not found", gorm.ErrRecordNotFound, domain.ErrNotFound},
		{"translated duplicate", gorm.ErrDuplicatedKey, domain.ErrConflict},
		{"translated fk", fmt.Errorf("insert: %w", gorm.ErrForeignKeyViolated), domain.ErrConflict},
		{"mysql duplicate", &mysqldrv.MySQLError{Number: 1062, Message: "Duplicate entry"}, domain.ErrConflict},
		{"mysql fk child", &mysqldrv.MySQLError{Number: 1452, Message: "Cannot add or update a child row"}, domain.ErrConflict},
		{"sqlite unique", errors.New("UNIQUE constraint failed: hotel_rooms.room_number"), domain.ErrConflict},
		{"postgres fk", errors.New("ERROR: insert or update violates foreign key constraint (SQLSTATE 23503)"), domain.ErrConflict},
		{"mysql out of range", &mysqldrv.MySQLError{Number: 1264, Message: "Out of range value for column 'nightly_rate'"}, domain.ErrValidation},
		{"postgres numeric overflow", errors.New("ERROR: numeric field overflow (SQLSTATE 22003)"), domain.ErrValidation},
		{"other", boom, boom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.in)
			if tc.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tc.want)
		})
	}
}

func TestDialector(t *testing.T) {
	d, err := dialector("sqlite", "/tmp/x.db")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())

	d, err = dialector("mysql", "root:pw@tcp(127.0.0.1:3306)/hotels")
	require.NoError(t, err)
	assert.Equal(t, "mysql", d.Name())

	_, err = dialector("oracle", "")
	assert.Error(t, err)
}

// Unexpected driver failures must surface as-is, not as not-found or conflict.
func TestRepo_PropagatesDriverErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)

	connLost := errors.New("connection reset by peer")
	mock.ExpectQuery("SELECT").WillReturnError(connLost)

	_, err = New(db).GetHotel(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, connLost)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
	assert.NotErrorIs(t, err, domain.ErrConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_UpdateRollsBackOnWriteError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .* FOR UPDATE").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "address", "phone_number"}).AddRow(1, "Grand", "1 Main St", "555"))
	mock.ExpectExec("UPDATE").WillReturnError(errors.New("lock wait timeout"))
	mock.ExpectRollback()

	outcome, err := New(db).UpdateHotel(context.Background(), 1, domain.Hotel{Name: "Grand", Address: "1 Main St", PhoneNumber: "556"})
	require.Error(t, err)
	assert.Zero(t, outcome)
	assert.Contains(t, err.Error(), "lock wait timeout")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservation_ExplicitIDResyncsPostgresSequence(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO "room_reservations"`).
		WillReturnRows(sqlmock.NewRows([]string{"reservation_id"}).AddRow(42))
	mock.ExpectExec(`SELECT setval\(pg_get_serial_sequence\('room_reservations', 'reservation_id'\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	got, err := New(db).CreateReservation(context.Background(), domain.RoomReservation{
		ReservationID: 42, HotelID: 1, RoomNumber: 101,
		StartDate: time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 5, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.EqualValues(t, 42, got.ReservationID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReservation_ExplicitIDLeavesMySQLCounterAlone(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}),
		&gorm.Config{TranslateError: true, Logger: logger.Discard})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `room_reservations`").WillReturnResult(sqlmock.NewResult(42, 1))
	mock.ExpectCommit()

	_, err = New(db).CreateReservation(context.Background(), domain.RoomReservation{
		ReservationID: 42, HotelID: 1, RoomNumber: 101,
		StartDate: time.Date(2026, 6, 1, 14, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 6, 5, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
