package sqlstore_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel_api/internal/domain"
	"hotel_api/internal/storage/sqlstore"
)

// openSQLite returns a migrated database in a temp file.
func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()
	db, err := sqlstore.Open(ctx, sqlstore.Options{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "hotel.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	_, err = sqlstore.NewMigrator(db).Up(ctx)
	require.NoError(t, err)
	return db
}

func newRepo(t *testing.T) *sqlstore.Repo {
	t.Helper()
	return sqlstore.New(openSQLite(t))
}

func grand() domain.Hotel {
	return domain.Hotel{Name: "Grand", Address: "1 Main St", PhoneNumber: "555"}
}

func room(hotelID, number int64) domain.HotelRoom {
	return domain.HotelRoom{
		RoomNumber:   number,
		HotelID:      hotelID,
		NightlyRate:  129.5,
		NumberOfBeds: 2,
		RoomTypeID:   1,
		BedTypeID:    2,
	}
}

func stay(hotelID, number int64, from time.Time, nights int) domain.RoomReservation {
	return domain.RoomReservation{
		HotelID:    hotelID,
		RoomNumber: number,
		StartDate:  from,
		EndDate:    from.AddDate(0, 0, nights),
	}
}
