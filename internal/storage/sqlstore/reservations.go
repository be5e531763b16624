package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hotel_api/internal/domain"
)

// Reservations are always matched on the full triple so a reservation id
// never resolves under a room it does not belong to.
const reservationKeyWhere = "hotel_id = ? AND room_number = ? AND reservation_id = ?"

func resArgs(k domain.ReservationKey) []any {
	return []any{k.HotelID, k.RoomNumber, k.ReservationID}
}

func (r *Repo) ListReservations(ctx context.Context) (out []domain.RoomReservation, err error) {
	defer observe("reservation", "list", time.Now(), &err)
	var rows []roomReservationRow
	if err = r.db.WithContext(ctx).Order("reservation_id").Find(&rows).Error; err != nil {
		return nil, wrap("list reservations", err)
	}
	return reservationsToDomain(rows), nil
}

func (r *Repo) ListReservationsByRoom(ctx context.Context, key domain.RoomKey) (out []domain.RoomReservation, err error) {
	defer observe("reservation", "list_by_room", time.Now(), &err)
	var rows []roomReservationRow
	err = r.db.WithContext(ctx).
		Where(roomKeyWhere, key.HotelID, key.RoomNumber).
		Order("start_date, reservation_id").
		Find(&rows).Error
	if err != nil {
		return nil, wrap("list reservations by room", err)
	}
	return reservationsToDomain(rows), nil
}

func reservationsToDomain(rows []roomReservationRow) []domain.RoomReservation {
	out := make([]domain.RoomReservation, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func (r *Repo) GetReservation(ctx context.Context, key domain.ReservationKey) (out domain.RoomReservation, err error) {
	defer observe("reservation", "get", time.Now(), &err)
	var row roomReservationRow
	if err = r.db.WithContext(ctx).Where(reservationKeyWhere, resArgs(key)...).Take(&row).Error; err != nil {
		return domain.RoomReservation{}, wrap("get reservation", err)
	}
	return row.toDomain(), nil
}

func (r *Repo) GetReservationByID(ctx context.Context, id int64) (out domain.RoomReservation, err error) {
	defer observe("reservation", "get_by_id", time.Now(), &err)
	var row roomReservationRow
	if err = r.db.WithContext(ctx).Where("reservation_id = ?", id).Take(&row).Error; err != nil {
		return domain.RoomReservation{}, wrap("get reservation by id", err)
	}
	return row.toDomain(), nil
}

func (r *Repo) ReservationExists(ctx context.Context, key domain.ReservationKey) (ok bool, err error) {
	defer observe("reservation", "exists", time.Now(), &err)
	var n int64
	if err = r.db.WithContext(ctx).Model(&roomReservationRow{}).Where(reservationKeyWhere, resArgs(key)...).Count(&n).Error; err != nil {
		return false, wrap("reservation exists", err)
	}
	return n > 0, nil
}

// CreateReservation inserts with res.ReservationID when it is non-zero,
// otherwise the database assigns one. A taken id or a missing room is a
// domain.ErrConflict.
func (r *Repo) CreateReservation(ctx context.Context, res domain.RoomReservation) (out domain.RoomReservation, err error) {
	defer observe("reservation", "create", time.Now(), &err)
	row := reservationFromDomain(res)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		if res.ReservationID != 0 {
			return syncReservationSequence(tx)
		}
		return nil
	})
	if err != nil {
		return domain.RoomReservation{}, wrap("create reservation", err)
	}
	return row.toDomain(), nil
}

// syncReservationSequence moves the Postgres BIGSERIAL past an explicitly
// inserted id so later server-assigned ids do not collide with it. MySQL
// and SQLite advance their counters on their own.
func syncReservationSequence(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	return tx.Exec(`SELECT setval(pg_get_serial_sequence('room_reservations', 'reservation_id'),
  (SELECT MAX(reservation_id) FROM room_reservations))`).Error
}

func (r *Repo) UpdateReservation(ctx context.Context, key domain.ReservationKey, res domain.RoomReservation) (outcome domain.WriteOutcome, err error) {
	defer observeUpdate("reservation", time.Now(), &outcome, &err)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur roomReservationRow
		if err := forUpdate(tx).Where(reservationKeyWhere, resArgs(key)...).Take(&cur).Error; err != nil {
			return err
		}
		return tx.Model(&roomReservationRow{}).Where(reservationKeyWhere, resArgs(key)...).Updates(map[string]any{
			"start_date": res.StartDate.UTC(),
			"end_date":   res.EndDate.UTC(),
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound, nil
	}
	if err != nil {
		return 0, wrap("update reservation", err)
	}
	return domain.Updated, nil
}

func (r *Repo) DeleteReservation(ctx context.Context, key domain.ReservationKey) (out domain.RoomReservation, err error) {
	defer observe("reservation", "delete", time.Now(), &err)
	var row roomReservationRow
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where(reservationKeyWhere, resArgs(key)...).Take(&row).Error; err != nil {
			return err
		}
		return tx.Where(reservationKeyWhere, resArgs(key)...).Delete(&roomReservationRow{}).Error
	})
	if err != nil {
		return domain.RoomReservation{}, wrap("delete reservation", err)
	}
	return row.toDomain(), nil
}
