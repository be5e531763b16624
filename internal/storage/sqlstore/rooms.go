package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"hotel_api/internal/domain"
)

const roomKeyWhere = "hotel_id = ? AND room_number = ?"

func (r *Repo) ListRooms(ctx context.Context) (out []domain.HotelRoom, err error) {
	defer observe("room", "list", time.Now(), &err)
	var rows []hotelRoomRow
	if err = r.db.WithContext(ctx).Order("hotel_id, room_number").Find(&rows).Error; err != nil {
		return nil, wrap("list rooms", err)
	}
	return roomsToDomain(rows), nil
}

func (r *Repo) ListRoomsByHotel(ctx context.Context, hotelID int64) (out []domain.HotelRoom, err error) {
	defer observe("room", "list_by_hotel", time.Now(), &err)
	var rows []hotelRoomRow
	if err = r.db.WithContext(ctx).Where("hotel_id = ?", hotelID).Order("room_number").Find(&rows).Error; err != nil {
		return nil, wrap("list rooms by hotel", err)
	}
	return roomsToDomain(rows), nil
}

func roomsToDomain(rows []hotelRoomRow) []domain.HotelRoom {
	out := make([]domain.HotelRoom, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out
}

func (r *Repo) GetRoom(ctx context.Context, key domain.RoomKey) (out domain.HotelRoom, err error) {
	defer observe("room", "get", time.Now(), &err)
	var row hotelRoomRow
	if err = r.db.WithContext(ctx).Where(roomKeyWhere, key.HotelID, key.RoomNumber).Take(&row).Error; err != nil {
		return domain.HotelRoom{}, wrap("get room", err)
	}
	return row.toDomain(), nil
}

func (r *Repo) RoomExists(ctx context.Context, key domain.RoomKey) (ok bool, err error) {
	defer observe("room", "exists", time.Now(), &err)
	var n int64
	if err = r.db.WithContext(ctx).Model(&hotelRoomRow{}).Where(roomKeyWhere, key.HotelID, key.RoomNumber).Count(&n).Error; err != nil {
		return false, wrap("room exists", err)
	}
	return n > 0, nil
}

// CreateRoom returns domain.ErrConflict when the (hotel, room number) pair
// is taken or the hotel, room type or bed type does not exist.
func (r *Repo) CreateRoom(ctx context.Context, room domain.HotelRoom) (out domain.HotelRoom, err error) {
	defer observe("room", "create", time.Now(), &err)
	row := roomFromDomain(room)
	if err = r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.HotelRoom{}, wrap("create room", err)
	}
	return row.toDomain(), nil
}

// UpdateRoom rewrites the non-key columns; the key itself is immutable.
func (r *Repo) UpdateRoom(ctx context.Context, key domain.RoomKey, room domain.HotelRoom) (outcome domain.WriteOutcome, err error) {
	defer observeUpdate("room", time.Now(), &outcome, &err)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur hotelRoomRow
		if err := forUpdate(tx).Where(roomKeyWhere, key.HotelID, key.RoomNumber).Take(&cur).Error; err != nil {
			return err
		}
		return tx.Model(&hotelRoomRow{}).Where(roomKeyWhere, key.HotelID, key.RoomNumber).Updates(map[string]any{
			"nightly_rate":   room.NightlyRate,
			"number_of_beds": room.NumberOfBeds,
			"room_type_id":   room.RoomTypeID,
			"bed_type_id":    room.BedTypeID,
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound, nil
	}
	if err != nil {
		return 0, wrap("update room", err)
	}
	return domain.Updated, nil
}

func (r *Repo) DeleteRoom(ctx context.Context, key domain.RoomKey) (out domain.HotelRoom, err error) {
	defer observe("room", "delete", time.Now(), &err)
	var row hotelRoomRow
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where(roomKeyWhere, key.HotelID, key.RoomNumber).Take(&row).Error; err != nil {
			return err
		}
		return tx.Where(roomKeyWhere, key.HotelID, key.RoomNumber).Delete(&hotelRoomRow{}).Error
	})
	if err != nil {
		return domain.HotelRoom{}, wrap("delete room", err)
	}
	return row.toDomain(), nil
}
