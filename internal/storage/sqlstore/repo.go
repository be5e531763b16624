package sqlstore

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel_api/internal/adapters/observability"
	"hotel_api/internal/domain"
)

// Repo implements domain.Store on top of gorm. Every write runs in its own
// transaction bound to the caller's context.
type Repo struct{ db *gorm.DB }

var _ domain.Store = (*Repo)(nil)

func New(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func observe(entity, op string, start time.Time, err *error) {
	observability.ObserveStorage(entity, op, observability.Outcome(*err), time.Since(start))
}

func observeUpdate(entity string, start time.Time, outcome *domain.WriteOutcome, err *error) {
	label := observability.Outcome(*err)
	if *err == nil && *outcome == domain.NotFound {
		label = "not_found"
	}
	observability.ObserveStorage(entity, "update", label, time.Since(start))
}

// forUpdate takes a row lock; the sqlite dialect drops the clause.
func forUpdate(tx *gorm.DB) *gorm.DB {
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

func (r *Repo) ListHotels(ctx context.Context) (out []domain.Hotel, err error) {
	defer observe("hotel", "list", time.Now(), &err)
	var rows []hotelRow
	if err = r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, wrap("list hotels", err)
	}
	out = make([]domain.Hotel, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (r *Repo) GetHotel(ctx context.Context, id int64) (h domain.Hotel, err error) {
	defer observe("hotel", "get", time.Now(), &err)
	var row hotelRow
	if err = r.db.WithContext(ctx).Where("id = ?", id).Take(&row).Error; err != nil {
		return domain.Hotel{}, wrap("get hotel", err)
	}
	return row.toDomain(), nil
}

func (r *Repo) HotelExists(ctx context.Context, id int64) (ok bool, err error) {
	defer observe("hotel", "exists", time.Now(), &err)
	var n int64
	if err = r.db.WithContext(ctx).Model(&hotelRow{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, wrap("hotel exists", err)
	}
	return n > 0, nil
}

// CreateHotel ignores h.ID; the database assigns it.
func (r *Repo) CreateHotel(ctx context.Context, h domain.Hotel) (out domain.Hotel, err error) {
	defer observe("hotel", "create", time.Now(), &err)
	row := hotelFromDomain(h)
	row.ID = 0
	if err = r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Hotel{}, wrap("create hotel", err)
	}
	return row.toDomain(), nil
}

func (r *Repo) UpdateHotel(ctx context.Context, id int64, h domain.Hotel) (outcome domain.WriteOutcome, err error) {
	defer observeUpdate("hotel", time.Now(), &outcome, &err)
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cur hotelRow
		if err := forUpdate(tx).Where("id = ?", id).Take(&cur).Error; err != nil {
			return err
		}
		return tx.Model(&hotelRow{}).Where("id = ?", id).Updates(map[string]any{
			"name":         h.Name,
			"address":      h.Address,
			"phone_number": h.PhoneNumber,
		}).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NotFound, nil
	}
	if err != nil {
		return 0, wrap("update hotel", err)
	}
	return domain.Updated, nil
}

// DeleteHotel removes the hotel; its rooms and their reservations go with
// it through the foreign key cascade.
func (r *Repo) DeleteHotel(ctx context.Context, id int64) (out domain.Hotel, err error) {
	defer observe("hotel", "delete", time.Now(), &err)
	var row hotelRow
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).Where("id = ?", id).Take(&row).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&hotelRow{}).Error
	})
	if err != nil {
		return domain.Hotel{}, wrap("delete hotel", err)
	}
	return row.toDomain(), nil
}
