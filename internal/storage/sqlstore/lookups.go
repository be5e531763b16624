package sqlstore

import (
	"context"
	"time"

	"hotel_api/internal/domain"
)

func (r *Repo) ListRoomTypes(ctx context.Context) (out []domain.Lookup, err error) {
	defer observe("room_type", "list", time.Now(), &err)
	var rows []roomTypeRow
	if err = r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, wrap("list room types", err)
	}
	out = make([]domain.Lookup, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Lookup{ID: row.ID, Name: row.Name})
	}
	return out, nil
}

func (r *Repo) ListBedTypes(ctx context.Context) (out []domain.Lookup, err error) {
	defer observe("bed_type", "list", time.Now(), &err)
	var rows []bedTypeRow
	if err = r.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, wrap("list bed types", err)
	}
	out = make([]domain.Lookup, 0, len(rows))
	for _, row := range rows {
		out = append(out, domain.Lookup{ID: row.ID, Name: row.Name})
	}
	return out, nil
}
