package sqlstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Migration struct {
	Version string
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

type MigrationRecord struct {
	Version   string    `gorm:"primaryKey;type:varchar(32)"`
	Name      string    `gorm:"type:varchar(255);not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string { return "schema_migrations" }

type MigrationStatus struct {
	Version   string
	Name      string
	Applied   bool
	AppliedAt time.Time
}

// Migrations returns the schema history in version order.
func Migrations() []Migration {
	return []Migration{
		{
			Version: "20170923030552",
			Name:    "create_lookup_tables",
			Up: func(tx *gorm.DB) error {
				return execDDL(tx, createRoomTypes, createBedTypes)
			},
			Down: func(tx *gorm.DB) error {
				return execDDL(tx, "DROP TABLE bed_types", "DROP TABLE room_types")
			},
		},
		{
			Version: "20171006000406",
			Name:    "create_hotel_tables",
			Up: func(tx *gorm.DB) error {
				return execDDL(tx, createHotels, createHotelRooms, createRoomReservations, indexRoomReservationsRoom)
			},
			Down: func(tx *gorm.DB) error {
				return execDDL(tx, "DROP TABLE room_reservations", "DROP TABLE hotel_rooms", "DROP TABLE hotels")
			},
		},
		{
			Version: "20171007032333",
			Name:    "seed_lookup_tables",
			Up: func(tx *gorm.DB) error {
				rooms := make([]roomTypeRow, 0, len(seedRoomTypes))
				for _, n := range seedRoomTypes {
					rooms = append(rooms, roomTypeRow{Name: n})
				}
				beds := make([]bedTypeRow, 0, len(seedBedTypes))
				for _, n := range seedBedTypes {
					beds = append(beds, bedTypeRow{Name: n})
				}
				if err := tx.Create(&rooms).Error; err != nil {
					return err
				}
				return tx.Create(&beds).Error
			},
			Down: func(tx *gorm.DB) error {
				if err := tx.Where("name IN ?", seedBedTypes).Delete(&bedTypeRow{}).Error; err != nil {
					return err
				}
				return tx.Where("name IN ?", seedRoomTypes).Delete(&roomTypeRow{}).Error
			},
		},
	}
}

var (
	seedRoomTypes = []string{"Standard", "Deluxe", "Suite"}
	seedBedTypes  = []string{"Single", "Double", "Queen", "King"}
)

type Migrator struct {
	db         *gorm.DB
	migrations []Migration
}

// NewMigrator uses Migrations() when ms is empty.
func NewMigrator(db *gorm.DB, ms ...Migration) *Migrator {
	if len(ms) == 0 {
		ms = Migrations()
	}
	sorted := append([]Migration(nil), ms...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })
	return &Migrator{db: db, migrations: sorted}
}

func (m *Migrator) ensureVersionTable(ctx context.Context) error {
	return m.db.WithContext(ctx).AutoMigrate(&MigrationRecord{})
}

func (m *Migrator) appliedRecords(ctx context.Context) (map[string]MigrationRecord, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}
	var records []MigrationRecord
	if err := m.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	out := make(map[string]MigrationRecord, len(records))
	for _, r := range records {
		out[r.Version] = r
	}
	return out, nil
}

// Up applies every pending migration, each in its own transaction together
// with its schema_migrations row. It returns the versions it applied.
func (m *Migrator) Up(ctx context.Context) ([]string, error) {
	applied, err := m.appliedRecords(ctx)
	if err != nil {
		return nil, err
	}
	var done []string
	for _, mig := range m.migrations {
		if _, ok := applied[mig.Version]; ok {
			continue
		}
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{
				Version:   mig.Version,
				Name:      mig.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return done, fmt.Errorf("apply %s_%s: %w", mig.Version, mig.Name, err)
		}
		log.Info().Str("version", mig.Version).Str("name", mig.Name).Msg("migration applied")
		done = append(done, mig.Version)
	}
	return done, nil
}

// Down reverts the most recently applied migration. It returns "" when
// nothing is applied.
func (m *Migrator) Down(ctx context.Context) (string, error) {
	if err := m.ensureVersionTable(ctx); err != nil {
		return "", fmt.Errorf("ensure schema_migrations: %w", err)
	}
	var last MigrationRecord
	err := m.db.WithContext(ctx).Order("version DESC").Take(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read schema_migrations: %w", err)
	}

	var target *Migration
	for i := range m.migrations {
		if m.migrations[i].Version == last.Version {
			target = &m.migrations[i]
			break
		}
	}
	if target == nil {
		return "", fmt.Errorf("applied migration %s is unknown to this build", last.Version)
	}

	err = m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return err
		}
		return tx.Where("version = ?", last.Version).Delete(&MigrationRecord{}).Error
	})
	if err != nil {
		return "", fmt.Errorf("revert %s_%s: %w", target.Version, target.Name, err)
	}
	log.Info().Str("version", target.Version).Str("name", target.Name).Msg("migration reverted")
	return target.Version, nil
}

func (m *Migrator) Status(ctx context.Context) ([]MigrationStatus, error) {
	applied, err := m.appliedRecords(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MigrationStatus, 0, len(m.migrations))
	for _, mig := range m.migrations {
		st := MigrationStatus{Version: mig.Version, Name: mig.Name}
		if rec, ok := applied[mig.Version]; ok {
			st.Applied = true
			st.AppliedAt = rec.AppliedAt
		}
		out = append(out, st)
	}
	return out, nil
}
