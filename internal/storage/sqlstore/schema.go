package sqlstore

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// DDL is written once with placeholders that each dialect fills in.
//   {{id}}    auto-increment bigint primary key
//   {{ts}}    timestamp column type
//   {{opts}}  table options
var dialectTokens = map[string]*strings.Replacer{
	"mysql": strings.NewReplacer(
		"{{id}}", "BIGINT NOT NULL AUTO_INCREMENT PRIMARY KEY",
		"{{ts}}", "DATETIME(6)",
		"{{opts}}", " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	),
	"postgres": strings.NewReplacer(
		"{{id}}", "BIGSERIAL PRIMARY KEY",
		"{{ts}}", "TIMESTAMPTZ",
		"{{opts}}", "",
	),
	"sqlite": strings.NewReplacer(
		"{{id}}", "INTEGER PRIMARY KEY AUTOINCREMENT",
		"{{ts}}", "DATETIME",
		"{{opts}}", "",
	),
}

const (
	createRoomTypes = `CREATE TABLE room_types (
  id {{id}},
  name VARCHAR(100) NOT NULL,
  CONSTRAINT ak_room_types_id_name UNIQUE (id, name)
){{opts}}`

	createBedTypes = `CREATE TABLE bed_types (
  id {{id}},
  name VARCHAR(100) NOT NULL,
  CONSTRAINT ak_bed_types_id_name UNIQUE (id, name)
){{opts}}`

	createHotels = `CREATE TABLE hotels (
  id {{id}},
  name VARCHAR(100) NOT NULL,
  address VARCHAR(200) NOT NULL,
  phone_number VARCHAR(100) NOT NULL
){{opts}}`

	createHotelRooms = `CREATE TABLE hotel_rooms (
  room_number BIGINT NOT NULL,
  hotel_id BIGINT NOT NULL,
  nightly_rate DECIMAL(10,2) NOT NULL,
  number_of_beds INTEGER NOT NULL,
  room_type_id BIGINT NOT NULL,
  bed_type_id BIGINT NOT NULL,
  PRIMARY KEY (room_number, hotel_id),
  CONSTRAINT ak_hotel_rooms_hotel_id_room_number UNIQUE (hotel_id, room_number),
  CONSTRAINT fk_hotel_rooms_hotels FOREIGN KEY (hotel_id) REFERENCES hotels (id) ON DELETE CASCADE,
  CONSTRAINT fk_hotel_rooms_room_types FOREIGN KEY (room_type_id) REFERENCES room_types (id),
  CONSTRAINT fk_hotel_rooms_bed_types FOREIGN KEY (bed_type_id) REFERENCES bed_types (id)
){{opts}}`

	createRoomReservations = `CREATE TABLE room_reservations (
  reservation_id {{id}},
  hotel_id BIGINT NOT NULL,
  room_number BIGINT NOT NULL,
  start_date {{ts}} NOT NULL,
  end_date {{ts}} NOT NULL,
  CONSTRAINT fk_room_reservations_hotel_rooms FOREIGN KEY (room_number, hotel_id)
    REFERENCES hotel_rooms (room_number, hotel_id) ON DELETE CASCADE
){{opts}}`

	indexRoomReservationsRoom = `CREATE INDEX ix_room_reservations_room_number_hotel_id
  ON room_reservations (room_number, hotel_id)`
)

// execDDL runs each statement separately; MySQL rejects multi-statement
// Exec unless the DSN opts in.
func execDDL(tx *gorm.DB, stmts ...string) error {
	r, ok := dialectTokens[tx.Dialector.Name()]
	if !ok {
		return fmt.Errorf("no DDL for dialect %q", tx.Dialector.Name())
	}
	for _, s := range stmts {
		if err := tx.Exec(r.Replace(s)).Error; err != nil {
			return err
		}
	}
	return nil
}
