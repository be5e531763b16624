package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"hotel_api/internal/domain"
)

// Request bodies use pointers so an omitted field is told apart from a zero.

type hotelBody struct {
	ID          *int64  `json:"id"`
	Name        *string `json:"name" validate:"required,min=1,max=100"`
	Address     *string `json:"address" validate:"required,min=1,max=200"`
	PhoneNumber *string `json:"phoneNumber" validate:"required,min=1,max=100"`
}

func (b hotelBody) toDomain(id int64) domain.Hotel {
	return domain.Hotel{ID: id, Name: *b.Name, Address: *b.Address, PhoneNumber: *b.PhoneNumber}
}

type roomBody struct {
	RoomNumber   *int64   `json:"roomNumber" validate:"required"`
	HotelID      *int64   `json:"hotelId"`
	NightlyRate  *float64 `json:"nightlyRate" validate:"required,gte=0,lte=99999999.99"`
	NumberOfBeds *int     `json:"numberOfBeds" validate:"required,gte=0,lte=2147483647"`
	RoomTypeID   *int64   `json:"roomTypeId" validate:"required"`
	BedTypeID    *int64   `json:"bedTypeId" validate:"required"`
}

func (b roomBody) toDomain(hotelID int64) domain.HotelRoom {
	return domain.HotelRoom{
		RoomNumber:   *b.RoomNumber,
		HotelID:      hotelID,
		NightlyRate:  *b.NightlyRate,
		NumberOfBeds: *b.NumberOfBeds,
		RoomTypeID:   *b.RoomTypeID,
		BedTypeID:    *b.BedTypeID,
	}
}

type reservationBody struct {
	ReservationID *int64     `json:"reservationId"`
	HotelID       *int64     `json:"hotelId"`
	RoomNumber    *int64     `json:"roomNumber"`
	StartDate     *dateTime `json:"startDate" validate:"required"`
	EndDate       *dateTime `json:"endDate" validate:"required"`
}

func (b reservationBody) toDomain(key domain.ReservationKey) domain.RoomReservation {
	return domain.RoomReservation{
		ReservationID: key.ReservationID,
		HotelID:       key.HotelID,
		RoomNumber:    key.RoomNumber,
		StartDate:     time.Time(*b.StartDate).UTC(),
		EndDate:       time.Time(*b.EndDate).UTC(),
	}
}

// dateTime accepts RFC 3339 and the offset-less "2006-01-02T15:04:05[.fffffff]"
// form; values without an offset are UTC.
type dateTime time.Time

var dateTimeLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05"}

func (d *dateTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date-time must be a string: %w", err)
	}
	for _, layout := range dateTimeLayouts {
		// Parse takes an optional fractional second after the seconds field.
		if t, err := time.Parse(layout, s); err == nil {
			*d = dateTime(t)
			return nil
		}
	}
	return fmt.Errorf("invalid date-time %q", s)
}

const maxBodyBytes = 1 << 20

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report JSON names, not Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads exactly one JSON object and validates it.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: malformed JSON body: %v", domain.ErrValidation, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: body must contain a single JSON object", domain.ErrValidation)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", domain.ErrValidation, describe(err))
	}
	return nil
}

func describe(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "min":
			parts = append(parts, fe.Field()+" must not be empty")
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "gte":
			parts = append(parts, fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param()))
		case "lte":
			parts = append(parts, fmt.Sprintf("%s must be at most %s", fe.Field(), fe.Param()))
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
