package models

import (
	"errors"
	"fmt"
	"time"
)

// ReservationStatus represents the lifecycle state of a reservation
type ReservationStatus string

const (
	ReservationStatusConfirmed  ReservationStatus = "confirmed"
	ReservationStatusCheckedIn  ReservationStatus = "checked_in"
	ReservationStatusCheckedOut ReservationStatus = "checked_out"
	ReservationStatusCancelled  ReservationStatus = "cancelled"
)

// DateLayout is the wire format for check-in/check-out dates. The
// engine works at date-only granularity; no time of day is kept.
const DateLayout = "2006-01-02"

// ParseDate parses a wire-format date and normalizes it to UTC midnight.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: invalid date %q", ErrInvalidRange, s)
	}
	return t, nil
}

// Reservation represents a guest's claim on a specific room for a
// half-open date range [check_in, check_out). check_in, check_out,
// total_price and room_id are write-once: no lifecycle transition ever
// mutates them.
type Reservation struct {
	ID         string            `json:"id" db:"id"`
	GuestID    string            `json:"guest_id" db:"guest_id"`
	RoomID     string            `json:"room_id" db:"room_id"`
	CheckIn    time.Time         `json:"check_in" db:"check_in"`
	CheckOut   time.Time         `json:"check_out" db:"check_out"`
	Guests     int               `json:"guests" db:"guests"`
	TotalPrice float64           `json:"total_price" db:"total_price"`
	Status     ReservationStatus `json:"status" db:"status"`
	CreatedAt  time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time         `json:"updated_at" db:"updated_at"`

	// Display fields filled by a read-side join; the serving layer
	// consumes these directly.
	GuestEmail   string `json:"guest_email,omitempty" db:"guest_email"`
	GuestName    string `json:"guest_name,omitempty" db:"guest_name"`
	RoomNumber   string `json:"room_number,omitempty" db:"room_number"`
	RoomTypeName string `json:"room_type_name,omitempty" db:"room_type_name"`
}

// IsTerminal reports whether the reservation is in a terminal state.
func (r *Reservation) IsTerminal() bool {
	return r.Status == ReservationStatusCheckedOut || r.Status == ReservationStatusCancelled
}

// IsActive reports whether the reservation constrains future bookings
// on its room.
func (r *Reservation) IsActive() bool {
	return r.Status == ReservationStatusConfirmed || r.Status == ReservationStatusCheckedIn
}

// CanCheckIn reports whether a check-in transition is legal.
func (r *Reservation) CanCheckIn() bool {
	return r.Status == ReservationStatusConfirmed
}

// CanCheckOut reports whether a check-out transition is legal.
func (r *Reservation) CanCheckOut() bool {
	return r.Status == ReservationStatusCheckedIn
}

// CanCancel reports whether a cancel transition is legal. Cancellation
// is allowed after check-in; checked-out stays are never cancellable.
func (r *Reservation) CanCancel() bool {
	return r.Status == ReservationStatusConfirmed || r.Status == ReservationStatusCheckedIn
}

// CreateReservationRequest represents the request to create a reservation
type CreateReservationRequest struct {
	RoomID   string `json:"room_id" binding:"required"`
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
	Guests   int    `json:"guests" binding:"required,min=1"`
}

// Validate validates the create reservation request
func (r *CreateReservationRequest) Validate() error {
	if r.Guests <= 0 {
		return errors.New("guests must be at least 1")
	}
	return nil
}

// RoomTypeAvailability is one entry of an availability search result:
// a bookable room type with the rooms that survived the overlap test.
// Room types with no surviving rooms are omitted entirely.
type RoomTypeAvailability struct {
	RoomType           RoomType `json:"room_type"`
	AvailableRooms     []Room   `json:"available_rooms"`
	AvailableRoomCount int      `json:"available_room_count"`
}

// SearchAvailabilityRequest represents the request to search availability
type SearchAvailabilityRequest struct {
	CheckIn  string `json:"check_in" binding:"required"`
	CheckOut string `json:"check_out" binding:"required"`
}
