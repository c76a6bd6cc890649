package services

import "github.com/harborview/booking-backend/internal/models"

// ReservationAction is an operation an actor may attempt on a
// reservation.
type ReservationAction string

const (
	ActionView     ReservationAction = "view"
	ActionCheckIn  ReservationAction = "check_in"
	ActionCheckOut ReservationAction = "check_out"
	ActionCancel   ReservationAction = "cancel"
)

// Authorize decides whether actor may perform action on reservation.
// The rules are a single decision table so every enforcement point
// agrees:
//
//	admin  -> any action on any reservation
//	guest  -> view and cancel, own reservations only
//
// Check-in and check-out are front-desk operations and stay admin-only.
func Authorize(actor models.Actor, reservation *models.Reservation, action ReservationAction) bool {
	if actor.IsAdmin() {
		return true
	}

	owns := reservation != nil && reservation.GuestID == actor.ID
	switch action {
	case ActionView, ActionCancel:
		return owns
	default:
		return false
	}
}
