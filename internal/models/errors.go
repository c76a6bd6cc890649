package models

import "errors"

// Domain error taxonomy. Services return these sentinels (possibly
// wrapped); handlers match with errors.Is to pick the HTTP status.
var (
	// ErrInvalidRange is returned for malformed or inverted date ranges.
	ErrInvalidRange = errors.New("check-out date must be after check-in date")

	// ErrCapacityExceeded is returned when the requested guest count
	// exceeds the room type's maximum.
	ErrCapacityExceeded = errors.New("guest count exceeds room capacity")

	// ErrRoomUnavailable is returned when an overlapping reservation is
	// detected at commit time.
	ErrRoomUnavailable = errors.New("room is not available for the requested dates")

	// ErrNotFound is returned for unknown reservation, room, room type
	// or guest identifiers.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when the access policy denies an action.
	ErrForbidden = errors.New("operation not permitted")

	// ErrInvalidTransition is returned when a reservation is not in a
	// state from which the requested transition is legal.
	ErrInvalidTransition = errors.New("reservation state does not allow this transition")

	// ErrStoreUnavailable is returned on persistence failures and
	// timeouts. It is the only error safe to retry with backoff.
	ErrStoreUnavailable = errors.New("storage temporarily unavailable")

	// ErrRoomTypeInUse is returned when deleting a room type that still
	// has rooms assigned to it.
	ErrRoomTypeInUse = errors.New("room type still has rooms assigned")
)
