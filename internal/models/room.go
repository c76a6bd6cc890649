package models

import (
	"errors"
	"time"
)

// RoomStatus is the administrative status of a physical room. It is
// independent of reservation state: a room can be administratively
// available while a confirmed reservation overlaps today.
type RoomStatus string

const (
	RoomStatusAvailable   RoomStatus = "available"
	RoomStatusOccupied    RoomStatus = "occupied"
	RoomStatusMaintenance RoomStatus = "maintenance"
)

// Room represents a physical room with a number and floor
type Room struct {
	ID         string     `json:"id" db:"id"`
	RoomNumber string     `json:"room_number" db:"room_number"`
	RoomTypeID string     `json:"room_type_id" db:"room_type_id"`
	Status     RoomStatus `json:"status" db:"status"`
	Floor      int        `json:"floor" db:"floor"`
	CreatedAt  time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at" db:"updated_at"`

	// Joined room type, filled by read-side queries
	RoomType *RoomType `json:"room_type,omitempty" db:"-"`
}

// CreateRoomRequest represents the request to create a room
type CreateRoomRequest struct {
	RoomNumber string     `json:"room_number" binding:"required"`
	RoomTypeID string     `json:"room_type_id" binding:"required"`
	Status     RoomStatus `json:"status"`
	Floor      int        `json:"floor" binding:"required,min=1"`
}

// UpdateRoomRequest represents the request to update a room
type UpdateRoomRequest struct {
	RoomNumber *string     `json:"room_number,omitempty"`
	RoomTypeID *string     `json:"room_type_id,omitempty"`
	Status     *RoomStatus `json:"status,omitempty"`
	Floor      *int        `json:"floor,omitempty"`
}

// ValidRoomStatus reports whether s is a known administrative status.
func ValidRoomStatus(s RoomStatus) bool {
	switch s {
	case RoomStatusAvailable, RoomStatusOccupied, RoomStatusMaintenance:
		return true
	}
	return false
}

// Validate validates the create room request
func (r *CreateRoomRequest) Validate() error {
	if r.Floor <= 0 {
		return errors.New("floor must be at least 1")
	}
	if r.Status == "" {
		r.Status = RoomStatusAvailable
	}
	if !ValidRoomStatus(r.Status) {
		return errors.New("status must be one of: available, occupied, maintenance")
	}
	return nil
}
