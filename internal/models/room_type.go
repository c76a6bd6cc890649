package models

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

// RoomType represents a category of rooms sharing price, capacity and
// amenities.
type RoomType struct {
	ID            string         `json:"id" db:"id"`
	Name          string         `json:"name" db:"name"`
	Description   string         `json:"description" db:"description"`
	PricePerNight float64        `json:"price_per_night" db:"price_per_night"`
	MaxGuests     int            `json:"max_guests" db:"max_guests"`
	Amenities     pq.StringArray `json:"amenities" db:"amenities"`
	ImageURL      string         `json:"image_url" db:"image_url"`
	CreatedAt     time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at" db:"updated_at"`
}

// CreateRoomTypeRequest represents the request to create a room type
type CreateRoomTypeRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	PricePerNight float64  `json:"price_per_night" binding:"required"`
	MaxGuests     int      `json:"max_guests" binding:"required,min=1"`
	Amenities     []string `json:"amenities"`
	ImageURL      string   `json:"image_url"`
}

// UpdateRoomTypeRequest represents the request to update a room type
type UpdateRoomTypeRequest struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	PricePerNight *float64 `json:"price_per_night,omitempty"`
	MaxGuests     *int     `json:"max_guests,omitempty"`
	Amenities     []string `json:"amenities,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
}

// Validate validates the create room type request
func (r *CreateRoomTypeRequest) Validate() error {
	if r.PricePerNight < 0 {
		return errors.New("price_per_night must not be negative")
	}
	if r.MaxGuests <= 0 {
		return errors.New("max_guests must be at least 1")
	}
	return nil
}
