package services

import (
	"time"

	"github.com/harborview/booking-backend/internal/models"
)

// Nights returns the calendar-day difference between checkIn and
// checkOut. Only the date component is compared: a stay from 10:00 one
// day to 09:00 the next is still one night.
func Nights(checkIn, checkOut time.Time) int {
	in := truncateToDay(checkIn)
	out := truncateToDay(checkOut)
	return int(out.Sub(in).Hours() / 24)
}

// Price computes the total price for a stay: nights times the room
// type's nightly rate. Fails with models.ErrInvalidRange when the range
// yields zero or negative nights.
func Price(roomType *models.RoomType, checkIn, checkOut time.Time) (float64, error) {
	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return 0, models.ErrInvalidRange
	}
	return float64(nights) * roomType.PricePerNight, nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
