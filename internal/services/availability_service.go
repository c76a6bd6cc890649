package services

import (
	"context"
	"sort"
	"time"

	"github.com/harborview/booking-backend/internal/database"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// Overlaps is the booking conflict predicate: strict half-open interval
// intersection on [check_in, check_out). A stay that ends the day
// another starts does not conflict with it.
func Overlaps(aCheckIn, aCheckOut, bCheckIn, bCheckOut time.Time) bool {
	return aCheckIn.Before(bCheckOut) && aCheckOut.After(bCheckIn)
}

// AvailabilityService computes which rooms are free for a date range,
// grouped by room type. Results are point-in-time snapshots; creation
// re-validates under a lock.
type AvailabilityService struct {
	roomRepo        *database.RoomRepository
	reservationRepo *database.ReservationRepository
	queryTimeout    time.Duration
	logger          *logrus.Logger
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(
	roomRepo *database.RoomRepository,
	reservationRepo *database.ReservationRepository,
	queryTimeout time.Duration,
	logger *logrus.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		roomRepo:        roomRepo,
		reservationRepo: reservationRepo,
		queryTimeout:    queryTimeout,
		logger:          logger,
	}
}

// FindAvailable returns the bookable room types for [checkIn, checkOut)
// with their surviving rooms, cheapest type first. Room types with no
// free room are omitted: absence means sold out. Only rooms whose
// administrative status is available are considered; occupied and
// maintenance rooms never appear regardless of reservation state.
func (s *AvailabilityService) FindAvailable(ctx context.Context, checkIn, checkOut time.Time) ([]models.RoomTypeAvailability, error) {
	if !checkIn.Before(checkOut) {
		return nil, models.ErrInvalidRange
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rooms, err := s.roomRepo.GetByStatus(ctx, models.RoomStatusAvailable)
	if err != nil {
		return nil, storeErr(err)
	}

	active, err := s.reservationRepo.GetActive(ctx)
	if err != nil {
		return nil, storeErr(err)
	}

	// Index active reservations by room for the overlap test
	byRoom := make(map[string][]models.Reservation)
	for _, res := range active {
		byRoom[res.RoomID] = append(byRoom[res.RoomID], res)
	}

	grouped := make(map[string]*models.RoomTypeAvailability)
	for _, room := range rooms {
		if roomConflicts(byRoom[room.ID], checkIn, checkOut) {
			continue
		}

		group, ok := grouped[room.RoomTypeID]
		if !ok {
			if room.RoomType == nil {
				// Orphaned room type reference; skip rather than serve
				// a half-described group.
				s.logger.WithField("room_id", room.ID).Warn("Room has no room type, excluding from availability")
				continue
			}
			group = &models.RoomTypeAvailability{RoomType: *room.RoomType}
			grouped[room.RoomTypeID] = group
		}

		room.RoomType = nil
		group.AvailableRooms = append(group.AvailableRooms, room)
		group.AvailableRoomCount++
	}

	result := make([]models.RoomTypeAvailability, 0, len(grouped))
	for _, group := range grouped {
		result = append(result, *group)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RoomType.PricePerNight != result[j].RoomType.PricePerNight {
			return result[i].RoomType.PricePerNight < result[j].RoomType.PricePerNight
		}
		return result[i].RoomType.Name < result[j].RoomType.Name
	})

	return result, nil
}

func roomConflicts(reservations []models.Reservation, checkIn, checkOut time.Time) bool {
	for _, res := range reservations {
		if Overlaps(res.CheckIn, res.CheckOut, checkIn, checkOut) {
			return true
		}
	}
	return false
}
