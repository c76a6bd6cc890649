package services

import (
	"context"
	"time"

	"github.com/harborview/booking-backend/internal/database"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/sirupsen/logrus"
)

// ReservationService validates and executes reservation lifecycle
// transitions. It is the only writer of reservation state; check_in,
// check_out, total_price and room_id are never mutated after creation.
type ReservationService struct {
	reservationRepo *database.ReservationRepository
	roomRepo        *database.RoomRepository
	guestRepo       *database.GuestRepository
	audit           *AuditService
	queryTimeout    time.Duration
	logger          *logrus.Logger
}

// NewReservationService creates a new ReservationService
func NewReservationService(
	reservationRepo *database.ReservationRepository,
	roomRepo *database.RoomRepository,
	guestRepo *database.GuestRepository,
	audit *AuditService,
	queryTimeout time.Duration,
	logger *logrus.Logger,
) *ReservationService {
	return &ReservationService{
		reservationRepo: reservationRepo,
		roomRepo:        roomRepo,
		guestRepo:       guestRepo,
		audit:           audit,
		queryTimeout:    queryTimeout,
		logger:          logger,
	}
}

// Create books a room for a guest. The availability snapshot the guest
// selected from may be stale, so the repository re-validates the
// overlap predicate under a room lock before inserting; of two
// concurrent overlapping attempts on the same room, exactly one
// succeeds and the other observes ErrRoomUnavailable.
//
// The guest profile is created lazily on first booking if absent.
func (s *ReservationService) Create(ctx context.Context, guest *models.Guest, req *models.CreateReservationRequest) (*models.Reservation, error) {
	checkIn, err := models.ParseDate(req.CheckIn)
	if err != nil {
		return nil, err
	}
	checkOut, err := models.ParseDate(req.CheckOut)
	if err != nil {
		return nil, err
	}
	if Nights(checkIn, checkOut) <= 0 {
		return nil, models.ErrInvalidRange
	}
	if req.Guests <= 0 {
		return nil, models.ErrInvalidRange
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	room, err := s.roomRepo.GetByID(ctx, req.RoomID)
	if err != nil {
		return nil, storeErr(err)
	}
	if room == nil {
		return nil, models.ErrNotFound
	}

	if req.Guests > room.RoomType.MaxGuests {
		return nil, models.ErrCapacityExceeded
	}

	total, err := Price(room.RoomType, checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	stored, err := s.guestRepo.Ensure(ctx, guest)
	if err != nil {
		return nil, storeErr(err)
	}

	reservation := &models.Reservation{
		GuestID:    stored.ID,
		RoomID:     room.ID,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Guests:     req.Guests,
		TotalPrice: total,
	}

	if err := s.reservationRepo.Create(ctx, reservation); err != nil {
		return nil, storeErr(err)
	}

	// Denormalized display fields for the serving layer
	reservation.GuestEmail = stored.Email
	reservation.GuestName = stored.Name
	reservation.RoomNumber = room.RoomNumber
	reservation.RoomTypeName = room.RoomType.Name

	s.logger.WithFields(logrus.Fields{
		"reservation_id": reservation.ID,
		"guest_id":       stored.ID,
		"room_id":        room.ID,
		"check_in":       checkIn.Format(models.DateLayout),
		"check_out":      checkOut.Format(models.DateLayout),
		"total_price":    total,
	}).Info("Reservation created")

	return reservation, nil
}

// CheckIn transitions a confirmed reservation to checked_in
func (s *ReservationService) CheckIn(ctx context.Context, reservationID string, actor models.Actor) (*models.Reservation, error) {
	return s.transition(ctx, reservationID, actor, ActionCheckIn,
		models.ReservationStatusCheckedIn,
		models.ReservationStatusConfirmed)
}

// CheckOut transitions a checked_in reservation to checked_out
func (s *ReservationService) CheckOut(ctx context.Context, reservationID string, actor models.Actor) (*models.Reservation, error) {
	return s.transition(ctx, reservationID, actor, ActionCheckOut,
		models.ReservationStatusCheckedOut,
		models.ReservationStatusCheckedIn)
}

// Cancel transitions a confirmed or checked_in reservation to
// cancelled. Cancelled reservations no longer constrain bookings on
// their room.
func (s *ReservationService) Cancel(ctx context.Context, reservationID string, actor models.Actor) (*models.Reservation, error) {
	return s.transition(ctx, reservationID, actor, ActionCancel,
		models.ReservationStatusCancelled,
		models.ReservationStatusConfirmed, models.ReservationStatusCheckedIn)
}

// transition loads, authorizes, validates and executes one state
// machine edge. The status update is guarded by the legal source
// states, so a concurrent transition observed after our load cannot be
// overwritten: the guarded update reports no rows and we fail with
// ErrInvalidTransition.
func (s *ReservationService) transition(
	ctx context.Context,
	reservationID string,
	actor models.Actor,
	action ReservationAction,
	to models.ReservationStatus,
	from ...models.ReservationStatus,
) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, storeErr(err)
	}
	if reservation == nil {
		return nil, models.ErrNotFound
	}

	if !Authorize(actor, reservation, action) {
		return nil, models.ErrForbidden
	}

	if !legalFrom(reservation.Status, from) {
		return nil, models.ErrInvalidTransition
	}

	updated, err := s.reservationRepo.UpdateStatus(ctx, reservationID, to, from...)
	if err != nil {
		return nil, storeErr(err)
	}
	if !updated {
		return nil, models.ErrInvalidTransition
	}

	reservation.Status = to
	s.audit.RecordReservationAction(ctx, actor.ID, string(action), reservationID)

	s.logger.WithFields(logrus.Fields{
		"reservation_id": reservationID,
		"actor_id":       actor.ID,
		"action":         action,
		"status":         to,
	}).Info("Reservation transitioned")

	return reservation, nil
}

// GetForActor loads a reservation, enforcing that guests only see their
// own.
func (s *ReservationService) GetForActor(ctx context.Context, reservationID string, actor models.Actor) (*models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, storeErr(err)
	}
	if reservation == nil {
		return nil, models.ErrNotFound
	}
	if !Authorize(actor, reservation, ActionView) {
		return nil, models.ErrForbidden
	}

	return reservation, nil
}

// ListForGuest returns a guest's reservations, newest first
func (s *ReservationService) ListForGuest(ctx context.Context, guestID string) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	reservations, err := s.reservationRepo.GetByGuestID(ctx, guestID)
	if err != nil {
		return nil, storeErr(err)
	}
	return reservations, nil
}

// ListAll returns every reservation, newest first. Callers must gate
// this behind an admin check.
func (s *ReservationService) ListAll(ctx context.Context) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	reservations, err := s.reservationRepo.GetAll(ctx)
	if err != nil {
		return nil, storeErr(err)
	}
	return reservations, nil
}

// CheckInsForToday returns confirmed reservations arriving today
func (s *ReservationService) CheckInsForToday(ctx context.Context) ([]models.Reservation, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	today := truncateToDay(time.Now())
	reservations, err := s.reservationRepo.GetCheckInsForDate(ctx, today)
	if err != nil {
		return nil, storeErr(err)
	}
	return reservations, nil
}

func legalFrom(current models.ReservationStatus, from []models.ReservationStatus) bool {
	for _, s := range from {
		if current == s {
			return true
		}
	}
	return false
}
