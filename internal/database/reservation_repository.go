package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/lib/pq"
)

// reservationColumns is the read-side projection used by every lookup:
// the reservation row plus the denormalized guest/room display fields.
const reservationColumns = `
	res.id, res.guest_id, res.room_id, res.check_in, res.check_out,
	res.guests, res.total_price, res.status, res.created_at, res.updated_at,
	g.email AS guest_email, g.name AS guest_name,
	r.room_number, rt.name AS room_type_name
`

const reservationJoins = `
	FROM reservations res
	JOIN guest_profiles g ON g.id = res.guest_id
	JOIN rooms r ON r.id = res.room_id
	JOIN room_types rt ON rt.id = r.room_type_id
`

// ReservationRepository handles database operations for the
// reservations table
type ReservationRepository struct {
	db DB
}

// NewReservationRepository creates a new ReservationRepository
func NewReservationRepository(db DB) *ReservationRepository {
	return &ReservationRepository{db: db}
}

// Create persists a new reservation after re-validating the no-overlap
// invariant inside a transaction. The room row is locked for the
// duration of the check-and-insert so two concurrent attempts on the
// same room serialize; the loser of the race observes
// models.ErrRoomUnavailable. The schema additionally carries an
// exclusion constraint on (room_id, daterange) for active statuses, so
// even a bypassing writer cannot produce a silent double-booking.
func (r *ReservationRepository) Create(ctx context.Context, res *models.Reservation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the room row. Serializes concurrent creates on the same room.
	var roomID string
	err = tx.QueryRowxContext(ctx, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, res.RoomID).Scan(&roomID)
	if err == sql.ErrNoRows {
		return models.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock room: %w", err)
	}

	// Re-run the overlap predicate against current active reservations.
	// The availability snapshot the caller saw may be stale by now.
	var conflicts int
	err = tx.QueryRowxContext(ctx, `
		SELECT COUNT(*)
		FROM reservations
		WHERE room_id = $1
		  AND status IN ('confirmed', 'checked_in')
		  AND check_in < $3
		  AND check_out > $2
	`, res.RoomID, res.CheckIn, res.CheckOut).Scan(&conflicts)
	if err != nil {
		return fmt.Errorf("failed to check for conflicting reservations: %w", err)
	}
	if conflicts > 0 {
		return models.ErrRoomUnavailable
	}

	if res.ID == "" {
		res.ID = uuid.New().String()
	}
	res.Status = models.ReservationStatusConfirmed

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO reservations (id, guest_id, room_id, check_in, check_out, guests, total_price, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`, res.ID, res.GuestID, res.RoomID, res.CheckIn, res.CheckOut,
		res.Guests, res.TotalPrice, res.Status,
	).Scan(&res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if isExclusionViolation(err) {
			return models.ErrRoomUnavailable
		}
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if err = tx.Commit(); err != nil {
		if isExclusionViolation(err) {
			return models.ErrRoomUnavailable
		}
		return fmt.Errorf("failed to commit reservation: %w", err)
	}

	return nil
}

// GetByID retrieves a reservation with display fields joined. Returns
// nil when not found.
func (r *ReservationRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	query := `SELECT` + reservationColumns + reservationJoins + `WHERE res.id = $1`

	res := &models.Reservation{}
	err := r.db.GetContext(ctx, res, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get reservation: %w", err)
	}

	return res, nil
}

// GetByGuestID retrieves all reservations for a guest, newest first
func (r *ReservationRepository) GetByGuestID(ctx context.Context, guestID string) ([]models.Reservation, error) {
	query := `SELECT` + reservationColumns + reservationJoins + `
		WHERE res.guest_id = $1
		ORDER BY res.created_at DESC`

	reservations := []models.Reservation{}
	if err := r.db.SelectContext(ctx, &reservations, query, guestID); err != nil {
		return nil, fmt.Errorf("failed to list guest reservations: %w", err)
	}

	return reservations, nil
}

// GetAll retrieves all reservations, newest first
func (r *ReservationRepository) GetAll(ctx context.Context) ([]models.Reservation, error) {
	query := `SELECT` + reservationColumns + reservationJoins + `ORDER BY res.created_at DESC`

	reservations := []models.Reservation{}
	if err := r.db.SelectContext(ctx, &reservations, query); err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}

	return reservations, nil
}

// GetActive retrieves all reservations that constrain future bookings
// (status confirmed or checked_in)
func (r *ReservationRepository) GetActive(ctx context.Context) ([]models.Reservation, error) {
	query := `
		SELECT id, guest_id, room_id, check_in, check_out, guests, total_price,
		       status, created_at, updated_at
		FROM reservations
		WHERE status IN ('confirmed', 'checked_in')
	`

	reservations := []models.Reservation{}
	if err := r.db.SelectContext(ctx, &reservations, query); err != nil {
		return nil, fmt.Errorf("failed to list active reservations: %w", err)
	}

	return reservations, nil
}

// GetCheckInsForDate retrieves confirmed reservations whose check-in
// falls on the given calendar day
func (r *ReservationRepository) GetCheckInsForDate(ctx context.Context, day time.Time) ([]models.Reservation, error) {
	query := `SELECT` + reservationColumns + reservationJoins + `
		WHERE res.status = 'confirmed' AND res.check_in = $1
		ORDER BY r.room_number`

	reservations := []models.Reservation{}
	if err := r.db.SelectContext(ctx, &reservations, query, day); err != nil {
		return nil, fmt.Errorf("failed to list check-ins: %w", err)
	}

	return reservations, nil
}

// UpdateStatus transitions a reservation to the given status, guarded
// by the set of states the transition is legal from. Returns false when
// the reservation was not in any of the from states (or does not
// exist), so a concurrent transition can never be overwritten.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, id string, to models.ReservationStatus, from ...models.ReservationStatus) (bool, error) {
	states := make([]string, len(from))
	for i, s := range from {
		states[i] = string(s)
	}

	query := `
		UPDATE reservations
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = ANY($3)
	`

	result, err := r.db.ExecContext(ctx, query, id, to, pq.Array(states))
	if err != nil {
		return false, fmt.Errorf("failed to update reservation status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// isExclusionViolation reports whether err is a Postgres exclusion or
// unique constraint violation, which maps to a booking conflict.
func isExclusionViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23P01" || pqErr.Code == "23505"
	}
	return false
}
