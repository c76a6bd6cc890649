package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harborview/booking-backend/internal/models"
)

// RoomRepository handles database operations for the rooms table
type RoomRepository struct {
	db DB
}

// NewRoomRepository creates a new RoomRepository
func NewRoomRepository(db DB) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create creates a new room
func (r *RoomRepository) Create(ctx context.Context, room *models.Room) error {
	query := `
		INSERT INTO rooms (id, room_number, room_type_id, status, floor)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	if room.ID == "" {
		room.ID = uuid.New().String()
	}
	if room.Status == "" {
		room.Status = models.RoomStatusAvailable
	}

	err := r.db.QueryRowxContext(
		ctx, query,
		room.ID, room.RoomNumber, room.RoomTypeID, room.Status, room.Floor,
	).Scan(&room.CreatedAt, &room.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create room: %w", err)
	}

	return nil
}

// GetByID retrieves a room with its room type joined. Returns nil when
// not found.
func (r *RoomRepository) GetByID(ctx context.Context, id string) (*models.Room, error) {
	query := `
		SELECT r.id, r.room_number, r.room_type_id, r.status, r.floor,
		       r.created_at, r.updated_at,
		       rt.id AS "rt.id", rt.name AS "rt.name", rt.description AS "rt.description",
		       rt.price_per_night AS "rt.price_per_night", rt.max_guests AS "rt.max_guests",
		       rt.amenities AS "rt.amenities", rt.image_url AS "rt.image_url",
		       rt.created_at AS "rt.created_at", rt.updated_at AS "rt.updated_at"
		FROM rooms r
		JOIN room_types rt ON rt.id = r.room_type_id
		WHERE r.id = $1
	`

	rows, err := r.db.QueryxContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get room: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("failed to get room: %w", err)
		}
		return nil, nil
	}

	room, err := scanRoomWithType(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan room: %w", err)
	}

	return room, nil
}

// GetAll retrieves all rooms with their room types, ordered by floor
// then room number
func (r *RoomRepository) GetAll(ctx context.Context) ([]models.Room, error) {
	return r.list(ctx, "")
}

// GetByStatus retrieves rooms with the given administrative status,
// with their room types joined
func (r *RoomRepository) GetByStatus(ctx context.Context, status models.RoomStatus) ([]models.Room, error) {
	return r.list(ctx, string(status))
}

func (r *RoomRepository) list(ctx context.Context, status string) ([]models.Room, error) {
	query := `
		SELECT r.id, r.room_number, r.room_type_id, r.status, r.floor,
		       r.created_at, r.updated_at,
		       rt.id AS "rt.id", rt.name AS "rt.name", rt.description AS "rt.description",
		       rt.price_per_night AS "rt.price_per_night", rt.max_guests AS "rt.max_guests",
		       rt.amenities AS "rt.amenities", rt.image_url AS "rt.image_url",
		       rt.created_at AS "rt.created_at", rt.updated_at AS "rt.updated_at"
		FROM rooms r
		JOIN room_types rt ON rt.id = r.room_type_id
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE r.status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY r.floor, r.room_number`

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list rooms: %w", err)
	}
	defer rows.Close()

	rooms := []models.Room{}
	for rows.Next() {
		room, err := scanRoomWithType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		rooms = append(rooms, *room)
	}

	return rooms, rows.Err()
}

// Update applies the non-nil fields of req to the room
func (r *RoomRepository) Update(ctx context.Context, id string, req *models.UpdateRoomRequest) (*models.Room, error) {
	sets := []string{}
	args := []interface{}{id}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.RoomNumber != nil {
		addSet("room_number", *req.RoomNumber)
	}
	if req.RoomTypeID != nil {
		addSet("room_type_id", *req.RoomTypeID)
	}
	if req.Status != nil {
		addSet("status", *req.Status)
	}
	if req.Floor != nil {
		addSet("floor", *req.Floor)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE rooms
		SET %s, updated_at = NOW()
		WHERE id = $1
	`, strings.Join(sets, ", "))

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update room: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, nil
	}

	return r.GetByID(ctx, id)
}

// Delete deletes a room. Returns false when no row matched.
func (r *RoomRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM rooms WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete room: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}

// CountByRoomType returns the number of rooms referencing a room type
func (r *RoomRepository) CountByRoomType(ctx context.Context, roomTypeID string) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM rooms WHERE room_type_id = $1`, roomTypeID)
	if err != nil {
		return 0, fmt.Errorf("failed to count rooms: %w", err)
	}
	return count, nil
}

// scanRoomWithType scans a room row with the joined room type columns
func scanRoomWithType(rows rowScanner) (*models.Room, error) {
	room := &models.Room{}
	rt := &models.RoomType{}

	err := rows.Scan(
		&room.ID, &room.RoomNumber, &room.RoomTypeID, &room.Status, &room.Floor,
		&room.CreatedAt, &room.UpdatedAt,
		&rt.ID, &rt.Name, &rt.Description,
		&rt.PricePerNight, &rt.MaxGuests,
		&rt.Amenities, &rt.ImageURL,
		&rt.CreatedAt, &rt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	room.RoomType = rt
	return room, nil
}

// rowScanner is satisfied by *sqlx.Rows and *sqlx.Row
type rowScanner interface {
	Scan(dest ...interface{}) error
}
