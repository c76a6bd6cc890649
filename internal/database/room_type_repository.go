package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/lib/pq"
)

// RoomTypeRepository handles database operations for the room_types table
type RoomTypeRepository struct {
	db DB
}

// NewRoomTypeRepository creates a new RoomTypeRepository
func NewRoomTypeRepository(db DB) *RoomTypeRepository {
	return &RoomTypeRepository{db: db}
}

// Create creates a new room type
func (r *RoomTypeRepository) Create(ctx context.Context, rt *models.RoomType) error {
	query := `
		INSERT INTO room_types (id, name, description, price_per_night, max_guests, amenities, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at, updated_at
	`

	if rt.ID == "" {
		rt.ID = uuid.New().String()
	}
	if rt.Amenities == nil {
		rt.Amenities = pq.StringArray{}
	}

	err := r.db.QueryRowxContext(
		ctx, query,
		rt.ID, rt.Name, rt.Description, rt.PricePerNight, rt.MaxGuests, rt.Amenities, rt.ImageURL,
	).Scan(&rt.CreatedAt, &rt.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create room type: %w", err)
	}

	return nil
}

// GetByID retrieves a room type by ID. Returns nil when not found.
func (r *RoomTypeRepository) GetByID(ctx context.Context, id string) (*models.RoomType, error) {
	query := `
		SELECT id, name, description, price_per_night, max_guests, amenities, image_url,
		       created_at, updated_at
		FROM room_types
		WHERE id = $1
	`

	rt := &models.RoomType{}
	err := r.db.GetContext(ctx, rt, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get room type: %w", err)
	}

	return rt, nil
}

// GetAll retrieves all room types ordered by nightly price
func (r *RoomTypeRepository) GetAll(ctx context.Context) ([]models.RoomType, error) {
	query := `
		SELECT id, name, description, price_per_night, max_guests, amenities, image_url,
		       created_at, updated_at
		FROM room_types
		ORDER BY price_per_night
	`

	roomTypes := []models.RoomType{}
	if err := r.db.SelectContext(ctx, &roomTypes, query); err != nil {
		return nil, fmt.Errorf("failed to list room types: %w", err)
	}

	return roomTypes, nil
}

// Update applies the non-nil fields of req to the room type
func (r *RoomTypeRepository) Update(ctx context.Context, id string, req *models.UpdateRoomTypeRequest) (*models.RoomType, error) {
	sets := []string{}
	args := []interface{}{id}

	addSet := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if req.Name != nil {
		addSet("name", *req.Name)
	}
	if req.Description != nil {
		addSet("description", *req.Description)
	}
	if req.PricePerNight != nil {
		addSet("price_per_night", *req.PricePerNight)
	}
	if req.MaxGuests != nil {
		addSet("max_guests", *req.MaxGuests)
	}
	if req.Amenities != nil {
		addSet("amenities", pq.StringArray(req.Amenities))
	}
	if req.ImageURL != nil {
		addSet("image_url", *req.ImageURL)
	}

	if len(sets) == 0 {
		return r.GetByID(ctx, id)
	}

	query := fmt.Sprintf(`
		UPDATE room_types
		SET %s, updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, description, price_per_night, max_guests, amenities, image_url,
		          created_at, updated_at
	`, strings.Join(sets, ", "))

	rt := &models.RoomType{}
	err := r.db.GetContext(ctx, rt, query, args...)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update room type: %w", err)
	}

	return rt, nil
}

// Delete deletes a room type. Returns false when no row matched.
func (r *RoomTypeRepository) Delete(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM room_types WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete room type: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rows > 0, nil
}
