package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/harborview/booking-backend/internal/models"
)

// GuestRepository handles database operations for the guest_profiles table
type GuestRepository struct {
	db DB
}

// NewGuestRepository creates a new GuestRepository
func NewGuestRepository(db DB) *GuestRepository {
	return &GuestRepository{db: db}
}

// Create creates a new guest profile
func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	query := `
		INSERT INTO guest_profiles (id, email, name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	if guest.ID == "" {
		guest.ID = uuid.New().String()
	}
	if guest.Role == "" {
		guest.Role = models.RoleGuest
	}

	err := r.db.QueryRowxContext(
		ctx, query,
		guest.ID, guest.Email, guest.Name, guest.Role, guest.PasswordHash,
	).Scan(&guest.CreatedAt, &guest.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create guest profile: %w", err)
	}

	return nil
}

// Ensure creates the guest profile if it does not exist yet and returns
// the stored row. Existing profiles are left untouched; the engine
// treats them as read-mostly reference data.
func (r *GuestRepository) Ensure(ctx context.Context, guest *models.Guest) (*models.Guest, error) {
	query := `
		INSERT INTO guest_profiles (id, email, name, role, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET updated_at = guest_profiles.updated_at
		RETURNING id, email, name, role, password_hash, created_at, updated_at
	`

	if guest.Role == "" {
		guest.Role = models.RoleGuest
	}

	stored := &models.Guest{}
	err := r.db.GetContext(ctx, stored, query,
		guest.ID, guest.Email, guest.Name, guest.Role, guest.PasswordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure guest profile: %w", err)
	}

	return stored, nil
}

// GetByID retrieves a guest profile by ID. Returns nil when not found.
func (r *GuestRepository) GetByID(ctx context.Context, id string) (*models.Guest, error) {
	query := `
		SELECT id, email, name, role, password_hash, created_at, updated_at
		FROM guest_profiles
		WHERE id = $1
	`

	guest := &models.Guest{}
	err := r.db.GetContext(ctx, guest, query, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest profile: %w", err)
	}

	return guest, nil
}

// GetByEmail retrieves a guest profile by email. Returns nil when not
// found.
func (r *GuestRepository) GetByEmail(ctx context.Context, email string) (*models.Guest, error) {
	query := `
		SELECT id, email, name, role, password_hash, created_at, updated_at
		FROM guest_profiles
		WHERE email = $1
	`

	guest := &models.Guest{}
	err := r.db.GetContext(ctx, guest, query, email)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get guest profile: %w", err)
	}

	return guest, nil
}

// GetAll retrieves all guest profiles, newest first
func (r *GuestRepository) GetAll(ctx context.Context) ([]models.Guest, error) {
	query := `
		SELECT id, email, name, role, password_hash, created_at, updated_at
		FROM guest_profiles
		ORDER BY created_at DESC
	`

	guests := []models.Guest{}
	if err := r.db.SelectContext(ctx, &guests, query); err != nil {
		return nil, fmt.Errorf("failed to list guest profiles: %w", err)
	}

	return guests, nil
}
