package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/harborview/booking-backend/internal/models"
)

// AuditRepository handles database operations for the audit_log table
type AuditRepository struct {
	db DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// Create inserts an audit entry
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditEntry) error {
	query := `
		INSERT INTO audit_log (id, actor_id, action, reservation_id, ip_address, device_info)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	err := r.db.QueryRowxContext(
		ctx, query,
		entry.ID, entry.ActorID, entry.Action, entry.ReservationID,
		entry.IPAddress, entry.DeviceInfo,
	).Scan(&entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create audit entry: %w", err)
	}

	return nil
}

// GetByReservationID retrieves the audit trail for a reservation,
// oldest first
func (r *AuditRepository) GetByReservationID(ctx context.Context, reservationID string) ([]models.AuditEntry, error) {
	query := `
		SELECT id, actor_id, action, reservation_id, ip_address, device_info, created_at
		FROM audit_log
		WHERE reservation_id = $1
		ORDER BY created_at
	`

	entries := []models.AuditEntry{}
	if err := r.db.SelectContext(ctx, &entries, query, reservationID); err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}

	return entries, nil
}
