package services

import (
	"context"
	"encoding/json"

	"github.com/harborview/booking-backend/internal/database"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/harborview/booking-backend/internal/utils"
	"github.com/sirupsen/logrus"
)

// AuditService records reservation lifecycle actions. Audit failures
// are logged but never fail the operation being audited.
type AuditService struct {
	repo    *database.AuditRepository
	enabled bool
	logger  *logrus.Logger
}

// NewAuditService creates a new AuditService
func NewAuditService(repo *database.AuditRepository, enabled bool, logger *logrus.Logger) *AuditService {
	return &AuditService{
		repo:    repo,
		enabled: enabled,
		logger:  logger,
	}
}

// RecordReservationAction records who performed which transition on a
// reservation, with device information parsed from the request
// metadata when present.
func (s *AuditService) RecordReservationAction(ctx context.Context, actorID, action, reservationID string) {
	if !s.enabled {
		return
	}

	entry := &models.AuditEntry{
		ActorID:       actorID,
		Action:        action,
		ReservationID: reservationID,
	}

	if meta, ok := utils.RequestMetaFrom(ctx); ok {
		entry.IPAddress = meta.IPAddress
		deviceInfo := utils.ParseUserAgent(meta.UserAgent)
		if data, err := json.Marshal(deviceInfo); err == nil {
			entry.DeviceInfo = string(data)
		}
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"actor_id":       actorID,
			"action":         action,
			"reservation_id": reservationID,
		}).Error("Failed to record audit entry")
	}
}

// Trail returns the audit trail for a reservation, oldest first
func (s *AuditService) Trail(ctx context.Context, reservationID string) ([]models.AuditEntry, error) {
	entries, err := s.repo.GetByReservationID(ctx, reservationID)
	if err != nil {
		return nil, storeErr(err)
	}
	return entries, nil
}
