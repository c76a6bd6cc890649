package models

import "time"

// AuditEntry records a reservation lifecycle action for traceability:
// who performed which transition, from which device.
type AuditEntry struct {
	ID            string    `json:"id" db:"id"`
	ActorID       string    `json:"actor_id" db:"actor_id"`
	Action        string    `json:"action" db:"action"`
	ReservationID string    `json:"reservation_id" db:"reservation_id"`
	IPAddress     string    `json:"ip_address" db:"ip_address"`
	DeviceInfo    string    `json:"device_info" db:"device_info"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}
