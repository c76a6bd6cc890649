package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborview/booking-backend/internal/database"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/harborview/booking-backend/internal/services"
)

// AdminHandler serves the back-office surface: inventory management,
// the full reservation ledger and the audit trail. Every route behind
// it is wrapped in RequireAdmin.
type AdminHandler struct {
	inventoryService   *services.InventoryService
	reservationService *services.ReservationService
	auditService       *services.AuditService
	guestRepo          *database.GuestRepository
}

func NewAdminHandler(
	inventoryService *services.InventoryService,
	reservationService *services.ReservationService,
	auditService *services.AuditService,
	guestRepo *database.GuestRepository,
) *AdminHandler {
	return &AdminHandler{
		inventoryService:   inventoryService,
		reservationService: reservationService,
		auditService:       auditService,
		guestRepo:          guestRepo,
	}
}

// CreateRoomType creates a new room type
// POST /api/v1/admin/room-types
func (h *AdminHandler) CreateRoomType(c *gin.Context) {
	var req models.CreateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	roomType, err := h.inventoryService.CreateRoomType(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, roomType)
}

// UpdateRoomType updates an existing room type
// PUT /api/v1/admin/room-types/:id
func (h *AdminHandler) UpdateRoomType(c *gin.Context) {
	var req models.UpdateRoomTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	roomType, err := h.inventoryService.UpdateRoomType(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, roomType)
}

// DeleteRoomType deletes a room type that no room references
// DELETE /api/v1/admin/room-types/:id
func (h *AdminHandler) DeleteRoomType(c *gin.Context) {
	if err := h.inventoryService.DeleteRoomType(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room type deleted"})
}

// ListRooms returns all rooms with their room types
// GET /api/v1/admin/rooms
func (h *AdminHandler) ListRooms(c *gin.Context) {
	rooms, err := h.inventoryService.ListRooms(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// CreateRoom creates a new physical room
// POST /api/v1/admin/rooms
func (h *AdminHandler) CreateRoom(c *gin.Context) {
	var req models.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	room, err := h.inventoryService.CreateRoom(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, room)
}

// UpdateRoom updates a room's number, type, floor or status
// PUT /api/v1/admin/rooms/:id
func (h *AdminHandler) UpdateRoom(c *gin.Context) {
	var req models.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}
	if req.Status != nil && !models.ValidRoomStatus(*req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"message": "status must be one of: available, occupied, maintenance",
		})
		return
	}

	room, err := h.inventoryService.UpdateRoom(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, room)
}

// DeleteRoom deletes a room
// DELETE /api/v1/admin/rooms/:id
func (h *AdminHandler) DeleteRoom(c *gin.Context) {
	if err := h.inventoryService.DeleteRoom(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Room deleted"})
}

// ListReservations returns the full reservation ledger
// GET /api/v1/admin/reservations
func (h *AdminHandler) ListReservations(c *gin.Context) {
	reservations, err := h.reservationService.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// CheckInsToday returns confirmed reservations whose stay starts today
// GET /api/v1/admin/check-ins-today
func (h *AdminHandler) CheckInsToday(c *gin.Context) {
	reservations, err := h.reservationService.CheckInsForToday(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// AuditTrail returns the recorded lifecycle actions for a reservation
// GET /api/v1/admin/reservations/:id/audit
func (h *AdminHandler) AuditTrail(c *gin.Context) {
	entries, err := h.auditService.Trail(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// ListGuests returns all guest profiles
// GET /api/v1/admin/guests
func (h *AdminHandler) ListGuests(c *gin.Context) {
	guests, err := h.guestRepo.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, guests)
}
