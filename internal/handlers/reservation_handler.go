package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborview/booking-backend/internal/middleware"
	"github.com/harborview/booking-backend/internal/models"
	"github.com/harborview/booking-backend/internal/services"
)

type ReservationHandler struct {
	reservationService *services.ReservationService
}

func NewReservationHandler(reservationService *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{reservationService: reservationService}
}

// Create books a room for the authenticated guest
// POST /api/v1/reservations
func (h *ReservationHandler) Create(c *gin.Context) {
	guestCtx, exists := middleware.GetGuestContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req models.CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	guest := &models.Guest{
		ID:    guestCtx.ID,
		Email: guestCtx.Email,
		Name:  guestCtx.Name,
		Role:  guestCtx.Role,
	}

	reservation, err := h.reservationService.Create(c.Request.Context(), guest, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

// GetByID returns a single reservation; guests can only read their own
// GET /api/v1/reservations/:id
func (h *ReservationHandler) GetByID(c *gin.Context) {
	guestCtx, exists := middleware.GetGuestContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reservation, err := h.reservationService.GetForActor(c.Request.Context(), c.Param("id"), guestCtx.Actor())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

// ListMine returns the authenticated guest's reservations, newest first
// GET /api/v1/reservations
func (h *ReservationHandler) ListMine(c *gin.Context) {
	guestCtx, exists := middleware.GetGuestContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reservations, err := h.reservationService.ListForGuest(c.Request.Context(), guestCtx.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

// CheckIn transitions a confirmed reservation to checked_in
// POST /api/v1/reservations/:id/check-in
func (h *ReservationHandler) CheckIn(c *gin.Context) {
	h.transition(c, h.reservationService.CheckIn)
}

// CheckOut transitions a checked_in reservation to checked_out
// POST /api/v1/reservations/:id/check-out
func (h *ReservationHandler) CheckOut(c *gin.Context) {
	h.transition(c, h.reservationService.CheckOut)
}

// Cancel cancels an active reservation
// POST /api/v1/reservations/:id/cancel
func (h *ReservationHandler) Cancel(c *gin.Context) {
	h.transition(c, h.reservationService.Cancel)
}

func (h *ReservationHandler) transition(
	c *gin.Context,
	fn func(ctx context.Context, id string, actor models.Actor) (*models.Reservation, error),
) {
	guestCtx, exists := middleware.GetGuestContext(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	reservation, err := fn(c.Request.Context(), c.Param("id"), guestCtx.Actor())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}
