package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/harborview/booking-backend/internal/models"
	"github.com/harborview/booking-backend/internal/services"
)

type AvailabilityHandler struct {
	availabilityService *services.AvailabilityService
	inventoryService    *services.InventoryService
}

func NewAvailabilityHandler(
	availabilityService *services.AvailabilityService,
	inventoryService *services.InventoryService,
) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityService: availabilityService,
		inventoryService:    inventoryService,
	}
}

// Search returns the room types with at least one free room for the
// requested stay
// POST /api/v1/availability/search
func (h *AvailabilityHandler) Search(c *gin.Context) {
	var req models.SearchAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "message": err.Error()})
		return
	}

	checkIn, err := models.ParseDate(req.CheckIn)
	if err != nil {
		respondError(c, err)
		return
	}
	checkOut, err := models.ParseDate(req.CheckOut)
	if err != nil {
		respondError(c, err)
		return
	}

	results, err := h.availabilityService.FindAvailable(c.Request.Context(), checkIn, checkOut)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"check_in":   req.CheckIn,
		"check_out":  req.CheckOut,
		"room_types": results,
	})
}

// ListRoomTypes returns the full room type catalog, cheapest first
// GET /api/v1/room-types
func (h *AvailabilityHandler) ListRoomTypes(c *gin.Context) {
	roomTypes, err := h.inventoryService.ListRoomTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, roomTypes)
}
