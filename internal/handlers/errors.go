package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harborview/booking-backend/internal/models"
)

// respondError maps engine errors to HTTP responses. Unknown errors are
// reported as 500 without leaking internals to the client.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_range",
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrCapacityExceeded):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "capacity_exceeded",
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "forbidden",
			"message": "You don't have permission to perform this operation",
		})
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "not_found",
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrRoomUnavailable):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "room_unavailable",
			"message": "Room is already booked for the requested dates",
		})
	case errors.Is(err, models.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "invalid_transition",
			"message": err.Error(),
		})
	case errors.Is(err, models.ErrRoomTypeInUse):
		c.JSON(http.StatusConflict, gin.H{
			"error":   "room_type_in_use",
			"message": "Room type still has rooms assigned to it",
		})
	case errors.Is(err, models.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "store_unavailable",
			"message": "Storage backend is unavailable, please retry",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "internal_error",
			"message": "An unexpected error occurred",
		})
	}
}
