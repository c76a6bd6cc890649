package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/harborview/booking-backend/internal/utils"
)

// RequestMeta attaches the caller's IP address and user agent to the
// request context so the service layer can record them in the audit
// trail without depending on HTTP types
func RequestMeta() gin.HandlerFunc {
	return func(c *gin.Context) {
		meta := utils.RequestMeta{
			IPAddress: c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		c.Request = c.Request.WithContext(utils.WithRequestMeta(c.Request.Context(), meta))
		c.Next()
	}
}
