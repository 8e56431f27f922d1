// internal/interfaces/http/handlers/response.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/ecart-storefront/internal/domain/storefront"
	"github.com/your-org/ecart-storefront/internal/interfaces/http/middleware"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
)

// respondError writes err as a notification; the cause is attached to the
// gin context for the request log
func respondError(c *gin.Context, err error, fallback string) {
	_ = c.Error(err)
	n := apperr.NotificationFor(err, fallback)
	c.JSON(apperr.StatusCode(err), gin.H{
		"error":    n.Message,
		"severity": n.Severity,
	})
}

// respondBadRequest rejects a malformed body
func respondBadRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error":    "Invalid request data",
		"details":  err.Error(),
		"severity": apperr.SeverityError,
	})
}

// respondNotification writes a success payload with a shopper-facing message
func respondNotification(c *gin.Context, status int, n apperr.Notification, data any) {
	body := gin.H{
		"message":  n.Message,
		"severity": n.Severity,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(status, body)
}

// shopper returns the session's shopper, aborting when the session
// middleware did not run
func shopper(c *gin.Context) (*storefront.Shopper, bool) {
	s, ok := middleware.GetShopperFromContext(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Session not initialised",
		})
		c.Abort()
	}
	return s, ok
}
