// internal/interfaces/http/middleware/auth.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/your-org/ecart-storefront/internal/config"
	"github.com/your-org/ecart-storefront/internal/domain/storefront"
	"github.com/your-org/ecart-storefront/internal/pkg/apperr"
	"github.com/your-org/ecart-storefront/internal/pkg/auth"
)

const (
	shopperKey   = "shopper"
	sessionIDKey = "session_id"
)

// SessionMiddleware resolves the browser session from its signed cookie, or
// the Authorization bearer token, and attaches the session's Shopper. A
// missing or invalid token starts a fresh session.
func SessionMiddleware(cfg *config.Config, jwtManager *auth.JWTManager, registry *storefront.Registry, logger logrus.FieldLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := ""
		token, err := c.Cookie(cfg.Session.CookieName)
		if err != nil || token == "" {
			token = auth.ExtractTokenFromHeader(c.GetHeader("Authorization"))
		}
		if token != "" {
			if id, err := jwtManager.ValidateSessionToken(token); err == nil {
				sessionID = id
			}
		}

		if sessionID == "" {
			sessionID = uuid.NewString()
			signed, err := jwtManager.GenerateSessionToken(sessionID)
			if err != nil {
				logger.WithError(err).Error("Failed to sign session token")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to start session",
				})
				c.Abort()
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(cfg.Session.CookieName, signed, int(cfg.JWT.SessionTokenExpiry.Seconds()), "/", cfg.Session.CookieDomain, cfg.Session.CookieSecure, true)
			c.Header("X-Session-Token", signed)
		}

		shopper, err := registry.Get(c.Request.Context(), sessionID)
		if err != nil {
			logger.WithError(err).WithField("session_id", sessionID).Error("Failed to restore session")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Session store unavailable",
			})
			c.Abort()
			return
		}

		c.Set(sessionIDKey, sessionID)
		c.Set(shopperKey, shopper)
		c.Next()
	}
}

// RequireLogin rejects anonymous sessions before the handler runs
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		shopper, ok := GetShopperFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}
		if _, err := shopper.Session.RequireUser(); err != nil {
			n := apperr.NotificationFor(err, "Authentication required")
			c.JSON(apperr.StatusCode(err), gin.H{
				"error":    n.Message,
				"severity": n.Severity,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetShopperFromContext returns the session's Shopper
func GetShopperFromContext(c *gin.Context) (*storefront.Shopper, bool) {
	v, exists := c.Get(shopperKey)
	if !exists {
		return nil, false
	}
	shopper, ok := v.(*storefront.Shopper)
	return shopper, ok
}

// GetSessionIDFromContext returns the resolved session id
func GetSessionIDFromContext(c *gin.Context) (string, bool) {
	id, exists := c.Get(sessionIDKey)
	if !exists {
		return "", false
	}
	return id.(string), true
}
