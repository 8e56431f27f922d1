// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/ecart-storefront/internal/domain/user"
)

// AuthHandler handles signup, login and session endpoints
type AuthHandler struct{}

// NewAuthHandler creates a new auth handler
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// Register handles POST /auth/signup
func (h *AuthHandler) Register(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	var req user.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	profile, err := s.Signup(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Signup failed. Please try again.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"data":    profile,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	var req user.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	profile, err := s.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		respondError(c, err, "Login failed. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data":    profile,
	})
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	if err := s.Logout(c.Request.Context()); err != nil {
		respondError(c, err, "Logout failed. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}

// GetSession handles GET /session
func (h *AuthHandler) GetSession(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Session retrieved successfully",
		"data":    s.Session.State(),
	})
}

// GetCounts handles GET /session/counts. With refresh=true both collections
// are re-fetched; otherwise the cached badge counts are returned.
func (h *AuthHandler) GetCounts(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	counts, err := s.BadgeCounts(c.Request.Context(), c.Query("refresh") == "true")
	if err != nil {
		respondError(c, err, "Failed to refresh counts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Counts retrieved successfully",
		"data":    counts,
	})
}
