// internal/interfaces/http/handlers/profile.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/your-org/ecart-storefront/internal/domain/user"
)

// ProfileHandler handles the signed-in user's account
type ProfileHandler struct{}

// NewProfileHandler creates a new profile handler
func NewProfileHandler() *ProfileHandler {
	return &ProfileHandler{}
}

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	profile, err := s.Profile(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to retrieve profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile retrieved successfully",
		"data":    profile,
	})
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	var req user.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	profile, err := s.UpdateProfile(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to update profile")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"data":    profile,
	})
}

// DeleteAccount handles DELETE /profile
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	s, ok := shopper(c)
	if !ok {
		return
	}

	if err := s.DeleteAccount(c.Request.Context()); err != nil {
		respondError(c, err, "Failed to delete account")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Account deleted successfully",
	})
}
