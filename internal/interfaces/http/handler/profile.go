package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/runmarket/backend/internal/application/identity"
)

// ProfileHandler handles the signed-in user's profile.
type ProfileHandler struct {
	BaseHandler
	profileService *appidentity.ProfileService
	authService    *appidentity.AuthService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService *appidentity.ProfileService, authService *appidentity.AuthService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, authService: authService}
}

// GetProfile returns the current user's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	info, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, authUserResponse(*info))
}

// UpdateProfile applies a partial profile update.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	info, err := h.profileService.UpdateProfile(c.Request.Context(), appidentity.UpdateProfileInput{
		UserID:       userID,
		FullName:     req.FullName,
		Phone:        req.Phone,
		AvatarURL:    req.AvatarURL,
		MatricNumber: req.MatricNumber,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, authUserResponse(*info))
}

// ChangePassword rotates the current user's password.
func (h *ProfileHandler) ChangePassword(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	if err := h.profileService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
