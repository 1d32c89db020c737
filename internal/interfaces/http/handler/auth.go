package handler

import (
	"github.com/gin-gonic/gin"
	appidentity "github.com/runmarket/backend/internal/application/identity"
	"github.com/runmarket/backend/internal/interfaces/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *appidentity.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignUpCustomer registers a customer and signs them in.
func (h *AuthHandler) SignUpCustomer(c *gin.Context) {
	var req SignUpCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	result, err := h.authService.SignUpCustomer(c.Request.Context(), appidentity.SignUpCustomerInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, authResponse(result))
}

// SignUpVendor registers a vendor account along with its vendor record.
func (h *AuthHandler) SignUpVendor(c *gin.Context) {
	var req SignUpVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	result, err := h.authService.SignUpVendor(c.Request.Context(), appidentity.SignUpVendorInput{
		Email:          req.Email,
		Password:       req.Password,
		FullName:       req.FullName,
		BusinessName:   req.BusinessName,
		WhatsAppNumber: req.WhatsAppNumber,
		Description:    req.Description,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, authResponse(result))
}

// SignIn authenticates a user against the portal they came from.
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	result, err := h.authService.SignIn(c.Request.Context(), appidentity.SignInInput{
		Email:    req.Email,
		Password: req.Password,
		Portal:   req.Portal,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, authResponse(result))
}

// RefreshToken exchanges a refresh token for a new pair.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), appidentity.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TokenResponse{
		AccessToken:           result.AccessToken,
		RefreshToken:          result.RefreshToken,
		AccessTokenExpiresAt:  result.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: result.RefreshTokenExpiresAt,
		TokenType:             result.TokenType,
	})
}

// SignOut revokes the current access token.
func (h *AuthHandler) SignOut(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	input := appidentity.SignOutInput{UserID: userID}
	if claims := middleware.GetJWTClaims(c); claims != nil {
		input.TokenJTI = claims.ID
		input.TokenTTL = claims.GetRemainingTTL()
	}

	if err := h.authService.SignOut(c.Request.Context(), input); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// VerifyEmail marks the account's email as verified.
func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req VerifyEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err, "Invalid request body")
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), appidentity.VerifyEmailInput{
		Token: req.Token,
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"verified": true})
}

// Me returns the signed-in user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
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
