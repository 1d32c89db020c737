package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/runmarket/backend/internal/infrastructure/auth"
	"github.com/runmarket/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey = "jwt_claims"
	JWTUserIDKey = "jwt_user_id"
	JWTRoleKey   = "jwt_role"
	BearerPrefix = "Bearer "
)

// AuthMiddleware validates JWT access tokens and enforces role-based access
// on route groups.
type AuthMiddleware struct {
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthMiddleware creates an auth middleware.
func NewAuthMiddleware(jwtService *auth.JWTService, blacklist auth.TokenBlacklist, log *zap.Logger) *AuthMiddleware {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthMiddleware{jwtService: jwtService, blacklist: blacklist, logger: log}
}

// RequireAuth rejects requests without a valid, unrevoked access token.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := m.authenticate(c)
		if err != nil {
			m.abortAuthError(c, err)
			return
		}
		m.attachClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present but lets
// anonymous requests through. Public storefront routes use this so view
// events can carry the viewer when one is signed in.
func (m *AuthMiddleware) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader("Authorization") != "" {
			if claims, err := m.authenticate(c); err == nil {
				m.attachClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose token carries a
// different role. It must run after RequireAuth.
func (m *AuthMiddleware) RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetJWTRole(c) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "ERR_FORBIDDEN",
					"message": "This portal is not available to your account",
				},
			})
			return
		}
		c.Next()
	}
}

func (m *AuthMiddleware) authenticate(c *gin.Context) (*auth.Claims, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, BearerPrefix) {
		return nil, auth.ErrInvalidToken
	}
	tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
	if tokenString == "" {
		return nil, auth.ErrInvalidToken
	}

	claims, err := m.jwtService.ValidateAccessToken(tokenString)
	if err != nil {
		return nil, err
	}

	if m.blacklist != nil {
		ctx := c.Request.Context()

		if claims.ID != "" {
			blacklisted, err := m.blacklist.IsBlacklisted(ctx, claims.ID)
			if err != nil {
				// Fail open for availability; a Redis outage must not
				// sign everyone out.
				m.logger.Error("Failed to check token blacklist",
					zap.String("jti", claims.ID),
					zap.Error(err))
			} else if blacklisted {
				return nil, auth.ErrTokenBlacklisted
			}
		}

		if claims.UserID != "" {
			invalidated, err := m.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
			if err != nil {
				m.logger.Error("Failed to check user token invalidation",
					zap.String("user_id", claims.UserID),
					zap.Error(err))
			} else if invalidated {
				return nil, auth.ErrTokenBlacklisted
			}
		}
	}

	return claims, nil
}

func (m *AuthMiddleware) attachClaims(c *gin.Context, claims *auth.Claims) {
	c.Set(JWTClaimsKey, claims)
	c.Set(JWTUserIDKey, claims.UserID)
	c.Set(JWTRoleKey, claims.Role)

	ctx := c.Request.Context()
	log := logger.FromContext(ctx)
	ctx, _ = logger.WithUserID(ctx, log, claims.UserID)
	c.Request = c.Request.WithContext(ctx)
}

func (m *AuthMiddleware) abortAuthError(c *gin.Context, err error) {
	m.logger.Warn("Authentication failed",
		zap.Error(err),
		zap.String("path", c.Request.URL.Path))

	errorCode := "ERR_UNAUTHORIZED"
	errorMessage := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		errorCode = "ERR_TOKEN_EXPIRED"
		errorMessage = "Token has expired"
	case auth.ErrTokenBlacklisted:
		errorCode = "ERR_TOKEN_REVOKED"
		errorMessage = "Session has been revoked"
	case auth.ErrInvalidTokenType:
		errorCode = "ERR_TOKEN_INVALID"
		errorMessage = "Invalid token type"
	case auth.ErrInvalidToken:
		errorCode = "ERR_TOKEN_INVALID"
		errorMessage = "Invalid token"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    errorCode,
			"message": errorMessage,
		},
	})
}

// GetJWTClaims retrieves JWT claims from gin.Context
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTUserID retrieves the user ID from JWT claims in context
func GetJWTUserID(c *gin.Context) string {
	if userID, exists := c.Get(JWTUserIDKey); exists {
		if id, ok := userID.(string); ok {
			return id
		}
	}
	return ""
}

// GetJWTRole retrieves the role from JWT claims in context
func GetJWTRole(c *gin.Context) string {
	if role, exists := c.Get(JWTRoleKey); exists {
		if r, ok := role.(string); ok {
			return r
		}
	}
	return ""
}
