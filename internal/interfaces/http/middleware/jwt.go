package middleware

import (
	"net/http"
	"strings"

	"github.com/garment/backend/internal/infrastructure/auth"
	"github.com/garment/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// JWT context keys
const (
	JWTClaimsKey   = "jwt_claims"
	JWTUserIDKey   = "jwt_user_id"
	JWTUsernameKey = "jwt_username"
	JWTRoleKey     = "jwt_role"
	JWTTokenKey    = "jwt_token"

	AuthHeaderKey = "Authorization"
	BearerPrefix  = "Bearer "
)

// JWTMiddlewareConfig holds configuration for the session middleware
type JWTMiddlewareConfig struct {
	JWTService *auth.JWTService
	// TokenBlacklist is optional; revocation checks fail open so an
	// unreachable blacklist never locks everyone out
	TokenBlacklist auth.TokenBlacklist
	// CookieName is the session cookie consulted before the
	// Authorization header
	CookieName string
	Logger     *zap.Logger
}

// JWTAuthMiddleware authenticates requests from the session cookie or a
// Bearer token and stores the claims in the gin context.
func JWTAuthMiddleware(cfg JWTMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c, cfg.CookieName)
		if tokenString == "" {
			abortUnauthorized(c, cfg, auth.ErrInvalidToken, "Missing session token")
			return
		}

		claims, err := cfg.JWTService.ValidateAccessToken(tokenString)
		if err != nil {
			abortUnauthorized(c, cfg, err, "Session token validation failed")
			return
		}

		if cfg.TokenBlacklist != nil && claims.ID != "" {
			revoked, err := cfg.TokenBlacklist.IsBlacklisted(c.Request.Context(), claims.ID)
			if err != nil {
				if cfg.Logger != nil {
					cfg.Logger.Warn("token blacklist unavailable, skipping revocation check",
						zap.String("jti", claims.ID),
						zap.Error(err),
					)
				}
			} else if revoked {
				abortUnauthorized(c, cfg, auth.ErrTokenBlacklisted, "Session has been revoked")
				return
			}
		}

		c.Set(JWTClaimsKey, claims)
		c.Set(JWTUserIDKey, claims.UserID)
		c.Set(JWTUsernameKey, claims.Username)
		c.Set(JWTRoleKey, claims.Role)
		c.Set(JWTTokenKey, tokenString)

		c.Next()
	}
}

// extractToken reads the session token: cookie first, then Bearer header
func extractToken(c *gin.Context, cookieName string) string {
	if cookieName != "" {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			return cookie
		}
	}

	authHeader := c.GetHeader(AuthHeaderKey)
	if strings.HasPrefix(authHeader, BearerPrefix) {
		return strings.TrimPrefix(authHeader, BearerPrefix)
	}
	return ""
}

func abortUnauthorized(c *gin.Context, cfg JWTMiddlewareConfig, err error, message string) {
	if cfg.Logger != nil {
		cfg.Logger.Warn("authentication failed",
			zap.Error(err),
			zap.String("message", message),
			zap.String("path", c.Request.URL.Path),
		)
	}

	code := dto.ErrCodeUnauthorized
	responseMessage := "Authentication required"
	switch err {
	case auth.ErrExpiredToken:
		code = dto.ErrCodeTokenExpired
		responseMessage = "Session has expired"
	case auth.ErrTokenBlacklisted:
		code = dto.ErrCodeTokenInvalid
		responseMessage = "Session has been revoked"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
		code, responseMessage, c.GetString(RequestIDKey)))
}

// GetJWTClaims retrieves validated claims from the gin context, nil
// when the request is unauthenticated
func GetJWTClaims(c *gin.Context) *auth.Claims {
	if claims, exists := c.Get(JWTClaimsKey); exists {
		if jwtClaims, ok := claims.(*auth.Claims); ok {
			return jwtClaims
		}
	}
	return nil
}

// GetJWTRole returns the authenticated principal's role name
func GetJWTRole(c *gin.Context) string {
	return c.GetString(JWTRoleKey)
}

// GetJWTUserID returns the authenticated principal's user ID
func GetJWTUserID(c *gin.Context) string {
	return c.GetString(JWTUserIDKey)
}

// GetJWTUsername returns the authenticated principal's username
func GetJWTUsername(c *gin.Context) string {
	return c.GetString(JWTUsernameKey)
}

// GetJWTToken returns the raw session token presented by the request
func GetJWTToken(c *gin.Context) string {
	return c.GetString(JWTTokenKey)
}
