package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/garment/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PermissionResolver resolves a role name to a grant decision.
// Permissions are never embedded in the session token: they are looked
// up per request so role edits take effect without re-login.
type PermissionResolver interface {
	Can(ctx context.Context, roleName, permission string) (bool, error)
}

// PermissionConfig holds configuration for the permission middleware
type PermissionConfig struct {
	Resolver PermissionResolver
	Logger   *zap.Logger
}

// RequirePermission gates a route behind a single named permission
func RequirePermission(cfg PermissionConfig, permission string) gin.HandlerFunc {
	return RequirePermissionFunc(cfg, func(*gin.Context) string { return permission })
}

// RequirePermissionFunc gates a route behind a permission derived from
// the request, e.g. from a path parameter. An empty derived permission
// is a denial. Resolver failures fail closed.
func RequirePermissionFunc(cfg PermissionConfig, permFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponseWithRequestID(
				dto.ErrCodeUnauthorized, "Authentication required", c.GetString(RequestIDKey)))
			return
		}

		permission := permFunc(c)
		if permission == "" {
			abortForbidden(c, "")
			return
		}

		allowed, err := cfg.Resolver.Can(c.Request.Context(), claims.Role, permission)
		if err != nil {
			if cfg.Logger != nil {
				cfg.Logger.Error("permission resolution failed, denying",
					zap.String("role", claims.Role),
					zap.String("permission", permission),
					zap.Error(err),
				)
			}
			if errors.Is(err, shared.ErrStoreUnavailable) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, dto.NewErrorResponseWithRequestID(
					dto.ErrCodeStoreUnavailable, "Permission store is unavailable", c.GetString(RequestIDKey)))
				return
			}
			abortForbidden(c, permission)
			return
		}
		if !allowed {
			if cfg.Logger != nil {
				cfg.Logger.Info("permission denied",
					zap.String("role", claims.Role),
					zap.String("permission", permission),
					zap.String("path", c.Request.URL.Path),
				)
			}
			abortForbidden(c, permission)
			return
		}

		c.Next()
	}
}

func abortForbidden(c *gin.Context, permission string) {
	message := "You do not have permission to perform this action"
	if permission != "" {
		message = "Missing permission: " + permission
	}
	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeForbidden, message, c.GetString(RequestIDKey)))
}
