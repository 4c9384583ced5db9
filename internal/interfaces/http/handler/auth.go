package handler

import (
	"net/http"
	"time"

	appidentity "github.com/garment/backend/internal/application/identity"
	"github.com/garment/backend/internal/infrastructure/config"
	"github.com/garment/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles login, logout, and session introspection
type AuthHandler struct {
	BaseHandler
	authService *appidentity.AuthService
	cookie      config.CookieConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *appidentity.AuthService, cookie config.CookieConfig) *AuthHandler {
	return &AuthHandler{authService: authService, cookie: cookie}
}

// RegisterRoutes registers auth routes. Login is public; logout and me
// sit behind the session middleware installed by the caller.
func (h *AuthHandler) RegisterRoutes(public, protected *gin.RouterGroup) {
	public.POST("/auth/login", h.Login)
	protected.POST("/auth/logout", h.Logout)
	protected.GET("/auth/me", h.Me)
}

// Login authenticates a user, sets the session cookie, and returns the
// token pair for non-browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req appidentity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.setSessionCookie(c, resp.AccessToken, resp.ExpiresAt)
	h.Success(c, resp)
}

// Logout revokes the presented session token and clears the cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.GetJWTToken(c)
	if token != "" {
		if err := h.authService.Logout(c.Request.Context(), token); err != nil {
			h.HandleError(c, err)
			return
		}
	}

	h.clearSessionCookie(c)
	h.NoContent(c)
}

// Me returns the authenticated principal with resolved permissions
func (h *AuthHandler) Me(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	resp, err := h.authService.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, expiresAt time.Time) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(h.cookie.Name, token, int(time.Until(expiresAt).Seconds()),
		h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(h.sameSite())
	c.SetCookie(h.cookie.Name, "", -1, h.cookie.Path, h.cookie.Domain, h.cookie.Secure, true)
}

func (h *AuthHandler) sameSite() http.SameSite {
	switch h.cookie.SameSite {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
