package identity

import (
	"time"

	"github.com/garment/backend/internal/domain/identity"
	"github.com/google/uuid"
)

// LoginRequest represents a login attempt
type LoginRequest struct {
	Username string `json:"username" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=1"`
}

// LoginResponse carries the session tokens and the authenticated profile
type LoginResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresAt    time.Time     `json:"expires_at"`
	User         *UserResponse `json:"user"`
}

// UserResponse represents an authenticated principal
type UserResponse struct {
	ID          uuid.UUID `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name,omitempty"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions"`
}

// ToUserResponse converts a domain user to a response. Permissions come
// from the preloaded role; a missing role yields an empty set.
func ToUserResponse(u *identity.User) *UserResponse {
	resp := &UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FullName:    u.FullName,
		Role:        u.RoleName(),
		Permissions: []string{},
	}
	if u.Role != nil {
		resp.Permissions = u.Role.PermissionNames()
	}
	return resp
}
