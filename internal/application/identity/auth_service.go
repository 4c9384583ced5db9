package identity

import (
	"context"
	"time"

	domain "github.com/garment/backend/internal/domain/identity"
	"github.com/garment/backend/internal/domain/shared"
	"github.com/garment/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// invalidCredentials deliberately does not say whether the username or
// the password was wrong.
var invalidCredentials = shared.NewDomainError(shared.CodeUnauthorized, "Invalid username or password")

// AuthService handles login, logout, and session introspection
type AuthService struct {
	userRepo   domain.UserRepository
	jwtService *auth.JWTService
	blacklist  auth.TokenBlacklist
	logger     *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo domain.UserRepository, jwtService *auth.JWTService, blacklist auth.TokenBlacklist, logger *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		blacklist:  blacklist,
		logger:     logger,
	}
}

// Login authenticates a user and issues a session token pair
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if err == shared.ErrNotFound {
			return nil, invalidCredentials
		}
		return nil, err
	}
	if !user.Active {
		return nil, invalidCredentials
	}
	if !user.CheckPassword(req.Password) {
		s.logger.Warn("failed login attempt", zap.String("username", req.Username))
		return nil, invalidCredentials
	}
	if user.RoleName() == "" {
		return nil, shared.NewDomainError(shared.CodeInvalidState, "User has no role assigned")
	}

	pair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.RoleName(),
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user logged in",
		zap.String("username", user.Username),
		zap.String("role", user.RoleName()),
	)

	return &LoginResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessTokenExpiresAt,
		User:         ToUserResponse(user),
	}, nil
}

// Logout revokes the presented access token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := s.jwtService.ValidateAccessToken(tokenString)
	if err != nil {
		// Expired or garbage tokens need no revocation
		return nil
	}
	if claims.ExpiresAt == nil {
		return nil
	}
	return s.blacklist.Add(ctx, claims.ID, time.Until(claims.ExpiresAt.Time))
}

// CurrentUser resolves the authenticated principal from a user ID
func (s *AuthService) CurrentUser(ctx context.Context, userID uuid.UUID) (*UserResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}
