package identity

import (
	"strings"

	"github.com/garment/backend/internal/domain/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// User is an authenticated principal. Each user carries exactly one role;
// the role name travels in the session token and is resolved to
// permissions on every request.
type User struct {
	shared.BaseEntity
	Username     string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash string    `gorm:"type:varchar(100);not null"`
	FullName     string    `gorm:"type:varchar(200)"`
	RoleID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Role         *Role     `gorm:"foreignKey:RoleID"`
	Active       bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (User) TableName() string {
	return "users"
}

// NewUser creates a user with a bcrypt-hashed password
func NewUser(username, password, fullName string, roleID uuid.UUID) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" {
		return nil, shared.NewValidationError("Username cannot be empty")
	}
	if roleID == uuid.Nil {
		return nil, shared.NewValidationError("User must have a role")
	}

	u := &User{
		BaseEntity: shared.NewBaseEntity(),
		Username:   username,
		FullName:   strings.TrimSpace(fullName),
		RoleID:     roleID,
		Active:     true,
	}
	if err := u.SetPassword(password); err != nil {
		return nil, err
	}
	return u, nil
}

// SetPassword hashes and stores the password
func (u *User) SetPassword(password string) error {
	if len(password) < 8 {
		return shared.NewValidationError("Password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Touch()
	return nil
}

// CheckPassword verifies a candidate password against the stored hash
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// RoleName returns the user's role name, empty when the role is not loaded
func (u *User) RoleName() string {
	if u.Role == nil {
		return ""
	}
	return u.Role.Name
}
