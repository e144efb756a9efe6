// Package user provides identity records and credential verification.
package user

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/louisbranch/taskhub/internal/platform/errors"
	"github.com/louisbranch/taskhub/internal/platform/id"
)

// Role is an enumerated identity attribute inspected by the authorization
// engine. It is a property of the identity, never of individual tasks.
type Role string

const (
	// RoleUser is the default role for registered identities.
	RoleUser Role = "user"
	// RoleAdmin grants write access to every task regardless of ownership.
	RoleAdmin Role = "admin"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

var (
	// ErrEmptyUsername indicates a missing username.
	ErrEmptyUsername = apperrors.EF(apperrors.KindInvalidInput, "username", "username is required")
	// ErrEmptyPassword indicates a missing password.
	ErrEmptyPassword = apperrors.EF(apperrors.KindInvalidInput, "password", "password is required")
	// ErrPasswordTooShort indicates a password under the minimum length.
	ErrPasswordTooShort = apperrors.EF(apperrors.KindInvalidInput, "password",
		fmt.Sprintf("password must be at least %d characters", MinPasswordLength))
	// ErrInvalidRole indicates a role outside the known set.
	ErrInvalidRole = apperrors.EF(apperrors.KindInvalidInput, "role", "role must be user or admin")
)

// User represents an authenticated identity record.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the identity carries the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// VerifyPassword reports whether the candidate password matches the stored
// hash. The comparison is deliberately slow; callers must not retry in a loop.
func (u User) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// ParseRole validates a raw role value, defaulting empty input to RoleUser.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.TrimSpace(raw)) {
	case "":
		return RoleUser, nil
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	default:
		return "", ErrInvalidRole
	}
}

// CreateUserInput describes the metadata needed to register an identity.
type CreateUserInput struct {
	Username string
	Email    string
	Password string
	Role     string
}

// CreateUser creates a new identity with a generated ID, hashed password, and
// timestamps. Uniqueness of the username is enforced by storage, not here.
func CreateUser(input CreateUserInput, now func() time.Time, idGenerator func() (string, error)) (User, error) {
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return User{}, ErrEmptyUsername
	}
	if input.Password == "" {
		return User{}, ErrEmptyPassword
	}
	if len(input.Password) < MinPasswordLength {
		return User{}, ErrPasswordTooShort
	}
	role, err := ParseRole(input.Role)
	if err != nil {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	userID, err := idGenerator()
	if err != nil {
		return User{}, fmt.Errorf("generate user id: %w", err)
	}

	createdAt := now().UTC()
	return User{
		ID:           userID,
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}, nil
}
