package domain

import (
	"fmt"
	"regexp"
	"strings"

	sharedDomain "github.com/inheaven/petservice/internal/shared/domain"
)

var (
	ErrInvalidEmail    = fmt.Errorf("%w: invalid email address", sharedDomain.ErrInvalidInput)
	ErrEmptyName       = fmt.Errorf("%w: name cannot be empty", sharedDomain.ErrInvalidInput)
	ErrNameTooLong     = fmt.Errorf("%w: name exceeds maximum length", sharedDomain.ErrInvalidInput)
	ErrInvalidUsername = fmt.Errorf("%w: username must be 3-50 characters of a-z, 0-9, '.', '_' or '-'", sharedDomain.ErrInvalidInput)
	ErrInvalidRole     = fmt.Errorf("%w: role must be DOCTOR, CUSTOMER or ADMIN", sharedDomain.ErrInvalidInput)
)

// MaxNameLength is the maximum allowed name length
const MaxNameLength = 255

var (
	emailRegex    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	usernameRegex = regexp.MustCompile(`^[a-z0-9._-]{3,50}$`)
)

// Email represents an optional, validated email address.
type Email struct {
	value string
}

// NewEmail creates a validated email address. An empty value is allowed and
// means the user left no address.
func NewEmail(value string) (Email, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if value == "" {
		return Email{}, nil
	}
	if !emailRegex.MatchString(value) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: value}, nil
}

// String returns the email string.
func (e Email) String() string {
	return e.value
}

// IsZero reports whether no address was given.
func (e Email) IsZero() bool {
	return e.value == ""
}

// Name represents a validated full name.
type Name struct {
	value string
}

// NewName creates a validated name.
func NewName(value string) (Name, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return Name{}, ErrEmptyName
	}
	if len(value) > MaxNameLength {
		return Name{}, ErrNameTooLong
	}
	return Name{value: value}, nil
}

// String returns the name string.
func (n Name) String() string {
	return n.value
}

// Username is the unique login handle of a user.
type Username struct {
	value string
}

// NewUsername lower-cases and validates value.
func NewUsername(value string) (Username, error) {
	value = strings.TrimSpace(strings.ToLower(value))
	if !usernameRegex.MatchString(value) {
		return Username{}, ErrInvalidUsername
	}
	return Username{value: value}, nil
}

// String returns the username string.
func (u Username) String() string {
	return u.value
}

// Role is what a user does at the clinic.
type Role string

const (
	RoleDoctor   Role = "DOCTOR"
	RoleCustomer Role = "CUSTOMER"
	RoleAdmin    Role = "ADMIN"
)

// ParseRole accepts a role name in any case.
func ParseRole(value string) (Role, error) {
	role := Role(strings.ToUpper(strings.TrimSpace(value)))
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// IsValid checks if the role is supported.
func (r Role) IsValid() bool {
	switch r {
	case RoleDoctor, RoleCustomer, RoleAdmin:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}
