// Package staff defines internal back-office (CRM) user accounts.
package staff

import (
	"errors"
	"net/mail"
	"time"
)

// Role represents the authorization level of a staff user.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleSupport Role = "support"
)

// ValidRoles is the set of all valid staff roles.
var ValidRoles = map[Role]bool{
	RoleAdmin:   true,
	RoleSupport: true,
}

// Staff represents an internal CRM user. Unlike corporate users, staff
// authenticate with a password.
type Staff struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Contact      string    `json:"contact"`
	PasswordHash string    `json:"-"` // never serialized
	Role         Role      `json:"role"`
	Active       bool      `json:"active"`
	LastLogin    time.Time `json:"last_login,omitzero"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RegisterRequest is the input for creating a staff account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Contact  string `json:"contact"`
	Password string `json:"password"`
	Role     Role   `json:"role,omitempty"`
}

// Validate checks that the RegisterRequest has all required fields.
func (r *RegisterRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("invalid email format")
	}
	if len(r.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if r.Role != "" && !ValidRoles[r.Role] {
		return errors.New("invalid role: must be admin or support")
	}
	return nil
}

// LoginRequest is the input for staff password login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks that the LoginRequest has all required fields.
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// TokenClaims is the JWT payload for an authenticated staff user.
type TokenClaims struct {
	StaffID  string `json:"staff_id"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
	JTI      string `json:"jti"`
	Audience string `json:"aud"`
	Issuer   string `json:"iss"`
}
