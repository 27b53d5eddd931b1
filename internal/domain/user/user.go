// Package user defines corporate employee accounts and their permissions.
package user

import (
	"errors"
	"net/mail"
	"regexp"
	"time"
)

// Role represents the authorization level of a corporate user.
type Role string

const (
	RoleCorporateAdmin Role = "corporate_admin"
	RoleTeamMember     Role = "team_member"
)

// ValidRoles is the set of all valid corporate user roles.
var ValidRoles = map[Role]bool{
	RoleCorporateAdmin: true,
	RoleTeamMember:     true,
}

// Permissions are the per-user capability flags. They are derived from the
// role at creation time and stored alongside the user.
type Permissions struct {
	CanCreateUsers    bool `json:"can_create_users"`
	CanApproveOrders  bool `json:"can_approve_orders"`
	CanPlaceOrders    bool `json:"can_place_orders"`
	CanViewOrders     bool `json:"can_view_orders"`
	CanRequestCredits bool `json:"can_request_credits"`
	CanViewCredits    bool `json:"can_view_credits"`
}

// DefaultPermissions returns the permission set implied by a role.
func DefaultPermissions(role Role) Permissions {
	switch role {
	case RoleCorporateAdmin:
		return Permissions{
			CanCreateUsers:    true,
			CanApproveOrders:  true,
			CanPlaceOrders:    true,
			CanViewOrders:     true,
			CanRequestCredits: true,
			CanViewCredits:    true,
		}
	default:
		return Permissions{
			CanPlaceOrders: true,
			CanViewOrders:  true,
			CanViewCredits: true,
		}
	}
}

// User represents an employee of a corporate tenant. Authentication is
// passwordless (email OTP), so there is no credential material here.
type User struct {
	ID          string      `json:"id"`
	TenantID    string      `json:"tenant_id"`
	Name        string      `json:"name"`
	Email       string      `json:"email"`
	Contact     string      `json:"contact"`
	Designation string      `json:"designation,omitempty"`
	Role        Role        `json:"role"`
	Permissions Permissions `json:"permissions"`
	CreatedBy   string      `json:"created_by,omitempty"`
	LastLogin   time.Time   `json:"last_login,omitzero"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// CreateRequest is the input for adding an employee to a tenant.
type CreateRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Contact     string `json:"contact"`
	Designation string `json:"designation,omitempty"`
	Role        Role   `json:"role"`
}

var contactRegex = regexp.MustCompile(`^\d{10}$`)

// Validate checks that the CreateRequest has all required fields.
func (r *CreateRequest) Validate() error {
	if r.Name == "" {
		return errors.New("name is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("invalid email format")
	}
	if !contactRegex.MatchString(r.Contact) {
		return errors.New("contact must be a 10-digit number")
	}
	if !ValidRoles[r.Role] {
		return errors.New("invalid role: must be corporate_admin or team_member")
	}
	return nil
}

// TokenClaims is the JWT payload for an authenticated corporate user.
type TokenClaims struct {
	UserID   string `json:"user_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	TenantID string `json:"tenant_id"`
	IssuedAt int64  `json:"iat"`
	Expiry   int64  `json:"exp"`
	JTI      string `json:"jti"`
	Audience string `json:"aud"`
	Issuer   string `json:"iss"`
}
