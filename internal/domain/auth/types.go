package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// Rank returns the position of the role in the total order
// user(1) < admin(2) < superadmin(3). Unknown roles rank 0 so they
// never satisfy any requirement.
func (r Role) Rank() int {
	switch r {
	case RoleUser:
		return 1
	case RoleAdmin:
		return 2
	case RoleSuperadmin:
		return 3
	default:
		return 0
	}
}

// AtLeast reports whether r satisfies the given minimum role.
func (r Role) AtLeast(required Role) bool {
	return r.Rank() >= required.Rank()
}

// ParseRole maps a stored role string to a Role, defaulting to RoleUser
// for empty or unrecognized values. Roles come from the profile record
// tied to a session, never from the client.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleSuperadmin:
		return RoleSuperadmin
	default:
		return RoleUser
	}
}

// Identity represents the authenticated principal as reported by the
// identity provider. Adapters map provider-specific claims into this shape.
type Identity struct {
	ID    string // stable identifier issued by the provider (e.g., sub)
	Email string
}

// User is an identity joined with its profile row. It lives only in
// request-scoped or page-scoped memory; the http-only session cookie is
// the sole durable proof of authentication.
type User struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Role        Role   `json:"role"`
}

// Session is opaque token material issued by the identity provider and
// carried in cookies. The application never parses the tokens; validity
// is always confirmed with the provider.
type Session struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	UserID       string    `json:"user_id"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Credentials are what a user submits to sign in.
type Credentials struct {
	Email    string
	Password string
}
