package models

import "time"

// UserRole enumerates the three login roles.
type UserRole string

const (
	RolePrincipal UserRole = "principal"
	RoleHOD       UserRole = "hod"
	RoleGeneral   UserRole = "general"
)

// Admin reports whether the role may manage content.
func (r UserRole) Admin() bool {
	return r == RolePrincipal || r == RoleHOD
}

// User is created lazily on first successful login per email.
type User struct {
	ID         string    `db:"id" json:"id"`
	Email      string    `db:"email" json:"email"`
	Password   string    `db:"password" json:"-"`
	Role       UserRole  `db:"role" json:"role"`
	Department *string   `db:"department" json:"department,omitempty"`
	Name       string    `db:"name" json:"name"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	IsActive   bool      `db:"is_active" json:"is_active"`
}

// AuthContext is the request-scoped identity resolved from the session. It
// is populated once at the authentication boundary and passed explicitly to
// handlers and services.
type AuthContext struct {
	UserID     string   `json:"user_id"`
	Role       UserRole `json:"role"`
	Department *string  `json:"department,omitempty"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
}

// Principal reports whether the context sees every department.
func (a AuthContext) Principal() bool {
	return a.Role == RolePrincipal
}

// Dept returns the department code or "" for roles without one.
func (a AuthContext) Dept() string {
	if a.Department == nil {
		return ""
	}
	return *a.Department
}
