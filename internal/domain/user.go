package domain

import "time"

// UserRole distinguishes sellers from marketplace administrators.
type UserRole string

const (
	UserRoleSeller UserRole = "seller"
	UserRoleAdmin  UserRole = "admin"
)

// User is the application profile mapped from a verified identity.
// Rows are created or refreshed by the signup verify flow and never deleted.
type User struct {
	ID          string
	Email       string
	FullName    string
	PhoneNumber string
	Role        UserRole
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsAdmin reports whether the user may act on admin endpoints.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == UserRoleAdmin
}
