package models

import "time"

// User captures application-facing fields for a registered account.
// The password hash never leaves the server.
type User struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// IsOrganizer reports whether the user holds the privileged role.
func (u User) IsOrganizer() bool {
	return u.Role == RoleOrganizer
}
