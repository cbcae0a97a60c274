package model

import "time"

// Role values stored in users.role. A regular customer registers as
// RoleUser; staff accounts carry RoleEmployee and may pick up chats and
// review rental applications.
const (
	RoleUser     = "user"
	RoleEmployee = "employee"
)

// User mirrors the `users` table. The password hash is kept out of JSON
// responses; handlers that need to expose user data return dedicated
// response types instead.
type User struct {
	ID           uint64    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
