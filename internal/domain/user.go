package domain

import (
	"time"
)

type Role string

// Roles are a fixed set seeded with the application; registration resolves
// against this set and rejects anything else.
const (
	RoleAdmin     Role = "Admin"
	RoleSalesUser Role = "Sales User"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleSalesUser:
		return true
	}
	return false
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is the assignee projection joined onto lead listings.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
