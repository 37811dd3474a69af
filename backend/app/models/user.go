package models

import "time"

type Role string

const (
	RoleReporter Role = "reporter"
	RoleAdmin    Role = "admin"
)

// ParseRole constrains free-form input to a known role. Anything
// unrecognised, including the empty string, becomes RoleReporter.
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleReporter
}

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:191;not null"`
	Email        string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Role         Role   `gorm:"size:32;not null;default:reporter"`
	CreatedAt    time.Time
}
