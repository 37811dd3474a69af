// Package session defines the authenticated identity carried through a
// request. A Context is a snapshot taken at login; it is never refreshed
// from the user store while the session lives.
package session

import (
	"time"

	"bugtracker/backend/app/models"
)

// TTL is the fixed lifetime of a session from the moment it is issued.
const TTL = 24 * time.Hour

type Context struct {
	UserID    uint
	UserName  string
	Role      models.Role
	TokenID   string
	ExpiresAt time.Time
}

func (c Context) IsAdmin() bool { return c.Role == models.RoleAdmin }

// Expired reports whether the session is no longer valid at now.
func (c Context) Expired(now time.Time) bool { return !now.Before(c.ExpiresAt) }
