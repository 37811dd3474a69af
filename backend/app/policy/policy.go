// Package policy decides who may do what to which bug. Ownership grants
// access to a bug; the admin role grants access to every bug. The same
// predicate governs viewing, the edit form and updates.
package policy

import (
	"fmt"

	"bugtracker/backend/app/apperr"
	"bugtracker/backend/app/models"
	"bugtracker/backend/app/session"
)

type Action string

const (
	ActionView   Action = "view"
	ActionEdit   Action = "edit"
	ActionUpdate Action = "update"
)

// CanListAll reports whether s may list bugs from every reporter.
func CanListAll(s session.Context) bool {
	return s.Role == models.RoleAdmin
}

// CanViewOrEdit reports whether s may view, open the edit form for, or
// update bug.
func CanViewOrEdit(s session.Context, bug *models.Bug) bool {
	if bug == nil {
		return false
	}
	return CanListAll(s) || bug.ReporterID == s.UserID
}

// AuthorizeOrDeny returns nil when s may perform action on bug and an
// error wrapping apperr.ErrAccessDenied otherwise. The caller must have
// established that bug exists.
func AuthorizeOrDeny(s session.Context, bug *models.Bug, action Action) error {
	switch action {
	case ActionView, ActionEdit, ActionUpdate:
	default:
		return fmt.Errorf("action %q: %w", action, apperr.ErrAccessDenied)
	}
	if !CanViewOrEdit(s, bug) {
		return fmt.Errorf("%s bug: %w", action, apperr.ErrAccessDenied)
	}
	return nil
}
