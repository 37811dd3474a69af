package policy

import (
	"testing"

	"bugtracker/backend/app/apperr"
	"bugtracker/backend/app/models"
	"bugtracker/backend/app/session"

	"github.com/stretchr/testify/assert"
)

var (
	admin     = session.Context{UserID: 1, UserName: "root", Role: models.RoleAdmin}
	reporterA = session.Context{UserID: 2, UserName: "alice", Role: models.RoleReporter}
	reporterB = session.Context{UserID: 3, UserName: "bob", Role: models.RoleReporter}
)

func TestCanListAll(t *testing.T) {
	assert.True(t, CanListAll(admin))
	assert.False(t, CanListAll(reporterA))
	assert.False(t, CanListAll(session.Context{UserID: 9, Role: "superuser"}))
}

func TestCanViewOrEdit(t *testing.T) {
	bugOfA := &models.Bug{ID: 10, ReporterID: reporterA.UserID}

	assert.True(t, CanViewOrEdit(reporterA, bugOfA), "owner")
	assert.False(t, CanViewOrEdit(reporterB, bugOfA), "other reporter")
	assert.True(t, CanViewOrEdit(admin, bugOfA), "admin override")
	assert.False(t, CanViewOrEdit(admin, nil), "missing bug")
}

func TestAuthorizeOrDenySymmetricAcrossActions(t *testing.T) {
	sessions := []session.Context{admin, reporterA, reporterB, {UserID: 4}}
	bugs := []*models.Bug{
		{ID: 1, ReporterID: admin.UserID},
		{ID: 2, ReporterID: reporterA.UserID},
		{ID: 3, ReporterID: reporterB.UserID},
		{ID: 4, ReporterID: 99},
	}
	for _, s := range sessions {
		for _, b := range bugs {
			view := AuthorizeOrDeny(s, b, ActionView)
			edit := AuthorizeOrDeny(s, b, ActionEdit)
			update := AuthorizeOrDeny(s, b, ActionUpdate)

			assert.Equal(t, view == nil, edit == nil, "user %d bug %d: view vs edit", s.UserID, b.ID)
			assert.Equal(t, view == nil, update == nil, "user %d bug %d: view vs update", s.UserID, b.ID)
			assert.Equal(t, CanViewOrEdit(s, b), view == nil)
			if view != nil {
				assert.ErrorIs(t, view, apperr.ErrAccessDenied)
				assert.ErrorIs(t, edit, apperr.ErrAccessDenied)
				assert.ErrorIs(t, update, apperr.ErrAccessDenied)
			}
		}
	}
}

func TestAuthorizeOrDenyUnknownAction(t *testing.T) {
	err := AuthorizeOrDeny(admin, &models.Bug{ReporterID: admin.UserID}, Action("delete"))
	assert.ErrorIs(t, err, apperr.ErrAccessDenied)
}
