package views

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"bugtracker/backend/app/models"
	"bugtracker/backend/app/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedPagesRender(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	sc := &session.Context{UserID: 1, UserName: "ann", Role: models.RoleAdmin}
	bug := models.Bug{ID: 5, Title: "Crash <b>now</b>", Description: "**bold**\n\n<script>alert(1)</script>", Severity: models.SeverityHigh, Status: models.StatusOpen}

	cases := map[string]Page{
		"home":        {Title: "Home"},
		"login":       {Title: "Log in"},
		"register":    {Title: "Register"},
		"bug_new":     {Title: "New", Session: sc},
		"bug_edit":    {Title: "Edit", Session: sc, Data: bug},
		"bug_show":    {Title: "Bug", Session: sc, Data: struct{ Bug models.Bug; Reporter string }{bug, "bob"}},
		"admin_users": {Title: "Users", Session: sc, Data: []models.User{{ID: 1, Name: "ann", Email: "a@x.com", Role: models.RoleAdmin}}},
	}
	for name, page := range cases {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			require.NoError(t, r.Render(rec, http.StatusOK, name, page))
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
			assert.Contains(t, rec.Body.String(), page.Title+" · Bugtracker")
		})
	}
}

func TestBugShowEscapesAndRendersMarkdown(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)
	bug := models.Bug{ID: 5, Title: "Crash <b>now</b>", Description: "**bold**\n\n<script>alert(1)</script>"}

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, "bug_show", Page{Title: "Bug", Data: struct {
		Bug      models.Bug
		Reporter string
	}{bug, "bob"}}))
	body := rec.Body.String()
	assert.Contains(t, body, "Crash &lt;b&gt;now&lt;/b&gt;")
	assert.Contains(t, body, "<strong>bold</strong>")
	assert.NotContains(t, body, "<script>alert(1)</script>")
}

func TestFlashAndNav(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, "home", Page{Title: "Home", Flash: &Flash{Kind: "error", Message: "Nope"}}))
	assert.Contains(t, rec.Body.String(), `class="flash flash-error"`)
	assert.Contains(t, rec.Body.String(), "Nope")
	assert.Contains(t, rec.Body.String(), `href="/login"`)
	assert.NotContains(t, rec.Body.String(), "/admin/users")

	rec = httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, "home", Page{Title: "Home", Session: &session.Context{UserName: "bob", Role: models.RoleReporter}}))
	assert.Contains(t, rec.Body.String(), "Signed in as bob")
	assert.NotContains(t, rec.Body.String(), "/admin/users")
}

func TestRenderUnknownPage(t *testing.T) {
	r, err := New("")
	require.NoError(t, err)
	rec := httptest.NewRecorder()
	assert.Error(t, r.Render(rec, http.StatusOK, "nope", Page{}))
	assert.Zero(t, rec.Body.Len())
}

func TestDirectoryTemplatesReload(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	write("layout.html", `{{template "content" .}}`)
	write("home.html", `{{define "content"}}v1{{end}}`)

	r, err := New(dir)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, r.Watch(ctx, dir))

	rec := httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, "home", Page{}))
	assert.Equal(t, "v1", rec.Body.String())

	write("home.html", `{{define "content"}}v2{{end}}`)
	assert.Eventually(t, func() bool {
		rec := httptest.NewRecorder()
		return r.Render(rec, http.StatusOK, "home", Page{}) == nil && rec.Body.String() == "v2"
	}, 2*time.Second, 20*time.Millisecond)

	write("home.html", `{{define "content"}}{{broken}{{end}}`)
	require.Error(t, r.Reload())
	rec = httptest.NewRecorder()
	require.NoError(t, r.Render(rec, http.StatusOK, "home", Page{}))
	assert.Equal(t, "v2", rec.Body.String(), "failed reload keeps previous templates")
}
