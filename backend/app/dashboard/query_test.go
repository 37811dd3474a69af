package dashboard

import (
	"fmt"
	"math/rand"
	"net/url"
	"testing"

	"bugtracker/backend/app/models"
	"bugtracker/backend/app/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	admin    = session.Context{UserID: 1, Role: models.RoleAdmin}
	reporter = session.Context{UserID: 7, Role: models.RoleReporter}
)

func TestBuildScopesNonAdmin(t *testing.T) {
	q := Build(reporter, Params{})
	require.NotNil(t, q.ReporterID)
	assert.Equal(t, uint(7), *q.ReporterID)
	assert.Nil(t, q.Status)
	assert.Nil(t, q.Severity)
	assert.Empty(t, q.TitleContains)
	assert.Equal(t, Order, q.Order)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 0, q.Skip)
	assert.Equal(t, PageSize, q.Limit)
}

func TestBuildAdminHasNoReporterScope(t *testing.T) {
	q := Build(admin, Params{Status: "Open", Severity: "High"})
	assert.Nil(t, q.ReporterID)
	require.NotNil(t, q.Status)
	require.NotNil(t, q.Severity)
	assert.Equal(t, models.StatusOpen, *q.Status)
	assert.Equal(t, models.SeverityHigh, *q.Severity)
}

func TestBuildIgnoresUnknownEnums(t *testing.T) {
	q := Build(admin, Params{Status: "Reopened", Severity: "critical"})
	assert.Nil(t, q.Status)
	assert.Nil(t, q.Severity)
}

func TestBuildTrimsSearch(t *testing.T) {
	assert.Equal(t, "crash", Build(admin, Params{Q: "  crash "}).TitleContains)
	assert.Empty(t, Build(admin, Params{Q: "   "}).TitleContains)
}

func TestNormalizePage(t *testing.T) {
	for _, raw := range []string{"", "0", "-5", "abc", "1.5", "1"} {
		t.Run(fmt.Sprintf("page=%q", raw), func(t *testing.T) {
			assert.Equal(t, 1, NormalizePage(raw))
			q := Build(reporter, Params{Page: raw})
			assert.Equal(t, 1, q.Page)
			assert.Equal(t, 0, q.Skip)
		})
	}
	q := Build(reporter, Params{Page: "3"})
	assert.Equal(t, 3, q.Page)
	assert.Equal(t, 20, q.Skip)

	for _, raw := range []string{"922337203685477590", "922337203685477591", "9223372036854775807", "99999999999999999999999"} {
		t.Run(fmt.Sprintf("page=%q", raw), func(t *testing.T) {
			q := Build(reporter, Params{Page: raw})
			assert.Equal(t, MaxPage, q.Page)
			assert.GreaterOrEqual(t, q.Skip, 0)
			assert.Equal(t, (MaxPage-1)*PageSize, q.Skip)
		})
	}
	assert.Equal(t, 1, NormalizePage("-99999999999999999999999"))
}

func TestPages(t *testing.T) {
	assert.Equal(t, 0, Pages(0))
	assert.Equal(t, 1, Pages(1))
	assert.Equal(t, 1, Pages(10))
	assert.Equal(t, 2, Pages(11))
	assert.Equal(t, 10, Pages(100))
}

func TestParamsFromValues(t *testing.T) {
	v := url.Values{"q": {"login"}, "status": {"In Progress"}, "severity": {"Low"}, "page": {"2"}}
	assert.Equal(t, Params{Q: "login", Status: "In Progress", Severity: "Low", Page: "2"}, ParamsFromValues(v))
}

func TestMatches(t *testing.T) {
	b := &models.Bug{Title: "Login CRASH on Safari", ReporterID: 7, Status: models.StatusOpen, Severity: models.SeverityHigh}

	assert.True(t, Build(reporter, Params{Q: "crash"}).Matches(b))
	assert.True(t, Build(reporter, Params{Q: "ON saf"}).Matches(b))
	assert.False(t, Build(reporter, Params{Q: "logout"}).Matches(b))
	assert.False(t, Build(reporter, Params{Status: "Closed"}).Matches(b))
	assert.False(t, Build(session.Context{UserID: 8}, Params{}).Matches(b))
	assert.True(t, Build(admin, Params{Status: "Open", Severity: "High"}).Matches(b))
}

// Whatever the parameters, a non-admin query never matches a bug filed by
// someone else.
func TestBuildNeverLeaksOtherReporters(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	words := []string{"", "crash", "%", "_", "' OR 1=1 --", "Open", "7", "reporter_id"}
	statuses := []string{"", "Open", "In Progress", "Closed", "open", "*"}
	severities := []string{"", "Low", "Medium", "High", "HIGH", "1"}
	pages := []string{"", "1", "2", "-1", "0", "x", "999999"}

	var bugs []*models.Bug
	for i := 0; i < 200; i++ {
		bugs = append(bugs, &models.Bug{
			ID:         uint(i + 1),
			Title:      words[rng.Intn(len(words))] + " title",
			ReporterID: uint(rng.Intn(5) + 5),
			Status:     models.Statuses[rng.Intn(len(models.Statuses))],
			Severity:   models.Severities[rng.Intn(len(models.Severities))],
		})
	}

	for i := 0; i < 500; i++ {
		s := session.Context{UserID: uint(rng.Intn(5) + 5), Role: models.RoleReporter}
		p := Params{
			Q:        words[rng.Intn(len(words))],
			Status:   statuses[rng.Intn(len(statuses))],
			Severity: severities[rng.Intn(len(severities))],
			Page:     pages[rng.Intn(len(pages))],
		}
		q := Build(s, p)
		require.NotNil(t, q.ReporterID, "params %+v", p)
		for _, b := range bugs {
			if q.Matches(b) {
				require.Equal(t, s.UserID, b.ReporterID, "params %+v bug %d", p, b.ID)
			}
		}
	}
}
