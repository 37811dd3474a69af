// Package dashboard turns dashboard search parameters into a QuerySpec.
// Reporter scoping comes from the access policy and is applied before,
// and independently of, anything the caller supplies.
package dashboard

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"bugtracker/backend/app/models"
	"bugtracker/backend/app/policy"
	"bugtracker/backend/app/session"
)

const PageSize = 10

// MaxPage is the largest page whose skip still fits in an int.
const MaxPage = math.MaxInt/PageSize + 1

// Order is newest first, with id breaking ties between equal timestamps.
const Order = "created_at DESC, id DESC"

// Params are the raw dashboard query string values.
type Params struct {
	Q        string
	Status   string
	Severity string
	Page     string
}

func ParamsFromValues(v url.Values) Params {
	return Params{
		Q:        v.Get("q"),
		Status:   v.Get("status"),
		Severity: v.Get("severity"),
		Page:     v.Get("page"),
	}
}

type QuerySpec struct {
	ReporterID    *uint
	Status        *models.Status
	Severity      *models.Severity
	TitleContains string
	Order         string
	Page          int
	Limit         int
	Skip          int
}

// Build composes the listing query for s. Unknown status and severity
// values are ignored, as is an empty search string.
func Build(s session.Context, p Params) QuerySpec {
	q := QuerySpec{Order: Order, Limit: PageSize}
	if !policy.CanListAll(s) {
		uid := s.UserID
		q.ReporterID = &uid
	}
	if st, err := models.ParseStatus(p.Status); err == nil {
		q.Status = &st
	}
	if sev, err := models.ParseSeverity(p.Severity); err == nil {
		q.Severity = &sev
	}
	q.TitleContains = strings.TrimSpace(p.Q)
	q.Page = NormalizePage(p.Page)
	q.Skip = (q.Page - 1) * PageSize
	return q
}

// NormalizePage parses a page number. Anything that is not a positive
// integer is page 1; numbers past MaxPage are MaxPage.
func NormalizePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if errors.Is(err, strconv.ErrRange) && n > 0 {
		return MaxPage
	}
	if err != nil || n < 1 {
		return 1
	}
	return min(n, MaxPage)
}

// Pages is the number of pages needed to show total bugs.
func Pages(total int64) int {
	if total <= 0 {
		return 0
	}
	return int((total + PageSize - 1) / PageSize)
}

// Matches evaluates the predicate set against b in memory. Pagination is
// not part of the predicate. Title matching folds case with Unicode rules;
// SQLite's LOWER folds only ASCII, so for non-ASCII titles the SQLite store
// can return fewer bugs than Matches accepts. Reporter, status and severity
// match exactly in both.
func (q QuerySpec) Matches(b *models.Bug) bool {
	if q.ReporterID != nil && b.ReporterID != *q.ReporterID {
		return false
	}
	if q.Status != nil && b.Status != *q.Status {
		return false
	}
	if q.Severity != nil && b.Severity != *q.Severity {
		return false
	}
	if q.TitleContains != "" && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(q.TitleContains)) {
		return false
	}
	return true
}
