package controllers

import (
	"net/http"
	"net/url"
	"strconv"

	"bugtracker/backend/app/dashboard"
	"bugtracker/backend/app/dto"
	"bugtracker/backend/app/middleware"
	"bugtracker/backend/app/models"
	"bugtracker/backend/app/policy"
	"bugtracker/backend/app/services"
	"bugtracker/backend/app/views"
)

type BugController struct {
	base
	Bugs  *services.BugService
	Users *services.UserService
}

func NewBugController(v *views.Renderer, bugs *services.BugService, users *services.UserService) *BugController {
	return &BugController{base: base{Views: v}, Bugs: bugs, Users: users}
}

type bugRow struct {
	Bug      models.Bug
	Reporter string
}

type dashboardView struct {
	All      bool
	Q        string
	Status   string
	Severity string
	Rows     []bugRow
	Total    int64
	Page     int
	Pages    int
	PrevURL  string
	NextURL  string
}

func (c *BugController) New(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "bug_new", "Report a bug", nil)
}

func (c *BugController) Create(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.GetSession(r.Context())
	b, err := c.Bugs.Create(r.Context(), s, dto.BugRequestFromForm(r).Input())
	if err != nil {
		c.fail(w, r, err, "/bugs/new")
		return
	}
	middleware.Redirect(w, r, "/bugs/"+strconv.FormatUint(uint64(b.ID), 10), middleware.FlashSuccess, "Bug reported.")
}

func (c *BugController) Dashboard(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.GetSession(r.Context())
	params := dashboard.ParamsFromValues(r.URL.Query())
	page, err := c.Bugs.List(r.Context(), s, params)
	if err != nil {
		c.fail(w, r, err, "/")
		return
	}
	names, err := c.Users.ReporterNames(r.Context(), page.Bugs...)
	if err != nil {
		c.fail(w, r, err, "/")
		return
	}

	v := dashboardView{
		All:   policy.CanListAll(s),
		Q:     page.Query.TitleContains,
		Total: page.Total,
		Page:  page.Query.Page,
		Pages: page.Pages,
	}
	if page.Query.Status != nil {
		v.Status = string(*page.Query.Status)
	}
	if page.Query.Severity != nil {
		v.Severity = string(*page.Query.Severity)
	}
	for _, b := range page.Bugs {
		v.Rows = append(v.Rows, bugRow{Bug: b, Reporter: names[b.ReporterID]})
	}
	if v.Page > 1 {
		v.PrevURL = v.pageURL(v.Page - 1)
	}
	if v.Page < v.Pages {
		v.NextURL = v.pageURL(v.Page + 1)
	}
	c.render(w, r, http.StatusOK, "dashboard", "Dashboard", v)
}

func (v dashboardView) pageURL(page int) string {
	q := url.Values{}
	if v.Q != "" {
		q.Set("q", v.Q)
	}
	if v.Status != "" {
		q.Set("status", v.Status)
	}
	if v.Severity != "" {
		q.Set("severity", v.Severity)
	}
	q.Set("page", strconv.Itoa(page))
	return "/dashboard?" + q.Encode()
}

func (c *BugController) Show(w http.ResponseWriter, r *http.Request) {
	b, ok := c.load(w, r, policy.ActionView)
	if !ok {
		return
	}
	names, err := c.Users.ReporterNames(r.Context(), *b)
	if err != nil {
		c.fail(w, r, err, "/dashboard")
		return
	}
	c.render(w, r, http.StatusOK, "bug_show", b.Title, bugRow{Bug: *b, Reporter: names[b.ReporterID]})
}

func (c *BugController) Edit(w http.ResponseWriter, r *http.Request) {
	b, ok := c.load(w, r, policy.ActionEdit)
	if !ok {
		return
	}
	c.render(w, r, http.StatusOK, "bug_edit", "Edit "+b.Title, *b)
}

func (c *BugController) Update(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.GetSession(r.Context())
	id, err := bugID(r)
	if err != nil {
		c.fail(w, r, err, "/dashboard")
		return
	}
	target := "/bugs/" + strconv.FormatUint(uint64(id), 10)
	if _, err := c.Bugs.Update(r.Context(), s, id, dto.BugRequestFromForm(r).Input()); err != nil {
		c.fail(w, r, err, target+"/edit")
		return
	}
	middleware.Redirect(w, r, target, middleware.FlashSuccess, "Bug updated.")
}

func (c *BugController) load(w http.ResponseWriter, r *http.Request, action policy.Action) (*models.Bug, bool) {
	s, _ := middleware.GetSession(r.Context())
	id, err := bugID(r)
	if err != nil {
		c.fail(w, r, err, "/dashboard")
		return nil, false
	}
	b, err := c.Bugs.Get(r.Context(), s, id, action)
	if err != nil {
		c.fail(w, r, err, "/dashboard")
		return nil, false
	}
	return b, true
}
