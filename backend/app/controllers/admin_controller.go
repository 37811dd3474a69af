package controllers

import (
	"net/http"

	"bugtracker/backend/app/middleware"
	"bugtracker/backend/app/services"
	"bugtracker/backend/app/views"
)

type AdminController struct {
	base
	Users *services.UserService
}

func NewAdminController(v *views.Renderer, users *services.UserService) *AdminController {
	return &AdminController{base: base{Views: v}, Users: users}
}

func (c *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.GetSession(r.Context())
	users, err := c.Users.ListUsers(r.Context(), s)
	if err != nil {
		c.fail(w, r, err, "/dashboard")
		return
	}
	c.render(w, r, http.StatusOK, "admin_users", "Users", users)
}
