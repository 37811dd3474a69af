package controllers

import (
	"net/http"

	"bugtracker/backend/app/dto"
	"bugtracker/backend/app/middleware"
	"bugtracker/backend/app/services"
	"bugtracker/backend/app/views"
)

type AuthController struct {
	base
	Users *services.UserService
	Auth  *middleware.Auth
}

func NewAuthController(v *views.Renderer, users *services.UserService, auth *middleware.Auth) *AuthController {
	return &AuthController{base: base{Views: v}, Users: users, Auth: auth}
}

func (c *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "register", "Register", nil)
}

func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	req := dto.RegisterRequestFromForm(r)
	if _, err := c.Users.Register(r.Context(), req.Input()); err != nil {
		c.fail(w, r, err, "/register")
		return
	}
	middleware.Redirect(w, r, "/login", middleware.FlashSuccess, "Account created, please log in.")
}

func (c *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "login", "Log in", nil)
}

func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	req := dto.LoginRequestFromForm(r)
	token, s, err := c.Users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		c.fail(w, r, err, "/login")
		return
	}
	c.Auth.SetSessionCookie(w, token, s)
	middleware.Redirect(w, r, "/dashboard", middleware.FlashSuccess, "Welcome back, "+s.UserName+".")
}

func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	s, _ := middleware.GetSession(r.Context())
	if err := c.Users.Logout(r.Context(), s); err != nil {
		c.fail(w, r, err, "/dashboard")
		return
	}
	c.Auth.ClearSessionCookie(w)
	middleware.Redirect(w, r, "/login", middleware.FlashSuccess, "You have been logged out.")
}
