package router

import (
	"net/http"

	"bugtracker/backend/app/controllers"
	"bugtracker/backend/app/middleware"
)

type Controllers struct {
	Home  *controllers.HomeController
	Auth  *controllers.AuthController
	Bugs  *controllers.BugController
	Admin *controllers.AdminController
}

func NewRouter(c Controllers, mw *middleware.Auth) http.Handler {
	mux := http.NewServeMux()
	// public
	mux.Handle("GET /{$}", mw.Optional(http.HandlerFunc(c.Home.Index)))
	mux.HandleFunc("GET /healthz", c.Home.Healthz)
	mux.Handle("GET /register", mw.Optional(http.HandlerFunc(c.Auth.RegisterForm)))
	mux.HandleFunc("POST /register", c.Auth.Register)
	mux.Handle("GET /login", mw.Optional(http.HandlerFunc(c.Auth.LoginForm)))
	mux.HandleFunc("POST /login", c.Auth.Login)

	// session required
	mux.Handle("POST /logout", mw.RequireAuth(http.HandlerFunc(c.Auth.Logout)))
	mux.Handle("GET /dashboard", mw.RequireAuth(http.HandlerFunc(c.Bugs.Dashboard)))
	mux.Handle("GET /bugs/new", mw.RequireAuth(http.HandlerFunc(c.Bugs.New)))
	mux.Handle("POST /bugs", mw.RequireAuth(http.HandlerFunc(c.Bugs.Create)))
	mux.Handle("GET /bugs/{id}", mw.RequireAuth(http.HandlerFunc(c.Bugs.Show)))
	mux.Handle("GET /bugs/{id}/edit", mw.RequireAuth(http.HandlerFunc(c.Bugs.Edit)))
	mux.Handle("PUT /bugs/{id}", mw.RequireAuth(http.HandlerFunc(c.Bugs.Update)))

	// admin only
	mux.Handle("GET /admin/users", mw.RequireAdmin(http.HandlerFunc(c.Admin.ListUsers)))

	return middleware.MethodOverride(mux)
}
