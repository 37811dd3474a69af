package controllers

import (
	"context"
	"net/http"
	"time"

	"bugtracker/backend/app/views"
	"bugtracker/backend/global"
)

// Check is one named store dependency probed by /healthz.
type Check struct {
	Name string
	Ping func(context.Context) error
}

type HomeController struct {
	base
	Checks []Check
}

func NewHomeController(v *views.Renderer, checks ...Check) *HomeController {
	return &HomeController{base: base{Views: v}, Checks: checks}
}

func (c *HomeController) Index(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, "home", "Home", nil)
}

// Healthz answers 200 when every store dependency responds, otherwise 503
// naming the first failing check in registration order.
func (c *HomeController) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	for _, check := range c.Checks {
		if err := check.Ping(ctx); err != nil {
			global.Logger.Warn().Err(err).Str("check", check.Name).Msg("health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(check.Name + " unavailable"))
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
