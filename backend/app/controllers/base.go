package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"bugtracker/backend/app/apperr"
	"bugtracker/backend/app/middleware"
	"bugtracker/backend/app/views"
	"bugtracker/backend/global"
)

// base carries what every page controller needs to answer a request.
type base struct {
	Views *views.Renderer
}

func (b *base) render(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	p := views.Page{Title: title, Flash: middleware.PopFlash(w, r), Data: data}
	if s, ok := middleware.GetSession(r.Context()); ok {
		p.Session = &s
	}
	if err := b.Views.Render(w, status, page, p); err != nil {
		global.Logger.Error().Err(err).Str("page", page).Msg("render failed")
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// fail turns err into a flash message and a redirect. Input errors go
// back to fallback; missing and forbidden bugs go to the dashboard.
func (b *base) fail(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	msg := apperr.Message(err)
	switch {
	case errors.Is(err, apperr.ErrNotFound), errors.Is(err, apperr.ErrAccessDenied):
		middleware.Redirect(w, r, "/dashboard", middleware.FlashError, msg)
	case errors.Is(err, apperr.ErrUnauthenticated):
		middleware.Redirect(w, r, "/login", middleware.FlashError, msg)
	case errors.Is(err, apperr.ErrUserNotFound):
		middleware.Redirect(w, r, "/register", middleware.FlashError, msg)
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrDuplicateEmail), errors.Is(err, apperr.ErrInvalidCredentials):
		middleware.Redirect(w, r, fallback, middleware.FlashError, msg)
	default:
		global.Logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		middleware.Redirect(w, r, fallback, middleware.FlashError, msg)
	}
}

func bugID(r *http.Request) (uint, error) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperr.ErrNotFound
	}
	return uint(id), nil
}
