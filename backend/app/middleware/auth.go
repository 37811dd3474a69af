package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"bugtracker/backend/app/apperr"
	"bugtracker/backend/app/session"
)

const SessionCookie = "session"

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (session.Context, error)
}

type Auth struct {
	Users        Authenticator
	CookieSecure bool
}

// SetSessionCookie hands the signed session token to the browser.
func (a *Auth) SetSessionCookie(w http.ResponseWriter, token string, s session.Context) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  s.ExpiresAt,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
		HttpOnly: true,
		Secure:   a.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *Auth) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{Name: SessionCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: a.CookieSecure, SameSite: http.SameSiteLaxMode})
}

func (a *Auth) resolve(r *http.Request) (session.Context, error) {
	c, err := r.Cookie(SessionCookie)
	if err != nil || c.Value == "" {
		return session.Context{}, apperr.ErrUnauthenticated
	}
	return a.Users.Authenticate(r.Context(), c.Value)
}

// Optional attaches the session when one is present and valid, and
// otherwise lets the request through anonymously.
func (a *Auth) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s, err := a.resolve(r); err == nil {
			r = r.WithContext(WithSession(r.Context(), s))
		}
		next.ServeHTTP(w, r)
	})
}

func (a *Auth) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := a.resolve(r)
		if err != nil {
			a.deny(w, r, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

func (a *Auth) RequireAdmin(next http.Handler) http.Handler {
	return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, _ := GetSession(r.Context())
		if !s.IsAdmin() {
			Redirect(w, r, "/dashboard", FlashError, "Only admins can view that page.")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func (a *Auth) deny(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperr.ErrUnauthenticated) {
		a.ClearSessionCookie(w)
		Redirect(w, r, "/login", FlashError, apperr.Message(apperr.ErrUnauthenticated))
		return
	}
	Redirect(w, r, "/", FlashError, apperr.Message(err))
}
