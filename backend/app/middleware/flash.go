package middleware

import (
	"encoding/base64"
	"net/http"
	"strings"

	"bugtracker/backend/app/views"
)

const flashCookie = "flash"

const (
	FlashError   = "error"
	FlashSuccess = "success"
)

// SetFlash stores a one-shot message shown on the next rendered page.
func SetFlash(w http.ResponseWriter, kind, message string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookie,
		Value:    base64.RawURLEncoding.EncodeToString([]byte(kind + "\n" + message)),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash reads and clears the pending flash message, if any.
func PopFlash(w http.ResponseWriter, r *http.Request) *views.Flash {
	c, err := r.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	http.SetCookie(w, &http.Cookie{Name: flashCookie, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, SameSite: http.SameSiteLaxMode})
	raw, err := base64.RawURLEncoding.DecodeString(c.Value)
	if err != nil {
		return nil
	}
	kind, msg, ok := strings.Cut(string(raw), "\n")
	if !ok || msg == "" {
		return nil
	}
	if kind != FlashSuccess {
		kind = FlashError
	}
	return &views.Flash{Kind: kind, Message: msg}
}

// Redirect sets a flash message and sends the client to target with
// 303 See Other.
func Redirect(w http.ResponseWriter, r *http.Request, target, kind, message string) {
	if message != "" {
		SetFlash(w, kind, message)
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}
