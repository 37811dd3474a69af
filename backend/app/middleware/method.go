package middleware

import (
	"net/http"
	"strings"
)

// MethodOverride lets HTML forms issue PUT by posting a _method field.
func MethodOverride(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			if m := strings.ToUpper(r.PostFormValue("_method")); m == http.MethodPut {
				r.Method = m
			}
		}
		next.ServeHTTP(w, r)
	})
}
