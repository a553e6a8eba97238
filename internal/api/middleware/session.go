package middleware

import (
	"net/http"

	"github.com/nikhilbhutani/bharativoice/internal/session"
)

// SessionCookie names the cookie that carries the session id.
const SessionCookie = "bv_session"

// Session resolves the caller's session id from its cookie, issuing a new
// browser-session cookie when there is none or it is malformed.
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookie); err == nil && session.ValidID(c.Value) {
			id = c.Value
		} else {
			id = session.NewID()
			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookie,
				Value:    id,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
				Secure:   r.TLS != nil,
			})
		}
		next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), id)))
	})
}
