package auth

import (
	"context"
	"net/http"
	"time"

	"congregate/internal/model"
)

// CookieName is the session cookie set on login.
const CookieName = "congregate_session"

// UserSource loads users for session resolution. The SQLite store
// satisfies it.
type UserSource interface {
	UserByID(id string) (*model.User, error)
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

const userKey ctxKey = 0

// WithUser returns a new context carrying the signed-in user.
func WithUser(ctx context.Context, u *model.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserFromContext retrieves the signed-in user, nil when anonymous.
func UserFromContext(ctx context.Context) *model.User {
	u, _ := ctx.Value(userKey).(*model.User)
	return u
}

// Middleware resolves sessions from request cookies and guards routes.
type Middleware struct {
	Sessions SessionStore
	Users    UserSource

	// Secure marks the session cookie Secure; enable behind TLS.
	Secure bool
}

// SetCookie writes the session cookie for a fresh login.
func (m *Middleware) SetCookie(w http.ResponseWriter, sess *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie expires the session cookie on logout.
func (m *Middleware) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoadUser attaches the signed-in user to the request context when a valid
// session cookie is present. Anonymous requests pass through untouched.
func (m *Middleware) LoadUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil || cookie.Value == "" {
			next.ServeHTTP(w, r)
			return
		}

		sess, err := m.Sessions.GetSession(r.Context(), cookie.Value)
		if err != nil || sess == nil {
			// Expired or unknown cookie: drop it so the browser stops
			// sending a dead session.
			m.ClearCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		user, err := m.Users.UserByID(sess.UserID)
		if err != nil {
			m.ClearCookie(w)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

// RequireUser redirects anonymous requests to the login page.
func (m *Middleware) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFromContext(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin rejects requests from non-admin users with 403. It assumes
// RequireUser already ran.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u := UserFromContext(r.Context())
		if u == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		if !u.IsAdmin() {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
