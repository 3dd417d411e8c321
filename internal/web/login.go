package web

import (
	"net/http"

	"congregate/internal/auth"
	apperrors "congregate/pkg/errors"
)

type loginPage struct {
	basePage
	Error string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	if auth.UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/admin", http.StatusSeeOther)
		return
	}
	s.render(w, "login.html", loginPage{basePage: s.base(r)})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.httpError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse login form"))
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := s.store.UserByUsername(username)
	if err != nil || !auth.CheckPassword(user.PasswordHash, password) {
		// Same response for unknown user and wrong password.
		s.log.Warn("failed login", "username", username)
		s.renderStatus(w, http.StatusUnauthorized, "login.html", loginPage{
			basePage: s.base(r),
			Error:    "Invalid username or password.",
		})
		return
	}

	sess, err := auth.NewSession(user.ID, s.cfg.SessionTTL())
	if err != nil {
		s.httpError(w, err)
		return
	}
	if err := s.store.SetSession(r.Context(), sess); err != nil {
		s.httpError(w, err)
		return
	}

	s.authz.SetCookie(w, sess)
	s.log.Info("login", "username", user.Username)
	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.CookieName); err == nil && cookie.Value != "" {
		_ = s.store.DeleteSession(r.Context(), cookie.Value)
	}
	s.authz.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
