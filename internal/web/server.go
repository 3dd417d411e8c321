// Package web implements the congregate HTTP server: the public site
// (posts, month calendar, ICS feed) and the admin area behind login.
//
// Handlers render data prepared by the other packages; in particular the
// calendar page draws the grid straight from pkg/calendar's week
// descriptors and never re-derives clipping or lane logic.
package web

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"congregate/internal/auth"
	"congregate/internal/config"
	"congregate/internal/model"
	"congregate/internal/store"
	apperrors "congregate/pkg/errors"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server holds the wiring shared by all handlers.
type Server struct {
	cfg   *config.Config
	store *store.Store
	log   *charmlog.Logger
	authz *auth.Middleware
	tmpl  *template.Template
}

// New constructs a Server. The session middleware is backed by the same
// SQLite store that holds the content.
func New(cfg *config.Config, st *store.Store, logger *charmlog.Logger) (*Server, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"monthTitle": func(t time.Time) string { return t.Format("January 2006") },
		"dayNum":     func(t time.Time) int { return t.Day() },
		"longDate":   func(t time.Time) string { return t.Format("January 2, 2006") },
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInternal, err, "parse templates")
	}

	return &Server{
		cfg:   cfg,
		store: st,
		log:   logger,
		authz: &auth.Middleware{
			Sessions: st,
			Users:    st,
			Secure:   cfg.SecureCookies,
		},
		tmpl: tmpl,
	}, nil
}

// Routes builds the chi router for the whole site.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Use(s.authz.LoadUser)

	// Public site.
	r.Get("/", s.handleHome)
	r.Get("/posts/{slug}", s.handlePost)
	r.Get("/calendar", s.handleCalendar)
	r.Get("/calendar.ics", s.handleCalendarICS)
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Post("/logout", s.handleLogout)
	r.Get("/healthz", s.handleHealth)

	// Admin area.
	r.Route("/admin", func(r chi.Router) {
		r.Use(s.authz.RequireUser)
		r.Get("/", s.handleAdminHome)

		r.Get("/events", s.handleAdminEvents)
		r.Get("/events/new", s.handleAdminEventForm)
		r.Post("/events", s.handleAdminEventCreate)
		r.Get("/events/{id}", s.handleAdminEventForm)
		r.Post("/events/{id}", s.handleAdminEventUpdate)
		r.Post("/events/{id}/delete", s.handleAdminEventDelete)

		r.Get("/posts", s.handleAdminPosts)
		r.Get("/posts/new", s.handleAdminPostForm)
		r.Post("/posts", s.handleAdminPostCreate)
		r.Get("/posts/{id}", s.handleAdminPostForm)
		r.Post("/posts/{id}", s.handleAdminPostUpdate)
		r.Post("/posts/{id}/delete", s.handleAdminPostDelete)

		// User and auxiliary management is admin-only.
		r.Group(func(r chi.Router) {
			r.Use(s.authz.RequireAdmin)
			r.Get("/auxiliaries", s.handleAdminAuxiliaries)
			r.Post("/auxiliaries", s.handleAdminAuxiliaryCreate)
			r.Post("/auxiliaries/{id}", s.handleAdminAuxiliaryUpdate)
			r.Get("/users", s.handleAdminUsers)
			r.Post("/users", s.handleAdminUserCreate)
		})
	})

	return r
}

// requestLogger logs each request with method, path, status, and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		lw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(lw, r)
		s.log.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", lw.status,
			"duration", time.Since(start).Round(time.Millisecond),
		)
	})
}

// statusWriter captures the response status for logging.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// basePage carries the fields every template expects.
type basePage struct {
	SiteTitle string
	User      *model.User
}

func (s *Server) base(r *http.Request) basePage {
	return basePage{
		SiteTitle: s.cfg.SiteTitle,
		User:      auth.UserFromContext(r.Context()),
	}
}

// render executes a named template, responding with 500 on failure.
func (s *Server) render(w http.ResponseWriter, name string, data any) {
	s.renderStatus(w, http.StatusOK, name, data)
}

func (s *Server) renderStatus(w http.ResponseWriter, status int, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmpl.ExecuteTemplate(w, name, data); err != nil {
		// Headers are already sent at this point; log and give up.
		s.log.Error("render template", "template", name, "err", err)
	}
}

// httpError maps structured error codes onto HTTP status codes.
func (s *Server) httpError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidMonth,
		apperrors.ErrCodeInvalidRange, apperrors.ErrCodeInvalidSlug,
		apperrors.ErrCodeInvalidRRule:
		status = http.StatusBadRequest
	case apperrors.ErrCodeConflict:
		status = http.StatusConflict
	case apperrors.ErrCodeUnauthorized, apperrors.ErrCodeSessionExpired:
		status = http.StatusUnauthorized
	case apperrors.ErrCodeForbidden:
		status = http.StatusForbidden
	}
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", "err", err)
	}
	http.Error(w, apperrors.UserMessage(err), status)
}
