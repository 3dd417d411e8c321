package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"congregate/internal/auth"
	"congregate/internal/model"
	"congregate/internal/recur"
	apperrors "congregate/pkg/errors"
)

func (s *Server) handleAdminHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, "admin_home.html", s.base(r))
}

// --- Events ---

type adminEventsPage struct {
	basePage
	Events   []model.Event
	AuxNames map[string]string
}

func (s *Server) handleAdminEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.ListEvents()
	if err != nil {
		s.httpError(w, err)
		return
	}
	auxiliaries, err := s.store.ListAuxiliaries()
	if err != nil {
		s.httpError(w, err)
		return
	}
	names := make(map[string]string, len(auxiliaries))
	for _, a := range auxiliaries {
		names[a.ID] = a.Name
	}
	s.render(w, "admin_events.html", adminEventsPage{
		basePage: s.base(r),
		Events:   events,
		AuxNames: names,
	})
}

type eventFormPage struct {
	basePage
	Event       *model.Event
	Auxiliaries []model.Auxiliary
	Error       string
}

func (s *Server) handleAdminEventForm(w http.ResponseWriter, r *http.Request) {
	event := &model.Event{}
	if id := chi.URLParam(r, "id"); id != "" {
		var err error
		event, err = s.store.EventByID(id)
		if err != nil {
			s.httpError(w, err)
			return
		}
	}
	auxiliaries, err := s.store.ListAuxiliaries()
	if err != nil {
		s.httpError(w, err)
		return
	}
	s.render(w, "admin_event_form.html", eventFormPage{
		basePage:    s.base(r),
		Event:       event,
		Auxiliaries: auxiliaries,
	})
}

// eventFromForm parses and validates the event form. Date range and
// recurrence rule problems are caught here, before anything hits the store.
func eventFromForm(r *http.Request) (*model.Event, error) {
	if err := r.ParseForm(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse event form")
	}

	ev := &model.Event{
		AuxiliaryID: r.PostFormValue("auxiliary"),
		Title:       r.PostFormValue("title"),
		Location:    r.PostFormValue("location"),
		Description: r.PostFormValue("description"),
		RRule:       r.PostFormValue("rrule"),
	}
	if err := apperrors.ValidateTitle(ev.Title); err != nil {
		return nil, err
	}
	if ev.AuxiliaryID == "" {
		return nil, apperrors.New(apperrors.ErrCodeInvalidInput, "auxiliary is required")
	}

	start, err := parseDateField(r.PostFormValue("start"), true)
	if err != nil {
		return nil, err
	}
	end, err := parseDateField(r.PostFormValue("end"), false)
	if err != nil {
		return nil, err
	}
	if err := apperrors.ValidateDateRange(start, end); err != nil {
		return nil, err
	}
	ev.StartDate, ev.EndDate = start, end

	if err := recur.ValidateRRule(ev.RRule); err != nil {
		return nil, err
	}
	return ev, nil
}

func parseDateField(value string, required bool) (time.Time, error) {
	if value == "" {
		if required {
			return time.Time{}, apperrors.New(apperrors.ErrCodeInvalidInput, "start date is required")
		}
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.UTC)
	if err != nil {
		return time.Time{}, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "invalid date %q", value)
	}
	return t, nil
}

// eventFormError re-renders the form with the failed input and message.
func (s *Server) eventFormError(w http.ResponseWriter, r *http.Request, ev *model.Event, err error) {
	auxiliaries, listErr := s.store.ListAuxiliaries()
	if listErr != nil {
		s.httpError(w, listErr)
		return
	}
	s.renderStatus(w, http.StatusBadRequest, "admin_event_form.html", eventFormPage{
		basePage:    s.base(r),
		Event:       ev,
		Auxiliaries: auxiliaries,
		Error:       apperrors.UserMessage(err),
	})
}

func (s *Server) handleAdminEventCreate(w http.ResponseWriter, r *http.Request) {
	ev, err := eventFromForm(r)
	if err != nil {
		s.eventFormError(w, r, &model.Event{}, err)
		return
	}
	if user := auth.UserFromContext(r.Context()); user != nil {
		ev.CreatedBy = user.ID
	}
	if err := s.store.CreateEvent(ev); err != nil {
		s.httpError(w, err)
		return
	}
	s.log.Info("event created", "id", ev.ID, "title", ev.Title)
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

func (s *Server) handleAdminEventUpdate(w http.ResponseWriter, r *http.Request) {
	existing, err := s.store.EventByID(chi.URLParam(r, "id"))
	if err != nil {
		s.httpError(w, err)
		return
	}
	ev, err := eventFromForm(r)
	if err != nil {
		s.eventFormError(w, r, existing, err)
		return
	}
	ev.ID = existing.ID
	ev.CreatedBy = existing.CreatedBy
	if err := s.store.UpdateEvent(ev); err != nil {
		s.httpError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

func (s *Server) handleAdminEventDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteEvent(chi.URLParam(r, "id")); err != nil {
		s.httpError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/events", http.StatusSeeOther)
}

// --- Posts ---

type adminPostsPage struct {
	basePage
	Posts []model.Post
}

func (s *Server) handleAdminPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListPosts(false, 0)
	if err != nil {
		s.httpError(w, err)
		return
	}
	s.render(w, "admin_posts.html", adminPostsPage{basePage: s.base(r), Posts: posts})
}

type postFormPage struct {
	basePage
	Post  *model.Post
	Error string
}

func (s *Server) handleAdminPostForm(w http.ResponseWriter, r *http.Request) {
	post := &model.Post{}
	if id := chi.URLParam(r, "id"); id != "" {
		var err error
		post, err = s.store.PostByID(id)
		if err != nil {
			s.httpError(w, err)
			return
		}
	}
	s.render(w, "admin_post_form.html", postFormPage{basePage: s.base(r), Post: post})
}

func postFromForm(r *http.Request) (*model.Post, error) {
	if err := r.ParseForm(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse post form")
	}
	p := &model.Post{
		Title:     r.PostFormValue("title"),
		Slug:      r.PostFormValue("slug"),
		Body:      r.PostFormValue("body"),
		Published: r.PostFormValue("published") == "1",
	}
	if err := apperrors.ValidateTitle(p.Title); err != nil {
		return nil, err
	}
	if err := apperrors.ValidateSlug(p.Slug); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Server) postFormError(w http.ResponseWriter, r *http.Request, p *model.Post, err error) {
	s.renderStatus(w, http.StatusBadRequest, "admin_post_form.html", postFormPage{
		basePage: s.base(r),
		Post:     p,
		Error:    apperrors.UserMessage(err),
	})
}

func (s *Server) handleAdminPostCreate(w http.ResponseWriter, r *http.Request) {
	p, err := postFromForm(r)
	if err != nil {
		s.postFormError(w, r, &model.Post{}, err)
		return
	}
	if user := auth.UserFromContext(r.Context()); user != nil {
		p.AuthorID = user.ID
	}
	if err := s.store.CreatePost(p); err != nil {
		s.httpError(w, err)
		return
	}
	s.log.Info("post created", "id", p.ID, "slug", p.Slug)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

func (s *Server) handleAdminPostUpdate(w http.ResponseWriter, r *http.Request) {
	existing, err := s.store.PostByID(chi.URLParam(r, "id"))
	if err != nil {
		s.httpError(w, err)
		return
	}
	p, err := postFromForm(r)
	if err != nil {
		s.postFormError(w, r, existing, err)
		return
	}
	p.ID = existing.ID
	p.AuthorID = existing.AuthorID
	if err := s.store.UpdatePost(p); err != nil {
		s.httpError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

func (s *Server) handleAdminPostDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePost(chi.URLParam(r, "id")); err != nil {
		s.httpError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// --- Auxiliaries ---

type adminAuxPage struct {
	basePage
	Auxiliaries []model.Auxiliary
	Error       string
}

func (s *Server) handleAdminAuxiliaries(w http.ResponseWriter, r *http.Request) {
	auxiliaries, err := s.store.ListAuxiliaries()
	if err != nil {
		s.httpError(w, err)
		return
	}
	s.render(w, "admin_auxiliaries.html", adminAuxPage{basePage: s.base(r), Auxiliaries: auxiliaries})
}

func (s *Server) handleAdminAuxiliaryCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.httpError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse auxiliary form"))
		return
	}
	aux := &model.Auxiliary{
		Slug:  r.PostFormValue("slug"),
		Name:  r.PostFormValue("name"),
		Color: r.PostFormValue("color"),
	}
	if err := apperrors.ValidateSlug(aux.Slug); err != nil {
		s.auxFormError(w, r, err)
		return
	}
	if aux.Name == "" {
		s.auxFormError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "name is required"))
		return
	}
	if err := s.store.CreateAuxiliary(aux); err != nil {
		s.httpError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/auxiliaries", http.StatusSeeOther)
}

// handleAdminAuxiliaryUpdate renames an auxiliary or changes its color. The
// slug is immutable; it is part of saved calendar URLs.
func (s *Server) handleAdminAuxiliaryUpdate(w http.ResponseWriter, r *http.Request) {
	aux, err := s.store.AuxiliaryByID(chi.URLParam(r, "id"))
	if err != nil {
		s.httpError(w, err)
		return
	}
	if err := r.ParseForm(); err != nil {
		s.httpError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse auxiliary form"))
		return
	}
	if name := r.PostFormValue("name"); name != "" {
		aux.Name = name
	}
	if color := r.PostFormValue("color"); color != "" {
		aux.Color = color
	}
	if err := s.store.UpdateAuxiliary(aux); err != nil {
		s.httpError(w, err)
		return
	}
	http.Redirect(w, r, "/admin/auxiliaries", http.StatusSeeOther)
}

func (s *Server) auxFormError(w http.ResponseWriter, r *http.Request, err error) {
	auxiliaries, listErr := s.store.ListAuxiliaries()
	if listErr != nil {
		s.httpError(w, listErr)
		return
	}
	s.renderStatus(w, http.StatusBadRequest, "admin_auxiliaries.html", adminAuxPage{
		basePage:    s.base(r),
		Auxiliaries: auxiliaries,
		Error:       apperrors.UserMessage(err),
	})
}

// --- Users ---

type adminUsersPage struct {
	basePage
	Users []model.User
	Error string
}

func (s *Server) handleAdminUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers()
	if err != nil {
		s.httpError(w, err)
		return
	}
	s.render(w, "admin_users.html", adminUsersPage{basePage: s.base(r), Users: users})
}

func (s *Server) handleAdminUserCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.httpError(w, apperrors.Wrap(apperrors.ErrCodeInvalidInput, err, "parse user form"))
		return
	}

	username := r.PostFormValue("username")
	if err := apperrors.ValidateUsername(username); err != nil {
		s.userFormError(w, r, err)
		return
	}
	role := model.Role(r.PostFormValue("role"))
	if role != model.RoleAdmin && role != model.RoleEditor {
		s.userFormError(w, r, apperrors.New(apperrors.ErrCodeInvalidInput, "unknown role %q", role))
		return
	}
	hash, err := auth.HashPassword(r.PostFormValue("password"))
	if err != nil {
		s.userFormError(w, r, err)
		return
	}

	user := &model.User{
		Username:     username,
		Name:         r.PostFormValue("name"),
		Email:        r.PostFormValue("email"),
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.store.CreateUser(user); err != nil {
		s.httpError(w, err)
		return
	}
	s.log.Info("user created", "username", user.Username, "role", user.Role)
	http.Redirect(w, r, "/admin/users", http.StatusSeeOther)
}

func (s *Server) userFormError(w http.ResponseWriter, r *http.Request, err error) {
	users, listErr := s.store.ListUsers()
	if listErr != nil {
		s.httpError(w, listErr)
		return
	}
	s.renderStatus(w, http.StatusBadRequest, "admin_users.html", adminUsersPage{
		basePage: s.base(r),
		Users:    users,
		Error:    apperrors.UserMessage(err),
	})
}
