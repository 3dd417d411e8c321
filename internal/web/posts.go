package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"congregate/internal/model"
)

const homePostLimit = 20

type homePage struct {
	basePage
	Posts []model.Post
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	posts, err := s.store.ListPosts(true, homePostLimit)
	if err != nil {
		s.httpError(w, err)
		return
	}
	s.render(w, "home.html", homePage{basePage: s.base(r), Posts: posts})
}

type postPage struct {
	basePage
	Post *model.Post
}

func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	post, err := s.store.PostBySlug(chi.URLParam(r, "slug"))
	if err != nil {
		s.httpError(w, err)
		return
	}
	s.render(w, "post.html", postPage{basePage: s.base(r), Post: post})
}
