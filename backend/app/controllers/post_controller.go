package controllers

import (
	"net/http"

	"feedgate/backend/app/dto"
	jwtutil "feedgate/backend/app/jwt"
	"feedgate/backend/app/middleware"
	"feedgate/backend/app/services"

	"github.com/go-chi/chi/v5"
)

// PostController serves both the user and the moderator post routes; the
// router decides which principal reaches which handler.
type PostController struct{ Posts *services.PostService }

func NewPostController(posts *services.PostService) *PostController {
	return &PostController{Posts: posts}
}

func actor(r *http.Request) services.Actor {
	c := middleware.GetClaims(r.Context())
	if c == nil {
		return services.Actor{}
	}
	return services.Actor{ID: c.PrincipalID(), Moderator: c.Scope == jwtutil.ScopeModerator}
}

func (c *PostController) Create(w http.ResponseWriter, r *http.Request) {
	req := middleware.Body[dto.CreatePostRequest](r.Context())
	p, err := c.Posts.Create(r.Context(), middleware.PrincipalID(r.Context()), *req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.PostResponse{Message: "Post has been created successfully", Post: postDTO(p)})
}

func (c *PostController) Get(w http.ResponseWriter, r *http.Request) {
	p, err := c.Posts.Get(r.Context(), chi.URLParam(r, "postId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.PostResponse{Message: "Post has been fetched successfully", Post: postDTO(p)})
}

func (c *PostController) Update(w http.ResponseWriter, r *http.Request) {
	req := middleware.Body[dto.UpdatePostRequest](r.Context())
	p, err := c.Posts.Update(r.Context(), chi.URLParam(r, "postId"), actor(r), *req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.PostRefResponse{Message: "Post has been updated successfully", Post: dto.PostRef{PostID: p.ID}})
}

func (c *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "postId")
	if err := c.Posts.Delete(r.Context(), id, actor(r)); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.PostRefResponse{Message: "Post has been deleted successfully", Post: dto.PostRef{PostID: id}})
}
