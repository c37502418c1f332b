package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"blogforge/internal/api/middleware"
	"blogforge/internal/app/service"
	"blogforge/internal/common"
	"blogforge/internal/domain/model"
	"blogforge/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type PostHandler struct {
	postService *service.PostService
}

func NewPostHandler(postService *service.PostService) *PostHandler {
	return &PostHandler{postService: postService}
}

func (h *PostHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listPosts)       // GET /posts
	r.Get("/{postID}", h.getPost) // GET /posts/42

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Post("/", h.createPost)
		protected.Put("/{postID}", h.updatePost)
		protected.Delete("/{postID}", h.deletePost)
	})
}

// postIDFromRequest parses the path parameter, reproducing the error strings
// existing clients match on.
func postIDFromRequest(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "postID")
	if raw == "" {
		common.RespondWithError(w, http.StatusBadRequest, "ID is missing!")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid ID format!")
		return 0, false
	}
	return id, true
}

func (h *PostHandler) getPost(w http.ResponseWriter, r *http.Request) {
	id, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	post, err := h.postService.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			common.RespondWithError(w, http.StatusNotFound, "Data not found!")
			return
		}
		common.RespondWithError(w, http.StatusInternalServerError, "Error fetching data!")
		return
	}

	// Bare post object: the single-post contract predates the envelope.
	common.RespondWithJSON(w, http.StatusOK, post)
}

func (h *PostHandler) listPosts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = config.AppConfig.DefaultListLimit
	}
	if limit > config.AppConfig.MaxListLimit {
		limit = config.AppConfig.MaxListLimit
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if offset < 0 {
		offset = 0
	}

	input := service.ListPostsInput{
		Limit:      limit,
		Offset:     offset,
		OwnerEmail: r.URL.Query().Get("owner"),
		Category:   r.URL.Query().Get("category"),
	}

	// An owner-scoped listing is not public: it requires a session whose
	// identity matches the requested owner.
	if input.OwnerEmail != "" {
		identity, ok := middleware.ResolveIdentity(r.Context())
		if !ok {
			common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		if identity.Email != input.OwnerEmail {
			common.RespondWithError(w, http.StatusForbidden, "Forbidden")
			return
		}
	}

	posts, total, err := h.postService.List(r.Context(), input)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type listPostsResponse struct {
		Posts  []model.Post `json:"posts"`
		Total  int          `json:"total"`
		Limit  int          `json:"limit"`
		Offset int          `json:"offset"`
	}
	common.RespondWithData(w, http.StatusOK, listPostsResponse{
		Posts:  posts,
		Total:  total,
		Limit:  input.Limit,
		Offset: input.Offset,
	})
}

func (h *PostHandler) createPost(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req service.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	post, err := h.postService.Create(r.Context(), identity, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, post)
}

func (h *PostHandler) updatePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	var req service.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	post, err := h.postService.Update(r.Context(), identity, id, req)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, post)
}

func (h *PostHandler) deletePost(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, ok := postIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.postService.Delete(r.Context(), identity, id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Post deleted successfully!")
}
