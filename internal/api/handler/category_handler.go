package handler

import (
	"net/http"

	"blogforge/internal/api/middleware"
	"blogforge/internal/app/service"
	"blogforge/internal/common"

	"github.com/go-chi/chi/v5"
)

type CategoryHandler struct {
	categoryService *service.CategoryService
}

func NewCategoryHandler(categoryService *service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

func (h *CategoryHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listCategories) // GET /categories

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticator)
		protected.Get("/mine", h.listOwnCategories) // GET /categories/mine
	})
}

func (h *CategoryHandler) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.Distinct(r.Context())
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Something went wrong: "+err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, categories)
}

func (h *CategoryHandler) listOwnCategories(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	categories, err := h.categoryService.DistinctByOwner(r.Context(), identity.Email)
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Something went wrong: "+err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, categories)
}
