package handler

import (
	"net/http"

	"blogforge/internal/app/service"
	"blogforge/internal/common"

	"github.com/go-chi/chi/v5"
)

type SearchHandler struct {
	searchService *service.SearchService
}

func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{searchService: searchService}
}

func (h *SearchHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.search) // GET /search?query=&owner=
}

func (h *SearchHandler) search(w http.ResponseWriter, r *http.Request) {
	posts, err := h.searchService.Search(r.Context(), r.URL.Query().Get("query"), r.URL.Query().Get("owner"))
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, posts)
}
