package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"blogforge/internal/app/service"
	"blogforge/internal/common"

	"github.com/go-chi/chi/v5"
)

// CommentHandler keeps the original comment-board contract: ids travel in
// query parameters (blogId, UpDateComment, CommentId), not the path.
type CommentHandler struct {
	commentService *service.CommentService
}

func NewCommentHandler(commentService *service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listComments)     // GET /comments?blogId=42
	r.Post("/", h.createComment)   // POST /comments
	r.Put("/", h.updateComment)    // PUT /comments?UpDateComment=7
	r.Delete("/", h.deleteComment) // DELETE /comments?CommentId=7
}

func idFromQuery(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	raw := r.URL.Query().Get(param)
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

func (h *CommentHandler) listComments(w http.ResponseWriter, r *http.Request) {
	postID, ok := idFromQuery(w, r, "blogId")
	if !ok {
		return
	}

	comments, err := h.commentService.ListByPost(r.Context(), postID)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, comments)
}

func (h *CommentHandler) createComment(w http.ResponseWriter, r *http.Request) {
	var input service.CommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	comment, err := h.commentService.Create(r.Context(), input)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, comment)
}

func (h *CommentHandler) updateComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(w, r, "UpDateComment")
	if !ok {
		return
	}

	var input service.CommentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	comment, err := h.commentService.Update(r.Context(), id, input)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithData(w, http.StatusOK, comment)
}

func (h *CommentHandler) deleteComment(w http.ResponseWriter, r *http.Request) {
	id, ok := idFromQuery(w, r, "CommentId")
	if !ok {
		return
	}

	if err := h.commentService.Delete(r.Context(), id); err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithMessage(w, http.StatusOK, "Comment deleted successfully!")
}
