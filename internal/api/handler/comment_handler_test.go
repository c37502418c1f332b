package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"blogforge/internal/app/service"
	"blogforge/internal/domain/model"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
)

func newCommentRouter(postRepo *stubPostRepo) http.Handler {
	commentService := service.NewCommentService(nil, postRepo)
	r := chi.NewRouter()
	r.Route("/comments", NewCommentHandler(commentService).RegisterRoutes)
	return r
}

func TestListCommentsMissingBlogID(t *testing.T) {
	router := newCommentRouter(&stubPostRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/comments", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "ID is missing!", resp.Message)
	assert.False(t, resp.Success)
}

func TestUpdateCommentInvalidIDFormat(t *testing.T) {
	router := newCommentRouter(&stubPostRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/comments?UpDateComment=abc", strings.NewReader(`{}`))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "Invalid ID format!", resp.Message)
}

func TestCreateCommentValidationNamesMissingFields(t *testing.T) {
	router := newCommentRouter(&stubPostRepo{post: &model.Post{ID: 3}})

	rec := httptest.NewRecorder()
	body := `{"post_id": 3, "author": "bob", "email": "bob@example.com"}`
	req := httptest.NewRequest(http.MethodPost, "/comments", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Contains(t, resp.Message, "content")
	assert.Equal(t, http.StatusBadRequest, resp.Status)
	assert.False(t, resp.Success)
}

func TestDeleteCommentMissingID(t *testing.T) {
	router := newCommentRouter(&stubPostRepo{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/comments", nil))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeEnvelope(t, rec)
	assert.Equal(t, "ID is missing!", resp.Message)
}
