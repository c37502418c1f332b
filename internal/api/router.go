package api

import (
	"net/http"
	"time"

	"blogforge/internal/api/handler"
	"blogforge/internal/app/service"
	"blogforge/internal/common/security"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	postService *service.PostService,
	categoryService *service.CategoryService,
	commentService *service.CommentService,
	searchService *service.SearchService,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// Verifies a bearer token when present and puts claims in context; the
	// Authenticator middleware on protected groups enforces it.
	r.Use(jwtauth.Verifier(security.TokenAuth))

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(authService)
	r.Route("/auth", authHandler.RegisterRoutes)

	postHandler := handler.NewPostHandler(postService)
	r.Route("/posts", postHandler.RegisterRoutes)

	categoryHandler := handler.NewCategoryHandler(categoryService)
	r.Route("/categories", categoryHandler.RegisterRoutes)

	commentHandler := handler.NewCommentHandler(commentService)
	r.Route("/comments", commentHandler.RegisterRoutes)

	searchHandler := handler.NewSearchHandler(searchService)
	r.Route("/search", searchHandler.RegisterRoutes)

	return r
}
