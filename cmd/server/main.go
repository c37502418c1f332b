package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"blogforge/internal/api"
	"blogforge/internal/app/service"
	"blogforge/internal/common/security"
	"blogforge/internal/domain/repository"
	"blogforge/internal/platform/cache"
	"blogforge/internal/platform/config"
	"blogforge/internal/platform/database"
)

func main() {
	// 1. Load Configuration
	config.Load()
	fmt.Println("Configuration loaded.")

	// 2. Initialize JWT
	security.InitJWT()
	fmt.Println("JWT initialized.")

	// 3. Initialize Database
	database.Connect()
	defer database.Close()

	// 4. Initialize category cache (optional)
	cache.Connect()
	defer cache.Close()

	// 5. Initialize Repositories
	accountRepo := repository.NewPgAccountRepository(database.DB)
	postRepo := repository.NewPgPostRepository(database.DB)
	commentRepo := repository.NewPgCommentRepository(database.DB)

	// 6. Initialize Services
	categoryCache := service.NewCategoryCache(cache.RDB, config.AppConfig.CacheTTL)
	authService := service.NewAuthService(accountRepo)
	postService := service.NewPostService(postRepo, commentRepo, categoryCache, database.DB)
	categoryService := service.NewCategoryService(postRepo, categoryCache)
	commentService := service.NewCommentService(commentRepo, postRepo)
	searchService := service.NewSearchService(postRepo)

	// 7. Initialize Router & HTTP Server
	router := api.NewRouter(authService, postService, categoryService, commentService, searchService)

	server := &http.Server{
		Addr:         ":" + config.AppConfig.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 8. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on port %s", config.AppConfig.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Could not listen on %s: %v\n", config.AppConfig.APIPort, err)
		}
	}()
	log.Println("Server started successfully.")

	<-stop // Wait for interrupt signal

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}

	log.Println("Server stopped gracefully.")
}
