package service

import (
	"context"
	"fmt"
	"strings"

	"blogforge/internal/common"
	"blogforge/internal/domain/model"
	"blogforge/internal/domain/repository"
	"blogforge/internal/platform/config"
)

// SearchService is a derived view over post titles and short descriptions,
// recomputed from the store per request. Independent of ownership but
// composable with an owner filter.
type SearchService struct {
	postRepo repository.PostRepository
}

func NewSearchService(postRepo repository.PostRepository) *SearchService {
	return &SearchService{postRepo: postRepo}
}

func (s *SearchService) Search(ctx context.Context, query, ownerEmail string) ([]model.Post, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return nil, common.Errorf("search query is required: %w", common.ErrBadRequest)
	}

	posts, err := s.postRepo.Search(ctx, term, ownerEmail, config.AppConfig.SearchLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to search posts: %w", err)
	}
	return posts, nil
}
