package service

import (
	"context"
	"fmt"

	"blogforge/internal/domain/model"
	"blogforge/internal/domain/repository"
)

// CategoryService serves the derived category index. The set is recomputed
// from the post store on every miss; the cache is invalidated on every post
// write, so results are always current.
type CategoryService struct {
	postRepo repository.PostRepository
	cache    *CategoryCache
}

func NewCategoryService(postRepo repository.PostRepository, cache *CategoryCache) *CategoryService {
	return &CategoryService{postRepo: postRepo, cache: cache}
}

// Distinct returns the global normalized category set. No order guarantee.
func (s *CategoryService) Distinct(ctx context.Context) ([]string, error) {
	return s.distinct(ctx, "", categoryCacheGlobalKey)
}

// DistinctByOwner returns the set scoped to one author. Both scopes share
// model.NormalizeCategories; divergence would be a correctness bug.
func (s *CategoryService) DistinctByOwner(ctx context.Context, ownerEmail string) ([]string, error) {
	return s.distinct(ctx, ownerEmail, categoryCacheOwnerKey(ownerEmail))
}

func (s *CategoryService) distinct(ctx context.Context, ownerEmail, cacheKey string) ([]string, error) {
	if categories, ok := s.cache.Get(ctx, cacheKey); ok {
		return categories, nil
	}

	raw, err := s.postRepo.ListCategories(ctx, ownerEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := model.NormalizeCategories(raw)
	s.cache.Set(ctx, cacheKey, categories)
	return categories, nil
}
