package service

import (
	"context"
	"database/sql"
	"fmt"

	"blogforge/internal/common"
	"blogforge/internal/domain/model"
	"blogforge/internal/domain/repository"
	"blogforge/internal/platform/config"

	"github.com/gosimple/slug"
)

type PostService struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	cache       *CategoryCache
	db          *sql.DB // For the delete cascade transaction
}

func NewPostService(
	postRepo repository.PostRepository,
	commentRepo repository.CommentRepository,
	cache *CategoryCache,
	db *sql.DB,
) *PostService {
	return &PostService{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		cache:       cache,
		db:          db,
	}
}

type CreatePostRequest struct {
	Title            string  `json:"title"`
	ShortDescription string  `json:"short_description"`
	Body             string  `json:"body"`
	Category         string  `json:"category"`
	ImageRef         *string `json:"image_ref,omitempty"`
}

type UpdatePostRequest struct {
	Title            *string `json:"title,omitempty"`
	ShortDescription *string `json:"short_description,omitempty"`
	Body             *string `json:"body,omitempty"`
	Category         *string `json:"category,omitempty"`
	ImageRef         *string `json:"image_ref,omitempty"`
}

// ListPostsInput mirrors the public listing options; owner and category are
// optional filters.
type ListPostsInput struct {
	Limit      int
	Offset     int
	OwnerEmail string
	Category   string
}

func (s *PostService) Create(ctx context.Context, identity model.Identity, req CreatePostRequest) (*model.Post, error) {
	if req.Title == "" || req.Category == "" {
		return nil, common.Errorf("title and category are required: %w", common.ErrValidation)
	}

	post := &model.Post{
		Title:            req.Title,
		Slug:             slug.Make(req.Title),
		ShortDescription: req.ShortDescription,
		Body:             req.Body,
		Category:         req.Category, // stored verbatim; the index normalizes on read
		ImageRef:         req.ImageRef,
		AuthorEmail:      identity.Email,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	s.cache.Invalidate(ctx, identity.Email)
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id int64) (*model.Post, error) {
	return s.postRepo.FindByID(ctx, id)
}

func (s *PostService) List(ctx context.Context, input ListPostsInput) ([]model.Post, int, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = config.AppConfig.DefaultListLimit
	}
	if limit > config.AppConfig.MaxListLimit {
		limit = config.AppConfig.MaxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	filter := repository.PostListFilter{
		Limit:      limit,
		Offset:     offset,
		OwnerEmail: input.OwnerEmail,
		Category:   model.NormalizeCategory(input.Category),
	}
	return s.postRepo.List(ctx, filter)
}

// Update applies a partial patch. Absence is checked before ownership, so a
// missing id is NotFound even for a stranger. author_email never changes.
func (s *PostService) Update(ctx context.Context, identity model.Identity, id int64, req UpdatePostRequest) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !post.OwnedBy(identity.Email) {
		return nil, common.ErrForbidden
	}

	if req.Title != nil {
		post.Title = *req.Title
		post.Slug = slug.Make(*req.Title)
	}
	if req.ShortDescription != nil {
		post.ShortDescription = *req.ShortDescription
	}
	if req.Body != nil {
		post.Body = *req.Body
	}
	if req.Category != nil {
		if *req.Category == "" {
			return nil, common.Errorf("category cannot be empty: %w", common.ErrValidation)
		}
		post.Category = *req.Category
	}
	if req.ImageRef != nil {
		post.ImageRef = req.ImageRef
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to update post: %w", err)
	}

	s.cache.Invalidate(ctx, identity.Email)
	return post, nil
}

// Delete removes the post and its comments in one transaction.
func (s *PostService) Delete(ctx context.Context, identity model.Identity, id int64) error {
	post, err := s.postRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !post.OwnedBy(identity.Email) {
		return common.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.commentRepo.DeleteByPost(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete comments for post %d: %w", id, err)
	}
	if err := s.postRepo.Delete(ctx, tx, id); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", id, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit post deletion: %w", err)
	}

	s.cache.Invalidate(ctx, identity.Email)
	return nil
}
