package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"blogforge/internal/common"
	"blogforge/internal/domain/model"
	"blogforge/internal/domain/repository"
)

// CommentService handles pseudonymous comments. No identity is required on
// any operation; mutation is keyed by comment id alone to stay compatible
// with the existing comment-board client (see DESIGN.md).
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

type CommentInput struct {
	PostID  int64  `json:"post_id"`
	Author  string `json:"author"`
	Email   string `json:"email"`
	Content string `json:"content"`
}

func (in CommentInput) missingFields() []string {
	var missing []string
	if in.Author == "" {
		missing = append(missing, "author")
	}
	if in.Email == "" {
		missing = append(missing, "email")
	}
	if in.Content == "" {
		missing = append(missing, "content")
	}
	return missing
}

func (s *CommentService) Create(ctx context.Context, input CommentInput) (*model.Comment, error) {
	missing := input.missingFields()
	if input.PostID == 0 {
		missing = append(missing, "post_id")
	}
	if len(missing) > 0 {
		return nil, common.Errorf("missing required fields: %s: %w", strings.Join(missing, ", "), common.ErrValidation)
	}

	// The referenced post must exist at creation time.
	if _, err := s.postRepo.FindByID(ctx, input.PostID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.Errorf("post %d does not exist: %w", input.PostID, common.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to verify post: %w", err)
	}

	comment := &model.Comment{
		PostID:  input.PostID,
		Author:  input.Author,
		Email:   input.Email,
		Content: input.Content,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	return s.commentRepo.ListByPost(ctx, postID)
}

func (s *CommentService) Update(ctx context.Context, id int64, input CommentInput) (*model.Comment, error) {
	if missing := input.missingFields(); len(missing) > 0 {
		return nil, common.Errorf("missing required fields: %s: %w", strings.Join(missing, ", "), common.ErrValidation)
	}

	comment, err := s.commentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	comment.Author = input.Author
	comment.Email = input.Email
	comment.Content = input.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, id int64) error {
	return s.commentRepo.Delete(ctx, id)
}
