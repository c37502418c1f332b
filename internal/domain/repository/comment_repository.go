package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"blogforge/internal/common"
	"blogforge/internal/domain/model"
)

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	FindByID(ctx context.Context, id int64) (*model.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]model.Comment, error)
	Update(ctx context.Context, comment *model.Comment) error
	Delete(ctx context.Context, id int64) error
	DeleteByPost(ctx context.Context, tx *sql.Tx, postID int64) error
}

type pgCommentRepository struct {
	db *sql.DB
}

func NewPgCommentRepository(db *sql.DB) CommentRepository {
	return &pgCommentRepository{db: db}
}

func (r *pgCommentRepository) Create(ctx context.Context, c *model.Comment) error {
	query := `INSERT INTO comments (post_id, author, email, content)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, c.PostID, c.Author, c.Email, c.Content).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Create: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) FindByID(ctx context.Context, id int64) (*model.Comment, error) {
	query := `SELECT id, post_id, author, email, content, created_at, updated_at
	          FROM comments WHERE id = $1`
	comment := &model.Comment{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.Author, &comment.Email, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgCommentRepository.FindByID: %w", err)
	}
	return comment, nil
}

// ListByPost orders by creation time ascending for deterministic threads.
func (r *pgCommentRepository) ListByPost(ctx context.Context, postID int64) ([]model.Comment, error) {
	query := `SELECT id, post_id, author, email, content, created_at, updated_at
	          FROM comments WHERE post_id = $1 ORDER BY created_at ASC`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("pgCommentRepository.ListByPost: %w", err)
	}
	defer rows.Close()

	comments := []model.Comment{}
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.PostID, &c.Author, &c.Email, &c.Content, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("pgCommentRepository.ListByPost scan: %w", err)
		}
		comments = append(comments, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCommentRepository.ListByPost rows.Err: %w", err)
	}
	return comments, nil
}

func (r *pgCommentRepository) Update(ctx context.Context, c *model.Comment) error {
	query := `UPDATE comments SET author = $1, email = $2, content = $3, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $4
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query, c.Author, c.Email, c.Content, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgCommentRepository.Update: %w", err)
	}
	return nil
}

func (r *pgCommentRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgCommentRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

// DeleteByPost runs inside the post-deletion transaction so no comment row
// ever references a missing post.
func (r *pgCommentRepository) DeleteByPost(ctx context.Context, tx *sql.Tx, postID int64) error {
	query := `DELETE FROM comments WHERE post_id = $1`
	var err error
	if tx != nil {
		_, err = tx.ExecContext(ctx, query, postID)
	} else {
		_, err = r.db.ExecContext(ctx, query, postID)
	}
	if err != nil {
		return fmt.Errorf("pgCommentRepository.DeleteByPost: %w", err)
	}
	return nil
}
