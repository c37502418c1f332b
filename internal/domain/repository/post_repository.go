package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"blogforge/internal/common"
	"blogforge/internal/domain/model"
)

// PostListFilter carries the recognized listing options. Category must
// already be in normalized form; matching happens against the normalized
// column expression, not the raw stored value.
type PostListFilter struct {
	Limit      int
	Offset     int
	OwnerEmail string
	Category   string
}

type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id int64) (*model.Post, error)
	List(ctx context.Context, filter PostListFilter) ([]model.Post, int, error)
	Update(ctx context.Context, post *model.Post) error
	Delete(ctx context.Context, tx *sql.Tx, id int64) error
	Search(ctx context.Context, term, ownerEmail string, limit int) ([]model.Post, error)
	ListCategories(ctx context.Context, ownerEmail string) ([]string, error)
}

type pgPostRepository struct {
	db *sql.DB
}

func NewPgPostRepository(db *sql.DB) PostRepository {
	return &pgPostRepository{db: db}
}

const postColumns = `id, title, slug, short_description, body, category, image_ref, author_email, created_at, updated_at`

func scanPost(row interface{ Scan(...interface{}) error }, p *model.Post) error {
	return row.Scan(
		&p.ID, &p.Title, &p.Slug, &p.ShortDescription, &p.Body, &p.Category,
		&p.ImageRef, &p.AuthorEmail, &p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *pgPostRepository) Create(ctx context.Context, p *model.Post) error {
	query := `INSERT INTO posts (title, slug, short_description, body, category, image_ref, author_email)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.ShortDescription, p.Body, p.Category, p.ImageRef, p.AuthorEmail,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("pgPostRepository.Create: %w", err)
	}
	return nil
}

func (r *pgPostRepository) FindByID(ctx context.Context, id int64) (*model.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`
	post := &model.Post{}
	err := scanPost(r.db.QueryRowContext(ctx, query, id), post)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgPostRepository.FindByID: %w", err)
	}
	return post, nil
}

func (r *pgPostRepository) List(ctx context.Context, filter PostListFilter) ([]model.Post, int, error) {
	var conditions []string
	var args []interface{}
	argID := 1

	if filter.OwnerEmail != "" {
		conditions = append(conditions, fmt.Sprintf("author_email = $%d", argID))
		args = append(args, filter.OwnerEmail)
		argID++
	}
	if filter.Category != "" {
		// Compare against the normalized form so creation-time casing and
		// whitespace never affect filtering.
		conditions = append(conditions, fmt.Sprintf("lower(btrim(category)) = $%d", argID))
		args = append(args, filter.Category)
		argID++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM posts` + whereClause
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List count: %w", err)
	}

	query := `SELECT ` + postColumns + ` FROM posts` + whereClause +
		fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argID, argID+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List query: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, 0, fmt.Errorf("pgPostRepository.List scan: %w", err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("pgPostRepository.List rows.Err: %w", err)
	}

	return posts, total, nil
}

// Update persists a full row; the service applies the partial patch before
// calling. author_email is deliberately absent from the SET list.
func (r *pgPostRepository) Update(ctx context.Context, p *model.Post) error {
	query := `UPDATE posts SET
	            title = $1, slug = $2, short_description = $3, body = $4,
	            category = $5, image_ref = $6, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $7
	          RETURNING updated_at`
	err := r.db.QueryRowContext(ctx, query,
		p.Title, p.Slug, p.ShortDescription, p.Body, p.Category, p.ImageRef, p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return common.ErrNotFound
		}
		return fmt.Errorf("pgPostRepository.Update: %w", err)
	}
	return nil
}

func (r *pgPostRepository) Delete(ctx context.Context, tx *sql.Tx, id int64) error {
	query := `DELETE FROM posts WHERE id = $1`

	var result sql.Result
	var err error
	if tx != nil {
		result, err = tx.ExecContext(ctx, query, id)
	} else {
		result, err = r.db.ExecContext(ctx, query, id)
	}
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("pgPostRepository.Delete rows affected: %w", err)
	}
	if affected == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *pgPostRepository) Search(ctx context.Context, term, ownerEmail string, limit int) ([]model.Post, error) {
	var builder strings.Builder
	builder.WriteString(`SELECT ` + postColumns + ` FROM posts WHERE (title ILIKE $1 OR short_description ILIKE $1)`)

	args := []interface{}{"%" + term + "%"}
	argID := 2
	if ownerEmail != "" {
		builder.WriteString(fmt.Sprintf(" AND author_email = $%d", argID))
		args = append(args, ownerEmail)
		argID++
	}
	builder.WriteString(fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argID))
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, builder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.Search: %w", err)
	}
	defer rows.Close()

	posts := []model.Post{}
	for rows.Next() {
		var p model.Post
		if err := scanPost(rows, &p); err != nil {
			return nil, fmt.Errorf("pgPostRepository.Search scan: %w", err)
		}
		posts = append(posts, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPostRepository.Search rows.Err: %w", err)
	}
	return posts, nil
}

// ListCategories returns raw stored category values; normalization is the
// caller's concern so both scopes share one algorithm.
func (r *pgPostRepository) ListCategories(ctx context.Context, ownerEmail string) ([]string, error) {
	query := `SELECT DISTINCT category FROM posts`
	args := []interface{}{}
	if ownerEmail != "" {
		query += ` WHERE author_email = $1`
		args = append(args, ownerEmail)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgPostRepository.ListCategories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category sql.NullString
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("pgPostRepository.ListCategories scan: %w", err)
		}
		if category.Valid {
			categories = append(categories, category.String)
		}
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgPostRepository.ListCategories rows.Err: %w", err)
	}
	return categories, nil
}
