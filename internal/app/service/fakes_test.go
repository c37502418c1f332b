package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"blogforge/internal/common"
	"blogforge/internal/common/security"
	"blogforge/internal/domain/model"
	"blogforge/internal/domain/repository"
	"blogforge/internal/platform/config"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	config.AppConfig = &config.Config{
		JWTKey:           []byte("test-secret"),
		JWTExp:           time.Hour,
		DefaultListLimit: 20,
		MaxListLimit:     100,
		SearchLimit:      50,
	}
	security.InitJWT()
}

type fakeAccountRepo struct {
	accounts map[string]*model.Account // keyed by email, exact match
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: map[string]*model.Account{}}
}

func (f *fakeAccountRepo) Create(_ context.Context, account *model.Account) error {
	if _, exists := f.accounts[account.Email]; exists {
		return common.ErrConflict
	}
	stored := *account
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	f.accounts[account.Email] = &stored
	return nil
}

func (f *fakeAccountRepo) FindByEmail(_ context.Context, email string) (*model.Account, error) {
	account, ok := f.accounts[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *account
	return &copied, nil
}

func (f *fakeAccountRepo) FindByID(_ context.Context, id string) (*model.Account, error) {
	for _, account := range f.accounts {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, common.ErrNotFound
}

type fakePostRepo struct {
	posts          map[int64]*model.Post
	nextID         int64
	lastListFilter repository.PostListFilter
	categories     []string
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{posts: map[int64]*model.Post{}, nextID: 1}
}

func (f *fakePostRepo) Create(_ context.Context, post *model.Post) error {
	post.ID = f.nextID
	f.nextID++
	post.CreatedAt = time.Now()
	post.UpdatedAt = post.CreatedAt
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostRepo) FindByID(_ context.Context, id int64) (*model.Post, error) {
	post, ok := f.posts[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *post
	return &copied, nil
}

func (f *fakePostRepo) List(_ context.Context, filter repository.PostListFilter) ([]model.Post, int, error) {
	f.lastListFilter = filter
	var result []model.Post
	for _, post := range f.posts {
		if filter.OwnerEmail != "" && post.AuthorEmail != filter.OwnerEmail {
			continue
		}
		if filter.Category != "" && model.NormalizeCategory(post.Category) != filter.Category {
			continue
		}
		result = append(result, *post)
	}
	return result, len(result), nil
}

func (f *fakePostRepo) Update(_ context.Context, post *model.Post) error {
	if _, ok := f.posts[post.ID]; !ok {
		return common.ErrNotFound
	}
	post.UpdatedAt = time.Now()
	stored := *post
	f.posts[post.ID] = &stored
	return nil
}

func (f *fakePostRepo) Delete(_ context.Context, _ *sql.Tx, id int64) error {
	if _, ok := f.posts[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.posts, id)
	return nil
}

func (f *fakePostRepo) Search(_ context.Context, term, ownerEmail string, _ int) ([]model.Post, error) {
	var result []model.Post
	for _, post := range f.posts {
		if ownerEmail != "" && post.AuthorEmail != ownerEmail {
			continue
		}
		haystack := strings.ToLower(post.Title + " " + post.ShortDescription)
		if strings.Contains(haystack, strings.ToLower(term)) {
			result = append(result, *post)
		}
	}
	return result, nil
}

func (f *fakePostRepo) ListCategories(_ context.Context, ownerEmail string) ([]string, error) {
	if f.categories != nil {
		return f.categories, nil
	}
	var result []string
	for _, post := range f.posts {
		if ownerEmail != "" && post.AuthorEmail != ownerEmail {
			continue
		}
		result = append(result, post.Category)
	}
	return result, nil
}

type fakeCommentRepo struct {
	comments      map[int64]*model.Comment
	nextID        int64
	deletedByPost []int64
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{comments: map[int64]*model.Comment{}, nextID: 1}
}

func (f *fakeCommentRepo) Create(_ context.Context, comment *model.Comment) error {
	comment.ID = f.nextID
	f.nextID++
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeCommentRepo) FindByID(_ context.Context, id int64) (*model.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (f *fakeCommentRepo) ListByPost(_ context.Context, postID int64) ([]model.Comment, error) {
	var result []model.Comment
	for _, comment := range f.comments {
		if comment.PostID == postID {
			result = append(result, *comment)
		}
	}
	return result, nil
}

func (f *fakeCommentRepo) Update(_ context.Context, comment *model.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return common.ErrNotFound
	}
	comment.UpdatedAt = time.Now()
	stored := *comment
	f.comments[comment.ID] = &stored
	return nil
}

func (f *fakeCommentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeCommentRepo) DeleteByPost(_ context.Context, _ *sql.Tx, postID int64) error {
	f.deletedByPost = append(f.deletedByPost, postID)
	for id, comment := range f.comments {
		if comment.PostID == postID {
			delete(f.comments, id)
		}
	}
	return nil
}
