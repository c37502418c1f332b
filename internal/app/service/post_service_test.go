package service

import (
	"context"
	"testing"

	"blogforge/internal/common"
	"blogforge/internal/domain/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alice = model.Identity{ID: "a-1", Username: "alice", Email: "alice@example.com"}
	bob   = model.Identity{ID: "b-1", Username: "bob", Email: "bob@example.com"}
)

func newPostService(postRepo *fakePostRepo, commentRepo *fakeCommentRepo) *PostService {
	return NewPostService(postRepo, commentRepo, nil, nil)
}

func createPost(t *testing.T, svc *PostService, owner model.Identity, title, category string) *model.Post {
	t.Helper()
	post, err := svc.Create(context.Background(), owner, CreatePostRequest{Title: title, Category: category})
	require.NoError(t, err)
	return post
}

func TestCreatePostStampsOwnerAndStoresRawCategory(t *testing.T) {
	setupTestConfig(t)
	repo := newFakePostRepo()
	svc := newPostService(repo, newFakeCommentRepo())

	post := createPost(t, svc, alice, "A", "Travel")

	assert.Equal(t, "alice@example.com", post.AuthorEmail)
	assert.Equal(t, "Travel", post.Category)
	assert.Equal(t, "a", post.Slug)

	fetched, err := svc.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", fetched.Title)
	assert.Equal(t, "Travel", fetched.Category)
}

func TestCreatePostMissingRequiredFields(t *testing.T) {
	setupTestConfig(t)
	svc := newPostService(newFakePostRepo(), newFakeCommentRepo())

	_, err := svc.Create(context.Background(), alice, CreatePostRequest{Title: "A"})
	assert.ErrorIs(t, err, common.ErrValidation)

	_, err = svc.Create(context.Background(), alice, CreatePostRequest{Category: "Tech"})
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestUpdatePostByNonOwnerForbidden(t *testing.T) {
	setupTestConfig(t)
	svc := newPostService(newFakePostRepo(), newFakeCommentRepo())
	post := createPost(t, svc, alice, "A", "Tech")

	title := "Hijacked"
	_, err := svc.Update(context.Background(), bob, post.ID, UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestUpdateMissingPostNotFoundBeatsForbidden(t *testing.T) {
	setupTestConfig(t)
	svc := newPostService(newFakePostRepo(), newFakeCommentRepo())

	title := "X"
	_, err := svc.Update(context.Background(), bob, 12345, UpdatePostRequest{Title: &title})
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NotErrorIs(t, err, common.ErrForbidden)
}

func TestUpdatePostPartialPatch(t *testing.T) {
	setupTestConfig(t)
	svc := newPostService(newFakePostRepo(), newFakeCommentRepo())
	post := createPost(t, svc, alice, "Original", "Tech")

	body := "new body"
	updated, err := svc.Update(context.Background(), alice, post.ID, UpdatePostRequest{Body: &body})
	require.NoError(t, err)

	assert.Equal(t, "Original", updated.Title)
	assert.Equal(t, "Tech", updated.Category)
	assert.Equal(t, "new body", updated.Body)
	assert.Equal(t, "alice@example.com", updated.AuthorEmail)
}

func TestUpdatePostAuthorEmailImmutable(t *testing.T) {
	setupTestConfig(t)
	repo := newFakePostRepo()
	svc := newPostService(repo, newFakeCommentRepo())
	post := createPost(t, svc, alice, "A", "Tech")

	title := "Renamed"
	updated, err := svc.Update(context.Background(), alice, post.ID, UpdatePostRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", updated.AuthorEmail)
	assert.Equal(t, "renamed", updated.Slug)
}

func TestUpdatePostLastWriteWins(t *testing.T) {
	setupTestConfig(t)
	svc := newPostService(newFakePostRepo(), newFakeCommentRepo())
	post := createPost(t, svc, alice, "Original", "Tech")

	first := "first body"
	second := "second body"
	_, err := svc.Update(context.Background(), alice, post.ID, UpdatePostRequest{Body: &first})
	require.NoError(t, err)
	_, err = svc.Update(context.Background(), alice, post.ID, UpdatePostRequest{Body: &second})
	require.NoError(t, err)

	final, err := svc.Get(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, "second body", final.Body)
}

func TestDeleteMissingPostNotFound(t *testing.T) {
	setupTestConfig(t)
	svc := newPostService(newFakePostRepo(), newFakeCommentRepo())

	err := svc.Delete(context.Background(), alice, 999)
	assert.ErrorIs(t, err, common.ErrNotFound)
	assert.NotErrorIs(t, err, common.ErrForbidden)
}

func TestDeletePostByNonOwnerForbidden(t *testing.T) {
	setupTestConfig(t)
	svc := newPostService(newFakePostRepo(), newFakeCommentRepo())
	post := createPost(t, svc, alice, "A", "Tech")

	err := svc.Delete(context.Background(), bob, post.ID)
	assert.ErrorIs(t, err, common.ErrForbidden)
}

func TestDeletePostCascadesComments(t *testing.T) {
	setupTestConfig(t)
	postRepo := newFakePostRepo()
	commentRepo := newFakeCommentRepo()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	mock.ExpectBegin()
	mock.ExpectCommit()

	svc := NewPostService(postRepo, commentRepo, nil, db)
	post := createPost(t, svc, alice, "A", "Tech")

	comment := &model.Comment{PostID: post.ID, Author: "bob", Email: "bob@example.com", Content: "hi"}
	require.NoError(t, commentRepo.Create(context.Background(), comment))

	require.NoError(t, svc.Delete(context.Background(), alice, post.ID))

	assert.Contains(t, commentRepo.deletedByPost, post.ID)
	assert.Empty(t, commentRepo.comments)
	_, err = svc.Get(context.Background(), post.ID)
	assert.ErrorIs(t, err, common.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListNormalizesCategoryFilter(t *testing.T) {
	setupTestConfig(t)
	repo := newFakePostRepo()
	svc := newPostService(repo, newFakeCommentRepo())
	createPost(t, svc, alice, "A", " Food ")

	posts, total, err := svc.List(context.Background(), ListPostsInput{Category: "  FOOD "})
	require.NoError(t, err)

	assert.Equal(t, "food", repo.lastListFilter.Category)
	assert.Equal(t, 1, total)
	require.Len(t, posts, 1)
	assert.Equal(t, " Food ", posts[0].Category)
}

func TestListClampsLimit(t *testing.T) {
	setupTestConfig(t)
	repo := newFakePostRepo()
	svc := newPostService(repo, newFakeCommentRepo())

	_, _, err := svc.List(context.Background(), ListPostsInput{})
	require.NoError(t, err)
	assert.Equal(t, 20, repo.lastListFilter.Limit)

	_, _, err = svc.List(context.Background(), ListPostsInput{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, 100, repo.lastListFilter.Limit)
}
