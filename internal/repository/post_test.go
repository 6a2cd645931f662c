package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"devbook/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func seedPost(t *testing.T, db *gorm.DB, user *models.User, text string) *models.Post {
	t.Helper()
	post := &models.Post{
		UserID:       user.ID,
		AuthorName:   user.Name,
		AuthorAvatar: user.Avatar,
		Text:         text,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestPostRepositoryCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "author@example.com")

	post := &models.Post{UserID: user.ID, AuthorName: user.Name, Text: "hello world"}
	require.NoError(t, repo.Create(ctx, post))

	got, err := repo.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "hello world", got.Text)
	assert.NotNil(t, got.Likes)
	assert.NotNil(t, got.Comments)
}

func TestPostRepositoryGetMissing(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)

	_, err := repo.GetByID(context.Background(), 123)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepositoryListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	user := seedUser(t, db, "lister@example.com")

	old := seedPost(t, db, user, "old")
	require.NoError(t, db.Model(old).Update("created_at", time.Now().Add(-time.Hour)).Error)
	seedPost(t, db, user, "new")

	posts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "new", posts[0].Text)
	assert.Equal(t, "old", posts[1].Text)
}

func TestPostRepositoryLikeOnce(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "author@example.com")
	liker := seedUser(t, db, "liker@example.com")
	post := seedPost(t, db, author, "likeable")

	require.NoError(t, repo.Like(ctx, liker.ID, post.ID))

	// a second like is rejected, not duplicated
	err := repo.Like(ctx, liker.ID, post.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeAlreadyLiked, appErr.Code)

	likes, err := repo.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, likes, 1)
}

func TestPostRepositoryUnlike(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "author@example.com")
	liker := seedUser(t, db, "liker@example.com")
	post := seedPost(t, db, author, "likeable")

	// unliking before liking fails
	err := repo.Unlike(ctx, liker.ID, post.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotLiked, appErr.Code)

	require.NoError(t, repo.Like(ctx, liker.ID, post.ID))
	require.NoError(t, repo.Unlike(ctx, liker.ID, post.ID))

	likes, err := repo.Likes(ctx, post.ID)
	require.NoError(t, err)
	assert.Empty(t, likes)
}

func TestPostRepositoryCommentsNewestFirst(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "author@example.com")
	post := seedPost(t, db, author, "commented")

	first := &models.Comment{PostID: post.ID, UserID: author.ID, AuthorName: author.Name, Text: "first"}
	second := &models.Comment{PostID: post.ID, UserID: author.ID, AuthorName: author.Name, Text: "second"}
	require.NoError(t, repo.AddComment(ctx, first))
	require.NoError(t, repo.AddComment(ctx, second))

	comments, err := repo.Comments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "second", comments[0].Text)
	assert.Equal(t, "first", comments[1].Text)

	require.NoError(t, repo.DeleteComment(ctx, second.ID))
	err = repo.DeleteComment(ctx, second.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}

func TestPostRepositoryDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	author := seedUser(t, db, "author@example.com")
	liker := seedUser(t, db, "liker@example.com")
	post := seedPost(t, db, author, "doomed")

	require.NoError(t, repo.Like(ctx, liker.ID, post.ID))
	require.NoError(t, repo.AddComment(ctx, &models.Comment{
		PostID: post.ID, UserID: liker.ID, AuthorName: liker.Name, Text: "bye",
	}))

	require.NoError(t, repo.Delete(ctx, post.ID))

	var likeCount, commentCount int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error)
	assert.Zero(t, likeCount)
	assert.Zero(t, commentCount)

	_, err := repo.GetByID(ctx, post.ID)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, models.CodeNotFound, appErr.Code)
}
