package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"blogapp/models"
	"blogapp/utils"
)

func newTestRepo(t *testing.T) *Repository {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 共享内存库随最后一个连接关闭而消失，限制为单连接
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Post{}, &models.Like{}, &models.Comment{}))
	return New(db)
}

func TestCreateUser_Duplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "alice", "pw1")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "pw1", user.PasswordHash)
	assert.True(t, utils.CheckPassword("pw1", user.PasswordHash))

	_, err = repo.CreateUser(ctx, "alice", "pw2")
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestGetUser(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	created, err := repo.CreateUser(ctx, "alice", "pw1")
	require.NoError(t, err)

	byName, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	byID, err := repo.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = repo.GetUserByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetUser(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostLifecycle(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	alice, err := repo.CreateUser(ctx, "alice", "pw1")
	require.NoError(t, err)

	post, err := repo.CreatePost(ctx, "T", "C", alice.ID)
	require.NoError(t, err)
	assert.NotZero(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.Equal(t, alice.ID, post.AuthorID)

	posts, err := repo.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "T", posts[0].Title)

	updated, err := repo.UpdatePost(ctx, post.ID, "T2", "C2")
	require.NoError(t, err)
	assert.Equal(t, "T2", updated.Title)
	assert.Equal(t, "C2", updated.Content)

	deleted, err := repo.DeletePost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, deleted.ID)

	_, err = repo.GetPost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.UpdatePost(ctx, post.ID, "x", "y")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.DeletePost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLikePost_Duplicate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	alice, err := repo.CreateUser(ctx, "alice", "pw1")
	require.NoError(t, err)
	post, err := repo.CreatePost(ctx, "T", "C", alice.ID)
	require.NoError(t, err)

	like, err := repo.LikePost(ctx, post.ID, alice.ID)
	require.NoError(t, err)
	assert.NotZero(t, like.ID)

	_, err = repo.LikePost(ctx, post.ID, alice.ID)
	assert.ErrorIs(t, err, ErrAlreadyLiked)

	// 唯一索引保证同一对 (user, post) 只有一行
	count, err := repo.CountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	// 另一个用户点同一篇文章不受影响
	bob, err := repo.CreateUser(ctx, "bob", "pw2")
	require.NoError(t, err)
	_, err = repo.LikePost(ctx, post.ID, bob.ID)
	require.NoError(t, err)

	count, err = repo.CountLikes(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCommentPost(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	alice, err := repo.CreateUser(ctx, "alice", "pw1")
	require.NoError(t, err)
	post, err := repo.CreatePost(ctx, "T", "C", alice.ID)
	require.NoError(t, err)

	comment, err := repo.CommentPost(ctx, post.ID, alice.ID, "first")
	require.NoError(t, err)
	assert.NotZero(t, comment.ID)
	assert.False(t, comment.CreatedAt.IsZero())

	comments, err := repo.ListComments(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "first", comments[0].Content)

	// 其它文章的评论列表为空
	other, err := repo.ListComments(ctx, post.ID+1)
	require.NoError(t, err)
	assert.Empty(t, other)
}
