package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"blogapp/models"
	"blogapp/utils"
)

var (
	ErrDuplicateUsername = errors.New("username already registered")
	ErrNotFound          = errors.New("record not found")
	ErrAlreadyLiked      = errors.New("already liked")
)

// Repository 封装所有数据库读写。唯一性约束（用户名、点赞去重）
// 不做先查后插，直接插入并翻译数据库的冲突错误。
type Repository struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateUser 哈希密码后插入，用户名冲突返回 ErrDuplicateUsername
func (r *Repository) CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, PasswordHash: hash}
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}
	return user, nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) CreatePost(ctx context.Context, title, content string, authorID uint) (*models.Post, error) {
	post := &models.Post{Title: title, Content: content, AuthorID: authorID}
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

func (r *Repository) ListPosts(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.WithContext(ctx).Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (r *Repository) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &post, nil
}

// UpdatePost 覆盖标题和正文，不存在返回 ErrNotFound
func (r *Repository) UpdatePost(ctx context.Context, id uint, title, content string) (*models.Post, error) {
	post, err := r.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	post.Title = title
	post.Content = content
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost 删除并返回被删记录。点赞和评论保留原样，不做级联。
func (r *Repository) DeletePost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := r.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Delete(post).Error; err != nil {
		return nil, err
	}
	return post, nil
}

// LikePost 依赖 (user_id, post_id) 唯一索引去重，重复点赞返回 ErrAlreadyLiked
func (r *Repository) LikePost(ctx context.Context, postID, userID uint) (*models.Like, error) {
	like := &models.Like{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyLiked
		}
		return nil, err
	}
	return like, nil
}

// CommentPost 不校验文章是否存在，与原有行为保持一致
func (r *Repository) CommentPost(ctx context.Context, postID, userID uint, content string) (*models.Comment, error) {
	comment := &models.Comment{PostID: postID, UserID: userID, Content: content}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *Repository) ListComments(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	if err := r.db.WithContext(ctx).Where("post_id = ?", postID).Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// CountLikes 数据库侧计数，Redis 不可用时的兜底
func (r *Repository) CountLikes(ctx context.Context, postID uint) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
