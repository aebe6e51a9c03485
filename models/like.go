package models

import "time"

// Like 点赞记录，(user_id, post_id) 唯一约束由数据库兜底去重
type Like struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"uniqueIndex:uq_user_post;not null" json:"user_id"`
	PostID    uint      `gorm:"uniqueIndex:uq_user_post;not null" json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
