package model

import (
	"time"
)

// CommentHistory 评论编辑前的内容快照，仅追加，不单独修改或删除
type CommentHistory struct {
	ID        uint64    `gorm:"primaryKey"`
	CommentID uint64    `gorm:"not null;index:idx_comment_histories_comment_id" json:"commentId"`
	Content   string    `gorm:"type:varchar(2000);not null" json:"content"`
	EditedAt  time.Time `gorm:"not null" json:"editedAt"`
}

func (CommentHistory) TableName() string {
	return "comment_histories"
}
