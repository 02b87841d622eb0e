package model

import (
	"time"
)

// PostPoll 帖子与投票的多对多挂载关系，携带展示顺序
type PostPoll struct {
	PostID       uint64    `gorm:"primaryKey" json:"post_id"`
	PollID       uint64    `gorm:"primaryKey;index:idx_post_polls_poll_id" json:"poll_id"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PostPoll) TableName() string {
	return "post_polls"
}
