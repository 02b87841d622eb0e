package model

import (
	"time"
)

const (
	VoteTypeUp   int8 = 1
	VoteTypeDown int8 = -1
)

type CommentVote struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	CommentID uint64    `gorm:"primaryKey;index:idx_comment_votes_comment_id" json:"commentId"`
	VoteType  int8      `gorm:"not null" json:"voteType"` // 1:赞, -1:踩
	CreatedAt time.Time `json:"createdAt"`
}

func (CommentVote) TableName() string {
	return "comment_votes"
}
