package model

import (
	"time"
)

type PollVote struct {
	ID           uint64    `gorm:"primaryKey"`
	PollID       uint64    `gorm:"not null;uniqueIndex:idx_poll_user" json:"poll_id"`
	PollOptionID uint64    `gorm:"not null;index:idx_poll_option_id" json:"poll_option_id"`
	UserID       uint64    `gorm:"not null;uniqueIndex:idx_poll_user" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PollVote) TableName() string {
	return "poll_votes"
}
