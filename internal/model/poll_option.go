package model

import (
	"time"
)

type PollOption struct {
	ID         uint64    `gorm:"primaryKey"`
	PollID     uint64    `gorm:"not null;index:idx_poll_options_poll_id" json:"poll_id"`
	OptionText string    `gorm:"type:varchar(500);not null" json:"option_text"`
	VotesCount int       `gorm:"not null;default:0" json:"votes_count"` // 冗余计数，与投票行同事务更新
	CreatedAt  time.Time `json:"created_at"`
}

func (PollOption) TableName() string {
	return "poll_options"
}
