package model

import (
	"time"
)

type Poll struct {
	ID          uint64     `gorm:"primaryKey"`
	Question    string     `gorm:"type:varchar(500);not null" json:"question"`
	ProjectID   uint64     `gorm:"not null;default:0;index:idx_polls_project_id" json:"project_id"` // 0表示未挂载到项目
	PostID      uint64     `gorm:"not null;default:0;index:idx_polls_post_id" json:"post_id"`       // 0表示未挂载到帖子
	IsActive    bool       `gorm:"type:tinyint(1);not null;default:1" json:"is_active"`
	IsFinalized bool       `gorm:"type:tinyint(1);not null;default:0" json:"is_finalized"`
	EndDate     *time.Time `json:"end_date"`
	FinalizedAt *time.Time `json:"finalized_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// 关联关系
	Options []PollOption `gorm:"foreignKey:PollID;references:ID"`
}

func (Poll) TableName() string {
	return "polls"
}

// Closed 判断投票在 now 时刻是否已逻辑关闭
// 过期但尚未落库 finalized 的投票同样视为关闭
func (p *Poll) Closed(now time.Time) bool {
	if p.IsFinalized || !p.IsActive {
		return true
	}
	return p.EndDate != nil && p.EndDate.Before(now)
}

// Expired 判断投票是否已过期但尚未终结（需要惰性终结）
func (p *Poll) Expired(now time.Time) bool {
	return !p.IsFinalized && p.EndDate != nil && p.EndDate.Before(now)
}
