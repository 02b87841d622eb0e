package dto

import "time"

type PollCreateDTO struct {
	Question  string     `json:"question" binding:"required,max=500"`
	ProjectID uint64     `json:"project_id"`
	PostID    uint64     `json:"post_id"`
	EndDate   *time.Time `json:"end_date"`
	Options   []string   `json:"options" binding:"required,min=2,dive,required,max=500"`
}

// PollUpdateDTO 选项按文本做差异比对：
// 文本保留则选项及其票数保留，文本消失则选项连同投票一起删除
type PollUpdateDTO struct {
	Question *string    `json:"question" binding:"omitempty,max=500"`
	EndDate  *time.Time `json:"end_date"`
	Options  []string   `json:"options" binding:"omitempty,min=2,dive,required,max=500"`
}

type PollVoteDTO struct {
	OptionID uint64 `json:"option_id" binding:"required"`
}

type PollOptionDTO struct {
	ID         uint64 `json:"id"`
	OptionText string `json:"option_text"`
	VotesCount int    `json:"votes_count"`
}

type PollDTO struct {
	ID          uint64           `json:"id"`
	Question    string           `json:"question"`
	ProjectID   uint64           `json:"project_id"`
	PostID      uint64           `json:"post_id"`
	IsActive    bool             `json:"is_active"`
	IsFinalized bool             `json:"is_finalized"`
	IsClosed    bool             `json:"is_closed"`
	EndDate     *time.Time       `json:"end_date"`
	FinalizedAt *time.Time       `json:"finalized_at"`
	TotalVotes  int              `json:"total_votes"`
	Options     []*PollOptionDTO `json:"options"`
	UserVoteID  *uint64          `json:"user_vote_option_id,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type PollVoteResultDTO struct {
	Action string   `json:"action"`
	Poll   *PollDTO `json:"poll"`
}
