package dto

import "time"

type CommentCreateDTO struct {
	PostID   uint64 `json:"post_id" binding:"required"`
	ParentID uint64 `json:"parent_id"`
	Content  string `json:"content" binding:"required,max=2000"`
}

type CommentUpdateDTO struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type CommentVoteDTO struct {
	VoteType string `json:"vote_type" binding:"required,oneof=up down"`
}

type CommentDTO struct {
	ID        uint64    `json:"id"`
	PostID    uint64    `json:"post_id"`
	UserID    uint64    `json:"user_id"`
	ParentID  uint64    `json:"parent_id"`
	Content   string    `json:"content"`
	Upvotes   int       `json:"upvotes"`
	Downvotes int       `json:"downvotes"`
	IsDeleted bool      `json:"is_deleted"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Replies []*CommentDTO `json:"replies"`
}

type CommentHistoryDTO struct {
	Content  string    `json:"content"`
	EditedAt time.Time `json:"edited_at"`
}

type CommentVoteResultDTO struct {
	Action    string `json:"action"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes"`
}
