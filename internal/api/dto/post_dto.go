package dto

import "time"

type PostCreateDTO struct {
	ProjectID   uint64 `json:"project_id" binding:"required"`
	Title       string `json:"title" binding:"required,max=255"`
	Content     string `json:"content" binding:"required"`
	IsPublished *bool  `json:"is_published"`
}

type PostUpdateDTO struct {
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Content     *string `json:"content"`
	IsPublished *bool   `json:"is_published"`
}

type AttachDTO struct {
	DisplayOrder int `json:"display_order"`
}

type PostDTO struct {
	ID          uint64    `json:"id"`
	ProjectID   uint64    `json:"project_id"`
	UserID      uint64    `json:"user_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	IsPublished bool      `json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 详情页携带的挂载内容，列表接口为空
	Polls    []*PollDTO    `json:"polls,omitempty"`
	Releases []*ReleaseDTO `json:"releases,omitempty"`
}
