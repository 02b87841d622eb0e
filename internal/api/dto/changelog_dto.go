package dto

import "time"

type ChangelogCreateDTO struct {
	ProjectID   uint64     `json:"project_id" binding:"required"`
	Version     string     `json:"version" binding:"required,max=50"`
	Content     string     `json:"content" binding:"required"`
	PublishedAt *time.Time `json:"published_at"`
}

type ChangelogUpdateDTO struct {
	Version     *string    `json:"version" binding:"omitempty,max=50"`
	Content     *string    `json:"content"`
	PublishedAt *time.Time `json:"published_at"`
}

type ChangelogDTO struct {
	ID          uint64    `json:"id"`
	ProjectID   uint64    `json:"project_id"`
	Version     string    `json:"version"`
	Content     string    `json:"content"`
	PublishedAt time.Time `json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
}
