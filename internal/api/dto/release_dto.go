package dto

import "time"

type ReleaseCreateDTO struct {
	ProjectID   uint64 `json:"project_id" binding:"required"`
	Version     string `json:"version" binding:"required,max=50"`
	Title       string `json:"title" binding:"omitempty,max=255"`
	Notes       string `json:"notes" binding:"omitempty,max=5000"`
	IsPublished *bool  `json:"is_published"`
}

type ReleaseUpdateDTO struct {
	Version     *string `json:"version" binding:"omitempty,max=50"`
	Title       *string `json:"title" binding:"omitempty,max=255"`
	Notes       *string `json:"notes" binding:"omitempty,max=5000"`
	IsPublished *bool   `json:"is_published"`
}

type ReleaseFileDTO struct {
	ID            uint64    `json:"id"`
	OriginalName  string    `json:"original_name"`
	Size          int64     `json:"size"`
	ContentType   string    `json:"content_type"`
	DownloadCount int64     `json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
}

type ReleaseDTO struct {
	ID          uint64            `json:"id"`
	ProjectID   uint64            `json:"project_id"`
	UserID      uint64            `json:"user_id"`
	Version     string            `json:"version"`
	Title       string            `json:"title"`
	Notes       string            `json:"notes"`
	IsPublished bool              `json:"is_published"`
	Files       []*ReleaseFileDTO `json:"files"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

type DownloadDTO struct {
	URL string `json:"url"`
}
