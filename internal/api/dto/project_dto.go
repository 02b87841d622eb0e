package dto

import "time"

type ProjectCreateDTO struct {
	Name        string `json:"name" binding:"required,max=100"`
	Slug        string `json:"slug" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
}

type ProjectUpdateDTO struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Slug        *string `json:"slug" binding:"omitempty,max=100"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

type ProjectDTO struct {
	ID          uint64    `json:"id"`
	OwnerID     uint64    `json:"owner_id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
