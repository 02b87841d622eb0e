package model

import (
	"time"
)

type Project struct {
	ID          uint64    `gorm:"primaryKey"`
	OwnerID     uint64    `gorm:"not null;index:idx_owner_id" json:"owner_id"`
	Name        string    `gorm:"type:varchar(100);not null" json:"name"`
	Slug        string    `gorm:"type:varchar(100);uniqueIndex:idx_project_slug;not null" json:"slug"`
	Description string    `gorm:"type:varchar(2000)" json:"description"`
	IsDeleted   bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Owner User `gorm:"foreignKey:OwnerID;references:ID"`
}

func (Project) TableName() string {
	return "projects"
}
