package model

import (
	"time"
)

type Changelog struct {
	ID          uint64    `gorm:"primaryKey"`
	ProjectID   uint64    `gorm:"not null;index:idx_changelogs_project_id" json:"project_id"`
	Version     string    `gorm:"type:varchar(50);not null" json:"version"`
	Content     string    `gorm:"not null" json:"content"`
	PublishedAt time.Time `gorm:"not null" json:"published_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Changelog) TableName() string {
	return "changelogs"
}
