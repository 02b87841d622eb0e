package model

import (
	"time"
)

type Release struct {
	ID          uint64    `gorm:"primaryKey"`
	ProjectID   uint64    `gorm:"not null;index:idx_releases_project_id" json:"project_id"`
	UserID      uint64    `gorm:"not null" json:"user_id"`
	Version     string    `gorm:"type:varchar(50);not null" json:"version"`
	Title       string    `gorm:"type:varchar(255)" json:"title"`
	Notes       string    `gorm:"type:varchar(5000)" json:"notes"`
	IsPublished bool      `gorm:"type:tinyint(1);not null;default:1" json:"is_published"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联关系
	Files []ReleaseFile `gorm:"foreignKey:ReleaseID;references:ID"`
}

func (Release) TableName() string {
	return "releases"
}
