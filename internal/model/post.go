package model

import (
	"time"
)

type Post struct {
	ID          uint64    `gorm:"primaryKey"`
	ProjectID   uint64    `gorm:"not null;index:idx_posts_project_id" json:"project_id"`
	UserID      uint64    `gorm:"not null;index:idx_user_id" json:"user_id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Content     string    `gorm:"not null" json:"content"`
	IsPublished bool      `gorm:"type:tinyint(1);not null;default:1" json:"is_published"`
	IsDeleted   bool      `gorm:"type:tinyint(1);not null;default:0" json:"is_deleted"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联关系
	User    User    `gorm:"foreignKey:UserID;references:ID"`
	Project Project `gorm:"foreignKey:ProjectID;references:ID"`
}

func (Post) TableName() string {
	return "posts"
}
