package model

import (
	"time"
)

// PostRelease 帖子与发行版的多对多挂载关系，携带展示顺序
type PostRelease struct {
	PostID       uint64    `gorm:"primaryKey" json:"post_id"`
	ReleaseID    uint64    `gorm:"primaryKey;index:idx_post_releases_release_id" json:"release_id"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func (PostRelease) TableName() string {
	return "post_releases"
}
