package model

import (
	"time"
)

type ReleaseFile struct {
	ID            uint64    `gorm:"primaryKey"`
	ReleaseID     uint64    `gorm:"not null;index:idx_release_files_release_id" json:"release_id"`
	FileName      string    `gorm:"type:varchar(255);not null" json:"file_name"` // 存储侧对象名，上传时已做唯一化
	OriginalName  string    `gorm:"type:varchar(255);not null" json:"original_name"`
	Size          int64     `gorm:"not null;default:0" json:"size"`
	ContentType   string    `gorm:"type:varchar(100)" json:"content_type"`
	DownloadCount int64     `gorm:"not null;default:0" json:"download_count"`
	CreatedAt     time.Time `json:"created_at"`
}

func (ReleaseFile) TableName() string {
	return "release_files"
}
