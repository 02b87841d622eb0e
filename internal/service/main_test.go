package service

import (
	"Lodestone/internal/model"
	"Lodestone/internal/pkg/database"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupDB 每个测试独立的内存数据库
func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func seedProject(t *testing.T, db *gorm.DB, ownerID uint64, slug string) *model.Project {
	t.Helper()
	project := &model.Project{
		OwnerID: ownerID,
		Name:    "测试项目",
		Slug:    slug,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}

func seedPost(t *testing.T, db *gorm.DB, projectID, userID uint64) *model.Post {
	t.Helper()
	post := &model.Post{
		ProjectID:   projectID,
		UserID:      userID,
		Title:       "测试帖子",
		Content:     "内容",
		IsPublished: true,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}
