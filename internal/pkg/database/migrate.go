package database

import (
	"Lodestone/internal/model"
	"Lodestone/internal/pkg/consts"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AutoMigrate 建表并保证基础角色存在
func AutoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.User{},
		&model.Role{},
		&model.UserRole{},
		&model.Project{},
		&model.Post{},
		&model.Poll{},
		&model.PollOption{},
		&model.PollVote{},
		&model.Comment{},
		&model.CommentHistory{},
		&model.CommentVote{},
		&model.Release{},
		&model.ReleaseFile{},
		&model.Changelog{},
		&model.PostPoll{},
		&model.PostRelease{},
	)
	if err != nil {
		return err
	}

	return seedRoles(db)
}

func seedRoles(db *gorm.DB) error {
	roles := []model.Role{
		{Name: consts.RoleUser},
		{Name: consts.RoleAdmin},
	}
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}
