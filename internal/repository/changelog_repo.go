package repository

import (
	"Lodestone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ChangelogRepo interface {
	CreateChangelog(ctx context.Context, changelog *model.Changelog) error
	GetChangelog(ctx context.Context, id uint64) (*model.Changelog, error)
	ListChangelogsByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*model.Changelog, error)
	UpdateChangelog(ctx context.Context, changelog *model.Changelog) error
	DeleteChangelog(ctx context.Context, id uint64) error
}

type ChangelogRepoImpl struct {
	db *gorm.DB
}

func NewChangelogRepo(db *gorm.DB) ChangelogRepo {
	return &ChangelogRepoImpl{db: db}
}

func (s *ChangelogRepoImpl) CreateChangelog(ctx context.Context, changelog *model.Changelog) error {
	return s.db.WithContext(ctx).Create(changelog).Error
}

func (s *ChangelogRepoImpl) GetChangelog(ctx context.Context, id uint64) (*model.Changelog, error) {
	changelog := &model.Changelog{}
	result := s.db.WithContext(ctx).First(changelog, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return changelog, nil
}

func (s *ChangelogRepoImpl) ListChangelogsByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*model.Changelog, error) {
	changelogs := make([]*model.Changelog, 0)
	err := s.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("published_at DESC").
		Limit(limit).Offset(offset).
		Find(&changelogs).Error
	if err != nil {
		return nil, err
	}
	return changelogs, nil
}

func (s *ChangelogRepoImpl) UpdateChangelog(ctx context.Context, changelog *model.Changelog) error {
	return s.db.WithContext(ctx).Updates(changelog).Error
}

func (s *ChangelogRepoImpl) DeleteChangelog(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Changelog{}, id).Error
}
