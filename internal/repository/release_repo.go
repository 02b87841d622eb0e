package repository

import (
	"Lodestone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ReleaseRepo interface {
	CreateRelease(ctx context.Context, release *model.Release) error
	GetRelease(ctx context.Context, id uint64) (*model.Release, error)
	ListReleasesByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*model.Release, error)
	UpdateRelease(ctx context.Context, release *model.Release) error
	DeleteRelease(ctx context.Context, id uint64) error

	CreateFile(ctx context.Context, file *model.ReleaseFile) error
	GetFileByID(ctx context.Context, id uint64) (*model.ReleaseFile, error)
	AddDownloadCount(ctx context.Context, fileID uint64, delta int64) error
}

type ReleaseRepoImpl struct {
	db *gorm.DB
}

func NewReleaseRepo(db *gorm.DB) ReleaseRepo {
	return &ReleaseRepoImpl{db: db}
}

func (s *ReleaseRepoImpl) CreateRelease(ctx context.Context, release *model.Release) error {
	return s.db.WithContext(ctx).Create(release).Error
}

func (s *ReleaseRepoImpl) GetRelease(ctx context.Context, id uint64) (*model.Release, error) {
	release := &model.Release{}
	result := s.db.WithContext(ctx).
		Preload("Files").
		First(release, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return release, nil
}

func (s *ReleaseRepoImpl) ListReleasesByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*model.Release, error) {
	releases := make([]*model.Release, 0)
	err := s.db.WithContext(ctx).
		Preload("Files").
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&releases).Error
	if err != nil {
		return nil, err
	}
	return releases, nil
}

func (s *ReleaseRepoImpl) UpdateRelease(ctx context.Context, release *model.Release) error {
	return s.db.WithContext(ctx).Updates(release).Error
}

// DeleteRelease 文件行、挂载关系与发行版在同一事务内删除
// 存储侧对象的清理由调用方尽力完成
func (s *ReleaseRepoImpl) DeleteRelease(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("release_id = ?", id).Delete(&model.ReleaseFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("release_id = ?", id).Delete(&model.PostRelease{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Release{}, id).Error
	})
}

func (s *ReleaseRepoImpl) CreateFile(ctx context.Context, file *model.ReleaseFile) error {
	return s.db.WithContext(ctx).Create(file).Error
}

func (s *ReleaseRepoImpl) GetFileByID(ctx context.Context, id uint64) (*model.ReleaseFile, error) {
	file := &model.ReleaseFile{}
	result := s.db.WithContext(ctx).First(file, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return file, nil
}

func (s *ReleaseRepoImpl) AddDownloadCount(ctx context.Context, fileID uint64, delta int64) error {
	return s.db.WithContext(ctx).Model(&model.ReleaseFile{}).
		Where("id = ?", fileID).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", delta)).Error
}
