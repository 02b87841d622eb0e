package repository

import (
	"Lodestone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProjectRepo interface {
	CreateProject(ctx context.Context, project *model.Project) error
	GetProject(ctx context.Context, id uint64) (*model.Project, error)
	GetProjectBySlug(ctx context.Context, slug string) (*model.Project, error)
	ListProjects(ctx context.Context, limit, offset int) ([]*model.Project, error)
	UpdateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id uint64) error
}

type ProjectRepoImpl struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) ProjectRepo {
	return &ProjectRepoImpl{db: db}
}

func (s *ProjectRepoImpl) CreateProject(ctx context.Context, project *model.Project) error {
	return s.db.WithContext(ctx).Create(project).Error
}

func (s *ProjectRepoImpl) GetProject(ctx context.Context, id uint64) (*model.Project, error) {
	project := &model.Project{}
	result := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		First(project, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return project, nil
}

func (s *ProjectRepoImpl) GetProjectBySlug(ctx context.Context, slug string) (*model.Project, error) {
	project := &model.Project{}
	result := s.db.WithContext(ctx).
		Where("slug = ? AND is_deleted = ?", slug, false).
		First(project)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return project, nil
}

func (s *ProjectRepoImpl) ListProjects(ctx context.Context, limit, offset int) ([]*model.Project, error) {
	projects := make([]*model.Project, 0)
	err := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

func (s *ProjectRepoImpl) UpdateProject(ctx context.Context, project *model.Project) error {
	return s.db.WithContext(ctx).Updates(project).Error
}

func (s *ProjectRepoImpl) DeleteProject(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Project{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}
