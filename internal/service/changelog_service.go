package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/model"
	"Lodestone/internal/repository"
	"context"
	"time"

	"github.com/jinzhu/copier"
)

type ChangelogService interface {
	CreateChangelog(ctx context.Context, userID uint64, isAdmin bool, req *dto.ChangelogCreateDTO) (*dto.ChangelogDTO, error)
	GetChangelog(ctx context.Context, id uint64) (*dto.ChangelogDTO, error)
	ListChangelogsByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*dto.ChangelogDTO, error)
	UpdateChangelog(ctx context.Context, userID uint64, isAdmin bool, id uint64, req *dto.ChangelogUpdateDTO) (*dto.ChangelogDTO, error)
	DeleteChangelog(ctx context.Context, userID uint64, isAdmin bool, id uint64) error
}

type ChangelogServiceImpl struct {
	changelogRepo repository.ChangelogRepo
	projectRepo   repository.ProjectRepo
}

func NewChangelogService(changelogRepo repository.ChangelogRepo, projectRepo repository.ProjectRepo) ChangelogService {
	return &ChangelogServiceImpl{
		changelogRepo: changelogRepo,
		projectRepo:   projectRepo,
	}
}

func (s *ChangelogServiceImpl) CreateChangelog(ctx context.Context, userID uint64, isAdmin bool, req *dto.ChangelogCreateDTO) (*dto.ChangelogDTO, error) {
	project, err := s.projectRepo.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if project.OwnerID != userID && !isAdmin {
		return nil, UnauthorizedError
	}

	changelog := &model.Changelog{}
	if err := copier.Copy(changelog, req); err != nil {
		return nil, err
	}
	if changelog.PublishedAt.IsZero() {
		changelog.PublishedAt = time.Now()
	}

	if err := s.changelogRepo.CreateChangelog(ctx, changelog); err != nil {
		return nil, err
	}
	return buildChangelogDTO(changelog), nil
}

func (s *ChangelogServiceImpl) GetChangelog(ctx context.Context, id uint64) (*dto.ChangelogDTO, error) {
	changelog, err := s.changelogRepo.GetChangelog(ctx, id)
	if err != nil {
		return nil, err
	}
	if changelog == nil {
		return nil, ErrChangelogNotFound
	}
	return buildChangelogDTO(changelog), nil
}

func (s *ChangelogServiceImpl) ListChangelogsByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*dto.ChangelogDTO, error) {
	project, err := s.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	changelogs, err := s.changelogRepo.ListChangelogsByProject(ctx, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ChangelogDTO, 0, len(changelogs))
	for _, c := range changelogs {
		result = append(result, buildChangelogDTO(c))
	}
	return result, nil
}

func (s *ChangelogServiceImpl) UpdateChangelog(ctx context.Context, userID uint64, isAdmin bool, id uint64, req *dto.ChangelogUpdateDTO) (*dto.ChangelogDTO, error) {
	changelog, err := s.checkChangelogManage(ctx, id, userID, isAdmin)
	if err != nil {
		return nil, err
	}

	if req.Version != nil {
		changelog.Version = *req.Version
	}
	if req.Content != nil {
		changelog.Content = *req.Content
	}
	if req.PublishedAt != nil {
		changelog.PublishedAt = *req.PublishedAt
	}

	if err := s.changelogRepo.UpdateChangelog(ctx, changelog); err != nil {
		return nil, err
	}
	return buildChangelogDTO(changelog), nil
}

func (s *ChangelogServiceImpl) DeleteChangelog(ctx context.Context, userID uint64, isAdmin bool, id uint64) error {
	if _, err := s.checkChangelogManage(ctx, id, userID, isAdmin); err != nil {
		return err
	}
	return s.changelogRepo.DeleteChangelog(ctx, id)
}

func (s *ChangelogServiceImpl) checkChangelogManage(ctx context.Context, id, userID uint64, isAdmin bool) (*model.Changelog, error) {
	changelog, err := s.changelogRepo.GetChangelog(ctx, id)
	if err != nil {
		return nil, err
	}
	if changelog == nil {
		return nil, ErrChangelogNotFound
	}
	if isAdmin {
		return changelog, nil
	}

	project, err := s.projectRepo.GetProject(ctx, changelog.ProjectID)
	if err != nil {
		return nil, err
	}
	if project != nil && project.OwnerID == userID {
		return changelog, nil
	}
	return nil, UnauthorizedError
}

func buildChangelogDTO(changelog *model.Changelog) *dto.ChangelogDTO {
	return &dto.ChangelogDTO{
		ID:          changelog.ID,
		ProjectID:   changelog.ProjectID,
		Version:     changelog.Version,
		Content:     changelog.Content,
		PublishedAt: changelog.PublishedAt,
		CreatedAt:   changelog.CreatedAt,
	}
}
