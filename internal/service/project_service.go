package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/model"
	"Lodestone/internal/repository"
	"context"

	"github.com/jinzhu/copier"
)

type ProjectService interface {
	CreateProject(ctx context.Context, userID uint64, req *dto.ProjectCreateDTO) (*dto.ProjectDTO, error)
	GetProject(ctx context.Context, id uint64) (*dto.ProjectDTO, error)
	GetProjectBySlug(ctx context.Context, slug string) (*dto.ProjectDTO, error)
	ListProjects(ctx context.Context, limit, offset int) ([]*dto.ProjectDTO, error)
	UpdateProject(ctx context.Context, userID uint64, isAdmin bool, id uint64, req *dto.ProjectUpdateDTO) (*dto.ProjectDTO, error)
	DeleteProject(ctx context.Context, userID uint64, isAdmin bool, id uint64) error
}

type ProjectServiceImpl struct {
	projectRepo repository.ProjectRepo
}

func NewProjectService(projectRepo repository.ProjectRepo) ProjectService {
	return &ProjectServiceImpl{projectRepo: projectRepo}
}

func (s *ProjectServiceImpl) CreateProject(ctx context.Context, userID uint64, req *dto.ProjectCreateDTO) (*dto.ProjectDTO, error) {
	existing, err := s.projectRepo.GetProjectBySlug(ctx, req.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrProjectSlugExist
	}

	project := &model.Project{OwnerID: userID}
	if err := copier.Copy(project, req); err != nil {
		return nil, err
	}
	if err := s.projectRepo.CreateProject(ctx, project); err != nil {
		return nil, err
	}
	return buildProjectDTO(project), nil
}

func (s *ProjectServiceImpl) GetProject(ctx context.Context, id uint64) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return buildProjectDTO(project), nil
}

func (s *ProjectServiceImpl) GetProjectBySlug(ctx context.Context, slug string) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.GetProjectBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	return buildProjectDTO(project), nil
}

func (s *ProjectServiceImpl) ListProjects(ctx context.Context, limit, offset int) ([]*dto.ProjectDTO, error) {
	projects, err := s.projectRepo.ListProjects(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.ProjectDTO, 0, len(projects))
	for _, p := range projects {
		result = append(result, buildProjectDTO(p))
	}
	return result, nil
}

func (s *ProjectServiceImpl) UpdateProject(ctx context.Context, userID uint64, isAdmin bool, id uint64, req *dto.ProjectUpdateDTO) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}
	if project.OwnerID != userID && !isAdmin {
		return nil, UnauthorizedError
	}

	if req.Slug != nil && *req.Slug != project.Slug {
		existing, err := s.projectRepo.GetProjectBySlug(ctx, *req.Slug)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrProjectSlugExist
		}
		project.Slug = *req.Slug
	}
	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := s.projectRepo.UpdateProject(ctx, project); err != nil {
		return nil, err
	}
	return buildProjectDTO(project), nil
}

func (s *ProjectServiceImpl) DeleteProject(ctx context.Context, userID uint64, isAdmin bool, id uint64) error {
	project, err := s.projectRepo.GetProject(ctx, id)
	if err != nil {
		return err
	}
	if project == nil {
		return ErrProjectNotFound
	}
	if project.OwnerID != userID && !isAdmin {
		return UnauthorizedError
	}
	return s.projectRepo.DeleteProject(ctx, id)
}

func buildProjectDTO(project *model.Project) *dto.ProjectDTO {
	return &dto.ProjectDTO{
		ID:          project.ID,
		OwnerID:     project.OwnerID,
		Name:        project.Name,
		Slug:        project.Slug,
		Description: project.Description,
		CreatedAt:   project.CreatedAt,
		UpdatedAt:   project.UpdatedAt,
	}
}
