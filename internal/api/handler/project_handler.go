package handler

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/pkg/response"
	"Lodestone/internal/service"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projectSvc service.ProjectService
}

func NewProjectHandler(projectSvc service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectSvc: projectSvc}
}

func (s *ProjectHandler) CreateProject(c *gin.Context) {
	userID, _ := currentUser(c)

	var req dto.ProjectCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	project, err := s.projectSvc.CreateProject(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, project)
}

func (s *ProjectHandler) GetProject(c *gin.Context) {
	id, err := parseID(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	project, err := s.projectSvc.GetProject(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (s *ProjectHandler) GetProjectBySlug(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	project, err := s.projectSvc.GetProjectBySlug(c.Request.Context(), slug)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (s *ProjectHandler) ListProjects(c *gin.Context) {
	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	limit, offset := page.LimitOffset()

	projects, err := s.projectSvc.ListProjects(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, projects)
}

func (s *ProjectHandler) UpdateProject(c *gin.Context) {
	id, err := parseID(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	var req dto.ProjectUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	project, err := s.projectSvc.UpdateProject(c.Request.Context(), userID, isAdmin, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, project)
}

func (s *ProjectHandler) DeleteProject(c *gin.Context) {
	id, err := parseID(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	if err := s.projectSvc.DeleteProject(c.Request.Context(), userID, isAdmin, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
