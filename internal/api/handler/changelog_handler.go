package handler

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/pkg/response"
	"Lodestone/internal/service"

	"github.com/gin-gonic/gin"
)

type ChangelogHandler struct {
	changelogSvc service.ChangelogService
}

func NewChangelogHandler(changelogSvc service.ChangelogService) *ChangelogHandler {
	return &ChangelogHandler{changelogSvc: changelogSvc}
}

func (s *ChangelogHandler) CreateChangelog(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	var req dto.ChangelogCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	changelog, err := s.changelogSvc.CreateChangelog(c.Request.Context(), userID, isAdmin, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, changelog)
}

func (s *ChangelogHandler) GetChangelog(c *gin.Context) {
	id, err := parseID(c, "changelog_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	changelog, err := s.changelogSvc.GetChangelog(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, changelog)
}

func (s *ChangelogHandler) ListChangelogsByProject(c *gin.Context) {
	projectID, err := parseID(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	limit, offset := page.LimitOffset()

	changelogs, err := s.changelogSvc.ListChangelogsByProject(c.Request.Context(), projectID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, changelogs)
}

func (s *ChangelogHandler) UpdateChangelog(c *gin.Context) {
	id, err := parseID(c, "changelog_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	var req dto.ChangelogUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	changelog, err := s.changelogSvc.UpdateChangelog(c.Request.Context(), userID, isAdmin, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, changelog)
}

func (s *ChangelogHandler) DeleteChangelog(c *gin.Context) {
	id, err := parseID(c, "changelog_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	if err := s.changelogSvc.DeleteChangelog(c.Request.Context(), userID, isAdmin, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
