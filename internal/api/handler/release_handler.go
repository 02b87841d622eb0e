package handler

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/pkg/response"
	"Lodestone/internal/service"
	log "log/slog"

	"github.com/gin-gonic/gin"
)

type ReleaseHandler struct {
	releaseSvc service.ReleaseService
}

func NewReleaseHandler(releaseSvc service.ReleaseService) *ReleaseHandler {
	return &ReleaseHandler{releaseSvc: releaseSvc}
}

func (s *ReleaseHandler) CreateRelease(c *gin.Context) {
	userID, isAdmin := currentUser(c)

	var req dto.ReleaseCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	release, err := s.releaseSvc.CreateRelease(c.Request.Context(), userID, isAdmin, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, release)
}

func (s *ReleaseHandler) GetRelease(c *gin.Context) {
	id, err := parseID(c, "release_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	release, err := s.releaseSvc.GetRelease(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, release)
}

func (s *ReleaseHandler) ListReleasesByProject(c *gin.Context) {
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

	releases, err := s.releaseSvc.ListReleasesByProject(c.Request.Context(), projectID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, releases)
}

func (s *ReleaseHandler) UpdateRelease(c *gin.Context) {
	id, err := parseID(c, "release_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	var req dto.ReleaseUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	release, err := s.releaseSvc.UpdateRelease(c.Request.Context(), userID, isAdmin, id, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, release)
}

func (s *ReleaseHandler) DeleteRelease(c *gin.Context) {
	id, err := parseID(c, "release_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	if err := s.releaseSvc.DeleteRelease(c.Request.Context(), userID, isAdmin, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// UploadFile 接收 multipart 表单中的 file 字段
func (s *ReleaseHandler) UploadFile(c *gin.Context) {
	releaseID, err := parseID(c, "release_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		log.Error("打开上传文件失败", "err", err)
		response.Error(c, service.UnExpectedError)
		return
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	file, err := s.releaseSvc.UploadFile(c.Request.Context(), userID, isAdmin, releaseID,
		src, fileHeader.Size, contentType, fileHeader.Filename)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, file)
}

func (s *ReleaseHandler) DownloadFile(c *gin.Context) {
	fileID, err := parseID(c, "file_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	result, err := s.releaseSvc.DownloadFile(c.Request.Context(), fileID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
