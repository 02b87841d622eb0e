package handler

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/pkg/response"
	"Lodestone/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{postSvc: postSvc}
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID, _ := currentUser(c)

	var req dto.PostCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, _ := currentUser(c)

	post, err := s.postSvc.GetPostDetail(c.Request.Context(), postID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) ListPostsByProject(c *gin.Context) {
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

	posts, err := s.postSvc.ListPostsByProject(c.Request.Context(), projectID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	var req dto.PostUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), userID, isAdmin, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) DeletePost(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	if err := s.postSvc.DeletePost(c.Request.Context(), userID, isAdmin, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) AttachPoll(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	pollID, err := parseID(c, "poll_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	// 请求体可省略，display_order 缺省为 0
	var req dto.AttachDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, err)
			return
		}
	}

	if err := s.postSvc.AttachPoll(c.Request.Context(), userID, isAdmin, postID, pollID, req.DisplayOrder); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nil)
}

func (s *PostHandler) DetachPoll(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	pollID, err := parseID(c, "poll_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	if err := s.postSvc.DetachPoll(c.Request.Context(), userID, isAdmin, postID, pollID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PostHandler) AttachRelease(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	releaseID, err := parseID(c, "release_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	var req dto.AttachDTO
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, err)
			return
		}
	}

	if err := s.postSvc.AttachRelease(c.Request.Context(), userID, isAdmin, postID, releaseID, req.DisplayOrder); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nil)
}

func (s *PostHandler) DetachRelease(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	releaseID, err := parseID(c, "release_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	if err := s.postSvc.DetachRelease(c.Request.Context(), userID, isAdmin, postID, releaseID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
