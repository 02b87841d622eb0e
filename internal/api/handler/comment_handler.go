package handler

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/pkg/response"
	"Lodestone/internal/repository"
	"Lodestone/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentSvc service.CommentService
}

func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

func (s *CommentHandler) CreateComment(c *gin.Context) {
	userID, _ := currentUser(c)

	var req dto.CommentCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.CreateComment(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, comment)
}

func (s *CommentHandler) GetCommentTree(c *gin.Context) {
	postID, err := parseID(c, "post_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	comments, err := s.commentSvc.GetCommentTree(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comments)
}

func (s *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	var req dto.CommentUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.UpdateComment(c.Request.Context(), userID, isAdmin, commentID, req.Content)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

func (s *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	if err := s.commentSvc.DeleteComment(c.Request.Context(), userID, isAdmin, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *CommentHandler) GetHistory(c *gin.Context) {
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	histories, err := s.commentSvc.GetHistory(c.Request.Context(), commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, histories)
}

// Vote 首次投出返回 201，撤销或切换返回 200
func (s *CommentHandler) Vote(c *gin.Context) {
	commentID, err := parseID(c, "comment_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, _ := currentUser(c)

	var req dto.CommentVoteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.commentSvc.Vote(c.Request.Context(), userID, commentID, req.VoteType)
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.Action == string(repository.VoteActionCreated) {
		response.Created(c, result)
		return
	}
	response.Success(c, result)
}
