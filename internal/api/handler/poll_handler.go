package handler

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/pkg/response"
	"Lodestone/internal/repository"
	"Lodestone/internal/service"

	"github.com/gin-gonic/gin"
)

type PollHandler struct {
	pollSvc service.PollService
}

func NewPollHandler(pollSvc service.PollService) *PollHandler {
	return &PollHandler{pollSvc: pollSvc}
}

func (s *PollHandler) CreatePoll(c *gin.Context) {
	userID, _ := currentUser(c)

	var req dto.PollCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	poll, err := s.pollSvc.CreatePoll(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, poll)
}

func (s *PollHandler) GetPoll(c *gin.Context) {
	pollID, err := parseID(c, "poll_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, _ := currentUser(c)

	poll, err := s.pollSvc.GetPoll(c.Request.Context(), pollID, userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, poll)
}

func (s *PollHandler) ListPollsByProject(c *gin.Context) {
	projectID, err := parseID(c, "project_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, _ := currentUser(c)

	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	limit, offset := page.LimitOffset()

	polls, err := s.pollSvc.ListPollsByProject(c.Request.Context(), projectID, userID, limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, polls)
}

func (s *PollHandler) UpdatePoll(c *gin.Context) {
	pollID, err := parseID(c, "poll_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	var req dto.PollUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	poll, err := s.pollSvc.UpdatePoll(c.Request.Context(), userID, isAdmin, pollID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, poll)
}

func (s *PollHandler) FinalizePoll(c *gin.Context) {
	pollID, err := parseID(c, "poll_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	if err := s.pollSvc.FinalizePoll(c.Request.Context(), userID, isAdmin, pollID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PollHandler) ActivatePoll(c *gin.Context) {
	s.setActive(c, true)
}

func (s *PollHandler) DeactivatePoll(c *gin.Context) {
	s.setActive(c, false)
}

func (s *PollHandler) setActive(c *gin.Context, isActive bool) {
	pollID, err := parseID(c, "poll_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	if err := s.pollSvc.SetPollActive(c.Request.Context(), userID, isAdmin, pollID, isActive); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *PollHandler) DeletePoll(c *gin.Context) {
	pollID, err := parseID(c, "poll_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, isAdmin := currentUser(c)

	if err := s.pollSvc.DeletePoll(c.Request.Context(), userID, isAdmin, pollID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Vote 首次投出返回 201，撤销或改投返回 200
func (s *PollHandler) Vote(c *gin.Context) {
	pollID, err := parseID(c, "poll_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	userID, _ := currentUser(c)

	var req dto.PollVoteDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.pollSvc.Vote(c.Request.Context(), userID, pollID, req.OptionID)
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
