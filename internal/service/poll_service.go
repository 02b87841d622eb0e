package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/model"
	"Lodestone/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type PollService interface {
	CreatePoll(ctx context.Context, userID uint64, req *dto.PollCreateDTO) (*dto.PollDTO, error)
	GetPoll(ctx context.Context, pollID, userID uint64) (*dto.PollDTO, error)
	ListPollsByProject(ctx context.Context, projectID, userID uint64, limit, offset int) ([]*dto.PollDTO, error)
	UpdatePoll(ctx context.Context, userID uint64, isAdmin bool, pollID uint64, req *dto.PollUpdateDTO) (*dto.PollDTO, error)
	FinalizePoll(ctx context.Context, userID uint64, isAdmin bool, pollID uint64) error
	SetPollActive(ctx context.Context, userID uint64, isAdmin bool, pollID uint64, isActive bool) error
	DeletePoll(ctx context.Context, userID uint64, isAdmin bool, pollID uint64) error
	Vote(ctx context.Context, userID, pollID, optionID uint64) (*dto.PollVoteResultDTO, error)
}

type PollServiceImpl struct {
	pollRepo    repository.PollRepo
	projectRepo repository.ProjectRepo
	postRepo    repository.PostRepo
}

func NewPollService(pollRepo repository.PollRepo, projectRepo repository.ProjectRepo, postRepo repository.PostRepo) PollService {
	return &PollServiceImpl{
		pollRepo:    pollRepo,
		projectRepo: projectRepo,
		postRepo:    postRepo,
	}
}

func (s *PollServiceImpl) CreatePoll(ctx context.Context, userID uint64, req *dto.PollCreateDTO) (*dto.PollDTO, error) {
	if len(req.Options) < 2 {
		return nil, ErrPollTooFewOptions
	}

	if req.ProjectID != 0 {
		project, err := s.projectRepo.GetProject(ctx, req.ProjectID)
		if err != nil {
			return nil, err
		}
		if project == nil {
			return nil, ErrProjectNotFound
		}
	}
	if req.PostID != 0 {
		post, err := s.postRepo.GetPost(ctx, req.PostID)
		if err != nil {
			return nil, err
		}
		if post == nil {
			return nil, ErrPostNotFound
		}
	}

	poll := &model.Poll{
		Question:  req.Question,
		ProjectID: req.ProjectID,
		PostID:    req.PostID,
		IsActive:  true,
		EndDate:   req.EndDate,
	}
	options := make([]*model.PollOption, 0, len(req.Options))
	for _, text := range req.Options {
		options = append(options, &model.PollOption{OptionText: text})
	}

	if err := s.pollRepo.CreatePoll(ctx, poll, options); err != nil {
		return nil, err
	}
	return s.GetPoll(ctx, poll.ID, userID)
}

// GetPoll 读取投票，过期未终结的投票在此处惰性终结
func (s *PollServiceImpl) GetPoll(ctx context.Context, pollID, userID uint64) (*dto.PollDTO, error) {
	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll == nil {
		return nil, ErrPollNotFound
	}

	if err := s.applyLazyFinalize(ctx, poll); err != nil {
		return nil, err
	}

	return s.buildPollDTO(ctx, poll, userID)
}

func (s *PollServiceImpl) ListPollsByProject(ctx context.Context, projectID, userID uint64, limit, offset int) ([]*dto.PollDTO, error) {
	project, err := s.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	polls, err := s.pollRepo.ListPollsByProject(ctx, projectID, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.PollDTO, 0, len(polls))
	for _, poll := range polls {
		if err := s.applyLazyFinalize(ctx, poll); err != nil {
			return nil, err
		}
		pollDTO, err := s.buildPollDTO(ctx, poll, userID)
		if err != nil {
			return nil, err
		}
		result = append(result, pollDTO)
	}
	return result, nil
}

// UpdatePoll 修改问题与截止时间，选项按文本差异比对：
// 文本保留的选项连同票数原样保留，文本消失的选项连同其投票一起删除
func (s *PollServiceImpl) UpdatePoll(ctx context.Context, userID uint64, isAdmin bool, pollID uint64, req *dto.PollUpdateDTO) (*dto.PollDTO, error) {
	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll == nil {
		return nil, ErrPollNotFound
	}
	if err := s.checkManage(ctx, poll, userID, isAdmin); err != nil {
		return nil, err
	}
	if poll.IsFinalized {
		return nil, ErrPollFinalized
	}

	if req.Question != nil {
		poll.Question = *req.Question
	}
	if req.EndDate != nil {
		poll.EndDate = req.EndDate
	}

	var removeIDs []uint64
	var newTexts []string
	if len(req.Options) > 0 {
		if len(req.Options) < 2 {
			return nil, ErrPollTooFewOptions
		}
		removeIDs, newTexts = diffOptions(poll.Options, req.Options)
	}

	if err := s.pollRepo.UpdatePoll(ctx, poll, removeIDs, newTexts); err != nil {
		return nil, err
	}
	return s.GetPoll(ctx, pollID, userID)
}

// FinalizePoll 仅管理员可显式终结，终态不可重复进入
func (s *PollServiceImpl) FinalizePoll(ctx context.Context, userID uint64, isAdmin bool, pollID uint64) error {
	if !isAdmin {
		return UnauthorizedError
	}
	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if poll == nil {
		return ErrPollNotFound
	}
	if poll.IsFinalized {
		return ErrPollFinalized
	}
	return s.pollRepo.FinalizePoll(ctx, pollID, time.Now())
}

// SetPollActive 仅管理员可开关投票
func (s *PollServiceImpl) SetPollActive(ctx context.Context, userID uint64, isAdmin bool, pollID uint64, isActive bool) error {
	if !isAdmin {
		return UnauthorizedError
	}
	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if poll == nil {
		return ErrPollNotFound
	}
	// 终结后不允许重新开放
	if poll.IsFinalized {
		return ErrPollFinalized
	}
	return s.pollRepo.SetPollActive(ctx, pollID, isActive)
}

func (s *PollServiceImpl) DeletePoll(ctx context.Context, userID uint64, isAdmin bool, pollID uint64) error {
	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if poll == nil {
		return ErrPollNotFound
	}
	if err := s.checkManage(ctx, poll, userID, isAdmin); err != nil {
		return err
	}
	return s.pollRepo.DeletePoll(ctx, pollID)
}

// Vote 三态切换投票：首投创建、同选项撤销、换选项改投
// 状态校验在事务内重做一次，提交前发现已关闭则整体回滚
func (s *PollServiceImpl) Vote(ctx context.Context, userID, pollID, optionID uint64) (*dto.PollVoteResultDTO, error) {
	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		return nil, err
	}
	if poll == nil {
		return nil, ErrPollNotFound
	}

	if err := s.applyLazyFinalize(ctx, poll); err != nil {
		return nil, err
	}
	if poll.IsFinalized {
		return nil, ErrPollFinalized
	}
	if !poll.IsActive {
		return nil, ErrPollInactive
	}

	found := false
	for _, opt := range poll.Options {
		if opt.ID == optionID {
			found = true
			break
		}
	}
	if !found {
		return nil, ErrPollOptionNotFound
	}

	action, err := s.pollRepo.CastVote(ctx, pollID, optionID, userID, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrPollClosed) {
			return nil, ErrPollClosed
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPollOptionNotFound
		}
		return nil, err
	}

	pollDTO, err := s.GetPoll(ctx, pollID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.PollVoteResultDTO{
		Action: string(action),
		Poll:   pollDTO,
	}, nil
}

// applyLazyFinalize 过期即终结，幂等更新，并发读取下最多一次生效
func (s *PollServiceImpl) applyLazyFinalize(ctx context.Context, poll *model.Poll) error {
	now := time.Now()
	if !poll.Expired(now) {
		return nil
	}
	if err := s.pollRepo.FinalizePoll(ctx, poll.ID, now); err != nil {
		return err
	}
	poll.IsActive = false
	poll.IsFinalized = true
	poll.FinalizedAt = &now
	return nil
}

// checkManage 编辑与删除的权限跟随投票的挂载对象：
// 项目所有者、帖子作者或管理员
func (s *PollServiceImpl) checkManage(ctx context.Context, poll *model.Poll, userID uint64, isAdmin bool) error {
	if isAdmin {
		return nil
	}
	if poll.ProjectID != 0 {
		project, err := s.projectRepo.GetProject(ctx, poll.ProjectID)
		if err != nil {
			return err
		}
		if project != nil && project.OwnerID == userID {
			return nil
		}
	}
	if poll.PostID != 0 {
		post, err := s.postRepo.GetPost(ctx, poll.PostID)
		if err != nil {
			return err
		}
		if post != nil && post.UserID == userID {
			return nil
		}
	}
	return UnauthorizedError
}

func (s *PollServiceImpl) buildPollDTO(ctx context.Context, poll *model.Poll, userID uint64) (*dto.PollDTO, error) {
	options := make([]*dto.PollOptionDTO, 0, len(poll.Options))
	total := 0
	for _, opt := range poll.Options {
		options = append(options, &dto.PollOptionDTO{
			ID:         opt.ID,
			OptionText: opt.OptionText,
			VotesCount: opt.VotesCount,
		})
		total += opt.VotesCount
	}

	pollDTO := &dto.PollDTO{
		ID:          poll.ID,
		Question:    poll.Question,
		ProjectID:   poll.ProjectID,
		PostID:      poll.PostID,
		IsActive:    poll.IsActive,
		IsFinalized: poll.IsFinalized,
		IsClosed:    poll.Closed(time.Now()),
		EndDate:     poll.EndDate,
		FinalizedAt: poll.FinalizedAt,
		TotalVotes:  total,
		Options:     options,
		CreatedAt:   poll.CreatedAt,
	}

	if userID != 0 {
		vote, err := s.pollRepo.GetUserVote(ctx, poll.ID, userID)
		if err != nil {
			return nil, err
		}
		if vote != nil {
			pollDTO.UserVoteID = &vote.PollOptionID
		}
	}
	return pollDTO, nil
}

// diffOptions 以选项文本为键做差异比对
// 返回需要删除的选项 ID 与需要新建的文本
func diffOptions(existing []model.PollOption, incoming []string) ([]uint64, []string) {
	incomingSet := make(map[string]struct{}, len(incoming))
	for _, text := range incoming {
		incomingSet[text] = struct{}{}
	}
	existingSet := make(map[string]struct{}, len(existing))

	removeIDs := make([]uint64, 0)
	for _, opt := range existing {
		existingSet[opt.OptionText] = struct{}{}
		if _, ok := incomingSet[opt.OptionText]; !ok {
			removeIDs = append(removeIDs, opt.ID)
		}
	}

	newTexts := make([]string, 0)
	seen := make(map[string]struct{})
	for _, text := range incoming {
		if _, ok := existingSet[text]; ok {
			continue
		}
		if _, ok := seen[text]; ok {
			continue
		}
		seen[text] = struct{}{}
		newTexts = append(newTexts, text)
	}

	return removeIDs, newTexts
}
