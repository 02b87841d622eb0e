package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/model"
	"Lodestone/internal/repository"
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

type PostService interface {
	CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error)
	GetPostDetail(ctx context.Context, postID, userID uint64) (*dto.PostDTO, error)
	ListPostsByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*dto.PostDTO, error)
	UpdatePost(ctx context.Context, userID uint64, isAdmin bool, postID uint64, req *dto.PostUpdateDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, userID uint64, isAdmin bool, postID uint64) error

	AttachPoll(ctx context.Context, userID uint64, isAdmin bool, postID, pollID uint64, displayOrder int) error
	DetachPoll(ctx context.Context, userID uint64, isAdmin bool, postID, pollID uint64) error
	AttachRelease(ctx context.Context, userID uint64, isAdmin bool, postID, releaseID uint64, displayOrder int) error
	DetachRelease(ctx context.Context, userID uint64, isAdmin bool, postID, releaseID uint64) error
}

type PostServiceImpl struct {
	postRepo    repository.PostRepo
	projectRepo repository.ProjectRepo
	pollRepo    repository.PollRepo
	releaseRepo repository.ReleaseRepo
}

func NewPostService(postRepo repository.PostRepo, projectRepo repository.ProjectRepo, pollRepo repository.PollRepo, releaseRepo repository.ReleaseRepo) PostService {
	return &PostServiceImpl{
		postRepo:    postRepo,
		projectRepo: projectRepo,
		pollRepo:    pollRepo,
		releaseRepo: releaseRepo,
	}
}

func (s *PostServiceImpl) CreatePost(ctx context.Context, userID uint64, req *dto.PostCreateDTO) (*dto.PostDTO, error) {
	project, err := s.projectRepo.GetProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	post := &model.Post{
		ProjectID:   req.ProjectID,
		UserID:      userID,
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: true,
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return buildPostDTO(post), nil
}

// GetPostDetail 详情页并发聚合挂载的投票与发行版
// 挂载投票的 is_closed 基于当前时刻计算，不依赖落库状态
func (s *PostServiceImpl) GetPostDetail(ctx context.Context, postID, userID uint64) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	postDTO := buildPostDTO(post)

	var polls []*model.Poll
	var releases []*model.Release

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		polls, err = s.postRepo.GetAttachedPolls(gCtx, postID)
		return err
	})
	g.Go(func() error {
		var err error
		releases, err = s.postRepo.GetAttachedReleases(gCtx, postID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	now := time.Now()
	postDTO.Polls = make([]*dto.PollDTO, 0, len(polls))
	for _, poll := range polls {
		pollDTO, err := s.buildAttachedPollDTO(ctx, poll, userID, now)
		if err != nil {
			return nil, err
		}
		postDTO.Polls = append(postDTO.Polls, pollDTO)
	}

	postDTO.Releases = make([]*dto.ReleaseDTO, 0, len(releases))
	for _, release := range releases {
		postDTO.Releases = append(postDTO.Releases, buildReleaseDTO(release))
	}

	return postDTO, nil
}

func (s *PostServiceImpl) ListPostsByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*dto.PostDTO, error) {
	project, err := s.projectRepo.GetProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	posts, err := s.postRepo.ListPostsByProject(ctx, projectID, limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		result = append(result, buildPostDTO(post))
	}
	return result, nil
}

func (s *PostServiceImpl) UpdatePost(ctx context.Context, userID uint64, isAdmin bool, postID uint64, req *dto.PostUpdateDTO) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID && !isAdmin {
		return nil, UnauthorizedError
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.IsPublished != nil {
		post.IsPublished = *req.IsPublished
	}

	if err := s.postRepo.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return buildPostDTO(post), nil
}

func (s *PostServiceImpl) DeletePost(ctx context.Context, userID uint64, isAdmin bool, postID uint64) error {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return ErrPostNotFound
	}
	if post.UserID != userID && !isAdmin {
		return UnauthorizedError
	}
	return s.postRepo.DeletePost(ctx, postID)
}

func (s *PostServiceImpl) AttachPoll(ctx context.Context, userID uint64, isAdmin bool, postID, pollID uint64, displayOrder int) error {
	post, err := s.checkPostManage(ctx, postID, userID, isAdmin)
	if err != nil {
		return err
	}

	poll, err := s.pollRepo.GetPoll(ctx, pollID)
	if err != nil {
		return err
	}
	if poll == nil {
		return ErrPollNotFound
	}

	attached, err := s.postRepo.CheckPollAttached(ctx, post.ID, pollID)
	if err != nil {
		return err
	}
	if attached {
		return ErrAttachExist
	}

	return s.postRepo.AttachPoll(ctx, &model.PostPoll{
		PostID:       post.ID,
		PollID:       pollID,
		DisplayOrder: displayOrder,
	})
}

func (s *PostServiceImpl) DetachPoll(ctx context.Context, userID uint64, isAdmin bool, postID, pollID uint64) error {
	if _, err := s.checkPostManage(ctx, postID, userID, isAdmin); err != nil {
		return err
	}

	rows, err := s.postRepo.DetachPoll(ctx, postID, pollID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAttachNotFound
	}
	return nil
}

func (s *PostServiceImpl) AttachRelease(ctx context.Context, userID uint64, isAdmin bool, postID, releaseID uint64, displayOrder int) error {
	post, err := s.checkPostManage(ctx, postID, userID, isAdmin)
	if err != nil {
		return err
	}

	release, err := s.releaseRepo.GetRelease(ctx, releaseID)
	if err != nil {
		return err
	}
	if release == nil {
		return ErrReleaseNotFound
	}

	attached, err := s.postRepo.CheckReleaseAttached(ctx, post.ID, releaseID)
	if err != nil {
		return err
	}
	if attached {
		return ErrAttachExist
	}

	return s.postRepo.AttachRelease(ctx, &model.PostRelease{
		PostID:       post.ID,
		ReleaseID:    releaseID,
		DisplayOrder: displayOrder,
	})
}

func (s *PostServiceImpl) DetachRelease(ctx context.Context, userID uint64, isAdmin bool, postID, releaseID uint64) error {
	if _, err := s.checkPostManage(ctx, postID, userID, isAdmin); err != nil {
		return err
	}

	rows, err := s.postRepo.DetachRelease(ctx, postID, releaseID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrAttachNotFound
	}
	return nil
}

func (s *PostServiceImpl) checkPostManage(ctx context.Context, postID, userID uint64, isAdmin bool) (*model.Post, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.UserID != userID && !isAdmin {
		return nil, UnauthorizedError
	}
	return post, nil
}

func (s *PostServiceImpl) buildAttachedPollDTO(ctx context.Context, poll *model.Poll, userID uint64, now time.Time) (*dto.PollDTO, error) {
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
		IsClosed:    poll.Closed(now),
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

func buildPostDTO(post *model.Post) *dto.PostDTO {
	return &dto.PostDTO{
		ID:          post.ID,
		ProjectID:   post.ProjectID,
		UserID:      post.UserID,
		Title:       post.Title,
		Content:     post.Content,
		IsPublished: post.IsPublished,
		CreatedAt:   post.CreatedAt,
		UpdatedAt:   post.UpdatedAt,
	}
}
