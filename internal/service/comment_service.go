package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/model"
	"Lodestone/internal/pkg/consts"
	"Lodestone/internal/repository"
	"context"
	"time"
)

type CommentService interface {
	CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error)
	GetCommentTree(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error)
	UpdateComment(ctx context.Context, userID uint64, isAdmin bool, commentID uint64, content string) (*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, userID uint64, isAdmin bool, commentID uint64) error
	GetHistory(ctx context.Context, commentID uint64) ([]*dto.CommentHistoryDTO, error)
	Vote(ctx context.Context, userID, commentID uint64, voteType string) (*dto.CommentVoteResultDTO, error)
}

type CommentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
}

func NewCommentService(commentRepo repository.CommentRepo, postRepo repository.PostRepo) CommentService {
	return &CommentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
	}
}

func (s *CommentServiceImpl) CreateComment(ctx context.Context, userID uint64, req *dto.CommentCreateDTO) (*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPost(ctx, req.PostID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if req.ParentID != 0 {
		parent, err := s.commentRepo.GetCommentByID(ctx, req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, ErrCommentNotFound
		}
		// 父评论必须属于同一帖子
		if parent.PostID != req.PostID {
			return nil, ErrParamInvalid
		}
	}

	comment := &model.Comment{
		PostID:   req.PostID,
		UserID:   userID,
		ParentID: req.ParentID,
		Content:  req.Content,
	}
	if err := s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return buildCommentDTO(comment), nil
}

// GetCommentTree 一次取回帖子下全部评论，按 parent_id 在内存中组装回复树
// 软删除的节点保留在树中以维持回复结构
func (s *CommentServiceImpl) GetCommentTree(ctx context.Context, postID uint64) ([]*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.ListCommentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	nodes := make(map[uint64]*dto.CommentDTO, len(comments))
	for _, c := range comments {
		nodes[c.ID] = buildCommentDTO(c)
	}

	roots := make([]*dto.CommentDTO, 0)
	for _, c := range comments {
		node := nodes[c.ID]
		if c.ParentID == 0 {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[c.ParentID]
		if !ok {
			// 父节点缺失的孤儿回复按根评论展示
			roots = append(roots, node)
			continue
		}
		parent.Replies = append(parent.Replies, node)
	}
	return roots, nil
}

// UpdateComment 编辑前的内容作为历史快照保留，与新内容同事务落库
func (s *CommentServiceImpl) UpdateComment(ctx context.Context, userID uint64, isAdmin bool, commentID uint64, content string) (*dto.CommentDTO, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.IsDeleted {
		return nil, ErrCommentDeleted
	}
	if comment.UserID != userID && !isAdmin {
		return nil, UnauthorizedError
	}

	if err := s.commentRepo.UpdateCommentContent(ctx, comment, content, time.Now()); err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return buildCommentDTO(updated), nil
}

// DeleteComment 逻辑删除，内容替换为占位符，回复与投票行保留
func (s *CommentServiceImpl) DeleteComment(ctx context.Context, userID uint64, isAdmin bool, commentID uint64) error {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrCommentNotFound
	}
	if comment.IsDeleted {
		return ErrCommentDeleted
	}
	if comment.UserID != userID && !isAdmin {
		return UnauthorizedError
	}
	return s.commentRepo.SoftDeleteComment(ctx, commentID, consts.DeletedContent)
}

func (s *CommentServiceImpl) GetHistory(ctx context.Context, commentID uint64) ([]*dto.CommentHistoryDTO, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}

	histories, err := s.commentRepo.ListHistory(ctx, commentID)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.CommentHistoryDTO, 0, len(histories))
	for _, h := range histories {
		result = append(result, &dto.CommentHistoryDTO{
			Content:  h.Content,
			EditedAt: h.EditedAt,
		})
	}
	return result, nil
}

// Vote 赞/踩三态切换：首投创建、同方向撤销、反方向切换
func (s *CommentServiceImpl) Vote(ctx context.Context, userID, commentID uint64, voteType string) (*dto.CommentVoteResultDTO, error) {
	comment, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.IsDeleted {
		return nil, ErrCommentDeleted
	}

	var vt int8
	switch voteType {
	case "up":
		vt = model.VoteTypeUp
	case "down":
		vt = model.VoteTypeDown
	default:
		return nil, ErrVoteTypeInvalid
	}

	action, err := s.commentRepo.CastVote(ctx, commentID, userID, vt, time.Now())
	if err != nil {
		return nil, err
	}

	updated, err := s.commentRepo.GetCommentByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return &dto.CommentVoteResultDTO{
		Action:    string(action),
		Upvotes:   updated.Upvotes,
		Downvotes: updated.Downvotes,
	}, nil
}

func buildCommentDTO(comment *model.Comment) *dto.CommentDTO {
	return &dto.CommentDTO{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		ParentID:  comment.ParentID,
		Content:   comment.Content,
		Upvotes:   comment.Upvotes,
		Downvotes: comment.Downvotes,
		IsDeleted: comment.IsDeleted,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
		Replies:   make([]*dto.CommentDTO, 0),
	}
}
