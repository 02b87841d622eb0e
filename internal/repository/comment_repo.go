package repository

import (
	"Lodestone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type CommentRepo interface {
	CreateComment(ctx context.Context, comment *model.Comment) error
	GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error)
	ListCommentsByPost(ctx context.Context, postID uint64) ([]*model.Comment, error)
	UpdateCommentContent(ctx context.Context, comment *model.Comment, newContent string, now time.Time) error
	SoftDeleteComment(ctx context.Context, id uint64, sentinel string) error
	ListHistory(ctx context.Context, commentID uint64) ([]*model.CommentHistory, error)
	CastVote(ctx context.Context, commentID, userID uint64, voteType int8, now time.Time) (VoteAction, error)
	GetUserVote(ctx context.Context, commentID, userID uint64) (*model.CommentVote, error)
	ReconcileVoteCounts(ctx context.Context) error
}

type CommentRepoImpl struct {
	db *gorm.DB
}

func NewCommentRepo(db *gorm.DB) CommentRepo {
	return &CommentRepoImpl{db: db}
}

func (s *CommentRepoImpl) CreateComment(ctx context.Context, comment *model.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

// GetCommentByID 软删除的评论同样返回，是否可操作由调用方判断
func (s *CommentRepoImpl) GetCommentByID(ctx context.Context, id uint64) (*model.Comment, error) {
	comment := &model.Comment{}
	result := s.db.WithContext(ctx).First(comment, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return comment, nil
}

// ListCommentsByPost 一次取回帖子下全部评论（含软删除），树在内存中组装
func (s *CommentRepoImpl) ListCommentsByPost(ctx context.Context, postID uint64) ([]*model.Comment, error) {
	comments := make([]*model.Comment, 0)
	err := s.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// UpdateCommentContent 编辑前的内容快照与新内容在同一事务内落库
func (s *CommentRepoImpl) UpdateCommentContent(ctx context.Context, comment *model.Comment, newContent string, now time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.CommentHistory{
			CommentID: comment.ID,
			Content:   comment.Content,
			EditedAt:  now,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Comment{}).
			Where("id = ?", comment.ID).
			Updates(map[string]interface{}{
				"content":    newContent,
				"updated_at": now,
			}).Error
	})
}

// SoftDeleteComment 逻辑删除并覆盖内容，保留行以维持回复树
func (s *CommentRepoImpl) SoftDeleteComment(ctx context.Context, id uint64, sentinel string) error {
	return s.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"content":    sentinel,
		}).Error
}

func (s *CommentRepoImpl) ListHistory(ctx context.Context, commentID uint64) ([]*model.CommentHistory, error) {
	histories := make([]*model.CommentHistory, 0)
	err := s.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Order("edited_at DESC").
		Find(&histories).Error
	if err != nil {
		return nil, err
	}
	return histories, nil
}

// CastVote 与投票相同的三分支切换逻辑，作用于评论的赞/踩计数
func (s *CommentRepoImpl) CastVote(ctx context.Context, commentID, userID uint64, voteType int8, now time.Time) (VoteAction, error) {
	var action VoteAction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.First(&comment, commentID).Error; err != nil {
			return err
		}

		var existing model.CommentVote
		err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.CommentVote{
				UserID:    userID,
				CommentID: commentID,
				VoteType:  voteType,
				CreatedAt: now,
			}).Error; err != nil {
				return err
			}
			if err := adjustVoteCount(tx, commentID, voteType, 1); err != nil {
				return err
			}
			action = VoteActionCreated

		case err != nil:
			return err

		case existing.VoteType == voteType:
			// 同方向再次投票 = 撤销
			if err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
				Delete(&model.CommentVote{}).Error; err != nil {
				return err
			}
			if err := adjustVoteCount(tx, commentID, voteType, -1); err != nil {
				return err
			}
			action = VoteActionRemoved

		default:
			// 反向切换：旧方向减一，新方向加一
			if err := adjustVoteCount(tx, commentID, existing.VoteType, -1); err != nil {
				return err
			}
			if err := adjustVoteCount(tx, commentID, voteType, 1); err != nil {
				return err
			}
			if err := tx.Model(&model.CommentVote{}).
				Where("comment_id = ? AND user_id = ?", commentID, userID).
				Update("vote_type", voteType).Error; err != nil {
				return err
			}
			action = VoteActionUpdated
		}

		return nil
	})

	return action, err
}

func (s *CommentRepoImpl) GetUserVote(ctx context.Context, commentID, userID uint64) (*model.CommentVote, error) {
	vote := &model.CommentVote{}
	result := s.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		First(vote)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return vote, nil
}

// ReconcileVoteCounts 用投票行重算评论的赞/踩冗余计数
func (s *CommentRepoImpl) ReconcileVoteCounts(ctx context.Context) error {
	err := s.db.WithContext(ctx).Exec(
		`UPDATE comments SET upvotes = (
			SELECT COUNT(*) FROM comment_votes
			WHERE comment_votes.comment_id = comments.id AND comment_votes.vote_type = 1
		)`).Error
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Exec(
		`UPDATE comments SET downvotes = (
			SELECT COUNT(*) FROM comment_votes
			WHERE comment_votes.comment_id = comments.id AND comment_votes.vote_type = -1
		)`).Error
}

// adjustVoteCount 按投票方向调整计数列，减操作下限为 0
func adjustVoteCount(tx *gorm.DB, commentID uint64, voteType int8, delta int) error {
	column := "upvotes"
	if voteType == model.VoteTypeDown {
		column = "downvotes"
	}

	query := tx.Model(&model.Comment{}).Where("id = ?", commentID)
	if delta < 0 {
		query = query.Where(column + " > 0")
	}
	return query.UpdateColumn(column, gorm.Expr(column+" + ?", delta)).Error
}
