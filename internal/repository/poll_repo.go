package repository

import (
	"Lodestone/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrPollClosed 投票事务内的终态校验失败
// 提交前发现投票已关闭时返回，由 service 层翻译为业务错误
var ErrPollClosed = errors.New("poll closed")

type VoteAction string

const (
	VoteActionCreated VoteAction = "created"
	VoteActionRemoved VoteAction = "removed"
	VoteActionUpdated VoteAction = "updated"
)

type PollRepo interface {
	CreatePoll(ctx context.Context, poll *model.Poll, options []*model.PollOption) error
	GetPoll(ctx context.Context, id uint64) (*model.Poll, error)
	ListPollsByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*model.Poll, error)
	UpdatePoll(ctx context.Context, poll *model.Poll, removeOptionIDs []uint64, newOptionTexts []string) error
	FinalizePoll(ctx context.Context, id uint64, now time.Time) error
	SetPollActive(ctx context.Context, id uint64, isActive bool) error
	DeletePoll(ctx context.Context, id uint64) error
	CastVote(ctx context.Context, pollID, optionID, userID uint64, now time.Time) (VoteAction, error)
	GetUserVote(ctx context.Context, pollID, userID uint64) (*model.PollVote, error)
	CountVotes(ctx context.Context, pollID uint64) (int64, error)
	ReconcileVoteCounts(ctx context.Context) error
}

type PollRepoImpl struct {
	db *gorm.DB
}

func NewPollRepo(db *gorm.DB) PollRepo {
	return &PollRepoImpl{db: db}
}

// CreatePoll 投票与选项在同一事务内落库
func (s *PollRepoImpl) CreatePoll(ctx context.Context, poll *model.Poll, options []*model.PollOption) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(poll).Error; err != nil {
			return err
		}
		for _, opt := range options {
			opt.PollID = poll.ID
		}
		if err := tx.Create(options).Error; err != nil {
			return err
		}
		return nil
	})
}

func (s *PollRepoImpl) GetPoll(ctx context.Context, id uint64) (*model.Poll, error) {
	poll := &model.Poll{}
	result := s.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.id ASC")
		}).
		First(poll, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return poll, nil
}

func (s *PollRepoImpl) ListPollsByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*model.Poll, error) {
	polls := make([]*model.Poll, 0)
	err := s.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("poll_options.id ASC")
		}).
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&polls).Error
	if err != nil {
		return nil, err
	}
	return polls, nil
}

// UpdatePoll 更新问题与截止时间，并按文本差异替换选项集合
// 被移除选项的投票行一并删除，整体在一个事务内完成
func (s *PollRepoImpl) UpdatePoll(ctx context.Context, poll *model.Poll, removeOptionIDs []uint64, newOptionTexts []string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Poll{}).
			Where("id = ?", poll.ID).
			Updates(map[string]interface{}{
				"question": poll.Question,
				"end_date": poll.EndDate,
			}).Error; err != nil {
			return err
		}

		if len(removeOptionIDs) > 0 {
			if err := tx.Where("poll_id = ? AND poll_option_id IN ?", poll.ID, removeOptionIDs).
				Delete(&model.PollVote{}).Error; err != nil {
				return err
			}
			if err := tx.Where("id IN ?", removeOptionIDs).
				Delete(&model.PollOption{}).Error; err != nil {
				return err
			}
		}

		for _, text := range newOptionTexts {
			if err := tx.Create(&model.PollOption{
				PollID:     poll.ID,
				OptionText: text,
				CreatedAt:  time.Now(),
			}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FinalizePoll 终结投票，幂等：已终结的行不会被再次更新
func (s *PollRepoImpl) FinalizePoll(ctx context.Context, id uint64, now time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Poll{}).
		Where("id = ? AND is_finalized = ?", id, false).
		Updates(map[string]interface{}{
			"is_active":    false,
			"is_finalized": true,
			"finalized_at": now,
		}).Error
}

func (s *PollRepoImpl) SetPollActive(ctx context.Context, id uint64, isActive bool) error {
	return s.db.WithContext(ctx).Model(&model.Poll{}).
		Where("id = ?", id).
		Update("is_active", isActive).Error
}

func (s *PollRepoImpl) DeletePoll(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("poll_id = ?", id).Delete(&model.PollVote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", id).Delete(&model.PollOption{}).Error; err != nil {
			return err
		}
		if err := tx.Where("poll_id = ?", id).Delete(&model.PostPoll{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Poll{}, id).Error
	})
}

// CastVote 三分支投票逻辑，投票行与计数器在同一事务内更新
// 事务内重新校验投票状态，已关闭时返回 ErrPollClosed
func (s *PollRepoImpl) CastVote(ctx context.Context, pollID, optionID, userID uint64, now time.Time) (VoteAction, error) {
	var action VoteAction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poll model.Poll
		if err := tx.First(&poll, pollID).Error; err != nil {
			return err
		}
		if poll.Closed(now) {
			return ErrPollClosed
		}

		var option model.PollOption
		if err := tx.Where("id = ? AND poll_id = ?", optionID, pollID).
			First(&option).Error; err != nil {
			return err
		}

		var existing model.PollVote
		err := tx.Where("poll_id = ? AND user_id = ?", pollID, userID).
			First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&model.PollVote{
				PollID:       pollID,
				PollOptionID: optionID,
				UserID:       userID,
				CreatedAt:    now,
			}).Error; err != nil {
				return err
			}
			if err := incrOptionCount(tx, optionID); err != nil {
				return err
			}
			action = VoteActionCreated

		case err != nil:
			return err

		case existing.PollOptionID == optionID:
			// 同一选项再次投票 = 撤销
			if err := tx.Delete(&model.PollVote{}, existing.ID).Error; err != nil {
				return err
			}
			if err := decrOptionCount(tx, optionID); err != nil {
				return err
			}
			action = VoteActionRemoved

		default:
			// 改投其他选项：旧减新增，复用同一投票行
			if err := decrOptionCount(tx, existing.PollOptionID); err != nil {
				return err
			}
			if err := incrOptionCount(tx, optionID); err != nil {
				return err
			}
			if err := tx.Model(&model.PollVote{}).
				Where("id = ?", existing.ID).
				Update("poll_option_id", optionID).Error; err != nil {
				return err
			}
			action = VoteActionUpdated
		}

		return nil
	})

	return action, err
}

func (s *PollRepoImpl) GetUserVote(ctx context.Context, pollID, userID uint64) (*model.PollVote, error) {
	vote := &model.PollVote{}
	result := s.db.WithContext(ctx).
		Where("poll_id = ? AND user_id = ?", pollID, userID).
		First(vote)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return vote, nil
}

func (s *PollRepoImpl) CountVotes(ctx context.Context, pollID uint64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PollVote{}).
		Where("poll_id = ?", pollID).
		Count(&count).Error
	return count, err
}

// ReconcileVoteCounts 用投票行重算冗余计数，计数器本身从不作为数据源
func (s *PollRepoImpl) ReconcileVoteCounts(ctx context.Context) error {
	return s.db.WithContext(ctx).Exec(
		`UPDATE poll_options SET votes_count = (
			SELECT COUNT(*) FROM poll_votes
			WHERE poll_votes.poll_option_id = poll_options.id
		)`).Error
}

func incrOptionCount(tx *gorm.DB, optionID uint64) error {
	return tx.Model(&model.PollOption{}).
		Where("id = ?", optionID).
		UpdateColumn("votes_count", gorm.Expr("votes_count + ?", 1)).Error
}

// decrOptionCount 计数器减一，下限为 0
func decrOptionCount(tx *gorm.DB, optionID uint64) error {
	return tx.Model(&model.PollOption{}).
		Where("id = ? AND votes_count > 0", optionID).
		UpdateColumn("votes_count", gorm.Expr("votes_count - ?", 1)).Error
}
