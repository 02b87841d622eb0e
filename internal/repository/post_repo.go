package repository

import (
	"Lodestone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreatePost(ctx context.Context, post *model.Post) error
	GetPost(ctx context.Context, id uint64) (*model.Post, error)
	ListPostsByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*model.Post, error)
	UpdatePost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id uint64) error

	AttachPoll(ctx context.Context, link *model.PostPoll) error
	DetachPoll(ctx context.Context, postID, pollID uint64) (int64, error)
	CheckPollAttached(ctx context.Context, postID, pollID uint64) (bool, error)
	GetAttachedPolls(ctx context.Context, postID uint64) ([]*model.Poll, error)

	AttachRelease(ctx context.Context, link *model.PostRelease) error
	DetachRelease(ctx context.Context, postID, releaseID uint64) (int64, error)
	CheckReleaseAttached(ctx context.Context, postID, releaseID uint64) (bool, error)
	GetAttachedReleases(ctx context.Context, postID uint64) ([]*model.Release, error)
}

type PostRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &PostRepoImpl{db: db}
}

func (s *PostRepoImpl) CreatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *PostRepoImpl) GetPost(ctx context.Context, id uint64) (*model.Post, error) {
	post := &model.Post{}
	result := s.db.WithContext(ctx).
		Where("is_deleted = ?", false).
		First(post, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return post, nil
}

func (s *PostRepoImpl) ListPostsByProject(ctx context.Context, projectID uint64, limit, offset int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Where("project_id = ? AND is_deleted = ?", projectID, false).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostRepoImpl) UpdatePost(ctx context.Context, post *model.Post) error {
	return s.db.WithContext(ctx).Updates(post).Error
}

func (s *PostRepoImpl) DeletePost(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (s *PostRepoImpl) AttachPoll(ctx context.Context, link *model.PostPoll) error {
	return s.db.WithContext(ctx).Create(link).Error
}

func (s *PostRepoImpl) DetachPoll(ctx context.Context, postID, pollID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("post_id = ? AND poll_id = ?", postID, pollID).
		Delete(&model.PostPoll{})
	return result.RowsAffected, result.Error
}

func (s *PostRepoImpl) CheckPollAttached(ctx context.Context, postID, pollID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostPoll{}).
		Where("post_id = ? AND poll_id = ?", postID, pollID).
		Count(&count).Error
	return count > 0, err
}

// GetAttachedPolls 按展示顺序获取帖子挂载的投票
func (s *PostRepoImpl) GetAttachedPolls(ctx context.Context, postID uint64) ([]*model.Poll, error) {
	polls := make([]*model.Poll, 0)
	err := s.db.WithContext(ctx).
		Preload("Options").
		Joins("JOIN post_polls ON post_polls.poll_id = polls.id").
		Where("post_polls.post_id = ?", postID).
		Order("post_polls.display_order ASC").
		Find(&polls).Error
	if err != nil {
		return nil, err
	}
	return polls, nil
}

func (s *PostRepoImpl) AttachRelease(ctx context.Context, link *model.PostRelease) error {
	return s.db.WithContext(ctx).Create(link).Error
}

func (s *PostRepoImpl) DetachRelease(ctx context.Context, postID, releaseID uint64) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("post_id = ? AND release_id = ?", postID, releaseID).
		Delete(&model.PostRelease{})
	return result.RowsAffected, result.Error
}

func (s *PostRepoImpl) CheckReleaseAttached(ctx context.Context, postID, releaseID uint64) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostRelease{}).
		Where("post_id = ? AND release_id = ?", postID, releaseID).
		Count(&count).Error
	return count > 0, err
}

// GetAttachedReleases 按展示顺序获取帖子挂载的发行版
func (s *PostRepoImpl) GetAttachedReleases(ctx context.Context, postID uint64) ([]*model.Release, error) {
	releases := make([]*model.Release, 0)
	err := s.db.WithContext(ctx).
		Preload("Files").
		Joins("JOIN post_releases ON post_releases.release_id = releases.id").
		Where("post_releases.post_id = ?", postID).
		Order("post_releases.display_order ASC").
		Find(&releases).Error
	if err != nil {
		return nil, err
	}
	return releases, nil
}
