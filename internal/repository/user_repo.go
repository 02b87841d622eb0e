package repository

import (
	"Lodestone/internal/model"
	"context"
	"errors"

	"gorm.io/gorm"
)

type UserRepo interface {
	GetUserById(ctx context.Context, id uint64) (*model.User, error)
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	CreateUser(ctx context.Context, user *model.User, roles []*model.UserRole) error
	UpdateUserIsBan(ctx context.Context, id uint64, isBan bool) (int64, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error)
}

type UserRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &UserRepoImpl{db: db}
}

func (s *UserRepoImpl) GetUserById(ctx context.Context, id uint64) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Preload("UserRoles").
		First(user, id)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	user := &model.User{}
	result := s.db.WithContext(ctx).
		Preload("UserRoles").
		Where("username = ?", username).
		First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}

	return user, nil
}

func (s *UserRepoImpl) CreateUser(ctx context.Context, user *model.User, roles []*model.UserRole) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		for _, r := range roles {
			r.UserID = user.ID
		}
		if len(roles) > 0 {
			if err := tx.Create(roles).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *UserRepoImpl) UpdateUserIsBan(ctx context.Context, id uint64, isBan bool) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.User{}).
		Where("id = ?", id).
		Update("is_ban", isBan)
	return result.RowsAffected, result.Error
}

func (s *UserRepoImpl) ListUsers(ctx context.Context, limit, offset int) ([]*model.User, error) {
	users := make([]*model.User, 0)
	err := s.db.WithContext(ctx).
		Preload("UserRoles").
		Where("is_deleted = ?", false).
		Order("id ASC").
		Limit(limit).Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}
