package service

import (
	"Lodestone/internal/model"
	"Lodestone/internal/repository"
	"context"
)

type UserRolesService interface {
	GetRoles(ctx context.Context) ([]*model.Role, error)
	AddRoleToUser(ctx context.Context, userId uint64, roleId uint64) error
	DeleteRoleFromUser(ctx context.Context, userId uint64, roleId uint64) error
}

type UserRolesServiceImpl struct {
	userRolesRepo repository.UserRolesRepo
	userRepo      repository.UserRepo
}

func NewUserRolesService(userRolesRepo repository.UserRolesRepo, userRepo repository.UserRepo) UserRolesService {
	return &UserRolesServiceImpl{
		userRolesRepo: userRolesRepo,
		userRepo:      userRepo,
	}
}

func (s *UserRolesServiceImpl) GetRoles(ctx context.Context) ([]*model.Role, error) {
	return s.userRolesRepo.GetRoles(ctx)
}

func (s *UserRolesServiceImpl) AddRoleToUser(ctx context.Context, userId uint64, roleId uint64) error {
	user, err := s.userRepo.GetUserById(ctx, userId)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	roles, err := s.userRolesRepo.GetRoleByIDs(ctx, []uint64{roleId})
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		return ErrRoleNotFound
	}

	hasRole, err := s.userRolesRepo.GetUserHasRole(ctx, userId, roleId)
	if err != nil {
		return err
	}
	if hasRole {
		return ErrUserHasRole
	}
	return s.userRolesRepo.AddRoleToUser(ctx, userId, roleId)
}

func (s *UserRolesServiceImpl) DeleteRoleFromUser(ctx context.Context, userId uint64, roleId uint64) error {
	hasRole, err := s.userRolesRepo.GetUserHasRole(ctx, userId, roleId)
	if err != nil {
		return err
	}
	if !hasRole {
		return ErrRoleNotFound
	}
	return s.userRolesRepo.DeleteRoleFromUser(ctx, userId, roleId)
}
