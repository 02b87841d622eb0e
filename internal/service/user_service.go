package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/model"
	"Lodestone/internal/pkg/consts"
	"Lodestone/internal/pkg/redis"
	"Lodestone/internal/pkg/security"
	"Lodestone/internal/repository"
	"context"
)

type UserService interface {
	Register(ctx context.Context, req *dto.RegisterDTO) error
	Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error)
	Logout(ctx context.Context, token string) error
	GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*dto.UserDTO, error)
	BanUser(ctx context.Context, operatorID, id uint64) error
	UnBanUser(ctx context.Context, id uint64) error
}

type UserServiceImpl struct {
	userRepo  repository.UserRepo
	rolesRepo repository.UserRolesRepo
}

func NewUserService(userRepo repository.UserRepo, rolesRepo repository.UserRolesRepo) UserService {
	return &UserServiceImpl{
		userRepo:  userRepo,
		rolesRepo: rolesRepo,
	}
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterDTO) error {
	existing, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrUserExist
	}

	passwordHash, err := security.HashPassword(req.Password)
	if err != nil {
		return err
	}

	role, err := s.rolesRepo.GetRoleByName(ctx, consts.RoleUser)
	if err != nil {
		return err
	}
	if role == nil {
		return UnExpectedError
	}

	user := &model.User{
		Username: req.Username,
		Password: passwordHash,
	}
	roles := []*model.UserRole{{RoleID: role.ID}}
	return s.userRepo.CreateUser(ctx, user, roles)
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.CredentialDTO) (*dto.LoginResultDTO, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.IsBan {
		return nil, ErrUserBan
	}
	if err := security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	roleNames, err := s.roleNames(ctx, user)
	if err != nil {
		return nil, err
	}

	token, err := security.GenerateToken(user.ID, roleNames)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResultDTO{
		Token: token,
		User:  buildUserDTO(user, roleNames),
	}, nil
}

// Logout 将 Token 签名加入黑名单，有效期与 Token 剩余寿命同阶
func (s *UserServiceImpl) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return err
	}
	return redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "1", security.JWTExpirationTime)
}

func (s *UserServiceImpl) GetUserInfo(ctx context.Context, id uint64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	roleNames, err := s.roleNames(ctx, user)
	if err != nil {
		return nil, err
	}
	return buildUserDTO(user, roleNames), nil
}

func (s *UserServiceImpl) ListUsers(ctx context.Context, limit, offset int) ([]*dto.UserDTO, error) {
	users, err := s.userRepo.ListUsers(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.UserDTO, 0, len(users))
	for _, user := range users {
		roleNames, err := s.roleNames(ctx, user)
		if err != nil {
			return nil, err
		}
		result = append(result, buildUserDTO(user, roleNames))
	}
	return result, nil
}

func (s *UserServiceImpl) BanUser(ctx context.Context, operatorID, id uint64) error {
	if operatorID == id {
		return ErrUserBanSelf
	}

	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	roleNames, err := s.roleNames(ctx, user)
	if err != nil {
		return err
	}
	for _, name := range roleNames {
		if name == consts.RoleAdmin {
			return ErrUserBanAdmin
		}
	}

	rows, err := s.userRepo.UpdateUserIsBan(ctx, id, true)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserServiceImpl) UnBanUser(ctx context.Context, id uint64) error {
	rows, err := s.userRepo.UpdateUserIsBan(ctx, id, false)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (s *UserServiceImpl) roleNames(ctx context.Context, user *model.User) ([]string, error) {
	if len(user.UserRoles) == 0 {
		return []string{}, nil
	}

	ids := make([]uint64, 0, len(user.UserRoles))
	for _, ur := range user.UserRoles {
		ids = append(ids, ur.RoleID)
	}

	roles, err := s.rolesRepo.GetRoleByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(roles))
	for _, role := range roles {
		names = append(names, role.Name)
	}
	return names, nil
}

func buildUserDTO(user *model.User, roleNames []string) *dto.UserDTO {
	return &dto.UserDTO{
		ID:        user.ID,
		Username:  user.Username,
		IsBan:     user.IsBan,
		Roles:     roleNames,
		CreatedAt: user.CreatedAt,
	}
}
