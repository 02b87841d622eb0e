package service

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/pkg/consts"
	"Lodestone/internal/repository"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T) (UserService, UserRolesService) {
	db := setupDB(t)
	userRepo := repository.NewUserRepo(db)
	rolesRepo := repository.NewUserRolesRepo(db)
	return NewUserService(userRepo, rolesRepo), NewUserRolesService(rolesRepo, userRepo)
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "secret123"}))

	// 用户名重复
	err := svc.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "whatever"})
	assert.ErrorIs(t, err, ErrUserExist)

	// 密码错误
	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	// 正常登录，默认角色 USER
	result, err := svc.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Contains(t, result.User.Roles, consts.RoleUser)
}

func TestBanRules(t *testing.T) {
	svc, rolesSvc := newUserService(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{Username: "alice", Password: "secret123"}))
	require.NoError(t, svc.Register(ctx, &dto.RegisterDTO{Username: "bob", Password: "secret123"}))

	alice, err := svc.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	bob, err := svc.Login(ctx, &dto.CredentialDTO{Username: "bob", Password: "secret123"})
	require.NoError(t, err)

	// 不能封禁自己
	assert.ErrorIs(t, svc.BanUser(ctx, alice.User.ID, alice.User.ID), ErrUserBanSelf)

	// 不能封禁管理员
	roles, err := rolesSvc.GetRoles(ctx)
	require.NoError(t, err)
	var adminRoleID uint64
	for _, role := range roles {
		if role.Name == consts.RoleAdmin {
			adminRoleID = role.ID
		}
	}
	require.NotZero(t, adminRoleID)
	require.NoError(t, rolesSvc.AddRoleToUser(ctx, bob.User.ID, adminRoleID))
	assert.ErrorIs(t, svc.BanUser(ctx, alice.User.ID, bob.User.ID), ErrUserBanAdmin)

	// 重复授予角色
	assert.ErrorIs(t, rolesSvc.AddRoleToUser(ctx, bob.User.ID, adminRoleID), ErrUserHasRole)

	// 封禁后无法登录
	require.NoError(t, svc.BanUser(ctx, bob.User.ID, alice.User.ID))
	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserBan)

	require.NoError(t, svc.UnBanUser(ctx, alice.User.ID))
	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: "alice", Password: "secret123"})
	assert.NoError(t, err)
}
