package handler

import (
	"Lodestone/internal/api/dto"
	"Lodestone/internal/pkg/response"
	"Lodestone/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc      service.UserService
	userRolesSvc service.UserRolesService
}

func NewUserHandler(userSvc service.UserService, userRolesSvc service.UserRolesService) *UserHandler {
	return &UserHandler{
		userSvc:      userSvc,
		userRolesSvc: userRolesSvc,
	}
}

func (s *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := s.userSvc.Register(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nil)
}

func (s *UserHandler) Login(c *gin.Context) {
	var req dto.CredentialDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	result, err := s.userSvc.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetUserInfo(c *gin.Context) {
	userID := c.GetUint64("user_id")
	user, err := s.userSvc.GetUserInfo(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) ListUsers(c *gin.Context) {
	var page dto.PageDTO
	if err := c.ShouldBindQuery(&page); err != nil {
		response.Error(c, err)
		return
	}
	limit, offset := page.LimitOffset()

	users, err := s.userSvc.ListUsers(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

func (s *UserHandler) BanUser(c *gin.Context) {
	targetID, err := parseID(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	operatorID := c.GetUint64("user_id")

	if err := s.userSvc.BanUser(c.Request.Context(), operatorID, targetID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) UnbanUser(c *gin.Context) {
	targetID, err := parseID(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	if err := s.userSvc.UnBanUser(c.Request.Context(), targetID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) GetAllRoles(c *gin.Context) {
	roles, err := s.userRolesSvc.GetRoles(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, roles)
}

func (s *UserHandler) AddUserRole(c *gin.Context) {
	targetID, err := parseID(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.UserRoleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.userRolesSvc.AddRoleToUser(c.Request.Context(), targetID, req.RoleID); err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, nil)
}

func (s *UserHandler) DeleteUserRole(c *gin.Context) {
	targetID, err := parseID(c, "user_id")
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}

	var req dto.UserRoleDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := s.userRolesSvc.DeleteRoleFromUser(c.Request.Context(), targetID, req.RoleID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
