package dto

import "time"

type RegisterDTO struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type CredentialDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UserDTO struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	IsBan     bool      `json:"is_ban"`
	Roles     []string  `json:"roles"`
	CreatedAt time.Time `json:"created_at"`
}

type UserRoleDTO struct {
	RoleID uint64 `json:"role_id" binding:"required"`
}

type LoginResultDTO struct {
	Token string   `json:"token"`
	User  *UserDTO `json:"user"`
}
