package handler

import (
	"Lodestone/internal/pkg/consts"
	"strconv"

	"github.com/gin-gonic/gin"
)

// currentUser 读取鉴权中间件注入的身份信息
func currentUser(c *gin.Context) (uint64, bool) {
	userID := c.GetUint64("user_id")
	isAdmin := false
	for _, role := range c.GetStringSlice("roles") {
		if role == consts.RoleAdmin {
			isAdmin = true
			break
		}
	}
	return userID, isAdmin
}

func parseID(c *gin.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
