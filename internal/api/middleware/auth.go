package middleware

import (
	"Lodestone/internal/pkg/consts"
	"Lodestone/internal/pkg/redis"
	"Lodestone/internal/pkg/response"
	"Lodestone/internal/pkg/security"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 负责验证 JWT 并将用户身份信息注入 Context
// 已注销的 Token 通过 Redis 黑名单拦截
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, http.StatusUnauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		signature, err := security.ExtractSignature(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Token 缺失或格式错误")
			c.Abort()
			return
		}

		value, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
		if err != nil {
			response.Fail(c, http.StatusInternalServerError, "未知错误")
			c.Abort()
			return
		}
		if value != "" {
			response.Fail(c, http.StatusUnauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		claims, err := security.ValidateToken(tokenString)
		if err != nil {
			response.Fail(c, http.StatusUnauthorized, "Token 无效或已过期")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("roles", claims.Roles)

		newCtx := context.WithValue(c.Request.Context(), "user_id", claims.UserID)
		c.Request = c.Request.WithContext(newCtx)

		c.Next()
	}
}
