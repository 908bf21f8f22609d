// Package middleware 提供了处理 HTTP 请求的中间件。
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"learn-mate-go/internal/model"
	"learn-mate-go/internal/service"
	"learn-mate-go/pkg/log"
	"learn-mate-go/pkg/token"
)

// 存放在 gin 上下文中的用户键。
const ContextUserKey = "user"

const bearerPrefix = "Bearer "

// AuthMiddleware 创建一个 Gin 中间件，用于强制 JWT 认证。
// 它从请求头中提取外部身份令牌，校验有效性，解析（必要时创建）本地
// 用户，并将完整的 User 对象存入 Gin 的上下文中。
func AuthMiddleware(jwtManager *token.JWTManager, userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveUser(c, jwtManager, userService)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "无效或缺失的身份令牌",
			})
			return
		}
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// OptionalAuthMiddleware 与 AuthMiddleware 的解析逻辑相同，但从不中止请求：
// 令牌缺失或无效时上下文中没有用户，后续处理按匿名调用执行（跳过持久化）。
func OptionalAuthMiddleware(jwtManager *token.JWTManager, userService service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, ok := resolveUser(c, jwtManager, userService); ok {
			c.Set(ContextUserKey, user)
		}
		c.Next()
	}
}

// resolveUser 从 Authorization 头解析外部身份并映射为本地用户。
func resolveUser(c *gin.Context, jwtManager *token.JWTManager, userService service.UserService) (*model.User, bool) {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return nil, false
	}
	tokenString := strings.TrimPrefix(authHeader, bearerPrefix)

	claims, err := jwtManager.VerifyToken(tokenString)
	if err != nil {
		log.Warnf("身份令牌校验失败: %v", err)
		return nil, false
	}

	user, err := userService.GetOrCreate(c.Request.Context(), claims)
	if err != nil {
		log.Error("解析本地用户失败", err)
		return nil, false
	}
	return user, true
}
