package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"blogapp/repository"
	"blogapp/utils"
)

const (
	CtxUserID   = "userID"
	CtxUsername = "username"
)

// AuthMiddleware 校验 Bearer 令牌并按用户名查库确认用户存在，
// 通过后把用户 ID 和用户名放进请求上下文。
func AuthMiddleware(repo *repository.Repository, tokens *utils.TokenIssuer) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")
		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing Authorization header"})
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid Authorization header"})
			return
		}

		username, err := tokens.Parse(parts[1])
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := repo.GetUserByUsername(ctx.Request.Context(), username)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		ctx.Set(CtxUserID, user.ID)
		ctx.Set(CtxUsername, user.Username)
		ctx.Next()
	}
}
