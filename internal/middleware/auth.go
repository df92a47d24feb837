package middleware

import (
	"strings"

	"wikiquiz_backend/internal/config"
	"wikiquiz_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware 校验Bearer令牌, 通过后把Claims放进上下文
func AuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ""
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		}

		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("auth", claims)
		c.Next()
	}
}
