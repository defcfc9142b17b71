package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"imageresizer/internal/infrastructure/jwt"
	"imageresizer/internal/interface/api/rest/dto/response"
)

const CtxUserID = "userID"

const (
	msgNoToken      = "No token, authorization denied"
	msgInvalidToken = "Token is not valid"
)

func AuthMiddleware(jwtService *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail(msgNoToken))
			return
		}

		scheme, tokenStr, ok := strings.Cut(strings.TrimSpace(authHeader), " ")
		tokenStr = strings.TrimSpace(tokenStr)
		if !ok || !strings.EqualFold(scheme, "Bearer") || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail(msgNoToken))
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Fail(msgInvalidToken))
			return
		}

		c.Set(CtxUserID, claims.UserID)

		c.Next()
	}
}
